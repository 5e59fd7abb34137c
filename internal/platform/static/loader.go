package static

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const (
	maxRetries     = 3
	initialBackoff = 200 * time.Millisecond
)

// maxBodyBytes caps a fetched page.
var maxBodyBytes int64 = 10 << 20

// ErrPageTooLarge is returned when a fetched page exceeds the size cap.
var ErrPageTooLarge = errors.New("page too large")

// load returns the UTF-8 HTML of target, reading local paths and file://
// URLs from disk and fetching http(s) URLs with retries.
func load(ctx context.Context, logger *zap.Logger, client *http.Client, target string) ([]byte, error) {
	lower := strings.ToLower(target)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return fetch(ctx, logger, client, target)
	case strings.HasPrefix(lower, "file://"):
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", target, err)
		}
		return os.ReadFile(u.Path)
	default:
		return os.ReadFile(target)
	}
}

func fetch(ctx context.Context, logger *zap.Logger, client *http.Client, target string) ([]byte, error) {
	logger = logger.With(zap.String("url", target))
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		body, status, err := fetchOnce(ctx, client, target)
		if err == nil && status >= 200 && status < 300 {
			logger.Debug("fetched page", zap.Int("status_code", status), zap.Int("attempt", attempt))
			return body, nil
		}
		if errors.Is(err, ErrPageTooLarge) {
			return nil, fmt.Errorf("fetch %s: %w", target, err)
		}
		if err == nil {
			err = fmt.Errorf("unexpected status %d", status)
			// Client errors will not change on retry.
			if status >= 400 && status < 500 {
				return nil, fmt.Errorf("fetch %s: %w", target, err)
			}
		}
		lastErr = err

		if i < maxRetries-1 {
			backoff := initialBackoff * time.Duration(math.Pow(2, float64(i)))
			logger.Warn("fetch attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", target, maxRetries, lastErr)
}

func fetchOnce(ctx context.Context, client *http.Client, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, resp.StatusCode, nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if int64(len(raw)) > maxBodyBytes {
		return nil, resp.StatusCode, fmt.Errorf("%w: more than %d bytes", ErrPageTooLarge, maxBodyBytes)
	}
	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return raw, resp.StatusCode, nil
	}
	utf8, err := io.ReadAll(r)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return utf8, resp.StatusCode, nil
}
