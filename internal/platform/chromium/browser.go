package chromium

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/hopngo/a11y-audit/internal/platform"
	"go.uber.org/zap"
)

// Page is one Chromium tab. It implements platform.DOMReader,
// platform.Keyboard, platform.ScriptRunner and platform.Screenshotter.
//
// A Page is not safe for concurrent use: checks against one page must be
// serialized.
type Page struct {
	page   *rod.Page
	logger *zap.Logger
}

// session owns the browser process (when launched) and the page.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *Page
	once     sync.Once
}

// Open launches Chromium (or connects to opts.DebuggerURL), opens
// opts.Target in a fresh incognito context, and waits for it to load.
func Open(ctx context.Context, opts platform.OpenOptions) (*platform.Provider, error) {
	logger := opts.GetLogger().With(zap.String("backend", BackendName))

	target, err := targetURL(opts.Target)
	if err != nil {
		return nil, err
	}

	s := &session{}
	controlURL := opts.DebuggerURL
	if controlURL == "" {
		l := launcher.New().Headless(opts.Headless)
		if opts.ChromeBin != "" {
			l = l.Bin(opts.ChromeBin)
		}
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		s.launcher = l
		controlURL = u
		logger.Debug("launched browser", zap.String("control_url", controlURL))
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		s.cleanupLauncher()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	s.browser = browser

	incognito, err := browser.Incognito()
	if err != nil {
		s.close()
		return nil, fmt.Errorf("incognito context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		s.close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	vp := opts.GetViewport()
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		logger.Warn("failed to set viewport", zap.Error(err))
	}

	if err := navigate(page, target, opts.GetNavigationTimeout()); err != nil {
		s.close()
		return nil, err
	}
	logger.Info("page loaded", zap.String("url", target), zap.String("viewport", vp.String()))

	p := &Page{page: page, logger: logger}
	s.page = p

	return &platform.Provider{
		Backend:       BackendName,
		Target:        target,
		DOM:           p,
		Keyboard:      p,
		Scripts:       p,
		Screenshotter: p,
		CloseFunc:     s.close,
	}, nil
}

// navigate loads target and waits for the load event, all within timeout.
// The deadline is released as soon as the page has loaded.
func navigate(page *rod.Page, target string, timeout time.Duration) error {
	timed := page.Timeout(timeout)
	defer timed.CancelTimeout()

	if err := timed.Navigate(target); err != nil {
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	if err := timed.WaitLoad(); err != nil {
		return fmt.Errorf("wait for load: %w", err)
	}
	return nil
}

// targetURL turns a local path into a file:// URL; URLs pass through.
func targetURL(target string) (string, error) {
	if platform.IsURL(target) {
		return target, nil
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", target, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func (s *session) close() error {
	var err error
	s.once.Do(func() {
		if s.page != nil {
			_ = s.page.page.Close()
		}
		if s.browser != nil {
			err = s.browser.Close()
		}
		s.cleanupLauncher()
	})
	return err
}

func (s *session) cleanupLauncher() {
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
}

// withContext binds the page to ctx for one call.
func (p *Page) withContext(ctx context.Context) *rod.Page {
	return p.page.Context(ctx)
}
