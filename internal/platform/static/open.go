package static

import (
	"context"
	"net/http"
	"time"

	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"go.uber.org/zap"
)

// Page is a parsed document. It implements platform.DOMReader and
// platform.Keyboard.
type Page struct {
	snap *model.Snapshot
	*focusWalker
}

// Open loads opts.Target and parses it once. The returned Provider has no
// Scripts or Screenshotter.
func Open(ctx context.Context, opts platform.OpenOptions) (*platform.Provider, error) {
	logger := opts.GetLogger().With(zap.String("backend", BackendName))
	client := &http.Client{Timeout: opts.GetNavigationTimeout()}

	raw, err := load(ctx, logger, client, opts.Target)
	if err != nil {
		return nil, err
	}
	page, err := NewPage(raw, opts.Target)
	if err != nil {
		return nil, err
	}
	logger.Info("page parsed",
		zap.String("target", opts.Target),
		zap.Int("elements", len(page.snap.Elements)),
		zap.Int("focusable", len(page.order)))

	return &platform.Provider{
		Backend:  BackendName,
		Target:   opts.Target,
		DOM:      page,
		Keyboard: page,
	}, nil
}

// NewPage parses raw HTML into a Page. url is recorded in snapshots.
func NewPage(raw []byte, url string) (*Page, error) {
	snap, err := parseSnapshot(raw, url)
	if err != nil {
		return nil, err
	}
	return &Page{snap: snap, focusWalker: newFocusWalker(snap)}, nil
}

// Snapshot returns a copy of the parsed document stamped with the current
// time.
func (p *Page) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := *p.snap
	snap.Elements = append([]model.Element(nil), p.snap.Elements...)
	snap.TS = time.Now().Unix()
	return &snap, nil
}
