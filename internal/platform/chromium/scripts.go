package chromium

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"go.uber.org/zap"
)

// AddScript injects a <script> tag, by url or inline content.
func (p *Page) AddScript(ctx context.Context, url, content string) error {
	if err := p.withContext(ctx).AddScriptTag(url, content); err != nil {
		return fmt.Errorf("add script: %w", err)
	}
	p.logger.Debug("injected script", zap.String("url", url), zap.Int("inline_bytes", len(content)))
	return nil
}

// Evaluate runs js with args and returns the JSON-encoded result.
func (p *Page) Evaluate(ctx context.Context, js string, args ...interface{}) ([]byte, error) {
	res, err := p.withContext(ctx).Evaluate(rod.Eval(js, args...).ByPromise())
	if err != nil {
		return nil, err
	}
	return res.Value.MarshalJSON()
}
