package chromium

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hopngo/a11y-audit/internal/model"
	"go.uber.org/zap"
)

// Snapshot captures every element of the current document.
func (p *Page) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	raw, err := p.Evaluate(ctx, snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.TS = time.Now().Unix()
	p.logger.Debug("captured snapshot",
		zap.String("url", snap.URL),
		zap.Int("elements", len(snap.Elements)))
	return &snap, nil
}
