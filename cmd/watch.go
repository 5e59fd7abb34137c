package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/output"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/hopngo/a11y-audit/internal/rules"
	"go.uber.org/zap"
)

const watchDebounce = 300 * time.Millisecond

// watchEvent is printed after each re-run.
type watchEvent struct {
	Target string                     `yaml:"target"           json:"target"`
	Report *model.AccessibilityReport `yaml:"report,omitempty" json:"report,omitempty"`
	Diff   *model.ReportDiff          `yaml:"diff,omitempty"   json:"diff,omitempty"`
	Error  string                     `yaml:"error,omitempty"  json:"error,omitempty"`
}

// watchDirs returns the directories holding the local target files.
func watchDirs(targets []string) ([]string, error) {
	seen := map[string]bool{}
	var dirs []string
	for _, t := range targets {
		path := t
		if platform.IsURL(t) {
			if !strings.HasPrefix(strings.ToLower(t), "file://") {
				return nil, fmt.Errorf("--watch needs local files, got %s", t)
			}
			path = t[len("file://"):]
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// runWatch audits targets once with the full report, then re-audits on every
// change in their directories and prints only what changed.
func runWatch(ctx context.Context, targets []string, opts []audit.Option) error {
	dirs, err := watchDirs(targets)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	previous := map[string][]model.Finding{}
	run := func() error {
		for _, target := range targets {
			ev := watchEvent{Target: target}
			report, err := auditTarget(ctx, target, opts)
			var verr *rules.ViolationError
			if err != nil && !errors.As(err, &verr) {
				ev.Error = err.Error()
				if perr := output.Print(ev); perr != nil {
					return perr
				}
				continue
			}

			findings := model.FlattenReport(report)
			if prev, ok := previous[target]; ok {
				diff := model.DiffFindings(prev, findings)
				ev.Diff = &diff
			} else {
				ev.Report = &report
			}
			previous[target] = findings
			if perr := output.Print(ev); perr != nil {
				return perr
			}
		}
		return nil
	}

	if err := run(); err != nil {
		return err
	}
	logger.Info("watching for changes", zap.Strings("dirs", dirs))

	rerun := make(chan struct{}, 1)
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-rerun:
			if err := run(); err != nil {
				return err
			}
		}
	}
}
