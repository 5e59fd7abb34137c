package platform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Provider bundles the backends bound to one open page. Any member may be nil
// when the backend cannot support it.
type Provider struct {
	Backend       string
	Target        string
	DOM           DOMReader
	Keyboard      Keyboard
	Scripts       ScriptRunner
	Screenshotter Screenshotter

	// CloseFunc releases the page (and the browser when the backend owns it).
	CloseFunc func() error
}

// Close releases the page. Safe to call on a nil Provider.
func (p *Provider) Close() error {
	if p == nil || p.CloseFunc == nil {
		return nil
	}
	return p.CloseFunc()
}

// ErrUnsupported is returned for a backend name nobody registered.
var ErrUnsupported = errors.New("backend not supported")

// ErrNotAvailable is returned when a Provider lacks a capability a caller needs.
var ErrNotAvailable = errors.New("not available on this backend")

// OpenFunc opens target and returns a Provider bound to it.
type OpenFunc func(ctx context.Context, opts OpenOptions) (*Provider, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]OpenFunc{}
)

// Register makes a backend available under name. Backend packages call it
// from init(); see internal/platform/chromium and internal/platform/static.
func Register(name string, open OpenFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = open
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens opts.Target with the named backend.
func Open(ctx context.Context, name string, opts OpenOptions) (*Provider, error) {
	registryMu.RLock()
	open, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnsupported, name, strings.Join(Backends(), ", "))
	}
	if opts.Target == "" {
		return nil, fmt.Errorf("no target to open")
	}
	p, err := open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s with %s: %w", opts.Target, name, err)
	}
	if p.Backend == "" {
		p.Backend = name
	}
	if p.Target == "" {
		p.Target = opts.Target
	}
	return p, nil
}
