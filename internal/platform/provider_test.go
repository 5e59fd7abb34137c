package platform

import (
	"context"
	"errors"
	"testing"
)

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), "no-such-backend", OpenOptions{Target: "x.html"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestOpen_RegisteredBackend(t *testing.T) {
	Register("test-fake", func(ctx context.Context, opts OpenOptions) (*Provider, error) {
		return &Provider{}, nil
	})
	defer func() {
		registryMu.Lock()
		delete(registry, "test-fake")
		registryMu.Unlock()
	}()

	p, err := Open(context.Background(), "test-fake", OpenOptions{Target: "page.html"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Backend != "test-fake" {
		t.Errorf("backend: got %q", p.Backend)
	}
	if p.Target != "page.html" {
		t.Errorf("target: got %q", p.Target)
	}
}

func TestOpen_EmptyTarget(t *testing.T) {
	Register("test-empty", func(ctx context.Context, opts OpenOptions) (*Provider, error) {
		t.Fatal("open should not be called without a target")
		return nil, nil
	})
	defer func() {
		registryMu.Lock()
		delete(registry, "test-empty")
		registryMu.Unlock()
	}()
	if _, err := Open(context.Background(), "test-empty", OpenOptions{}); err == nil {
		t.Error("expected error for empty target")
	}
}

func TestOpen_WrapsBackendError(t *testing.T) {
	boom := errors.New("boom")
	Register("test-err", func(ctx context.Context, opts OpenOptions) (*Provider, error) {
		return nil, boom
	})
	defer func() {
		registryMu.Lock()
		delete(registry, "test-err")
		registryMu.Unlock()
	}()
	_, err := Open(context.Background(), "test-err", OpenOptions{Target: "x"})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped backend error, got: %v", err)
	}
}

func TestProviderClose_Nil(t *testing.T) {
	var p *Provider
	if err := p.Close(); err != nil {
		t.Errorf("nil provider close: %v", err)
	}
	if err := (&Provider{}).Close(); err != nil {
		t.Errorf("provider without CloseFunc: %v", err)
	}
}
