package static

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hopngo/a11y-audit/internal/platform"
)

func TestOpen_HTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>Home</title></head><body><img src="a.png"></body></html>`)
	}))
	defer ts.Close()

	p, err := platform.Open(context.Background(), BackendName, platform.OpenOptions{Target: ts.URL})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.Scripts != nil || p.Screenshotter != nil {
		t.Error("static backend should not provide scripts or screenshots")
	}
	snap, err := p.DOM.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Title != "Home" || snap.URL != ts.URL {
		t.Errorf("snapshot = %q %q", snap.Title, snap.URL)
	}
	if len(snap.ByTag("img")) != 1 {
		t.Error("expected one img")
	}
}

func TestOpen_NotFoundIsNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := Open(context.Background(), platform.OpenOptions{Target: ts.URL})
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestOpen_RetriesServerErrors(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `<html><body></body></html>`)
	}))
	defer ts.Close()

	if _, err := Open(context.Background(), platform.OpenOptions{Target: ts.URL}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("server hit %d times, want 2", n)
	}
}

func TestOpen_OversizedPageFails(t *testing.T) {
	limit := maxBodyBytes
	maxBodyBytes = 64
	defer func() { maxBodyBytes = limit }()

	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, "<html><body>"+strings.Repeat("<p>x</p>", 20)+"</body></html>")
	}))
	defer ts.Close()

	_, err := Open(context.Background(), platform.OpenOptions{Target: ts.URL})
	if !errors.Is(err, ErrPageTooLarge) {
		t.Fatalf("expected ErrPageTooLarge, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestOpen_PageAtLimitIsRead(t *testing.T) {
	body := `<html><body><p id="end">x</p></body></html>`
	limit := maxBodyBytes
	maxBodyBytes = int64(len(body))
	defer func() { maxBodyBytes = limit }()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	p, err := Open(context.Background(), platform.OpenOptions{Target: ts.URL})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	snap, _ := p.DOM.Snapshot(context.Background())
	if snap.ByID("end") == nil {
		t.Error("page at the size limit should be parsed whole")
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(`<html><body><input id="q"></body></html>`), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, target := range []string{path, "file://" + filepath.ToSlash(path)} {
		p, err := Open(context.Background(), platform.OpenOptions{Target: target})
		if err != nil {
			t.Fatalf("Open(%s): %v", target, err)
		}
		snap, _ := p.DOM.Snapshot(context.Background())
		if snap.ByID("q") == nil {
			t.Errorf("Open(%s): input missing", target)
		}
	}
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	p := mustParse(t, `<html><body><p>x</p></body></html>`)
	a, _ := p.Snapshot(context.Background())
	a.Elements[0].Tag = "mutated"
	b, _ := p.Snapshot(context.Background())
	if b.Elements[0].Tag != "html" {
		t.Error("Snapshot should not share its element slice")
	}
}
