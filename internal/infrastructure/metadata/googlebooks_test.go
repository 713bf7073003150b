package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

type stubCache struct {
	entries map[string][]ports.VolumeResult
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]ports.VolumeResult)}
}

func (c *stubCache) Get(_ context.Context, query string, _ int) ([]ports.VolumeResult, bool, error) {
	results, ok := c.entries[query]
	return results, ok, nil
}

func (c *stubCache) Set(_ context.Context, query string, _ int, results []ports.VolumeResult) error {
	c.entries[query] = results
	c.sets++
	return nil
}

const volumesBody = `{
	"items": [
		{
			"id": "abc123",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"publisher": "Chilton Books",
				"publishedDate": "1965",
				"description": "Desert planet."
			}
		},
		{
			"id": "def456",
			"volumeInfo": {
				"title": "Dune Messiah"
			}
		}
	]
}`

func TestGoogleBooksClient_Search_ParsesResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "dune" {
			t.Errorf("expected query dune, got %q", got)
		}
		_, _ = w.Write([]byte(volumesBody))
	}))
	defer upstream.Close()

	client := NewGoogleBooksClient(upstream.URL, newStubCache(), discardLogger)

	results, err := client.Search(context.Background(), "dune", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	first := results[0]
	if first.ID != "abc123" || first.Title != "Dune" || first.Publisher != "Chilton Books" {
		t.Errorf("first result mapped wrong: %+v", first)
	}
	if len(first.Authors) != 1 || first.Authors[0] != "Frank Herbert" {
		t.Errorf("authors mapped wrong: %v", first.Authors)
	}
}

func TestGoogleBooksClient_Search_CachesResults(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(volumesBody))
	}))
	defer upstream.Close()

	cache := newStubCache()
	client := NewGoogleBooksClient(upstream.URL, cache, discardLogger)

	if _, err := client.Search(context.Background(), "dune", 10); err != nil {
		t.Fatalf("first search failed: %v", err)
	}
	if _, err := client.Search(context.Background(), "dune", 10); err != nil {
		t.Fatalf("second search failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("second search must be served from cache, upstream called %d times", calls)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache store, got %d", cache.sets)
	}
}

func TestGoogleBooksClient_Search_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := NewGoogleBooksClient(upstream.URL, newStubCache(), discardLogger)

	_, err := client.Search(context.Background(), "dune", 10)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestGoogleBooksClient_Search_UpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // no listener left

	client := NewGoogleBooksClient(upstream.URL, newStubCache(), discardLogger)

	_, err := client.Search(context.Background(), "dune", 10)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestGoogleBooksClient_Search_EmptyItems(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	client := NewGoogleBooksClient(upstream.URL, newStubCache(), discardLogger)

	results, err := client.Search(context.Background(), "nothing", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result set, got %d", len(results))
	}
}
