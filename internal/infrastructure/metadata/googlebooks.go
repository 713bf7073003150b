package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/api/metrics"
	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

const (
	defaultMaxResults = 10
	requestTimeout    = 10 * time.Second
)

// Cache is the subset of the search cache the client needs.
type Cache interface {
	Get(ctx context.Context, query string, maxResults int) ([]ports.VolumeResult, bool, error)
	Set(ctx context.Context, query string, maxResults int, results []ports.VolumeResult) error
}

// GoogleBooksClient queries the Google Books volumes API and caches hits.
// Upstream failures surface as domain.ErrUpstream; stale cache entries are
// never served past their TTL.
type GoogleBooksClient struct {
	baseURL string
	httpc   *http.Client
	cache   Cache
	log     zerolog.Logger
}

func NewGoogleBooksClient(baseURL string, cache Cache, log zerolog.Logger) *GoogleBooksClient {
	return &GoogleBooksClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: requestTimeout},
		cache:   cache,
		log:     log,
	}
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			Description   string   `json:"description"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (g *GoogleBooksClient) Search(ctx context.Context, query string, maxResults int) ([]ports.VolumeResult, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	if g.cache != nil {
		cached, found, err := g.cache.Get(ctx, query, maxResults)
		if err != nil {
			g.log.Warn().Err(err).Msg("metadata cache lookup failed")
		} else if found {
			metrics.MetadataSearchTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}

	results, err := g.fetch(ctx, query, maxResults)
	if err != nil {
		metrics.MetadataSearchTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.MetadataSearchTotal.WithLabelValues("miss").Inc()

	if g.cache != nil {
		if err := g.cache.Set(ctx, query, maxResults, results); err != nil {
			g.log.Warn().Err(err).Msg("metadata cache store failed")
		}
	}
	return results, nil
}

func (g *GoogleBooksClient) fetch(ctx context.Context, query string, maxResults int) ([]ports.VolumeResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("maxResults", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/volumes?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}

	resp, err := g.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}

	results := make([]ports.VolumeResult, 0, len(body.Items))
	for _, item := range body.Items {
		results = append(results, ports.VolumeResult{
			ID:            item.ID,
			Title:         item.VolumeInfo.Title,
			Authors:       item.VolumeInfo.Authors,
			Publisher:     item.VolumeInfo.Publisher,
			PublishedDate: item.VolumeInfo.PublishedDate,
			Description:   item.VolumeInfo.Description,
		})
	}
	return results, nil
}
