package ports

import "context"

// VolumeResult is one hit from the external book-metadata search, passed
// through to the caller unmodified.
type VolumeResult struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// MetadataSearcher queries a third-party catalog. Upstream failures surface
// as domain.ErrUpstream and are not retried.
type MetadataSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]VolumeResult, error)
}
