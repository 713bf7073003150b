package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/ports"
)

// MetadataHandler proxies book-metadata searches to the external catalog.
type MetadataHandler struct {
	searcher ports.MetadataSearcher
}

func NewMetadataHandler(searcher ports.MetadataSearcher) *MetadataHandler {
	return &MetadataHandler{searcher: searcher}
}

// Search handles GET /v1/catalog/search?q=...&max=N. Upstream failures
// surface as 502; results are passed through unmodified.
func (h *MetadataHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	maxResults, _ := strconv.Atoi(c.QueryParam("max"))

	results, err := h.searcher.Search(c.Request().Context(), query, maxResults)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"items": results})
}
