// Package v1 implements the v1 JSON API handlers.
package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shiurhub/shiurhub/application/service"
	"github.com/shiurhub/shiurhub/infrastructure/api/middleware"
	"github.com/shiurhub/shiurhub/infrastructure/api/v1/dto"
	"github.com/shiurhub/shiurhub/internal/log"
)

// SearchHandler serves GET /search.
type SearchHandler struct {
	search *service.Search
	videos *service.Videos
	logger *log.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(search *service.Search, videos *service.Videos, logger *log.Logger) *SearchHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &SearchHandler{search: search, videos: videos, logger: logger}
}

// RegisterRoutes registers the search route on the router.
func (h *SearchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/search", h.handleSearch)
}

func (h *SearchHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		middleware.WriteBadRequest(w, "Search query is required")
		return
	}

	opts := h.search.Options()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			opts = opts.WithLimit(limit)
		}
	}
	if raw := r.URL.Query().Get("minSimilarity"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			opts = opts.WithMinSimilarity(min)
		}
	}

	ctx := r.Context()
	resp, err := h.search.Search(ctx, query, opts)
	if err != nil {
		middleware.WriteInternalError(w, r, h.logger, "Failed to perform search", err)
		return
	}

	ids := make([]string, 0, len(resp.Results()))
	for _, result := range resp.Results() {
		ids = append(ids, result.VideoID())
	}
	enrichment, err := h.videos.Enrich(ctx, ids)
	if err != nil {
		middleware.WriteInternalError(w, r, h.logger, "Failed to perform search", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.FromSearchResponse(query, resp, enrichment))
}
