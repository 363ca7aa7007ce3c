package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shiurhub/shiurhub/application/service"
	"github.com/shiurhub/shiurhub/domain/video"
	"github.com/shiurhub/shiurhub/infrastructure/api/middleware"
	"github.com/shiurhub/shiurhub/infrastructure/api/v1/dto"
	"github.com/shiurhub/shiurhub/internal/log"
)

// VideoHandler serves the catalog routes.
type VideoHandler struct {
	videos *service.Videos
	logger *log.Logger
}

// NewVideoHandler creates a VideoHandler.
func NewVideoHandler(videos *service.Videos, logger *log.Logger) *VideoHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &VideoHandler{videos: videos, logger: logger}
}

// RegisterRoutes registers the catalog routes on the router.
func (h *VideoHandler) RegisterRoutes(r chi.Router) {
	r.Get("/videos", h.handleList)
	r.Get("/videos/{videoID}", h.handleDetail)
	r.Get("/tags/years", h.handleYearTags)
}

func (h *VideoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	opts := video.NewListOptions().WithSearch(r.URL.Query().Get("search"))
	if raw := r.URL.Query().Get("year_tag"); raw != "" {
		if tagID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			opts = opts.WithYearTag(tagID)
		}
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			opts = opts.WithPage(page)
		}
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if perPage, err := strconv.Atoi(raw); err == nil {
			opts = opts.WithPerPage(perPage)
		}
	}

	ctx := r.Context()
	listing, err := h.videos.List(ctx, opts)
	if err != nil {
		middleware.WriteInternalError(w, r, h.logger, "Failed to load videos", err)
		return
	}

	ids := make([]string, 0, len(listing.Videos()))
	for _, v := range listing.Videos() {
		ids = append(ids, v.ID())
	}
	enrichment, err := h.videos.Enrich(ctx, ids)
	if err != nil {
		middleware.WriteInternalError(w, r, h.logger, "Failed to load videos", err)
		return
	}

	resp := dto.VideoListResponse{
		Videos:  make([]dto.Video, 0, len(listing.Videos())),
		Total:   listing.Total(),
		Page:    opts.Page(),
		PerPage: opts.PerPage(),
	}
	for _, v := range listing.Videos() {
		resp.Videos = append(resp.Videos, dto.FromVideo(v, enrichment))
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

func (h *VideoHandler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "videoID")

	detail, err := h.videos.Detail(r.Context(), id)
	if errors.Is(err, service.ErrVideoNotFound) {
		middleware.WriteNotFound(w, "Video not found")
		return
	}
	if err != nil {
		middleware.WriteInternalError(w, r, h.logger, "Failed to load video", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.FromDetail(detail))
}

func (h *VideoHandler) handleYearTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.videos.YearTags(r.Context())
	if err != nil {
		middleware.WriteInternalError(w, r, h.logger, "Failed to load tags", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TagListResponse{Tags: dto.FromTags(tags)})
}
