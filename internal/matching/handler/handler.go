package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"legatia/internal/matching/models"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/httputil"
	"legatia/pkg/requestcontext"
)

type Service interface {
	FindMatches(ctx context.Context, userID id.UserID) ([]models.Match, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/ghost-profiles/matches", h.HandleFindMatches)
}

// HandleFindMatches handles GET /ghost-profiles/matches for the caller.
func (h *Handler) HandleFindMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	matches, err := h.service.FindMatches(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "find matches failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromMatches(matches))
}
