package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"legatia/internal/identity/models"
	"legatia/pkg/platform/httputil"
	"legatia/pkg/requestcontext"
)

// Service defines the profile and user-directory operations.
type Service interface {
	Create(ctx context.Context, fields models.ProfileFields) (*models.Profile, error)
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, u models.ProfileUpdate) (*models.Profile, error)
	Search(ctx context.Context, query string) ([]models.UserMatch, error)
}

// Handler exposes the caller's profile and the user search.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts identity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/profile", h.HandleCreateProfile)
	r.Get("/profile", h.HandleGetProfile)
	r.Patch("/profile", h.HandleUpdateProfile)
	r.Get("/users/search", h.HandleSearchUsers)
}

// HandleCreateProfile handles POST /profile.
func (h *Handler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p, err := h.service.Create(ctx, req.Fields())
	if err != nil {
		h.logger.WarnContext(ctx, "create profile failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromProfile(p))
}

// HandleGetProfile handles GET /profile.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfile(p))
}

// HandleUpdateProfile handles PATCH /profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p, err := h.service.Update(ctx, req.Update())
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfile(p))
}

// HandleSearchUsers handles GET /users/search?q=.
func (h *Handler) HandleSearchUsers(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromUserMatches(matches))
}
