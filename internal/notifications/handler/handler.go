package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"legatia/internal/notifications/models"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/httputil"
	"legatia/pkg/requestcontext"
)

// Service is the recipient-facing side of the notification center.
type Service interface {
	List(ctx context.Context) ([]*models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, notificationID id.NotificationID) error
	MarkAllRead(ctx context.Context) (string, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/notifications", h.HandleList)
	r.Get("/notifications/unread-count", h.HandleUnreadCount)
	r.Post("/notifications/read-all", h.HandleMarkAllRead)
	r.Post("/notifications/{id}/read", h.HandleMarkRead)
}

// HandleList handles GET /notifications.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromNotifications(items))
}

// HandleUnreadCount handles GET /notifications/unread-count.
func (h *Handler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.UnreadCount(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CountResponse{Count: n})
}

// HandleMarkRead handles POST /notifications/{id}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notificationID, err := id.ParseNotificationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.MarkRead(ctx, notificationID); err != nil {
		h.logger.WarnContext(ctx, "mark notification read failed",
			"request_id", requestcontext.RequestID(ctx),
			"notification_id", notificationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.ResultResponse{Result: "Notification marked as read"})
}

// HandleMarkAllRead handles POST /notifications/read-all.
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.MarkAllRead(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.ResultResponse{Result: result})
}
