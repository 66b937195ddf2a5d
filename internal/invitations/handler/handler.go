package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"legatia/internal/invitations/models"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/httputil"
	"legatia/pkg/requestcontext"
)

// Service defines the invitation workflow operations exposed over HTTP.
type Service interface {
	Send(ctx context.Context, familyID id.FamilyID, inviteeID id.UserID, relationship string, message optional.Value[string]) (string, error)
	Process(ctx context.Context, invitationID id.InvitationID, accept bool) (string, error)
	ListMine(ctx context.Context) ([]*models.Invitation, error)
	ListSent(ctx context.Context) ([]*models.Invitation, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts invitation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/invitations", h.HandleSend)
	r.Get("/invitations/mine", h.HandleListMine)
	r.Get("/invitations/sent", h.HandleListSent)
	r.Post("/invitations/process", h.HandleProcess)
}

// HandleSend handles POST /invitations.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SendInvitationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	result, err := h.service.Send(ctx, req.familyID, req.inviteeID, req.Relationship, req.Message)
	if err != nil {
		h.logger.WarnContext(ctx, "send invitation failed",
			"request_id", requestID,
			"family_id", req.FamilyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.ResultResponse{Result: result})
}

// HandleListMine handles GET /invitations/mine.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListMine(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInvitations(list))
}

// HandleListSent handles GET /invitations/sent.
func (h *Handler) HandleListSent(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListSent(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInvitations(list))
}

// HandleProcess handles POST /invitations/process.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ProcessInvitationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	result, err := h.service.Process(ctx, req.invitationID, *req.Accept)
	if err != nil {
		h.logger.WarnContext(ctx, "process invitation failed",
			"request_id", requestID,
			"invitation_id", req.InvitationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.ResultResponse{Result: result})
}
