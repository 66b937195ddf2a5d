package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"legatia/internal/claims/models"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/httputil"
	"legatia/pkg/requestcontext"
)

// Service defines the claim workflow operations exposed over HTTP.
type Service interface {
	Submit(ctx context.Context, familyID id.FamilyID, memberID id.MemberID) (*models.Claim, error)
	Process(ctx context.Context, claimID id.ClaimID, approve bool, adminMessage optional.Value[string]) (string, error)
	Cancel(ctx context.Context, claimID id.ClaimID) (string, error)
	ListMine(ctx context.Context) ([]*models.Claim, error)
	ListPendingForAdmin(ctx context.Context) ([]*models.Claim, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts claim endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/claims", h.HandleSubmit)
	r.Get("/claims/mine", h.HandleListMine)
	r.Get("/claims/pending", h.HandleListPending)
	r.Post("/claims/process", h.HandleProcess)
	r.Delete("/claims/{id}", h.HandleCancel)
}

// HandleSubmit handles POST /claims.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SubmitClaimRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	c, err := h.service.Submit(ctx, req.familyID, req.memberID)
	if err != nil {
		h.logger.WarnContext(ctx, "submit claim failed",
			"request_id", requestID,
			"family_id", req.FamilyID,
			"member_id", req.MemberID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromClaim(c))
}

// HandleListMine handles GET /claims/mine.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.ListMine(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClaims(claims))
}

// HandleListPending handles GET /claims/pending.
func (h *Handler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.ListPendingForAdmin(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClaims(claims))
}

// HandleProcess handles POST /claims/process.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ProcessClaimRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	result, err := h.service.Process(ctx, req.claimID, *req.Approve, req.AdminMessage)
	if err != nil {
		h.logger.WarnContext(ctx, "process claim failed",
			"request_id", requestID,
			"claim_id", req.ClaimID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.ResultResponse{Result: result})
}

// HandleCancel handles DELETE /claims/{id}.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	claimID, err := id.ParseClaimID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.Cancel(r.Context(), claimID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.ResultResponse{Result: result})
}
