package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"legatia/internal/family/models"
	"legatia/internal/family/service"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/httputil"
	"legatia/pkg/requestcontext"
)

// Service defines the family tree operations exposed over HTTP.
type Service interface {
	CreateFamily(ctx context.Context, name, description string, visible bool) (*models.Family, error)
	ListForUser(ctx context.Context) ([]*models.Family, error)
	Get(ctx context.Context, familyID id.FamilyID) (*models.Family, error)
	ToggleVisibility(ctx context.Context, familyID id.FamilyID, visible bool) (string, error)
	AddMember(ctx context.Context, familyID id.FamilyID, fields models.MemberFields) (*models.Member, error)
	UpdateMember(ctx context.Context, familyID id.FamilyID, memberID id.MemberID, u models.MemberUpdate) (*models.Member, error)
	RemoveMember(ctx context.Context, familyID id.FamilyID, memberID id.MemberID) (string, error)
	AddEvent(ctx context.Context, familyID id.FamilyID, memberID id.MemberID, in service.EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, familyID id.FamilyID, memberID id.MemberID, eventID id.EventID, u models.EventUpdate) (*models.Event, error)
	ListEvents(ctx context.Context, familyID id.FamilyID, memberID id.MemberID) ([]models.Event, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts family endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/families", h.HandleCreateFamily)
	r.Get("/families", h.HandleListFamilies)
	r.Get("/families/{id}", h.HandleGetFamily)
	r.Post("/families/{id}/visibility", h.HandleToggleVisibility)
	r.Post("/families/{id}/members", h.HandleAddMember)
	r.Patch("/families/{id}/members/{memberID}", h.HandleUpdateMember)
	r.Delete("/families/{id}/members/{memberID}", h.HandleRemoveMember)
	r.Post("/families/{id}/members/{memberID}/events", h.HandleAddEvent)
	r.Get("/families/{id}/members/{memberID}/events", h.HandleListEvents)
	r.Patch("/families/{id}/members/{memberID}/events/{eventID}", h.HandleUpdateEvent)
}

// HandleCreateFamily handles POST /families.
func (h *Handler) HandleCreateFamily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateFamilyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	f, err := h.service.CreateFamily(ctx, req.Name, req.Description, req.IsVisible.OrElse(true))
	if err != nil {
		h.logger.WarnContext(ctx, "create family failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromFamily(f))
}

// HandleListFamilies handles GET /families.
func (h *Handler) HandleListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.service.ListForUser(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFamilies(families))
}

// HandleGetFamily handles GET /families/{id}.
func (h *Handler) HandleGetFamily(w http.ResponseWriter, r *http.Request) {
	familyID, err := id.ParseFamilyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	f, err := h.service.Get(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFamily(f))
}

// HandleToggleVisibility handles POST /families/{id}/visibility.
func (h *Handler) HandleToggleVisibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	familyID, err := id.ParseFamilyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[VisibilityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	result, err := h.service.ToggleVisibility(ctx, familyID, *req.IsVisible)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle visibility failed",
			"request_id", requestID,
			"family_id", familyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.ResultResponse{Result: result})
}

// HandleAddMember handles POST /families/{id}/members.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	familyID, err := id.ParseFamilyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddMemberRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	m, err := h.service.AddMember(ctx, familyID, req.Fields())
	if err != nil {
		h.logger.WarnContext(ctx, "add member failed",
			"request_id", requestID,
			"family_id", familyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromMember(m))
}

// HandleUpdateMember handles PATCH /families/{id}/members/{memberID}.
func (h *Handler) HandleUpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	familyID, memberID, err := memberPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateMemberRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	m, err := h.service.UpdateMember(ctx, familyID, memberID, req.Update())
	if err != nil {
		h.logger.WarnContext(ctx, "update member failed",
			"request_id", requestID,
			"family_id", familyID,
			"member_id", memberID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromMember(m))
}

// HandleRemoveMember handles DELETE /families/{id}/members/{memberID}.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	familyID, memberID, err := memberPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.RemoveMember(r.Context(), familyID, memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.ResultResponse{Result: result})
}

// HandleAddEvent handles POST /families/{id}/members/{memberID}/events.
func (h *Handler) HandleAddEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	familyID, memberID, err := memberPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddEventRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	e, err := h.service.AddEvent(ctx, familyID, memberID, req.Input())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromEvent(e))
}

// HandleListEvents handles GET /families/{id}/members/{memberID}/events.
func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	familyID, memberID, err := memberPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.service.ListEvents(r.Context(), familyID, memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvents(events))
}

// HandleUpdateEvent handles PATCH /families/{id}/members/{memberID}/events/{eventID}.
func (h *Handler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	familyID, memberID, err := memberPath(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateEventRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	e, err := h.service.UpdateEvent(ctx, familyID, memberID, eventID, req.Update())
	if err != nil {
		h.logger.WarnContext(ctx, "update event failed",
			"request_id", requestID,
			"family_id", familyID,
			"event_id", eventID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvent(e))
}

func memberPath(r *http.Request) (id.FamilyID, id.MemberID, error) {
	familyID, err := id.ParseFamilyID(chi.URLParam(r, "id"))
	if err != nil {
		return id.FamilyID{}, id.MemberID{}, err
	}
	memberID, err := id.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		return id.FamilyID{}, id.MemberID{}, err
	}
	return familyID, memberID, nil
}
