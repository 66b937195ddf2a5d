package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks FamilyStore ProfileLookup FamilyTx AuditPublisher MemberRemovalHook

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"legatia/internal/family/metrics"
	"legatia/internal/family/models"
	identitymodels "legatia/internal/identity/models"
	"legatia/internal/platform/tracing"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	audit "legatia/pkg/platform/audit"
	"legatia/pkg/platform/sentinel"
	"legatia/pkg/requestcontext"
)

type FamilyStore interface {
	Create(ctx context.Context, f *models.Family) error
	FindByID(ctx context.Context, familyID id.FamilyID) (*models.Family, error)
	Save(ctx context.Context, f *models.Family) error
	ListForUser(ctx context.Context, userID id.UserID) ([]*models.Family, error)
}

type ProfileLookup interface {
	Lookup(ctx context.Context, userID id.UserID) (*identitymodels.Profile, error)
}

// FamilyTx runs fn as one atomic unit serialized against every other
// mutation of the same family.
type FamilyTx interface {
	RunInFamilyTx(ctx context.Context, familyID id.FamilyID, fn func(ctx context.Context) error) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// MemberRemovalHook is told about a removed member inside the removal's
// unit of work so dependent workflows can settle their pending state.
type MemberRemovalHook interface {
	MemberRemoved(ctx context.Context, familyID id.FamilyID, memberID id.MemberID) error
}

// Service administers family trees: the family record, its ghost members
// and their life events. Linking a member to a user is left to the claim
// and invitation workflows.
type Service struct {
	families FamilyStore
	profiles ProfileLookup
	tx       FamilyTx
	auditor  AuditPublisher
	onRemove MemberRemovalHook
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

func WithMemberRemovalHook(h MemberRemovalHook) Option {
	return func(s *Service) {
		s.onRemove = h
	}
}

func New(families FamilyStore, profiles ProfileLookup, tx FamilyTx, opts ...Option) *Service {
	s := &Service{
		families: families,
		profiles: profiles,
		tx:       tx,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFamily creates a family administered by the caller, who must have a
// profile.
func (s *Service) CreateFamily(ctx context.Context, name, description string, visible bool) (_ *models.Family, err error) {
	ctx, span := tracing.Start(ctx, "family.CreateFamily")
	defer func() { tracing.End(span, err) }()

	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.profiles.Lookup(ctx, userID); err != nil {
		return nil, err
	}
	f, err := models.NewFamily(id.NewFamilyID(), userID, name, description, visible, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.families.Create(ctx, f); err != nil {
		return nil, translate(err)
	}
	if err := s.emit(ctx, audit.EventFamilyCreated, f.ID, userID, f.Name); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncFamilyCreated()
	}
	s.logger.InfoContext(ctx, "family created",
		"request_id", requestcontext.RequestID(ctx),
		"family_id", f.ID,
		"user_id", userID,
	)
	return f, nil
}

// ListForUser returns the families the caller administers or is linked to.
func (s *Service) ListForUser(ctx context.Context) ([]*models.Family, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	families, err := s.families.ListForUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	return families, nil
}

// Get returns a family to its admin or a linked member.
func (s *Service) Get(ctx context.Context, familyID id.FamilyID) (*models.Family, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	f, err := s.families.FindByID(ctx, familyID)
	if err != nil {
		return nil, translate(err)
	}
	if !f.CanView(userID) {
		return nil, dErrors.NewWithReason(dErrors.CodeForbidden, dErrors.ReasonNotMember, "you are not a member of this family")
	}
	return f, nil
}

// ToggleVisibility controls whether the family's ghosts are offered as matches.
func (s *Service) ToggleVisibility(ctx context.Context, familyID id.FamilyID, visible bool) (_ string, err error) {
	ctx, span := tracing.Start(ctx, "family.ToggleVisibility", attribute.String("family_id", familyID.String()))
	defer func() { tracing.End(span, err) }()

	err = s.mutate(ctx, familyID, func(ctx context.Context, f *models.Family, userID id.UserID) error {
		f.SetVisibility(visible, requestcontext.Now(ctx))
		return s.emit(ctx, audit.EventVisibilityChanged, familyID, userID, visibilityState(visible))
	})
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.IncVisibilityChange(visible)
	}
	return "Family visibility updated to " + visibilityState(visible), nil
}

// AddMember adds a ghost member.
func (s *Service) AddMember(ctx context.Context, familyID id.FamilyID, fields models.MemberFields) (_ *models.Member, err error) {
	ctx, span := tracing.Start(ctx, "family.AddMember", attribute.String("family_id", familyID.String()))
	defer func() { tracing.End(span, err) }()

	var added models.Member
	err = s.mutate(ctx, familyID, func(ctx context.Context, f *models.Family, userID id.UserID) error {
		m, err := f.AddGhost(id.NewMemberID(), fields, userID, requestcontext.Now(ctx))
		if err != nil {
			return err
		}
		added = *m
		return s.emit(ctx, audit.EventMemberAdded, familyID, userID, m.ID.String())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncMemberChange("add")
	}
	return &added, nil
}

// UpdateMember applies a partial update to a ghost member.
func (s *Service) UpdateMember(ctx context.Context, familyID id.FamilyID, memberID id.MemberID, u models.MemberUpdate) (_ *models.Member, err error) {
	ctx, span := tracing.Start(ctx, "family.UpdateMember",
		attribute.String("family_id", familyID.String()),
		attribute.String("member_id", memberID.String()),
	)
	defer func() { tracing.End(span, err) }()

	var updated models.Member
	err = s.mutate(ctx, familyID, func(ctx context.Context, f *models.Family, userID id.UserID) error {
		m, err := f.UpdateGhost(memberID, u, requestcontext.Now(ctx))
		if err != nil {
			return err
		}
		updated = *m
		return s.emit(ctx, audit.EventMemberUpdated, familyID, userID, memberID.String())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncMemberChange("update")
	}
	return &updated, nil
}

// RemoveMember deletes a member. Pending claims on it are settled through
// the removal hook in the same unit of work.
func (s *Service) RemoveMember(ctx context.Context, familyID id.FamilyID, memberID id.MemberID) (_ string, err error) {
	ctx, span := tracing.Start(ctx, "family.RemoveMember",
		attribute.String("family_id", familyID.String()),
		attribute.String("member_id", memberID.String()),
	)
	defer func() { tracing.End(span, err) }()

	err = s.mutate(ctx, familyID, func(ctx context.Context, f *models.Family, userID id.UserID) error {
		if err := f.RemoveMember(memberID, requestcontext.Now(ctx)); err != nil {
			return err
		}
		if s.onRemove != nil {
			if err := s.onRemove.MemberRemoved(ctx, familyID, memberID); err != nil {
				return err
			}
		}
		return s.emit(ctx, audit.EventMemberRemoved, familyID, userID, memberID.String())
	})
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.IncMemberChange("remove")
	}
	s.logger.InfoContext(ctx, "family member removed",
		"request_id", requestcontext.RequestID(ctx),
		"family_id", familyID,
		"member_id", memberID,
	)
	return "Member removed successfully", nil
}

// EventInput describes a new life event.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Type        models.EventType
}

// AddEvent attaches a life event to a member.
func (s *Service) AddEvent(ctx context.Context, familyID id.FamilyID, memberID id.MemberID, in EventInput) (_ *models.Event, err error) {
	ctx, span := tracing.Start(ctx, "family.AddEvent",
		attribute.String("family_id", familyID.String()),
		attribute.String("member_id", memberID.String()),
	)
	defer func() { tracing.End(span, err) }()

	var added models.Event
	err = s.mutate(ctx, familyID, func(ctx context.Context, f *models.Family, userID id.UserID) error {
		now := requestcontext.Now(ctx)
		e, err := models.NewEvent(id.NewEventID(), in.Title, in.Description, in.Date, in.Type, userID, now)
		if err != nil {
			return err
		}
		stored, err := f.AddEvent(memberID, *e, now)
		if err != nil {
			return err
		}
		added = *stored
		return s.emit(ctx, audit.EventMemberEventAdded, familyID, userID, memberID.String())
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// UpdateEvent applies a partial update to a member's life event.
func (s *Service) UpdateEvent(ctx context.Context, familyID id.FamilyID, memberID id.MemberID, eventID id.EventID, u models.EventUpdate) (_ *models.Event, err error) {
	ctx, span := tracing.Start(ctx, "family.UpdateEvent",
		attribute.String("family_id", familyID.String()),
		attribute.String("event_id", eventID.String()),
	)
	defer func() { tracing.End(span, err) }()

	var updated models.Event
	err = s.mutate(ctx, familyID, func(ctx context.Context, f *models.Family, userID id.UserID) error {
		e, err := f.UpdateEvent(memberID, eventID, u, requestcontext.Now(ctx))
		if err != nil {
			return err
		}
		updated = *e
		return s.emit(ctx, audit.EventMemberEventUpdated, familyID, userID, eventID.String())
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListEvents returns a member's events in date order.
func (s *Service) ListEvents(ctx context.Context, familyID id.FamilyID, memberID id.MemberID) ([]models.Event, error) {
	f, err := s.Get(ctx, familyID)
	if err != nil {
		return nil, err
	}
	m := f.Member(memberID)
	if m == nil {
		return nil, dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "member not found")
	}
	return append([]models.Event{}, m.Events...), nil
}

// mutate loads the family inside its unit of work, checks the caller is its
// admin, applies fn and saves the result.
func (s *Service) mutate(ctx context.Context, familyID id.FamilyID, fn func(ctx context.Context, f *models.Family, userID id.UserID) error) error {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return err
	}
	err = s.tx.RunInFamilyTx(ctx, familyID, func(ctx context.Context) error {
		f, err := s.families.FindByID(ctx, familyID)
		if err != nil {
			return err
		}
		if !f.IsAdmin(userID) {
			return dErrors.NewWithReason(dErrors.CodeForbidden, dErrors.ReasonNotAdmin, "only the family admin can do this")
		}
		if err := fn(ctx, f, userID); err != nil {
			return err
		}
		return s.families.Save(ctx, f)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "family mutation failed",
			"request_id", requestcontext.RequestID(ctx),
			"family_id", familyID,
			"user_id", userID,
			"error", err,
		)
		return translate(err)
	}
	return nil
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, familyID id.FamilyID, userID id.UserID, subject string) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.Emit(ctx, audit.Event{
		Action:   string(action),
		UserID:   userID,
		FamilyID: familyID,
		Subject:  subject,
	})
}

func visibilityState(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}

// translate turns store sentinels into domain errors and passes domain
// errors through.
func translate(err error) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "family not found")
	case errors.Is(err, sentinel.ErrLockTimeout):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "family is busy, try again")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "family store failure")
	}
}
