package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store FamilyStore ProfileLookup FamilyTx Dispatcher AuditPublisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	familymodels "legatia/internal/family/models"
	identitymodels "legatia/internal/identity/models"
	"legatia/internal/invitations/metrics"
	"legatia/internal/invitations/models"
	notificationmodels "legatia/internal/notifications/models"
	"legatia/internal/platform/tracing"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	audit "legatia/pkg/platform/audit"
	"legatia/pkg/platform/sentinel"
	"legatia/pkg/requestcontext"
)

const DefaultRetention = 30 * 24 * time.Hour

type Store interface {
	Create(ctx context.Context, inv *models.Invitation) error
	FindByID(ctx context.Context, invitationID id.InvitationID) (*models.Invitation, error)
	Save(ctx context.Context, inv *models.Invitation) error
	ListByInvitee(ctx context.Context, invitee id.UserID) ([]*models.Invitation, error)
	ListByInviter(ctx context.Context, inviter id.UserID) ([]*models.Invitation, error)
	ListPendingByFamily(ctx context.Context, familyID id.FamilyID) ([]*models.Invitation, error)
	ListStalePending(ctx context.Context, cutoff time.Time) ([]*models.Invitation, error)
}

type FamilyStore interface {
	FindByID(ctx context.Context, familyID id.FamilyID) (*familymodels.Family, error)
	Save(ctx context.Context, f *familymodels.Family) error
}

type ProfileLookup interface {
	Lookup(ctx context.Context, userID id.UserID) (*identitymodels.Profile, error)
}

type FamilyTx interface {
	RunInFamilyTx(ctx context.Context, familyID id.FamilyID, fn func(ctx context.Context) error) error
}

type Dispatcher interface {
	Dispatch(ctx context.Context, draft notificationmodels.Draft) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs the family invitation workflow. Accepting appends a new
// linked member built from the invitee's profile; it never merges with a
// ghost.
type Service struct {
	invitations Store
	families    FamilyStore
	profiles    ProfileLookup
	tx          FamilyTx
	notifier    Dispatcher
	auditor     AuditPublisher
	retention   time.Duration
	metrics     *metrics.Metrics
	logger      *slog.Logger
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

func WithRetention(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.retention = d
		}
	}
}

func New(invitations Store, families FamilyStore, profiles ProfileLookup, tx FamilyTx, notifier Dispatcher, opts ...Option) *Service {
	s := &Service{
		invitations: invitations,
		families:    families,
		profiles:    profiles,
		tx:          tx,
		notifier:    notifier,
		retention:   DefaultRetention,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send invites inviteeID into the family. Only the admin may invite.
func (s *Service) Send(ctx context.Context, familyID id.FamilyID, inviteeID id.UserID, relationship string, message optional.Value[string]) (_ string, err error) {
	ctx, span := tracing.Start(ctx, "invitations.Send", attribute.String("family_id", familyID.String()))
	defer func() { tracing.End(span, err) }()

	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return "", err
	}
	if userID == inviteeID {
		return "", dErrors.NewWithReason(dErrors.CodeBadRequest, dErrors.ReasonSelfInvite, "you cannot invite yourself")
	}

	var sent *models.Invitation
	err = s.tx.RunInFamilyTx(ctx, familyID, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		f, err := s.families.FindByID(ctx, familyID)
		if err != nil {
			return err
		}
		if !f.IsAdmin(userID) {
			return dErrors.NewWithReason(dErrors.CodeForbidden, dErrors.ReasonNotAdmin, "only the family admin can send invitations")
		}
		inviter, err := s.profiles.Lookup(ctx, userID)
		if err != nil {
			return err
		}
		if _, err := s.profiles.Lookup(ctx, inviteeID); err != nil {
			return err
		}
		if f.HasLinked(inviteeID) {
			return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonAlreadyLinked, "user is already a member of this family")
		}
		pending, err := s.invitations.ListPendingByFamily(ctx, familyID)
		if err != nil {
			return err
		}
		for _, inv := range pending {
			if inv.InviteeID != inviteeID {
				continue
			}
			if !inv.IsStale(now, s.retention) {
				return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonDuplicatePendingInvitation,
					"user already has a pending invitation to this family")
			}
			if err := s.expire(ctx, inv); err != nil {
				return err
			}
		}

		inv, err := models.NewInvitation(id.NewInvitationID(), familyID, f.Name, userID, inviter.DisplayName(),
			inviteeID, relationship, message, now)
		if err != nil {
			return err
		}
		if err := s.invitations.Create(ctx, inv); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonDuplicatePendingInvitation,
					"user already has a pending invitation to this family")
			}
			return err
		}
		body := fmt.Sprintf("%s has invited you to join the %s family as their %s.", inv.InviterName, f.Name, inv.Relationship)
		if msg, ok := inv.Message.Get(); ok {
			body += " " + msg
		}
		if err := s.notifier.Dispatch(ctx, notificationmodels.Draft{
			RecipientID: inviteeID,
			Title:       "Family Invitation from " + f.Name,
			Message:     body,
			Type:        notificationmodels.TypeFamilyInvitation,
			ActionURL:   optional.Some("/invitations/" + inv.ID.String()),
			Metadata:    optional.Some(inv.ID.String()),
		}); err != nil {
			return err
		}
		if err := s.emit(ctx, audit.EventInvitationSent, inv, userID, "pending"); err != nil {
			return err
		}
		sent = inv
		return nil
	})
	if err != nil {
		return "", s.fail(ctx, "send invitation", err)
	}
	if s.metrics != nil {
		s.metrics.IncSent()
	}
	s.logger.InfoContext(ctx, "invitation sent",
		"request_id", requestcontext.RequestID(ctx),
		"invitation_id", sent.ID,
		"family_id", familyID,
		"invitee_id", inviteeID,
	)
	return "Invitation sent", nil
}

// Process records the invitee's answer. Accepting when the invitee already
// joined the family fails with AlreadyLinked and leaves the invitation
// Pending.
func (s *Service) Process(ctx context.Context, invitationID id.InvitationID, accept bool) (_ string, err error) {
	ctx, span := tracing.Start(ctx, "invitations.Process",
		attribute.String("invitation_id", invitationID.String()),
		attribute.Bool("accept", accept),
	)
	defer func() { tracing.End(span, err) }()

	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return "", err
	}
	existing, err := s.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return "", s.fail(ctx, "process invitation", err)
	}

	err = s.tx.RunInFamilyTx(ctx, existing.FamilyID, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		inv, err := s.invitations.FindByID(ctx, invitationID)
		if err != nil {
			return err
		}
		if inv.InviteeID != userID {
			return dErrors.NewWithReason(dErrors.CodeForbidden, dErrors.ReasonNotInvitee, "you can only respond to your own invitations")
		}
		if err := inv.CanRespond(now, s.retention); err != nil {
			return err
		}
		profile, err := s.profiles.Lookup(ctx, userID)
		if err != nil {
			return err
		}

		if !accept {
			if err := inv.Decline(now); err != nil {
				return err
			}
			if err := s.invitations.Save(ctx, inv); err != nil {
				return err
			}
			if err := s.notifier.Dispatch(ctx, notificationmodels.Draft{
				RecipientID: inv.InviterID,
				Title:       "Family invitation declined",
				Message:     fmt.Sprintf("%s has declined your invitation to join the %s family.", profile.DisplayName(), inv.FamilyName),
				Type:        notificationmodels.TypeFamilyUpdate,
			}); err != nil {
				return err
			}
			return s.emit(ctx, audit.EventInvitationDeclined, inv, userID, "declined")
		}

		f, err := s.families.FindByID(ctx, inv.FamilyID)
		if err != nil {
			return err
		}
		if _, err := f.AddLinkedMember(id.NewMemberID(), userID, memberFields(profile, inv.Relationship), now); err != nil {
			return err
		}
		if err := s.families.Save(ctx, f); err != nil {
			return err
		}
		if err := inv.Accept(now); err != nil {
			return err
		}
		if err := s.invitations.Save(ctx, inv); err != nil {
			return err
		}
		if err := s.notifier.Dispatch(ctx, notificationmodels.Draft{
			RecipientID: inv.InviterID,
			Title:       profile.DisplayName() + " joined your family!",
			Message:     fmt.Sprintf("%s has accepted your invitation to join the %s family.", profile.DisplayName(), f.Name),
			Type:        notificationmodels.TypeFamilyUpdate,
			ActionURL:   optional.Some("/families/" + f.ID.String()),
		}); err != nil {
			return err
		}
		return s.emit(ctx, audit.EventInvitationAccepted, inv, userID, "accepted")
	})
	if err != nil {
		return "", s.fail(ctx, "process invitation", err)
	}
	s.logger.InfoContext(ctx, "invitation processed",
		"request_id", requestcontext.RequestID(ctx),
		"invitation_id", invitationID,
		"family_id", existing.FamilyID,
		"accepted", accept,
	)
	if accept {
		if s.metrics != nil {
			s.metrics.AddResolved("accepted", 1)
		}
		return "Invitation accepted", nil
	}
	if s.metrics != nil {
		s.metrics.AddResolved("declined", 1)
	}
	return "Invitation declined", nil
}

// ListMine returns invitations the caller received, newest first.
func (s *Service) ListMine(ctx context.Context) ([]*models.Invitation, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.invitations.ListByInvitee(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "list invitations", err)
	}
	return s.withEffectiveStatus(ctx, list), nil
}

// ListSent returns invitations the caller sent, newest first.
func (s *Service) ListSent(ctx context.Context) ([]*models.Invitation, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.invitations.ListByInviter(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "list sent invitations", err)
	}
	return s.withEffectiveStatus(ctx, list), nil
}

// ExpireStale persists Expired on every Pending invitation older than the
// retention window.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)
	stale, err := s.invitations.ListStalePending(ctx, now.Add(-s.retention))
	if err != nil {
		return 0, s.fail(ctx, "list stale invitations", err)
	}
	expired := 0
	for _, candidate := range stale {
		changed := false
		err := s.tx.RunInFamilyTx(ctx, candidate.FamilyID, func(ctx context.Context) error {
			changed = false
			inv, err := s.invitations.FindByID(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if !inv.IsStale(now, s.retention) {
				return nil
			}
			if err := s.expire(ctx, inv); err != nil {
				return err
			}
			changed = true
			return nil
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "invitation expiry failed",
				"invitation_id", candidate.ID,
				"error", err,
			)
			continue
		}
		if changed {
			expired++
		}
	}
	if s.metrics != nil {
		s.metrics.AddResolved("expired", expired)
	}
	return expired, nil
}

func (s *Service) withEffectiveStatus(ctx context.Context, list []*models.Invitation) []*models.Invitation {
	now := requestcontext.Now(ctx)
	for _, inv := range list {
		inv.Status = inv.EffectiveStatus(now, s.retention)
	}
	return list
}

func (s *Service) expire(ctx context.Context, inv *models.Invitation) error {
	if err := inv.Expire(requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.invitations.Save(ctx, inv); err != nil {
		return err
	}
	return s.emit(ctx, audit.EventInvitationExpired, inv, id.UserID{}, "expired")
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, inv *models.Invitation, actor id.UserID, decision string) error {
	if s.auditor == nil {
		return nil
	}
	event := audit.Event{
		Action:   string(action),
		UserID:   inv.InviteeID,
		FamilyID: inv.FamilyID,
		Subject:  inv.ID.String(),
		Decision: decision,
	}
	if !actor.IsNil() && actor != inv.InviteeID {
		event.ActorID = actor.String()
	}
	return s.auditor.Emit(ctx, event)
}

// memberFields builds the new linked member from the invitee's profile.
func memberFields(p *identitymodels.Profile, relationship string) familymodels.MemberFields {
	return familymodels.MemberFields{
		FullName:       p.FullName,
		SurnameAtBirth: p.SurnameAtBirth,
		Sex:            p.Sex,
		Birthday:       nonEmpty(p.Birthday),
		BirthCity:      nonEmpty(p.BirthCity),
		BirthCountry:   nonEmpty(p.BirthCountry),
		Relationship:   relationship,
	}
}

func nonEmpty(v string) optional.Value[string] {
	if v == "" {
		return optional.None[string]()
	}
	return optional.Some(v)
}

func (s *Service) fail(ctx context.Context, op string, err error) error {
	out := err
	if _, ok := dErrors.As(err); !ok {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			out = dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "invitation or family not found")
		case errors.Is(err, sentinel.ErrLockTimeout):
			out = dErrors.Wrap(err, dErrors.CodeTimeout, "family is busy, try again")
		default:
			out = dErrors.Wrap(err, dErrors.CodeInternal, op+" failed")
		}
	}
	s.logger.WarnContext(ctx, op+" failed",
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	return out
}
