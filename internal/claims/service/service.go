package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store FamilyStore ProfileLookup FamilyTx Dispatcher AuditPublisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"legatia/internal/claims/metrics"
	"legatia/internal/claims/models"
	familymodels "legatia/internal/family/models"
	identitymodels "legatia/internal/identity/models"
	notificationmodels "legatia/internal/notifications/models"
	"legatia/internal/platform/tracing"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	audit "legatia/pkg/platform/audit"
	"legatia/pkg/platform/sentinel"
	"legatia/pkg/requestcontext"
)

// DefaultRetention is how long a claim stays Pending before it expires.
const DefaultRetention = 30 * 24 * time.Hour

type Store interface {
	Create(ctx context.Context, c *models.Claim) error
	FindByID(ctx context.Context, claimID id.ClaimID) (*models.Claim, error)
	Save(ctx context.Context, c *models.Claim) error
	ListByRequester(ctx context.Context, requester id.UserID) ([]*models.Claim, error)
	ListPendingByFamilies(ctx context.Context, familyIDs []id.FamilyID) ([]*models.Claim, error)
	ListPendingByMember(ctx context.Context, memberID id.MemberID) ([]*models.Claim, error)
	ListStalePending(ctx context.Context, cutoff time.Time) ([]*models.Claim, error)
}

type FamilyStore interface {
	FindByID(ctx context.Context, familyID id.FamilyID) (*familymodels.Family, error)
	Save(ctx context.Context, f *familymodels.Family) error
	ListAdministeredBy(ctx context.Context, userID id.UserID) ([]*familymodels.Family, error)
}

type ProfileLookup interface {
	Lookup(ctx context.Context, userID id.UserID) (*identitymodels.Profile, error)
}

type FamilyTx interface {
	RunInFamilyTx(ctx context.Context, familyID id.FamilyID, fn func(ctx context.Context) error) error
}

// Dispatcher writes a notification inside the caller's unit of work.
type Dispatcher interface {
	Dispatch(ctx context.Context, draft notificationmodels.Draft) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs the ghost profile claim workflow.
//
// Every transition executes inside the family's unit of work: the claim
// status, the member link, the notifications and the audit events commit
// together or not at all. Because transitions on one family are serialized,
// at most one claim per member can reach Approved.
type Service struct {
	claims    Store
	families  FamilyStore
	profiles  ProfileLookup
	tx        FamilyTx
	notifier  Dispatcher
	auditor   AuditPublisher
	retention time.Duration
	metrics   *metrics.Metrics
	logger    *slog.Logger
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

func New(claims Store, families FamilyStore, profiles ProfileLookup, tx FamilyTx, notifier Dispatcher, opts ...Option) *Service {
	s := &Service{
		claims:    claims,
		families:  families,
		profiles:  profiles,
		tx:        tx,
		notifier:  notifier,
		retention: DefaultRetention,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit files a claim on a ghost member for the caller and notifies the
// family admin.
func (s *Service) Submit(ctx context.Context, familyID id.FamilyID, memberID id.MemberID) (_ *models.Claim, err error) {
	ctx, span := tracing.Start(ctx, "claims.Submit",
		attribute.String("family_id", familyID.String()),
		attribute.String("member_id", memberID.String()),
	)
	defer func() { tracing.End(span, err) }()

	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	var created *models.Claim
	err = s.tx.RunInFamilyTx(ctx, familyID, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		f, err := s.families.FindByID(ctx, familyID)
		if err != nil {
			return err
		}
		if err := f.CanLink(memberID, userID); err != nil {
			return err
		}
		pending, err := s.claims.ListPendingByMember(ctx, memberID)
		if err != nil {
			return err
		}
		for _, c := range pending {
			if c.RequesterID != userID {
				continue
			}
			if !c.IsStale(now, s.retention) {
				return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonDuplicateClaim,
					"you already have a pending claim for this member")
			}
			// Persist the expiry so the new claim does not collide with it.
			if err := s.expire(ctx, c, f, now); err != nil {
				return err
			}
		}

		c := models.NewClaim(id.NewClaimID(), profile, familyID, f.Member(memberID), now)
		if err := s.claims.Create(ctx, c); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonDuplicateClaim,
					"you already have a pending claim for this member")
			}
			return err
		}
		if err := s.notifier.Dispatch(ctx, notificationmodels.Draft{
			RecipientID: f.AdminID,
			Title:       "New Ghost Profile Claim",
			Message: fmt.Sprintf("%s has requested to claim the profile of %s in %s",
				profile.DisplayName(), c.Member.FullName, f.Name),
			Type:      notificationmodels.TypeGhostProfileClaim,
			ActionURL: optional.Some("/claims/pending"),
			Metadata:  optional.Some(c.ID.String()),
		}); err != nil {
			return err
		}
		if err := s.emit(ctx, audit.EventClaimSubmitted, c, userID, "pending", ""); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "submit claim", err)
	}
	if s.metrics != nil {
		s.metrics.IncSubmitted()
	}
	s.logger.InfoContext(ctx, "claim submitted",
		"request_id", requestcontext.RequestID(ctx),
		"claim_id", created.ID,
		"family_id", familyID,
		"member_id", memberID,
		"user_id", userID,
	)
	return created, nil
}

// Process records the admin's decision on a claim.
//
// Approval links the member and supersedes every other Pending claim on it.
// When the member or the requester got linked in the meantime, the claim is
// rejected with a system reason, that rejection is committed, and
// AlreadyLinked is returned.
func (s *Service) Process(ctx context.Context, claimID id.ClaimID, approve bool, adminMessage optional.Value[string]) (_ string, err error) {
	ctx, span := tracing.Start(ctx, "claims.Process",
		attribute.String("claim_id", claimID.String()),
		attribute.Bool("approve", approve),
	)
	defer func() { tracing.End(span, err) }()

	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return "", err
	}
	existing, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		return "", s.fail(ctx, "process claim", err)
	}

	var (
		outcome    error
		latency    time.Duration
		superseded int
	)
	err = s.tx.RunInFamilyTx(ctx, existing.FamilyID, func(ctx context.Context) error {
		superseded = 0
		now := requestcontext.Now(ctx)
		c, err := s.claims.FindByID(ctx, claimID)
		if err != nil {
			return err
		}
		f, err := s.families.FindByID(ctx, c.FamilyID)
		if err != nil {
			return err
		}
		if !f.IsAdmin(userID) {
			return dErrors.NewWithReason(dErrors.CodeForbidden, dErrors.ReasonNotAdmin,
				"only the family admin can process claims")
		}
		if err := c.CanDecide(now, s.retention); err != nil {
			return err
		}
		latency = now.Sub(c.CreatedAt)

		if !approve {
			if err := c.Reject(adminMessage, now); err != nil {
				return err
			}
			if err := s.claims.Save(ctx, c); err != nil {
				return err
			}
			if err := s.notifyRequester(ctx, c, f, "Claim Rejected",
				fmt.Sprintf("Your claim for %s in %s was rejected", c.Member.FullName, f.Name)); err != nil {
				return err
			}
			return s.emit(ctx, audit.EventClaimRejected, c, userID, "rejected", "")
		}

		if linkErr := f.CanLink(c.MemberID, c.RequesterID); linkErr != nil {
			if !dErrors.HasReason(linkErr, dErrors.ReasonAlreadyLinked) {
				return linkErr
			}
			reason := models.ReasonMemberLinked
			if f.HasLinked(c.RequesterID) {
				reason = models.ReasonRequesterLinked
			}
			if err := s.forceReject(ctx, c, f, reason, now); err != nil {
				return err
			}
			outcome = linkErr
			return nil
		}

		others, err := s.claims.ListPendingByMember(ctx, c.MemberID)
		if err != nil {
			return err
		}
		if err := f.LinkMember(c.MemberID, c.RequesterID, now); err != nil {
			return err
		}
		if err := s.families.Save(ctx, f); err != nil {
			return err
		}
		if err := c.Approve(adminMessage, now); err != nil {
			return err
		}
		if err := s.claims.Save(ctx, c); err != nil {
			return err
		}
		if err := s.notifyRequester(ctx, c, f, "Claim Approved",
			fmt.Sprintf("Your claim for %s in %s was approved. Welcome to the family!", c.Member.FullName, f.Name)); err != nil {
			return err
		}
		if err := s.emit(ctx, audit.EventClaimApproved, c, userID, "approved", ""); err != nil {
			return err
		}
		for _, other := range others {
			if other.ID == c.ID {
				continue
			}
			if err := s.forceReject(ctx, other, f, models.ReasonClaimedByAnother, now); err != nil {
				return err
			}
			superseded++
		}
		return nil
	})
	if err != nil {
		return "", s.fail(ctx, "process claim", err)
	}
	if outcome != nil {
		if s.metrics != nil {
			s.metrics.IncResolved("superseded")
		}
		return "", outcome
	}

	if s.metrics != nil {
		s.metrics.ObserveDecisionLatency(latency)
	}
	s.logger.InfoContext(ctx, "claim processed",
		"request_id", requestcontext.RequestID(ctx),
		"claim_id", claimID,
		"family_id", existing.FamilyID,
		"approved", approve,
	)
	if approve {
		if s.metrics != nil {
			s.metrics.IncResolved("approved")
			s.metrics.AddResolved("superseded", superseded)
		}
		return "Ghost profile claim approved. User has been linked to the family member.", nil
	}
	if s.metrics != nil {
		s.metrics.IncResolved("rejected")
	}
	return "Ghost profile claim rejected.", nil
}

// Cancel withdraws the caller's own Pending claim.
func (s *Service) Cancel(ctx context.Context, claimID id.ClaimID) (_ string, err error) {
	ctx, span := tracing.Start(ctx, "claims.Cancel", attribute.String("claim_id", claimID.String()))
	defer func() { tracing.End(span, err) }()

	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return "", err
	}
	existing, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		return "", s.fail(ctx, "cancel claim", err)
	}

	err = s.tx.RunInFamilyTx(ctx, existing.FamilyID, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		c, err := s.claims.FindByID(ctx, claimID)
		if err != nil {
			return err
		}
		if c.RequesterID != userID {
			return dErrors.NewWithReason(dErrors.CodeForbidden, dErrors.ReasonNotRequester,
				"only the requester can cancel this claim")
		}
		if err := c.CanDecide(now, s.retention); err != nil {
			return err
		}
		f, err := s.families.FindByID(ctx, c.FamilyID)
		if err != nil {
			return err
		}
		if err := c.ForceReject(models.ReasonWithdrawn, now); err != nil {
			return err
		}
		if err := s.claims.Save(ctx, c); err != nil {
			return err
		}
		if err := s.notifier.Dispatch(ctx, notificationmodels.Draft{
			RecipientID: f.AdminID,
			Title:       "Claim Withdrawn",
			Message: fmt.Sprintf("%s withdrew their claim for %s in %s",
				c.RequesterProfile.FullName, c.Member.FullName, f.Name),
			Type:     notificationmodels.TypeGhostProfileClaim,
			Metadata: optional.Some(c.ID.String()),
		}); err != nil {
			return err
		}
		return s.emit(ctx, audit.EventClaimCancelled, c, userID, "rejected", models.ReasonWithdrawn)
	})
	if err != nil {
		return "", s.fail(ctx, "cancel claim", err)
	}
	if s.metrics != nil {
		s.metrics.IncResolved("cancelled")
	}
	return "Ghost profile claim cancelled.", nil
}

// ListMine returns the caller's claims, newest first, with stale Pending
// claims reported as Expired.
func (s *Service) ListMine(ctx context.Context) ([]*models.Claim, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := s.claims.ListByRequester(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "list claims", err)
	}
	now := requestcontext.Now(ctx)
	for _, c := range claims {
		c.Status = c.EffectiveStatus(now, s.retention)
	}
	return claims, nil
}

// ListPendingForAdmin returns the actionable claims across every family the
// caller administers, newest first.
func (s *Service) ListPendingForAdmin(ctx context.Context) ([]*models.Claim, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	families, err := s.families.ListAdministeredBy(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "list pending claims", err)
	}
	if len(families) == 0 {
		return []*models.Claim{}, nil
	}
	familyIDs := make([]id.FamilyID, len(families))
	for i, f := range families {
		familyIDs[i] = f.ID
	}
	pending, err := s.claims.ListPendingByFamilies(ctx, familyIDs)
	if err != nil {
		return nil, s.fail(ctx, "list pending claims", err)
	}
	now := requestcontext.Now(ctx)
	out := make([]*models.Claim, 0, len(pending))
	for _, c := range pending {
		if !c.IsStale(now, s.retention) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ExpireStale persists Expired on every Pending claim older than the
// retention window and returns how many it expired.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)
	stale, err := s.claims.ListStalePending(ctx, now.Add(-s.retention))
	if err != nil {
		return 0, s.fail(ctx, "list stale claims", err)
	}
	byFamily := make(map[id.FamilyID][]id.ClaimID)
	var order []id.FamilyID
	for _, c := range stale {
		if _, seen := byFamily[c.FamilyID]; !seen {
			order = append(order, c.FamilyID)
		}
		byFamily[c.FamilyID] = append(byFamily[c.FamilyID], c.ID)
	}

	expired := 0
	for _, familyID := range order {
		n := 0
		err := s.tx.RunInFamilyTx(ctx, familyID, func(ctx context.Context) error {
			n = 0
			f, err := s.families.FindByID(ctx, familyID)
			if err != nil {
				return err
			}
			for _, claimID := range byFamily[familyID] {
				c, err := s.claims.FindByID(ctx, claimID)
				if err != nil {
					return err
				}
				if !c.IsStale(now, s.retention) {
					continue
				}
				if err := s.expire(ctx, c, f, now); err != nil {
					return err
				}
				n++
			}
			return nil
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "claim expiry failed",
				"family_id", familyID,
				"error", err,
			)
			continue
		}
		expired += n
	}
	if s.metrics != nil {
		s.metrics.AddResolved("expired", expired)
	}
	return expired, nil
}

// MemberRemoved rejects every Pending claim on a member that is being
// removed. It joins the removal's unit of work.
func (s *Service) MemberRemoved(ctx context.Context, familyID id.FamilyID, memberID id.MemberID) error {
	return s.tx.RunInFamilyTx(ctx, familyID, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		pending, err := s.claims.ListPendingByMember(ctx, memberID)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}
		f, err := s.families.FindByID(ctx, familyID)
		if err != nil {
			return err
		}
		for _, c := range pending {
			if err := s.forceReject(ctx, c, f, models.ReasonMemberRemoved, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) forceReject(ctx context.Context, c *models.Claim, f *familymodels.Family, reason string, now time.Time) error {
	if err := c.ForceReject(reason, now); err != nil {
		return err
	}
	if err := s.claims.Save(ctx, c); err != nil {
		return err
	}
	if err := s.notifyRequester(ctx, c, f, "Claim Rejected",
		fmt.Sprintf("Your claim for %s in %s was rejected: %s", c.Member.FullName, f.Name, reason)); err != nil {
		return err
	}
	return s.emit(ctx, audit.EventClaimRejected, c, id.UserID{}, "rejected", reason)
}

func (s *Service) expire(ctx context.Context, c *models.Claim, f *familymodels.Family, now time.Time) error {
	if err := c.Expire(now); err != nil {
		return err
	}
	if err := s.claims.Save(ctx, c); err != nil {
		return err
	}
	if err := s.notifier.Dispatch(ctx, notificationmodels.Draft{
		RecipientID: c.RequesterID,
		Title:       "Claim Expired",
		Message:     fmt.Sprintf("Your claim for %s in %s expired without a decision", c.Member.FullName, f.Name),
		Type:        notificationmodels.TypeSystemAlert,
		Metadata:    optional.Some(c.ID.String()),
	}); err != nil {
		return err
	}
	return s.emit(ctx, audit.EventClaimExpired, c, id.UserID{}, "expired", models.ReasonRetentionElapsed)
}

func (s *Service) notifyRequester(ctx context.Context, c *models.Claim, f *familymodels.Family, title, message string) error {
	return s.notifier.Dispatch(ctx, notificationmodels.Draft{
		RecipientID: c.RequesterID,
		Title:       title,
		Message:     message,
		Type:        notificationmodels.TypeGhostProfileClaim,
		ActionURL:   optional.Some("/families/" + f.ID.String()),
		Metadata:    optional.Some(c.ID.String()),
	})
}

// emit records a claim transition. A nil actor means the workflow resolved
// the claim by itself.
func (s *Service) emit(ctx context.Context, action audit.AuditEvent, c *models.Claim, actor id.UserID, decision, reason string) error {
	if s.auditor == nil {
		return nil
	}
	event := audit.Event{
		Action:   string(action),
		UserID:   c.RequesterID,
		FamilyID: c.FamilyID,
		Subject:  c.ID.String(),
		Decision: decision,
		Reason:   reason,
	}
	if !actor.IsNil() && actor != c.RequesterID {
		event.ActorID = actor.String()
	}
	return s.auditor.Emit(ctx, event)
}

// fail translates store sentinels into domain errors and logs the failure.
func (s *Service) fail(ctx context.Context, op string, err error) error {
	out := err
	if _, ok := dErrors.As(err); !ok {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			out = dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "claim or family not found")
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
