package client

//go:generate mockgen -source=reconciler.go -destination=mocks/mocks.go -package=mocks API

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/validation"
)

var (
	// ErrActionInFlight is returned when an action on the same entity has not
	// resolved yet. UIs render this as a disabled control.
	ErrActionInFlight = errors.New("an action on this item is already in progress")
	// ErrRefreshFailed wraps a re-fetch failure after the remote action itself
	// succeeded. The action's effect is committed server-side.
	ErrRefreshFailed = errors.New("action succeeded but refresh failed")
)

// API is the remote surface the reconciler drives. Remote implements it.
type API interface {
	FindMatches(ctx context.Context) ([]Match, error)
	SubmitClaim(ctx context.Context, familyID, memberID string) (Claim, error)
	MyClaims(ctx context.Context) ([]Claim, error)
	PendingClaims(ctx context.Context) ([]Claim, error)
	ProcessClaim(ctx context.Context, claimID string, approve bool, adminMessage optional.Value[string]) (string, error)
	CancelClaim(ctx context.Context, claimID string) (string, error)
	SendInvitation(ctx context.Context, familyID, userID, relationship string, message optional.Value[string]) (string, error)
	MyInvitations(ctx context.Context) ([]Invitation, error)
	SentInvitations(ctx context.Context) ([]Invitation, error)
	ProcessInvitation(ctx context.Context, invitationID string, accept bool) (string, error)
	Notifications(ctx context.Context) ([]Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, notificationID string) (string, error)
	MarkAllNotificationsRead(ctx context.Context) (string, error)
	Families(ctx context.Context) ([]Family, error)
	Family(ctx context.Context, familyID string) (Family, error)
	SetVisibility(ctx context.Context, familyID string, visible bool) (string, error)
	RemoveMember(ctx context.Context, familyID, memberID string) (string, error)
}

// Reconciler owns the client cache. Every action makes one remote call and
// writes back only what the server confirmed.
type Reconciler struct {
	api    API
	logger *slog.Logger

	mu       sync.Mutex
	cache    *Cache
	inflight map[string]struct{}

	families singleflight.Group
}

type Option func(*Reconciler)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithCache seeds the reconciler, typically from a loaded snapshot.
func WithCache(c *Cache) Option {
	return func(r *Reconciler) {
		if c != nil {
			c.normalize()
			r.cache = c
		}
	}
}

func NewReconciler(api API, opts ...Option) *Reconciler {
	r := &Reconciler{
		api:      api,
		logger:   slog.Default(),
		cache:    NewCache(),
		inflight: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns a copy of the current cache.
func (r *Reconciler) Snapshot() *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Clone()
}

// Refresh re-fetches every list the cache holds.
func (r *Reconciler) Refresh(ctx context.Context) error {
	var (
		families      []Family
		matches       []Match
		myClaims      []Claim
		pendingClaims []Claim
		sent          []Invitation
		received      []Invitation
		notifications []Notification
		unread        int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { families, err = r.api.Families(gctx); return })
	g.Go(func() (err error) { matches, err = r.api.FindMatches(gctx); return })
	g.Go(func() (err error) { myClaims, err = r.api.MyClaims(gctx); return })
	g.Go(func() (err error) { pendingClaims, err = r.api.PendingClaims(gctx); return })
	g.Go(func() (err error) { sent, err = r.api.SentInvitations(gctx); return })
	g.Go(func() (err error) { received, err = r.api.MyInvitations(gctx); return })
	g.Go(func() (err error) { notifications, err = r.api.Notifications(gctx); return })
	g.Go(func() (err error) { unread, err = r.api.UnreadCount(gctx); return })
	if err := g.Wait(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Families = familiesByID(families)
	r.cache.Matches = append([]Match{}, matches...)
	r.cache.MyClaims = claimsByID(myClaims)
	r.cache.PendingClaims = claimsByID(pendingClaims)
	r.cache.SentInvitations = invitationsByID(sent)
	r.cache.ReceivedInvitations = invitationsByID(received)
	r.cache.Notifications = notificationsByID(notifications)
	r.cache.UnreadCount = unread
	return nil
}

// FindMatches fetches the caller's ghost-profile matches.
func (r *Reconciler) FindMatches(ctx context.Context) ([]Match, error) {
	matches, err := r.api.FindMatches(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cache.Matches = append([]Match{}, matches...)
	r.mu.Unlock()
	return matches, nil
}

// SubmitClaim claims a ghost member and caches the confirmed claim.
func (r *Reconciler) SubmitClaim(ctx context.Context, familyID, memberID string) (Claim, error) {
	done, err := r.begin("member:" + memberID)
	if err != nil {
		return Claim{}, err
	}
	defer done()

	c, err := r.api.SubmitClaim(ctx, familyID, memberID)
	if err != nil {
		return Claim{}, err
	}
	r.mu.Lock()
	r.cache.MyClaims[c.ID] = c
	r.mu.Unlock()
	return c, nil
}

// ProcessClaim approves or rejects a pending claim. Approval changes the
// family's member list, so the family is re-fetched in full; the pending list
// is re-fetched too since competing claims are rejected with it.
func (r *Reconciler) ProcessClaim(ctx context.Context, claimID string, approve bool, adminMessage optional.Value[string]) (string, error) {
	if msg, ok := adminMessage.Get(); ok {
		trimmed, err := validation.Message(msg)
		if err != nil {
			return "", err
		}
		adminMessage = optional.Some(trimmed)
		if trimmed == "" {
			adminMessage = optional.None[string]()
		}
	}

	done, err := r.begin("claim:" + claimID)
	if err != nil {
		return "", err
	}
	defer done()

	r.mu.Lock()
	familyID := r.cache.PendingClaims[claimID].FamilyID
	r.mu.Unlock()

	result, err := r.api.ProcessClaim(ctx, claimID, approve, adminMessage)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	delete(r.cache.PendingClaims, claimID)
	r.mu.Unlock()

	if err := r.refreshPendingClaims(ctx); err != nil {
		return result, r.refreshFailed("pending claims", err)
	}
	if approve {
		if err := r.refreshMembership(ctx, familyID); err != nil {
			return result, err
		}
	}
	return result, nil
}

// CancelClaim withdraws the caller's own pending claim.
func (r *Reconciler) CancelClaim(ctx context.Context, claimID string) (string, error) {
	done, err := r.begin("claim:" + claimID)
	if err != nil {
		return "", err
	}
	defer done()

	result, err := r.api.CancelClaim(ctx, claimID)
	if err != nil {
		return "", err
	}
	claims, err := r.api.MyClaims(ctx)
	if err != nil {
		return result, r.refreshFailed("claims", err)
	}
	r.mu.Lock()
	r.cache.MyClaims = claimsByID(claims)
	r.mu.Unlock()
	return result, nil
}

// SendInvitation invites a user after checking the free-text fields locally.
func (r *Reconciler) SendInvitation(ctx context.Context, familyID, userID, relationship string, message optional.Value[string]) (string, error) {
	rel, err := validation.Reason(relationship, "relationship_to_admin")
	if err != nil {
		return "", err
	}
	if msg, ok := message.Get(); ok {
		trimmed, err := validation.Message(msg)
		if err != nil {
			return "", err
		}
		message = optional.Some(trimmed)
		if trimmed == "" {
			message = optional.None[string]()
		}
	}

	done, err := r.begin("invite:" + familyID + "/" + userID)
	if err != nil {
		return "", err
	}
	defer done()

	result, err := r.api.SendInvitation(ctx, familyID, userID, rel, message)
	if err != nil {
		return "", err
	}
	sent, err := r.api.SentInvitations(ctx)
	if err != nil {
		return result, r.refreshFailed("sent invitations", err)
	}
	r.mu.Lock()
	r.cache.SentInvitations = invitationsByID(sent)
	r.mu.Unlock()
	return result, nil
}

// ProcessInvitation accepts or declines a received invitation. Accepting adds
// the caller to the family, which is then fetched in full.
func (r *Reconciler) ProcessInvitation(ctx context.Context, invitationID string, accept bool) (string, error) {
	done, err := r.begin("invitation:" + invitationID)
	if err != nil {
		return "", err
	}
	defer done()

	r.mu.Lock()
	familyID := r.cache.ReceivedInvitations[invitationID].FamilyID
	r.mu.Unlock()

	result, err := r.api.ProcessInvitation(ctx, invitationID, accept)
	if err != nil {
		return "", err
	}

	received, err := r.api.MyInvitations(ctx)
	if err != nil {
		return result, r.refreshFailed("invitations", err)
	}
	r.mu.Lock()
	r.cache.ReceivedInvitations = invitationsByID(received)
	r.mu.Unlock()

	if accept {
		if err := r.refreshMembership(ctx, familyID); err != nil {
			return result, err
		}
	}
	return result, nil
}

// RefreshNotifications re-fetches the notification list and unread count.
func (r *Reconciler) RefreshNotifications(ctx context.Context) error {
	items, err := r.api.Notifications(ctx)
	if err != nil {
		return err
	}
	unread, err := r.api.UnreadCount(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.cache.Notifications = notificationsByID(items)
	r.cache.UnreadCount = unread
	r.mu.Unlock()
	return nil
}

func (r *Reconciler) MarkNotificationRead(ctx context.Context, notificationID string) (string, error) {
	done, err := r.begin("notification:" + notificationID)
	if err != nil {
		return "", err
	}
	defer done()

	result, err := r.api.MarkNotificationRead(ctx, notificationID)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	if n, ok := r.cache.Notifications[notificationID]; ok && !n.IsRead {
		n.IsRead = true
		r.cache.Notifications[notificationID] = n
		if r.cache.UnreadCount > 0 {
			r.cache.UnreadCount--
		}
	}
	r.mu.Unlock()
	return result, nil
}

func (r *Reconciler) MarkAllNotificationsRead(ctx context.Context) (string, error) {
	done, err := r.begin("notifications")
	if err != nil {
		return "", err
	}
	defer done()

	result, err := r.api.MarkAllNotificationsRead(ctx)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	for key, n := range r.cache.Notifications {
		n.IsRead = true
		r.cache.Notifications[key] = n
	}
	r.cache.UnreadCount = 0
	r.mu.Unlock()
	return result, nil
}

// SetVisibility toggles a family's visibility and re-fetches it.
func (r *Reconciler) SetVisibility(ctx context.Context, familyID string, visible bool) (string, error) {
	done, err := r.begin("family:" + familyID)
	if err != nil {
		return "", err
	}
	defer done()

	result, err := r.api.SetVisibility(ctx, familyID, visible)
	if err != nil {
		return "", err
	}
	if err := r.refreshFamily(ctx, familyID); err != nil {
		return result, r.refreshFailed("family", err)
	}
	return result, nil
}

// RemoveMember removes a member, then re-fetches the family and the pending
// claims that referenced the member.
func (r *Reconciler) RemoveMember(ctx context.Context, familyID, memberID string) (string, error) {
	done, err := r.begin("family:" + familyID)
	if err != nil {
		return "", err
	}
	defer done()

	result, err := r.api.RemoveMember(ctx, familyID, memberID)
	if err != nil {
		return "", err
	}
	if err := r.refreshFamily(ctx, familyID); err != nil {
		return result, r.refreshFailed("family", err)
	}
	if err := r.refreshPendingClaims(ctx); err != nil {
		return result, r.refreshFailed("pending claims", err)
	}
	return result, nil
}

// begin claims the in-flight slot for key. The returned func releases it.
func (r *Reconciler) begin(key string) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inflight[key]; busy {
		return nil, ErrActionInFlight
	}
	r.inflight[key] = struct{}{}
	return func() {
		r.mu.Lock()
		delete(r.inflight, key)
		r.mu.Unlock()
	}, nil
}

// refreshFamily fetches one family in full. Concurrent refreshes of the same
// family share one request. A family the caller can no longer see is dropped.
func (r *Reconciler) refreshFamily(ctx context.Context, familyID string) error {
	v, err, _ := r.families.Do(familyID, func() (any, error) {
		return r.api.Family(ctx, familyID)
	})
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			delete(r.cache.Families, familyID)
			return nil
		}
		return err
	}
	r.cache.Families[familyID] = v.(Family)
	return nil
}

// refreshMembership re-fetches the family whose member list just changed.
// When the action targeted an entity that was not cached, the family id is
// unknown and every family is re-fetched instead.
func (r *Reconciler) refreshMembership(ctx context.Context, familyID string) error {
	if familyID != "" {
		if err := r.refreshFamily(ctx, familyID); err != nil {
			return r.refreshFailed("family", err)
		}
		return nil
	}
	families, err := r.api.Families(ctx)
	if err != nil {
		return r.refreshFailed("families", err)
	}
	r.mu.Lock()
	r.cache.Families = familiesByID(families)
	r.mu.Unlock()
	return nil
}

func (r *Reconciler) refreshPendingClaims(ctx context.Context) error {
	pending, err := r.api.PendingClaims(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.cache.PendingClaims = claimsByID(pending)
	r.mu.Unlock()
	return nil
}

func (r *Reconciler) refreshFailed(what string, err error) error {
	r.logger.Warn("refresh after action failed", "target", what, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrRefreshFailed, what, err)
}
