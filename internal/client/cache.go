// Package client keeps a caller-side view of the server state and reconciles
// it after every remote action.
//
// The cache is never updated optimistically: an action makes exactly one
// remote call and only the server's confirmed answer (or a re-fetch) is
// written back.
package client

import (
	"maps"
	"slices"
	"sort"

	claimshandler "legatia/internal/claims/handler"
	familyhandler "legatia/internal/family/handler"
	invitationshandler "legatia/internal/invitations/handler"
	matchinghandler "legatia/internal/matching/handler"
	notificationshandler "legatia/internal/notifications/handler"
)

type (
	Family       = familyhandler.FamilyResponse
	Claim        = claimshandler.ClaimResponse
	Invitation   = invitationshandler.InvitationResponse
	Notification = notificationshandler.NotificationResponse
	Match        = matchinghandler.MatchResponse
)

// Cache is the serializable client state, keyed by entity id.
type Cache struct {
	Families            map[string]Family       `json:"families"`
	MyClaims            map[string]Claim        `json:"my_claims"`
	PendingClaims       map[string]Claim        `json:"pending_claims"`
	SentInvitations     map[string]Invitation   `json:"sent_invitations"`
	ReceivedInvitations map[string]Invitation   `json:"received_invitations"`
	Notifications       map[string]Notification `json:"notifications"`
	Matches             []Match                 `json:"matches"`
	UnreadCount         int                     `json:"unread_count"`
}

func NewCache() *Cache {
	return &Cache{
		Families:            map[string]Family{},
		MyClaims:            map[string]Claim{},
		PendingClaims:       map[string]Claim{},
		SentInvitations:     map[string]Invitation{},
		ReceivedInvitations: map[string]Invitation{},
		Notifications:       map[string]Notification{},
		Matches:             []Match{},
	}
}

// Clone returns a deep copy so callers never share maps with the reconciler.
func (c *Cache) Clone() *Cache {
	return &Cache{
		Families:            maps.Clone(c.Families),
		MyClaims:            maps.Clone(c.MyClaims),
		PendingClaims:       maps.Clone(c.PendingClaims),
		SentInvitations:     maps.Clone(c.SentInvitations),
		ReceivedInvitations: maps.Clone(c.ReceivedInvitations),
		Notifications:       maps.Clone(c.Notifications),
		Matches:             slices.Clone(c.Matches),
		UnreadCount:         c.UnreadCount,
	}
}

// normalize replaces nil collections left by decoding an older snapshot.
func (c *Cache) normalize() {
	if c.Families == nil {
		c.Families = map[string]Family{}
	}
	if c.MyClaims == nil {
		c.MyClaims = map[string]Claim{}
	}
	if c.PendingClaims == nil {
		c.PendingClaims = map[string]Claim{}
	}
	if c.SentInvitations == nil {
		c.SentInvitations = map[string]Invitation{}
	}
	if c.ReceivedInvitations == nil {
		c.ReceivedInvitations = map[string]Invitation{}
	}
	if c.Notifications == nil {
		c.Notifications = map[string]Notification{}
	}
	if c.Matches == nil {
		c.Matches = []Match{}
	}
}

// NotificationsNewestFirst returns the cached notifications in display order.
func (c *Cache) NotificationsNewestFirst() []Notification {
	out := slices.Collect(maps.Values(c.Notifications))
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// PendingClaimsNewestFirst returns the claims awaiting the caller's decision.
func (c *Cache) PendingClaimsNewestFirst() []Claim {
	return newestClaims(c.PendingClaims)
}

func (c *Cache) MyClaimsNewestFirst() []Claim {
	return newestClaims(c.MyClaims)
}

func newestClaims(m map[string]Claim) []Claim {
	out := slices.Collect(maps.Values(m))
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func claimsByID(list []Claim) map[string]Claim {
	out := make(map[string]Claim, len(list))
	for _, c := range list {
		out[c.ID] = c
	}
	return out
}

func invitationsByID(list []Invitation) map[string]Invitation {
	out := make(map[string]Invitation, len(list))
	for _, inv := range list {
		out[inv.ID] = inv
	}
	return out
}

func notificationsByID(list []Notification) map[string]Notification {
	out := make(map[string]Notification, len(list))
	for _, n := range list {
		out[n.ID] = n
	}
	return out
}

func familiesByID(list []Family) map[string]Family {
	out := make(map[string]Family, len(list))
	for _, f := range list {
		out[f.ID] = f
	}
	return out
}
