package models

import (
	"time"

	familymodels "legatia/internal/family/models"
	identitymodels "legatia/internal/identity/models"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/validation"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// System reasons recorded on claims the workflow resolves by itself.
const (
	ReasonClaimedByAnother = "member was claimed by another user"
	ReasonMemberLinked     = "member is already linked to a user"
	ReasonRequesterLinked  = "requester is already a member of this family"
	ReasonMemberRemoved    = "member removed"
	ReasonWithdrawn        = "withdrawn by requester"
	ReasonRetentionElapsed = "claim expired without a decision"
)

// ProfileSnapshot is the requester's profile as it was at submission.
type ProfileSnapshot struct {
	FullName       string `json:"full_name"`
	SurnameAtBirth string `json:"surname_at_birth"`
	Sex            string `json:"sex"`
	Birthday       string `json:"birthday"`
	BirthCity      string `json:"birth_city"`
	BirthCountry   string `json:"birth_country"`
}

// MemberSnapshot is the ghost member as it was at submission.
type MemberSnapshot struct {
	FullName       string                 `json:"full_name"`
	SurnameAtBirth string                 `json:"surname_at_birth"`
	Sex            string                 `json:"sex"`
	Birthday       optional.Value[string] `json:"birthday"`
	BirthCity      optional.Value[string] `json:"birth_city"`
	BirthCountry   optional.Value[string] `json:"birth_country"`
	DeathDate      optional.Value[string] `json:"death_date"`
	Relationship   string                 `json:"relationship_to_admin"`
}

func SnapshotProfile(p *identitymodels.Profile) ProfileSnapshot {
	return ProfileSnapshot{
		FullName:       p.FullName,
		SurnameAtBirth: p.SurnameAtBirth,
		Sex:            p.Sex,
		Birthday:       p.Birthday,
		BirthCity:      p.BirthCity,
		BirthCountry:   p.BirthCountry,
	}
}

func SnapshotMember(m *familymodels.Member) MemberSnapshot {
	return MemberSnapshot{
		FullName:       m.FullName,
		SurnameAtBirth: m.SurnameAtBirth,
		Sex:            m.Sex,
		Birthday:       m.Birthday,
		BirthCity:      m.BirthCity,
		BirthCountry:   m.BirthCountry,
		DeathDate:      m.DeathDate,
		Relationship:   m.Relationship,
	}
}

// Claim is a user's request to be recognised as a ghost member.
//
// Invariants:
//   - Status moves Pending -> {Approved, Rejected, Expired} exactly once
//   - Snapshots are copies taken at submission and never change
//   - At most one Pending claim exists per (RequesterID, MemberID)
//   - DecidedAt is set exactly when Status leaves Pending
type Claim struct {
	ID               id.ClaimID
	RequesterID      id.UserID
	FamilyID         id.FamilyID
	MemberID         id.MemberID
	RequesterProfile ProfileSnapshot
	Member           MemberSnapshot
	Status           Status
	AdminMessage     optional.Value[string]
	SystemReason     optional.Value[string]
	CreatedAt        time.Time
	DecidedAt        optional.Value[time.Time]
}

func NewClaim(claimID id.ClaimID, requester *identitymodels.Profile, familyID id.FamilyID, member *familymodels.Member, now time.Time) *Claim {
	return &Claim{
		ID:               claimID,
		RequesterID:      requester.UserID,
		FamilyID:         familyID,
		MemberID:         member.ID,
		RequesterProfile: SnapshotProfile(requester),
		Member:           SnapshotMember(member),
		Status:           StatusPending,
		CreatedAt:        now,
	}
}

// IsStale reports whether a Pending claim has outlived retention.
func (c *Claim) IsStale(now time.Time, retention time.Duration) bool {
	return c.Status == StatusPending && retention > 0 && !now.Before(c.CreatedAt.Add(retention))
}

// EffectiveStatus is the status a reader observes: stale Pending claims
// read as Expired before the sweeper persists it.
func (c *Claim) EffectiveStatus(now time.Time, retention time.Duration) Status {
	if c.IsStale(now, retention) {
		return StatusExpired
	}
	return c.Status
}

// CanDecide checks the claim is still actionable.
func (c *Claim) CanDecide(now time.Time, retention time.Duration) error {
	if c.EffectiveStatus(now, retention) != StatusPending {
		return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonNotPending, "claim request is no longer pending")
	}
	return nil
}

// Approve marks the claim approved. The caller links the member in the same
// unit of work.
func (c *Claim) Approve(message optional.Value[string], now time.Time) error {
	return c.decide(StatusApproved, message, optional.None[string](), now)
}

func (c *Claim) Reject(message optional.Value[string], now time.Time) error {
	return c.decide(StatusRejected, message, optional.None[string](), now)
}

// ForceReject rejects without an admin decision, recording why.
func (c *Claim) ForceReject(reason string, now time.Time) error {
	return c.decide(StatusRejected, optional.None[string](), optional.Some(reason), now)
}

func (c *Claim) Expire(now time.Time) error {
	return c.decide(StatusExpired, optional.None[string](), optional.Some(ReasonRetentionElapsed), now)
}

func (c *Claim) decide(to Status, message, reason optional.Value[string], now time.Time) error {
	if c.Status != StatusPending {
		return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonNotPending, "claim request is no longer pending")
	}
	if msg, ok := message.Get(); ok {
		clean, err := validation.Message(msg)
		if err != nil {
			return err
		}
		if clean == "" {
			message = optional.None[string]()
		} else {
			message = optional.Some(clean)
		}
	}
	c.Status = to
	c.AdminMessage = message
	c.SystemReason = reason
	c.DecidedAt = optional.Some(now)
	return nil
}

// Clone copies the claim so stores never share it with callers.
func (c *Claim) Clone() *Claim {
	cp := *c
	return &cp
}
