package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	familymodels "legatia/internal/family/models"
	identitymodels "legatia/internal/identity/models"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
)

const retention = 30 * 24 * time.Hour

func newPending(t *testing.T, now time.Time) *Claim {
	t.Helper()
	profile := &identitymodels.Profile{UserID: id.UserID(uuid.New()), FullName: "Jane Doe", SurnameAtBirth: "Smith", Sex: "female"}
	member := &familymodels.Member{ID: id.NewMemberID(), FullName: "Jane Doe", SurnameAtBirth: "Smith", Sex: "female", Relationship: "aunt"}
	return NewClaim(id.NewClaimID(), profile, id.NewFamilyID(), member, now)
}

func TestClaim_Snapshots(t *testing.T) {
	now := time.Now()
	profile := &identitymodels.Profile{UserID: id.UserID(uuid.New()), FullName: "Jane Doe", SurnameAtBirth: "Smith", Sex: "female"}
	member := &familymodels.Member{ID: id.NewMemberID(), FullName: "Jane D.", Birthday: optional.Some("1990-05-01")}

	c := NewClaim(id.NewClaimID(), profile, id.NewFamilyID(), member, now)
	profile.FullName = "Jane Smith"
	member.Birthday = optional.None[string]()

	assert.Equal(t, "Jane Doe", c.RequesterProfile.FullName)
	assert.Equal(t, optional.Some("1990-05-01"), c.Member.Birthday)
	assert.Equal(t, StatusPending, c.Status)
	assert.False(t, c.DecidedAt.IsSet())
}

func TestClaim_Transitions(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("approve records the decision", func(t *testing.T) {
		c := newPending(t, now)
		require.NoError(t, c.Approve(optional.Some("  welcome  "), now.Add(time.Hour)))
		assert.Equal(t, StatusApproved, c.Status)
		assert.Equal(t, optional.Some("welcome"), c.AdminMessage)
		assert.Equal(t, optional.Some(now.Add(time.Hour)), c.DecidedAt)
	})

	t.Run("terminal claims reject further transitions", func(t *testing.T) {
		c := newPending(t, now)
		require.NoError(t, c.Reject(optional.None[string](), now))
		err := c.Approve(optional.None[string](), now)
		assert.True(t, dErrors.HasReason(err, dErrors.ReasonNotPending))
		assert.Equal(t, StatusRejected, c.Status)
	})

	t.Run("force reject keeps the system reason", func(t *testing.T) {
		c := newPending(t, now)
		require.NoError(t, c.ForceReject(ReasonClaimedByAnother, now))
		assert.Equal(t, optional.Some(ReasonClaimedByAnother), c.SystemReason)
		assert.False(t, c.AdminMessage.IsSet())
	})

	t.Run("an oversized admin message fails without changing state", func(t *testing.T) {
		c := newPending(t, now)
		err := c.Reject(optional.Some(strings.Repeat("a", 1001)), now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, StatusPending, c.Status)
	})
}

func TestClaim_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newPending(t, now)

	assert.Equal(t, StatusPending, c.EffectiveStatus(now.Add(retention-time.Second), retention))
	assert.Equal(t, StatusExpired, c.EffectiveStatus(now.Add(retention), retention))
	assert.True(t, dErrors.HasReason(c.CanDecide(now.Add(retention), retention), dErrors.ReasonNotPending))

	require.NoError(t, c.Reject(optional.None[string](), now))
	assert.Equal(t, StatusRejected, c.EffectiveStatus(now.Add(2*retention), retention))
}
