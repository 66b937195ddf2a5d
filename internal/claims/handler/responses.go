package handler

import (
	"legatia/internal/claims/models"
	"legatia/pkg/optional"
	"legatia/pkg/platform/httputil"
)

// ClaimResponse carries the submission-time snapshots, never the live
// profile or member.
type ClaimResponse struct {
	ID               string                 `json:"id"`
	RequesterID      string                 `json:"requester_id"`
	FamilyID         string                 `json:"family_id"`
	MemberID         string                 `json:"member_id"`
	RequesterProfile models.ProfileSnapshot `json:"requester_profile"`
	MemberData       models.MemberSnapshot  `json:"ghost_profile"`
	Status           string                 `json:"status"`
	AdminMessage     optional.Value[string] `json:"admin_message"`
	SystemReason     optional.Value[string] `json:"system_reason"`
	CreatedAt        int64                  `json:"created_at"`
	DecidedAt        optional.Value[int64]  `json:"decided_at"`
}

func FromClaim(c *models.Claim) ClaimResponse {
	return ClaimResponse{
		ID:               c.ID.String(),
		RequesterID:      c.RequesterID.String(),
		FamilyID:         c.FamilyID.String(),
		MemberID:         c.MemberID.String(),
		RequesterProfile: c.RequesterProfile,
		MemberData:       c.Member,
		Status:           string(c.Status),
		AdminMessage:     c.AdminMessage,
		SystemReason:     c.SystemReason,
		CreatedAt:        httputil.Nanos(c.CreatedAt),
		DecidedAt:        httputil.OptionalNanos(c.DecidedAt.Ptr()),
	}
}

func FromClaims(claims []*models.Claim) []ClaimResponse {
	out := make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		out = append(out, FromClaim(c))
	}
	return out
}
