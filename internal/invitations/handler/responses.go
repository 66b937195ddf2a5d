package handler

import (
	"legatia/internal/invitations/models"
	"legatia/pkg/optional"
	"legatia/pkg/platform/httputil"
)

type InvitationResponse struct {
	ID           string                 `json:"id"`
	FamilyID     string                 `json:"family_id"`
	FamilyName   string                 `json:"family_name"`
	InviterID    string                 `json:"inviter"`
	InviterName  string                 `json:"inviter_name"`
	InviteeID    string                 `json:"invitee"`
	Relationship string                 `json:"relationship_to_admin"`
	Message      optional.Value[string] `json:"message"`
	Status       string                 `json:"status"`
	CreatedAt    int64                  `json:"created_at"`
	RespondedAt  optional.Value[int64]  `json:"responded_at"`
}

func FromInvitation(inv *models.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:           inv.ID.String(),
		FamilyID:     inv.FamilyID.String(),
		FamilyName:   inv.FamilyName,
		InviterID:    inv.InviterID.String(),
		InviterName:  inv.InviterName,
		InviteeID:    inv.InviteeID.String(),
		Relationship: inv.Relationship,
		Message:      inv.Message,
		Status:       string(inv.Status),
		CreatedAt:    httputil.Nanos(inv.CreatedAt),
		RespondedAt:  httputil.OptionalNanos(inv.RespondedAt.Ptr()),
	}
}

func FromInvitations(list []*models.Invitation) []InvitationResponse {
	out := make([]InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, FromInvitation(inv))
	}
	return out
}
