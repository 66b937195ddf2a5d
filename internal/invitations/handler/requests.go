package handler

import (
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
)

// SendInvitationRequest is the body of POST /invitations.
type SendInvitationRequest struct {
	FamilyID     string                 `json:"family_id"`
	UserID       string                 `json:"user_id"`
	Relationship string                 `json:"relationship_to_admin"`
	Message      optional.Value[string] `json:"message"`

	familyID  id.FamilyID
	inviteeID id.UserID
}

func (r *SendInvitationRequest) Validate() error {
	if r.FamilyID == "" || r.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "family_id and user_id are required")
	}
	if r.Relationship == "" {
		return dErrors.New(dErrors.CodeValidation, "relationship_to_admin is required")
	}
	var err error
	if r.familyID, err = id.ParseFamilyID(r.FamilyID); err != nil {
		return err
	}
	r.inviteeID, err = id.ParseUserID(r.UserID)
	return err
}

// ProcessInvitationRequest is the body of POST /invitations/process.
type ProcessInvitationRequest struct {
	InvitationID string `json:"invitation_id"`
	Accept       *bool  `json:"accept"`

	invitationID id.InvitationID
}

func (r *ProcessInvitationRequest) Validate() error {
	if r.InvitationID == "" {
		return dErrors.New(dErrors.CodeValidation, "invitation_id is required")
	}
	if r.Accept == nil {
		return dErrors.New(dErrors.CodeValidation, "accept is required")
	}
	var err error
	r.invitationID, err = id.ParseInvitationID(r.InvitationID)
	return err
}
