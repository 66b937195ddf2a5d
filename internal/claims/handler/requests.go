package handler

import (
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
)

// SubmitClaimRequest is the body of POST /claims.
type SubmitClaimRequest struct {
	FamilyID string `json:"family_id"`
	MemberID string `json:"member_id"`

	familyID id.FamilyID
	memberID id.MemberID
}

func (r *SubmitClaimRequest) Validate() error {
	if r.FamilyID == "" || r.MemberID == "" {
		return dErrors.New(dErrors.CodeValidation, "family_id and member_id are required")
	}
	var err error
	if r.familyID, err = id.ParseFamilyID(r.FamilyID); err != nil {
		return err
	}
	if r.memberID, err = id.ParseMemberID(r.MemberID); err != nil {
		return err
	}
	return nil
}

// ProcessClaimRequest is the body of POST /claims/process.
type ProcessClaimRequest struct {
	ClaimID      string                 `json:"claim_id"`
	Approve      *bool                  `json:"approve"`
	AdminMessage optional.Value[string] `json:"admin_message"`

	claimID id.ClaimID
}

func (r *ProcessClaimRequest) Validate() error {
	if r.ClaimID == "" {
		return dErrors.New(dErrors.CodeValidation, "claim_id is required")
	}
	if r.Approve == nil {
		return dErrors.New(dErrors.CodeValidation, "approve is required")
	}
	var err error
	r.claimID, err = id.ParseClaimID(r.ClaimID)
	return err
}
