package handler

import (
	"legatia/internal/identity/models"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
)

// CreateProfileRequest is the body of POST /profile.
type CreateProfileRequest struct {
	FullName       string                 `json:"full_name"`
	SurnameAtBirth string                 `json:"surname_at_birth"`
	Sex            string                 `json:"sex"`
	Birthday       optional.Value[string] `json:"birthday"`
	BirthCity      optional.Value[string] `json:"birth_city"`
	BirthCountry   optional.Value[string] `json:"birth_country"`
}

// Validate checks presence only; field limits are enforced by the model.
func (r *CreateProfileRequest) Validate() error {
	if r.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full_name is required")
	}
	if r.SurnameAtBirth == "" {
		return dErrors.New(dErrors.CodeValidation, "surname_at_birth is required")
	}
	if r.Sex == "" {
		return dErrors.New(dErrors.CodeValidation, "sex is required")
	}
	return nil
}

func (r *CreateProfileRequest) Fields() models.ProfileFields {
	return models.ProfileFields{
		FullName:       r.FullName,
		SurnameAtBirth: r.SurnameAtBirth,
		Sex:            r.Sex,
		Birthday:       r.Birthday.OrElse(""),
		BirthCity:      r.BirthCity.OrElse(""),
		BirthCountry:   r.BirthCountry.OrElse(""),
	}
}

// UpdateProfileRequest is the body of PATCH /profile. Every field is a
// tri-state update: absent or [] keeps, [[]] clears, [[v]] sets.
type UpdateProfileRequest struct {
	FullName       optional.Update[string] `json:"full_name"`
	SurnameAtBirth optional.Update[string] `json:"surname_at_birth"`
	Sex            optional.Update[string] `json:"sex"`
	Birthday       optional.Update[string] `json:"birthday"`
	BirthCity      optional.Update[string] `json:"birth_city"`
	BirthCountry   optional.Update[string] `json:"birth_country"`
}

func (r *UpdateProfileRequest) Validate() error {
	return nil
}

func (r *UpdateProfileRequest) Update() models.ProfileUpdate {
	return models.ProfileUpdate{
		FullName:       r.FullName,
		SurnameAtBirth: r.SurnameAtBirth,
		Sex:            r.Sex,
		Birthday:       r.Birthday,
		BirthCity:      r.BirthCity,
		BirthCountry:   r.BirthCountry,
	}
}
