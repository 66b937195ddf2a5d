package models

import (
	"strings"
	"time"

	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/validation"
)

// Profile is the identity record of a registered user.
//
// Invariants:
//   - Exactly one Profile per UserID; it is created once
//   - FullName, SurnameAtBirth and Sex are never empty
//   - Only the owner mutates it; claim snapshots copy it by value and never
//     observe later edits
type Profile struct {
	UserID         id.UserID `json:"user_id"`
	FullName       string    `json:"full_name"`
	SurnameAtBirth string    `json:"surname_at_birth"`
	Sex            string    `json:"sex"`
	Birthday       string    `json:"birthday"`
	BirthCity      string    `json:"birth_city"`
	BirthCountry   string    `json:"birth_country"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileFields are the user-supplied fields of a new profile.
type ProfileFields struct {
	FullName       string
	SurnameAtBirth string
	Sex            string
	Birthday       string
	BirthCity      string
	BirthCountry   string
}

// ProfileUpdate is a partial update. Required fields reject Cleared.
type ProfileUpdate struct {
	FullName       optional.Update[string]
	SurnameAtBirth optional.Update[string]
	Sex            optional.Update[string]
	Birthday       optional.Update[string]
	BirthCity      optional.Update[string]
	BirthCountry   optional.Update[string]
}

// UserMatch is the search projection used to locate invitees.
type UserMatch struct {
	UserID         id.UserID
	FullName       string
	SurnameAtBirth string
}

// DisplayName is how the profile is shown to other users.
func (p *Profile) DisplayName() string {
	return p.FullName
}

// Matches reports whether the lowercased query is contained in the user id,
// full name or surname at birth.
func (p *Profile) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.UserID.String()), lowerQuery) ||
		strings.Contains(strings.ToLower(p.FullName), lowerQuery) ||
		strings.Contains(strings.ToLower(p.SurnameAtBirth), lowerQuery)
}

func (p *Profile) ToUserMatch() UserMatch {
	return UserMatch{UserID: p.UserID, FullName: p.FullName, SurnameAtBirth: p.SurnameAtBirth}
}

func NewProfile(userID id.UserID, fields ProfileFields, now time.Time) (*Profile, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "profile requires a user id")
	}
	p := &Profile{UserID: userID, CreatedAt: now, UpdatedAt: now}
	var err error
	if p.FullName, err = validation.Name(fields.FullName, "full_name"); err != nil {
		return nil, err
	}
	if p.SurnameAtBirth, err = validation.Name(fields.SurnameAtBirth, "surname_at_birth"); err != nil {
		return nil, err
	}
	if p.Sex, err = validation.Name(fields.Sex, "sex"); err != nil {
		return nil, err
	}
	if p.Birthday, err = validation.Date(fields.Birthday, "birthday"); err != nil {
		return nil, err
	}
	if p.BirthCity, err = optionalName(fields.BirthCity, "birth_city"); err != nil {
		return nil, err
	}
	if p.BirthCountry, err = optionalName(fields.BirthCountry, "birth_country"); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyUpdate applies every field of u or none of them.
func (p *Profile) ApplyUpdate(u ProfileUpdate, now time.Time) error {
	next := *p
	var err error
	if next.FullName, err = applyRequired(u.FullName, p.FullName, "full_name"); err != nil {
		return err
	}
	if next.SurnameAtBirth, err = applyRequired(u.SurnameAtBirth, p.SurnameAtBirth, "surname_at_birth"); err != nil {
		return err
	}
	if next.Sex, err = applyRequired(u.Sex, p.Sex, "sex"); err != nil {
		return err
	}
	if v, ok := u.Birthday.Value(); ok {
		if next.Birthday, err = validation.Date(v, "birthday"); err != nil {
			return err
		}
	} else if u.Birthday.Kind() == optional.Cleared {
		next.Birthday = ""
	}
	if next.BirthCity, err = applyOptional(u.BirthCity, p.BirthCity, "birth_city"); err != nil {
		return err
	}
	if next.BirthCountry, err = applyOptional(u.BirthCountry, p.BirthCountry, "birth_country"); err != nil {
		return err
	}
	next.UpdatedAt = now
	*p = next
	return nil
}

func applyRequired(u optional.Update[string], current, field string) (string, error) {
	v, ok := u.ApplyRequired(current)
	if !ok {
		return "", dErrors.New(dErrors.CodeValidation, field+" cannot be cleared")
	}
	if u.Kind() != optional.SetTo {
		return current, nil
	}
	return validation.Name(v, field)
}

func applyOptional(u optional.Update[string], current, field string) (string, error) {
	switch u.Kind() {
	case optional.Cleared:
		return "", nil
	case optional.SetTo:
		v, _ := u.Value()
		return optionalName(v, field)
	default:
		return current, nil
	}
}

func optionalName(value, field string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return validation.Name(value, field)
}
