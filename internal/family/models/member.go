package models

import (
	"time"

	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/validation"
)

// Member is a person in a family tree. A member without a linked user is a
// ghost: a record the admin created for someone who has not joined.
type Member struct {
	ID             id.MemberID
	FamilyID       id.FamilyID
	LinkedUserID   optional.Value[id.UserID]
	FullName       string
	SurnameAtBirth string
	Sex            string
	Birthday       optional.Value[string]
	BirthCity      optional.Value[string]
	BirthCountry   optional.Value[string]
	DeathDate      optional.Value[string]
	Relationship   string
	Events         []Event
	CreatedAt      time.Time
	CreatedBy      id.UserID
}

// MemberFields are the descriptive fields of a new member.
type MemberFields struct {
	FullName       string
	SurnameAtBirth string
	Sex            string
	Birthday       optional.Value[string]
	BirthCity      optional.Value[string]
	BirthCountry   optional.Value[string]
	DeathDate      optional.Value[string]
	Relationship   string
}

// MemberUpdate is a partial update of a ghost.
type MemberUpdate struct {
	FullName       optional.Update[string]
	SurnameAtBirth optional.Update[string]
	Sex            optional.Update[string]
	Birthday       optional.Update[string]
	BirthCity      optional.Update[string]
	BirthCountry   optional.Update[string]
	DeathDate      optional.Update[string]
	Relationship   optional.Update[string]
}

func (m *Member) IsGhost() bool {
	return !m.LinkedUserID.IsSet()
}

// DisplayName is the full name shown in matches and notifications.
func (m *Member) DisplayName() string {
	return m.FullName
}

func newMember(memberID id.MemberID, familyID id.FamilyID, fields MemberFields, createdBy id.UserID, now time.Time) (*Member, error) {
	if memberID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "member requires an id")
	}
	m := &Member{ID: memberID, FamilyID: familyID, CreatedAt: now, CreatedBy: createdBy}
	var err error
	if m.FullName, err = validation.Name(fields.FullName, "full_name"); err != nil {
		return nil, err
	}
	if m.SurnameAtBirth, err = validation.Name(fields.SurnameAtBirth, "surname_at_birth"); err != nil {
		return nil, err
	}
	if m.Sex, err = validation.Name(fields.Sex, "sex"); err != nil {
		return nil, err
	}
	if m.Relationship, err = validation.Reason(fields.Relationship, "relationship_to_admin"); err != nil {
		return nil, err
	}
	if m.Birthday, err = optionalDate(fields.Birthday, "birthday"); err != nil {
		return nil, err
	}
	if m.DeathDate, err = optionalDate(fields.DeathDate, "death_date"); err != nil {
		return nil, err
	}
	if m.BirthCity, err = optionalName(fields.BirthCity, "birth_city"); err != nil {
		return nil, err
	}
	if m.BirthCountry, err = optionalName(fields.BirthCountry, "birth_country"); err != nil {
		return nil, err
	}
	return m, nil
}

// applyUpdate validates every field before writing any of them.
func (m *Member) applyUpdate(u MemberUpdate) error {
	next := *m
	var err error
	if next.FullName, err = requiredName(u.FullName, m.FullName, "full_name"); err != nil {
		return err
	}
	if next.SurnameAtBirth, err = requiredName(u.SurnameAtBirth, m.SurnameAtBirth, "surname_at_birth"); err != nil {
		return err
	}
	if next.Sex, err = requiredName(u.Sex, m.Sex, "sex"); err != nil {
		return err
	}
	if v, ok := u.Relationship.ApplyRequired(m.Relationship); !ok {
		return dErrors.New(dErrors.CodeValidation, "relationship_to_admin cannot be cleared")
	} else if next.Relationship, err = validation.Reason(v, "relationship_to_admin"); err != nil {
		return err
	}
	if next.Birthday, err = optionalDate(u.Birthday.Apply(m.Birthday), "birthday"); err != nil {
		return err
	}
	if next.DeathDate, err = optionalDate(u.DeathDate.Apply(m.DeathDate), "death_date"); err != nil {
		return err
	}
	if next.BirthCity, err = optionalName(u.BirthCity.Apply(m.BirthCity), "birth_city"); err != nil {
		return err
	}
	if next.BirthCountry, err = optionalName(u.BirthCountry.Apply(m.BirthCountry), "birth_country"); err != nil {
		return err
	}
	*m = next
	return nil
}

func requiredName(u optional.Update[string], current, field string) (string, error) {
	v, ok := u.ApplyRequired(current)
	if !ok {
		return "", dErrors.New(dErrors.CodeValidation, field+" cannot be cleared")
	}
	return validation.Name(v, field)
}

func optionalDate(v optional.Value[string], field string) (optional.Value[string], error) {
	s, ok := v.Get()
	if !ok {
		return v, nil
	}
	s, err := validation.Date(s, field)
	if err != nil || s == "" {
		return optional.None[string](), err
	}
	return optional.Some(s), nil
}

func optionalName(v optional.Value[string], field string) (optional.Value[string], error) {
	s, ok := v.Get()
	if !ok {
		return v, nil
	}
	s, err := validation.Name(s, field)
	if err != nil {
		return optional.None[string](), err
	}
	return optional.Some(s), nil
}
