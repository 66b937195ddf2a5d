package handler

import (
	"legatia/internal/family/models"
	"legatia/internal/family/service"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
)

// CreateFamilyRequest is the body of POST /families. Visibility defaults to
// true when omitted.
type CreateFamilyRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsVisible   optional.Value[bool] `json:"is_visible"`
}

func (r *CreateFamilyRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

type VisibilityRequest struct {
	IsVisible *bool `json:"is_visible"`
}

func (r *VisibilityRequest) Validate() error {
	if r.IsVisible == nil {
		return dErrors.New(dErrors.CodeValidation, "is_visible is required")
	}
	return nil
}

// AddMemberRequest is the body of POST /families/{id}/members.
type AddMemberRequest struct {
	FullName       string                 `json:"full_name"`
	SurnameAtBirth string                 `json:"surname_at_birth"`
	Sex            string                 `json:"sex"`
	Birthday       optional.Value[string] `json:"birthday"`
	BirthCity      optional.Value[string] `json:"birth_city"`
	BirthCountry   optional.Value[string] `json:"birth_country"`
	DeathDate      optional.Value[string] `json:"death_date"`
	Relationship   string                 `json:"relationship_to_admin"`
}

func (r *AddMemberRequest) Validate() error {
	if r.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full_name is required")
	}
	if r.Relationship == "" {
		return dErrors.New(dErrors.CodeValidation, "relationship_to_admin is required")
	}
	return nil
}

func (r *AddMemberRequest) Fields() models.MemberFields {
	return models.MemberFields{
		FullName:       r.FullName,
		SurnameAtBirth: r.SurnameAtBirth,
		Sex:            r.Sex,
		Birthday:       r.Birthday,
		BirthCity:      r.BirthCity,
		BirthCountry:   r.BirthCountry,
		DeathDate:      r.DeathDate,
		Relationship:   r.Relationship,
	}
}

// UpdateMemberRequest is the body of PATCH /families/{id}/members/{memberID}.
type UpdateMemberRequest struct {
	FullName       optional.Update[string] `json:"full_name"`
	SurnameAtBirth optional.Update[string] `json:"surname_at_birth"`
	Sex            optional.Update[string] `json:"sex"`
	Birthday       optional.Update[string] `json:"birthday"`
	BirthCity      optional.Update[string] `json:"birth_city"`
	BirthCountry   optional.Update[string] `json:"birth_country"`
	DeathDate      optional.Update[string] `json:"death_date"`
	Relationship   optional.Update[string] `json:"relationship_to_admin"`
}

func (r *UpdateMemberRequest) Validate() error {
	return nil
}

func (r *UpdateMemberRequest) Update() models.MemberUpdate {
	return models.MemberUpdate{
		FullName:       r.FullName,
		SurnameAtBirth: r.SurnameAtBirth,
		Sex:            r.Sex,
		Birthday:       r.Birthday,
		BirthCity:      r.BirthCity,
		BirthCountry:   r.BirthCountry,
		DeathDate:      r.DeathDate,
		Relationship:   r.Relationship,
	}
}

type AddEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	EventType   string `json:"event_type"`

	eventType models.EventType
}

func (r *AddEventRequest) Validate() error {
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	t, err := models.ParseEventType(r.EventType)
	if err != nil {
		return err
	}
	r.eventType = t
	return nil
}

func (r *AddEventRequest) Input() service.EventInput {
	return service.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.EventDate,
		Type:        r.eventType,
	}
}

// UpdateEventRequest is the body of
// PATCH /families/{id}/members/{memberID}/events/{eventID}.
type UpdateEventRequest struct {
	Title       optional.Update[string] `json:"title"`
	Description optional.Update[string] `json:"description"`
	EventDate   optional.Update[string] `json:"event_date"`
	EventType   optional.Update[string] `json:"event_type"`

	eventType optional.Update[models.EventType]
}

func (r *UpdateEventRequest) Validate() error {
	switch r.EventType.Kind() {
	case optional.Cleared:
		r.eventType = optional.Clear[models.EventType]()
	case optional.SetTo:
		raw, _ := r.EventType.Value()
		t, err := models.ParseEventType(raw)
		if err != nil {
			return err
		}
		r.eventType = optional.Set(t)
	}
	return nil
}

func (r *UpdateEventRequest) Update() models.EventUpdate {
	return models.EventUpdate{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.EventDate,
		Type:        r.eventType,
	}
}
