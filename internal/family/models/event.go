package models

import (
	"time"

	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/validation"
)

type EventType string

const (
	EventBirth       EventType = "birth"
	EventMarriage    EventType = "marriage"
	EventDeath       EventType = "death"
	EventEducation   EventType = "education"
	EventAchievement EventType = "achievement"
	EventOther       EventType = "other"
)

func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventBirth, EventMarriage, EventDeath, EventEducation, EventAchievement, EventOther:
		return t, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "invalid event_type")
}

// Event is a dated life event of a member.
type Event struct {
	ID          id.EventID
	MemberID    id.MemberID
	Title       string
	Description string
	Date        string
	Type        EventType
	CreatedAt   time.Time
	CreatedBy   id.UserID
}

// NewEvent validates a life event. Date is required and ISO formatted so
// lexical order is chronological order.
func NewEvent(eventID id.EventID, title, description, date string, eventType EventType, createdBy id.UserID, now time.Time) (*Event, error) {
	title, err := validation.Name(title, "title")
	if err != nil {
		return nil, err
	}
	if description, err = validation.Description(description); err != nil {
		return nil, err
	}
	if date, err = validation.Date(date, "event_date"); err != nil {
		return nil, err
	}
	if date == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "event_date is required")
	}
	if _, err := ParseEventType(string(eventType)); err != nil {
		return nil, err
	}
	return &Event{
		ID:          eventID,
		Title:       title,
		Description: description,
		Date:        date,
		Type:        eventType,
		CreatedAt:   now,
		CreatedBy:   createdBy,
	}, nil
}

// EventUpdate is a partial update of a life event. Only the description can
// be cleared.
type EventUpdate struct {
	Title       optional.Update[string]
	Description optional.Update[string]
	Date        optional.Update[string]
	Type        optional.Update[EventType]
}

func (e *Event) applyUpdate(u EventUpdate) error {
	next := *e
	var err error
	if next.Title, err = requiredName(u.Title, e.Title, "title"); err != nil {
		return err
	}
	switch u.Description.Kind() {
	case optional.Cleared:
		next.Description = ""
	case optional.SetTo:
		v, _ := u.Description.Value()
		if next.Description, err = validation.Description(v); err != nil {
			return err
		}
	}
	date, ok := u.Date.ApplyRequired(e.Date)
	if !ok {
		return dErrors.New(dErrors.CodeValidation, "event_date cannot be cleared")
	}
	if next.Date, err = validation.Date(date, "event_date"); err != nil {
		return err
	}
	if next.Date == "" {
		return dErrors.New(dErrors.CodeValidation, "event_date is required")
	}
	eventType, ok := u.Type.ApplyRequired(e.Type)
	if !ok {
		return dErrors.New(dErrors.CodeValidation, "event_type cannot be cleared")
	}
	if next.Type, err = ParseEventType(string(eventType)); err != nil {
		return err
	}
	*e = next
	return nil
}
