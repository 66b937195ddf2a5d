package handler

import (
	"legatia/internal/family/models"
	"legatia/pkg/optional"
	"legatia/pkg/platform/httputil"
)

type FamilyResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	AdminID     string           `json:"admin_id"`
	IsVisible   bool             `json:"is_visible"`
	Members     []MemberResponse `json:"members"`
	CreatedAt   int64            `json:"created_at"`
	UpdatedAt   int64            `json:"updated_at"`
}

type MemberResponse struct {
	ID             string                 `json:"id"`
	LinkedUserID   optional.Value[string] `json:"user_id"`
	FullName       string                 `json:"full_name"`
	SurnameAtBirth string                 `json:"surname_at_birth"`
	Sex            string                 `json:"sex"`
	Birthday       optional.Value[string] `json:"birthday"`
	BirthCity      optional.Value[string] `json:"birth_city"`
	BirthCountry   optional.Value[string] `json:"birth_country"`
	DeathDate      optional.Value[string] `json:"death_date"`
	Relationship   string                 `json:"relationship_to_admin"`
	Events         []EventResponse        `json:"events"`
	CreatedAt      int64                  `json:"created_at"`
	CreatedBy      string                 `json:"created_by"`
}

type EventResponse struct {
	ID          string `json:"id"`
	MemberID    string `json:"member_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	EventType   string `json:"event_type"`
	CreatedAt   int64  `json:"created_at"`
	CreatedBy   string `json:"created_by"`
}

func FromFamily(f *models.Family) FamilyResponse {
	members := make([]MemberResponse, 0, len(f.Members))
	for i := range f.Members {
		members = append(members, FromMember(&f.Members[i]))
	}
	return FamilyResponse{
		ID:          f.ID.String(),
		Name:        f.Name,
		Description: f.Description,
		AdminID:     f.AdminID.String(),
		IsVisible:   f.IsVisible,
		Members:     members,
		CreatedAt:   httputil.Nanos(f.CreatedAt),
		UpdatedAt:   httputil.Nanos(f.UpdatedAt),
	}
}

func FromFamilies(families []*models.Family) []FamilyResponse {
	out := make([]FamilyResponse, 0, len(families))
	for _, f := range families {
		out = append(out, FromFamily(f))
	}
	return out
}

func FromMember(m *models.Member) MemberResponse {
	linked := optional.None[string]()
	if userID, ok := m.LinkedUserID.Get(); ok {
		linked = optional.Some(userID.String())
	}
	return MemberResponse{
		ID:             m.ID.String(),
		LinkedUserID:   linked,
		FullName:       m.FullName,
		SurnameAtBirth: m.SurnameAtBirth,
		Sex:            m.Sex,
		Birthday:       m.Birthday,
		BirthCity:      m.BirthCity,
		BirthCountry:   m.BirthCountry,
		DeathDate:      m.DeathDate,
		Relationship:   m.Relationship,
		Events:         FromEvents(m.Events),
		CreatedAt:      httputil.Nanos(m.CreatedAt),
		CreatedBy:      m.CreatedBy.String(),
	}
}

func FromEvent(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		MemberID:    e.MemberID.String(),
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.Date,
		EventType:   string(e.Type),
		CreatedAt:   httputil.Nanos(e.CreatedAt),
		CreatedBy:   e.CreatedBy.String(),
	}
}

func FromEvents(events []models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, FromEvent(&events[i]))
	}
	return out
}
