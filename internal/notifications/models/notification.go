package models

import (
	"time"

	id "legatia/pkg/domain"
	"legatia/pkg/optional"
)

type Type string

const (
	TypeFamilyInvitation  Type = "family_invitation"
	TypeGhostProfileClaim Type = "ghost_profile_claim"
	TypeFamilyUpdate      Type = "family_update"
	TypeSystemAlert       Type = "system_alert"
)

// Notification is a message addressed to one user. Only the recipient may
// flip Read.
type Notification struct {
	ID          id.NotificationID
	RecipientID id.UserID
	Title       string
	Message     string
	Type        Type
	Read        bool
	ActionURL   optional.Value[string]
	Metadata    optional.Value[string]
	CreatedAt   time.Time
}

// Draft is what a workflow hands to the dispatcher.
type Draft struct {
	RecipientID id.UserID
	Title       string
	Message     string
	Type        Type
	ActionURL   optional.Value[string]
	Metadata    optional.Value[string]
}

func (d Draft) Build(notificationID id.NotificationID, now time.Time) *Notification {
	return &Notification{
		ID:          notificationID,
		RecipientID: d.RecipientID,
		Title:       d.Title,
		Message:     d.Message,
		Type:        d.Type,
		ActionURL:   d.ActionURL,
		Metadata:    d.Metadata,
		CreatedAt:   now,
	}
}
