package handler

import (
	"legatia/internal/notifications/models"
	"legatia/pkg/optional"
	"legatia/pkg/platform/httputil"
)

type NotificationResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      string                 `json:"notification_type"`
	IsRead    bool                   `json:"is_read"`
	ActionURL optional.Value[string] `json:"action_url"`
	Metadata  optional.Value[string] `json:"metadata"`
	CreatedAt int64                  `json:"created_at"`
}

type CountResponse struct {
	Count int `json:"count"`
}

func FromNotification(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.RecipientID.String(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		IsRead:    n.Read,
		ActionURL: n.ActionURL,
		Metadata:  n.Metadata,
		CreatedAt: httputil.Nanos(n.CreatedAt),
	}
}

func FromNotifications(items []*models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, FromNotification(n))
	}
	return out
}
