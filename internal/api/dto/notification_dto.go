package dto

import (
	"time"

	"github.com/offloadr/connect-api/internal/domain"
)

// NotificationSendRequest payload for the admin send endpoint.
type NotificationSendRequest struct {
	UserID      string `json:"user_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	TaskID      string `json:"task_id,omitempty"`
}

// NotificationResponse is the public shape of a notification.
type NotificationResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	WorkspaceID string    `json:"workspace_id,omitempty"`
	TaskID      string    `json:"task_id,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(n *domain.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if n.WorkspaceID != nil {
		resp.WorkspaceID = *n.WorkspaceID
	}
	if n.TaskID != nil {
		resp.TaskID = *n.TaskID
	}
	return resp
}

// NewNotificationResponses maps a slice of notifications.
func NewNotificationResponses(items []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for i := range items {
		out = append(out, NewNotificationResponse(&items[i]))
	}
	return out
}
