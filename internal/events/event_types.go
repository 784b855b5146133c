package events

import (
	"time"

	"github.com/offloadr/connect-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventWorkspaceCreated         EventType = "workspace_created"
	EventWorkspaceDeleted         EventType = "workspace_deleted"
	EventWorkspaceProgressChanged EventType = "workspace_progress_changed"
	EventTaskCreated              EventType = "task_created"
	EventTaskToggled              EventType = "task_toggled"
	EventMessageSent              EventType = "message_sent"
)

// Event represents a domain event emitted by services after a committed
// write. Handlers run synchronously on the mutating request; a handler
// failure never fails the mutation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// WorkspaceCreatedPayload payload.
type WorkspaceCreatedPayload struct {
	WorkspaceID      string   `json:"workspace_id"`
	Name             string   `json:"name"`
	ClientID         string   `json:"client_id"`
	AssignedStaffIDs []string `json:"assigned_staff_ids"`
}

// WorkspaceDeletedPayload payload.
type WorkspaceDeletedPayload struct {
	WorkspaceID string `json:"workspace_id"`
	ClientID    string `json:"client_id"`
}

// WorkspaceProgressChangedPayload payload.
type WorkspaceProgressChangedPayload struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	ClientID    string `json:"client_id"`
	OldProgress int    `json:"old_progress"`
	NewProgress int    `json:"new_progress"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID        string `json:"task_id"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
	ClientID      string `json:"client_id"`
	Label         string `json:"label"`
}

// TaskToggledPayload payload.
type TaskToggledPayload struct {
	TaskID        string `json:"task_id"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
	ClientID      string `json:"client_id"`
	Label         string `json:"label"`
	Completed     bool   `json:"completed"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID   string             `json:"message_id"`
	ChannelID   string             `json:"channel_id"`
	SenderID    string             `json:"sender_id"`
	SenderName  string             `json:"sender_name"`
	MessageType domain.MessageType `json:"message_type"`
	RecipientID *string            `json:"recipient_id,omitempty"`
}
