package domain

import "time"

// NotificationType enumerates the events a user can be notified about.
type NotificationType string

const (
	NotificationTaskCompleted      NotificationType = "task_completed"
	NotificationTaskAssigned       NotificationType = "task_assigned"
	NotificationMessage            NotificationType = "message"
	NotificationProgressUpdate     NotificationType = "progress_update"
	NotificationDeadlineReminder   NotificationType = "deadline_reminder"
	NotificationWorkspaceCompleted NotificationType = "workspace_completed"
	NotificationWorkspaceAssigned  NotificationType = "workspace_assigned"
)

// Notification targets exactly one user. The only mutation ever applied is
// flipping Read to true; users cannot delete notifications.
type Notification struct {
	ID          string
	UserID      string
	Type        NotificationType
	Title       string
	Message     string
	WorkspaceID *string
	TaskID      *string
	Read        bool
	CreatedAt   time.Time
}

// ValidNotificationType reports whether the value is a known type.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTaskCompleted, NotificationTaskAssigned, NotificationMessage,
		NotificationProgressUpdate, NotificationDeadlineReminder,
		NotificationWorkspaceCompleted, NotificationWorkspaceAssigned:
		return true
	}
	return false
}
