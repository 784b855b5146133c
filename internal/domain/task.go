package domain

import "time"

// Task is a single checklist item inside a workspace. Tasks are created and
// toggled by staff/admin only; clients have read-only visibility.
type Task struct {
	ID          string
	WorkspaceID string
	Label       string
	Completed   bool
	CreatedBy   string
	CreatedAt   time.Time
}
