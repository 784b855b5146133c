package domain

import "time"

// Workspace pairs one client with zero or more assigned staff and carries a
// task list, progress percentage, and two message partitions.
type Workspace struct {
	ID          string
	Name        string
	Description string
	// Progress is the manually stored percentage, authoritative only when the
	// workspace has no tasks.
	Progress         int
	ClientID         string // empty = internal-only workspace, hidden from every client
	AssignedStaffIDs []string
	CreatedBy        string
	CreatedAt        time.Time
}

// HasAssignedStaff reports whether the staff id is a member of the workspace.
// Admins have access regardless of membership.
func (w *Workspace) HasAssignedStaff(staffID string) bool {
	for _, id := range w.AssignedStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
