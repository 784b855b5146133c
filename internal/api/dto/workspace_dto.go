package dto

import (
	"time"

	"github.com/offloadr/connect-api/internal/service"
)

// WorkspaceCreateRequest payload for workspace creation.
type WorkspaceCreateRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Progress         int      `json:"progress"`
	ClientID         string   `json:"client_id"`
	AssignedStaffIDs []string `json:"assigned_staff_ids"`
}

// ProgressUpdateRequest payload for the stored-progress write.
type ProgressUpdateRequest struct {
	Progress int `json:"progress"`
}

// WorkspaceResponse is the public shape of a workspace. Progress is the
// displayed value; StoredProgress is the manually set field it falls back to
// when the workspace has no tasks.
type WorkspaceResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Progress         int       `json:"progress"`
	StoredProgress   int       `json:"stored_progress"`
	TaskCount        int       `json:"task_count"`
	ClientID         string    `json:"client_id"`
	AssignedStaffIDs []string  `json:"assigned_staff_ids"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewWorkspaceResponse maps a workspace view.
func NewWorkspaceResponse(view service.WorkspaceView) WorkspaceResponse {
	ws := view.Workspace
	staffIDs := ws.AssignedStaffIDs
	if staffIDs == nil {
		staffIDs = []string{}
	}
	return WorkspaceResponse{
		ID:               ws.ID,
		Name:             ws.Name,
		Description:      ws.Description,
		Progress:         view.DisplayedProgress,
		StoredProgress:   ws.Progress,
		TaskCount:        view.TaskCount,
		ClientID:         ws.ClientID,
		AssignedStaffIDs: staffIDs,
		CreatedBy:        ws.CreatedBy,
		CreatedAt:        ws.CreatedAt,
	}
}

// NewWorkspaceResponses maps a slice of workspace views.
func NewWorkspaceResponses(views []service.WorkspaceView) []WorkspaceResponse {
	out := make([]WorkspaceResponse, 0, len(views))
	for _, view := range views {
		out = append(out, NewWorkspaceResponse(view))
	}
	return out
}
