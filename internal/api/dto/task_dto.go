package dto

import (
	"time"

	"github.com/offloadr/connect-api/internal/domain"
)

// TaskCreateRequest payload for adding a checklist item.
type TaskCreateRequest struct {
	Label string `json:"label"`
}

// TaskResponse is the public shape of a task.
type TaskResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Label       string    `json:"label"`
	Completed   bool      `json:"completed"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTaskResponse maps a domain task.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		WorkspaceID: task.WorkspaceID,
		Label:       task.Label,
		Completed:   task.Completed,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
	}
}

// NewTaskResponses maps a slice of tasks.
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
