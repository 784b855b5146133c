package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/events"
	"github.com/offloadr/connect-api/internal/repository"
	"github.com/offloadr/connect-api/internal/visibility"
	apperrors "github.com/offloadr/connect-api/pkg/util"
)

// TaskService coordinates workspace checklist items. Clients get read-only
// access; creating and toggling are team operations.
type TaskService struct {
	tasks      repository.TaskRepository
	workspaces repository.WorkspaceRepository
	dispatcher events.Dispatcher
}

// TaskDependencies bundles repositories for task service.
type TaskDependencies struct {
	TaskRepo      repository.TaskRepository
	WorkspaceRepo repository.WorkspaceRepository
	Dispatcher    events.Dispatcher
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		workspaces: deps.WorkspaceRepo,
		dispatcher: deps.Dispatcher,
	}
}

// List returns a workspace's tasks, oldest first, after an access check.
func (s *TaskService) List(ctx context.Context, user *domain.User, workspaceID string) ([]domain.Task, error) {
	if _, err := s.accessibleWorkspace(ctx, user, workspaceID); err != nil {
		return nil, err
	}
	return s.tasks.ListByWorkspace(ctx, workspaceID)
}

// Create adds a task to a workspace; staff/admin only.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, workspaceID, label string) (*domain.Task, error) {
	if !visibility.CanEditTasks(actor) {
		return nil, apperrors.NewForbidden("staff or admin role required")
	}
	ws, err := s.accessibleWorkspace(ctx, actor, workspaceID)
	if err != nil {
		return nil, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, apperrors.NewValidationError("task label required", nil)
	}

	task := &domain.Task{
		WorkspaceID: workspaceID,
		Label:       label,
		CreatedBy:   actor.ID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventTaskCreated,
		ActorID: actor.ID,
		Payload: events.TaskCreatedPayload{
			TaskID:        task.ID,
			WorkspaceID:   ws.ID,
			WorkspaceName: ws.Name,
			ClientID:      ws.ClientID,
			Label:         task.Label,
		},
	})
	return task, nil
}

// Toggle flips a task's completed flag; staff/admin only.
func (s *TaskService) Toggle(ctx context.Context, actor *domain.User, workspaceID, taskID string) (*domain.Task, error) {
	if !visibility.CanEditTasks(actor) {
		return nil, apperrors.NewForbidden("staff or admin role required")
	}
	ws, err := s.accessibleWorkspace(ctx, actor, workspaceID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, err
	}
	if task.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFound("task", nil)
	}

	task.Completed = !task.Completed
	if err := s.tasks.SetCompleted(ctx, task.ID, task.Completed); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventTaskToggled,
		ActorID: actor.ID,
		Payload: events.TaskToggledPayload{
			TaskID:        task.ID,
			WorkspaceID:   ws.ID,
			WorkspaceName: ws.Name,
			ClientID:      ws.ClientID,
			Label:         task.Label,
			Completed:     task.Completed,
		},
	})
	return task, nil
}

func (s *TaskService) accessibleWorkspace(ctx context.Context, user *domain.User, workspaceID string) (*domain.Workspace, error) {
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("workspace", nil)
		}
		return nil, err
	}
	if !visibility.CanAccessWorkspace(user, ws) {
		return nil, apperrors.NewForbidden("no access to this workspace")
	}
	return ws, nil
}
