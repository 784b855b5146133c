package service

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/events"
	"github.com/offloadr/connect-api/internal/progress"
	"github.com/offloadr/connect-api/internal/repository"
	"github.com/offloadr/connect-api/internal/visibility"
	apperrors "github.com/offloadr/connect-api/pkg/util"
)

// WorkspaceService coordinates workspace lifecycle and progress updates.
type WorkspaceService struct {
	workspaces repository.WorkspaceRepository
	tasks      repository.TaskRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// WorkspaceDependencies bundles repositories for workspace service.
type WorkspaceDependencies struct {
	WorkspaceRepo repository.WorkspaceRepository
	TaskRepo      repository.TaskRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
}

// WorkspaceCreateInput describes workspace creation payload.
type WorkspaceCreateInput struct {
	Name             string
	Description      string
	Progress         int
	ClientID         string // empty = internal-only workspace
	AssignedStaffIDs []string
}

// WorkspaceView is a workspace together with its display progress.
type WorkspaceView struct {
	Workspace         domain.Workspace
	DisplayedProgress int
	TaskCount         int
}

// NewWorkspaceService constructs the service.
func NewWorkspaceService(deps WorkspaceDependencies) *WorkspaceService {
	return &WorkspaceService{
		workspaces: deps.WorkspaceRepo,
		tasks:      deps.TaskRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create creates a workspace; admin only. The assigned client and every
// assigned staff member are notified through the workspace_created event.
func (s *WorkspaceService) Create(ctx context.Context, actor *domain.User, input WorkspaceCreateInput) (*domain.Workspace, error) {
	if !visibility.CanManageWorkspaces(actor) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("workspace name required", nil)
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, apperrors.NewValidationError("progress must be between 0 and 100", nil)
	}

	if input.ClientID != "" {
		client, err := s.users.GetByID(ctx, input.ClientID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("client", nil)
			}
			return nil, err
		}
		if client.Role != domain.RoleClient {
			return nil, apperrors.NewValidationError("clientId must reference a client account", nil)
		}
	}

	ws := &domain.Workspace{
		Name:             name,
		Description:      strings.TrimSpace(input.Description),
		Progress:         input.Progress,
		ClientID:         input.ClientID,
		AssignedStaffIDs: dedupe(input.AssignedStaffIDs),
		CreatedBy:        actor.ID,
	}
	if err := s.workspaces.Create(ctx, ws); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventWorkspaceCreated,
		ActorID: actor.ID,
		Payload: events.WorkspaceCreatedPayload{
			WorkspaceID:      ws.ID,
			Name:             ws.Name,
			ClientID:         ws.ClientID,
			AssignedStaffIDs: ws.AssignedStaffIDs,
		},
	})
	return ws, nil
}

// List returns the workspaces visible to the user, each with its displayed
// progress. The client path pushes the owner filter into the query; the
// staff path filters an unfiltered fetch in-process.
func (s *WorkspaceService) List(ctx context.Context, user *domain.User) ([]WorkspaceView, error) {
	var (
		wss []domain.Workspace
		err error
	)
	if user.Role == domain.RoleClient {
		wss, err = s.workspaces.ListByClient(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		// the per-client query carries no ordering guarantee; give the
		// dashboard a stable newest-first order anyway
		sort.Slice(wss, func(i, j int) bool { return wss[i].CreatedAt.After(wss[j].CreatedAt) })
	} else {
		wss, err = s.workspaces.List(ctx)
		if err != nil {
			return nil, err
		}
	}

	wss = visibility.VisibleWorkspaces(user, wss)

	views := make([]WorkspaceView, 0, len(wss))
	for _, ws := range wss {
		view, err := s.view(ctx, ws)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Get fetches one workspace after an access check.
func (s *WorkspaceService) Get(ctx context.Context, user *domain.User, id string) (*WorkspaceView, error) {
	ws, err := s.workspaces.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("workspace", nil)
		}
		return nil, err
	}
	if !visibility.CanAccessWorkspace(user, ws) {
		return nil, apperrors.NewForbidden("no access to this workspace")
	}
	view, err := s.view(ctx, *ws)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Delete removes a workspace; admin only.
func (s *WorkspaceService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !visibility.CanManageWorkspaces(actor) {
		return apperrors.NewForbidden("admin role required")
	}
	ws, err := s.workspaces.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("workspace", nil)
		}
		return err
	}
	if err := s.workspaces.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventWorkspaceDeleted,
		ActorID: actor.ID,
		Payload: events.WorkspaceDeletedPayload{WorkspaceID: ws.ID, ClientID: ws.ClientID},
	})
	return nil
}

// SetProgress writes the stored progress percentage. The stored field stays
// writable even when tasks exist; the displayed value is recomputed from
// tasks in that case (see progress.Displayed). Milestone notifications fire
// off the stored value, matching the client-facing progress slider.
func (s *WorkspaceService) SetProgress(ctx context.Context, actor *domain.User, id string, value int) (*WorkspaceView, error) {
	if !visibility.CanSetProgress(actor) {
		return nil, apperrors.NewForbidden("staff or admin role required")
	}
	if value < 0 || value > 100 {
		return nil, apperrors.NewValidationError("progress must be between 0 and 100", nil)
	}

	ws, err := s.workspaces.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("workspace", nil)
		}
		return nil, err
	}
	if !visibility.CanAccessWorkspace(actor, ws) {
		return nil, apperrors.NewForbidden("no access to this workspace")
	}

	old := ws.Progress
	if err := s.workspaces.UpdateProgress(ctx, id, value); err != nil {
		return nil, err
	}
	ws.Progress = value

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventWorkspaceProgressChanged,
		ActorID: actor.ID,
		Payload: events.WorkspaceProgressChangedPayload{
			WorkspaceID: ws.ID,
			Name:        ws.Name,
			ClientID:    ws.ClientID,
			OldProgress: old,
			NewProgress: value,
		},
	})

	view, err := s.view(ctx, *ws)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *WorkspaceService) view(ctx context.Context, ws domain.Workspace) (WorkspaceView, error) {
	tasks, err := s.tasks.ListByWorkspace(ctx, ws.ID)
	if err != nil {
		return WorkspaceView{}, err
	}
	return WorkspaceView{
		Workspace:         ws,
		DisplayedProgress: progress.Displayed(tasks, ws.Progress),
		TaskCount:         len(tasks),
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
