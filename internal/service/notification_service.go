package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/offloadr/connect-api/internal/config"
	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/events"
	"github.com/offloadr/connect-api/internal/progress"
	"github.com/offloadr/connect-api/internal/realtime"
	"github.com/offloadr/connect-api/internal/repository"
	"github.com/offloadr/connect-api/internal/visibility"
	apperrors "github.com/offloadr/connect-api/pkg/util"
)

// ChangePublisher is the slice of the realtime hub the service needs.
type ChangePublisher interface {
	Publish(ctx context.Context, topic string, change realtime.Change)
}

// NotificationService persists notifications and wires the fan-out rules to
// domain events. Fan-out writes are independent per target user; a failed
// write is logged and the rest still happen, and no failure ever surfaces
// to the mutation that triggered it.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	feed          ChangePublisher
	logger        *zap.Logger
	cfg           config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, feed ChangePublisher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		feed:          feed,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes the fan-out rules to domain events. Workspace
// assignment and progress milestones are always wired; task and message
// triggers only when enabled, because the product treats them as optional.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventWorkspaceCreated, n.handleWorkspaceCreated)
	n.dispatcher.Subscribe(events.EventWorkspaceProgressChanged, n.handleProgressChanged)
	if n.cfg.TaskEvents {
		n.dispatcher.Subscribe(events.EventTaskCreated, n.handleTaskCreated)
		n.dispatcher.Subscribe(events.EventTaskToggled, n.handleTaskToggled)
	}
	if n.cfg.MessageEvents {
		n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	}
}

func (n *NotificationService) handleWorkspaceCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.WorkspaceCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}

	if payload.ClientID != "" {
		n.create(ctx, &domain.Notification{
			UserID:      payload.ClientID,
			Type:        domain.NotificationWorkspaceAssigned,
			Title:       "New Workspace Assigned",
			Message:     fmt.Sprintf("You've been added to %q", payload.Name),
			WorkspaceID: &payload.WorkspaceID,
		})
	}
	for _, staffID := range payload.AssignedStaffIDs {
		n.create(ctx, &domain.Notification{
			UserID:      staffID,
			Type:        domain.NotificationWorkspaceAssigned,
			Title:       "New Workspace Assigned",
			Message:     fmt.Sprintf("You've been assigned to %q", payload.Name),
			WorkspaceID: &payload.WorkspaceID,
		})
	}
	return nil
}

// handleProgressChanged notifies the workspace's client when the stored
// progress lands on a milestone it was not already on. Exactly 100 produces
// workspace_completed instead of progress_update.
func (n *NotificationService) handleProgressChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.WorkspaceProgressChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	if payload.ClientID == "" {
		return nil
	}
	if payload.NewProgress == payload.OldProgress || !progress.IsMilestone(payload.NewProgress) {
		return nil
	}

	if payload.NewProgress == 100 {
		n.create(ctx, &domain.Notification{
			UserID:      payload.ClientID,
			Type:        domain.NotificationWorkspaceCompleted,
			Title:       "Project Completed!",
			Message:     fmt.Sprintf("%q has been completed", payload.Name),
			WorkspaceID: &payload.WorkspaceID,
		})
		return nil
	}
	n.create(ctx, &domain.Notification{
		UserID:      payload.ClientID,
		Type:        domain.NotificationProgressUpdate,
		Title:       "Progress Update",
		Message:     fmt.Sprintf("%q is now %d%% complete", payload.Name, payload.NewProgress),
		WorkspaceID: &payload.WorkspaceID,
	})
	return nil
}

func (n *NotificationService) handleTaskCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	if payload.ClientID == "" {
		return nil
	}
	n.create(ctx, &domain.Notification{
		UserID:      payload.ClientID,
		Type:        domain.NotificationTaskAssigned,
		Title:       "New Task Assigned",
		Message:     fmt.Sprintf("%q has been added to your workspace", payload.Label),
		WorkspaceID: &payload.WorkspaceID,
		TaskID:      &payload.TaskID,
	})
	return nil
}

func (n *NotificationService) handleTaskToggled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskToggledPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	if payload.ClientID == "" || !payload.Completed {
		return nil
	}
	n.create(ctx, &domain.Notification{
		UserID:      payload.ClientID,
		Type:        domain.NotificationTaskCompleted,
		Title:       "Task Completed",
		Message:     fmt.Sprintf("%q has been marked as complete", payload.Label),
		WorkspaceID: &payload.WorkspaceID,
		TaskID:      &payload.TaskID,
	})
	return nil
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	// only direct messages produce a targeted notification
	if payload.RecipientID == nil || *payload.RecipientID == "" {
		return nil
	}
	n.create(ctx, &domain.Notification{
		UserID:  *payload.RecipientID,
		Type:    domain.NotificationMessage,
		Title:   "New Message",
		Message: fmt.Sprintf("%s sent you a message", payload.SenderName),
	})
	return nil
}

// Send creates a single notification for a chosen user; used by the admin
// send surface and available as a reusable primitive.
func (n *NotificationService) Send(ctx context.Context, actor *domain.User, notification *domain.Notification) error {
	if !visibility.CanManageUsers(actor) {
		return apperrors.NewForbidden("admin role required")
	}
	if notification.UserID == "" {
		return apperrors.NewValidationError("userId required", nil)
	}
	if !domain.ValidNotificationType(notification.Type) {
		return apperrors.NewValidationError("unknown notification type", nil)
	}
	return n.persist(ctx, notification)
}

// ListForUser returns the user's notifications, newest first, with the
// unread count.
func (n *NotificationService) ListForUser(ctx context.Context, user *domain.User) ([]domain.Notification, int, error) {
	items, err := n.notifications.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, 0, err
	}
	unread := 0
	for _, item := range items {
		if !item.Read {
			unread++
		}
	}
	return items, unread, nil
}

// MarkRead flips one notification to read. Marking an already-read
// notification is a no-op, not an error, and issues no write.
func (n *NotificationService) MarkRead(ctx context.Context, user *domain.User, id string) error {
	notification, err := n.notifications.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("notification", nil)
		}
		return err
	}
	if notification.UserID != user.ID {
		return apperrors.NewForbidden("not your notification")
	}
	if notification.Read {
		return nil
	}
	return n.notifications.MarkRead(ctx, id)
}

// MarkAllRead flips every unread notification of the user, one update per
// item; there is no batch primitive.
func (n *NotificationService) MarkAllRead(ctx context.Context, user *domain.User) error {
	unread, err := n.notifications.ListUnreadByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, item := range unread {
		if err := n.notifications.MarkRead(ctx, item.ID); err != nil {
			n.logger.Warn("mark read failed",
				zap.String("notification_id", item.ID),
				zap.Error(err))
		}
	}
	return nil
}

// create is the fan-out write path: persist, publish to the live feed, and
// swallow failures after logging them.
func (n *NotificationService) create(ctx context.Context, notification *domain.Notification) {
	if err := n.persist(ctx, notification); err != nil {
		n.logger.Error("notification write failed",
			zap.String("user_id", notification.UserID),
			zap.String("type", string(notification.Type)),
			zap.Error(err))
	}
}

func (n *NotificationService) persist(ctx context.Context, notification *domain.Notification) error {
	if err := n.notifications.Create(ctx, notification); err != nil {
		return err
	}
	if n.feed != nil {
		n.feed.Publish(ctx, realtime.UserTopic(notification.UserID), realtime.Change{
			Collection: "notifications",
			Action:     "created",
			EntityID:   notification.ID,
		})
	}
	return nil
}
