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

// MessageService routes channel reads and writes. Channels are append-only
// and ordered by server-assigned creation time.
type MessageService struct {
	messages   repository.MessageRepository
	workspaces repository.WorkspaceRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// MessageDependencies bundles repositories for message service.
type MessageDependencies struct {
	MessageRepo   repository.MessageRepository
	WorkspaceRepo repository.WorkspaceRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
}

// NewMessageService constructs the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	return &MessageService{
		messages:   deps.MessageRepo,
		workspaces: deps.WorkspaceRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListWorkspace returns the messages of a workspace channel the user may
// read. Clients get only the client partition, pushed into the query; staff
// and admin fetch both partitions.
func (s *MessageService) ListWorkspace(ctx context.Context, user *domain.User, workspaceID string) ([]domain.Message, error) {
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

	if user.Role == domain.RoleClient {
		return s.messages.ListByChannelAndType(ctx, workspaceID, domain.MessageTypeClient)
	}
	msgs, err := s.messages.ListByChannel(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return visibility.VisibleWorkspaceMessages(user, msgs), nil
}

// ListGlobal returns the global staff channel filtered for the user:
// broadcasts for everyone on the team, direct messages for their
// participants, everything for admins.
func (s *MessageService) ListGlobal(ctx context.Context, user *domain.User) ([]domain.Message, error) {
	if !visibility.CanUseGlobalChannel(user) {
		return nil, apperrors.NewForbidden("staff or admin role required")
	}
	msgs, err := s.messages.ListByChannel(ctx, domain.GlobalStaffChannelID)
	if err != nil {
		return nil, err
	}
	return visibility.VisibleGlobalMessages(user, msgs), nil
}

// SendWorkspace appends a message to a workspace channel. The partition is
// derived from the sender's role and the tab they compose from: clients
// always write the client partition; staff/admin pick client or staff.
// Direct messages are not allowed on workspace channels.
func (s *MessageService) SendWorkspace(ctx context.Context, user *domain.User, workspaceID, text string, msgType domain.MessageType) (*domain.Message, error) {
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

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message text required", nil)
	}

	if user.Role == domain.RoleClient {
		msgType = domain.MessageTypeClient
	} else if msgType != domain.MessageTypeClient && msgType != domain.MessageTypeStaff {
		return nil, apperrors.NewValidationError("message type must be client or staff", nil)
	}
	if msgType == domain.MessageTypeStaff && !visibility.CanSeeTeamChannel(user) {
		return nil, apperrors.NewForbidden("staff or admin role required for team messages")
	}

	msg := s.stamp(user, workspaceID, text, msgType)
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.publishSent(ctx, user, msg)
	return msg, nil
}

// SendGlobal appends a message to the global staff channel, optionally as a
// direct message to a single staff member.
func (s *MessageService) SendGlobal(ctx context.Context, user *domain.User, text string, recipientID *string) (*domain.Message, error) {
	if !visibility.CanUseGlobalChannel(user) {
		return nil, apperrors.NewForbidden("staff or admin role required")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message text required", nil)
	}

	msg := s.stamp(user, domain.GlobalStaffChannelID, text, domain.MessageTypeStaff)

	if recipientID != nil && *recipientID != "" {
		recipient, err := s.users.GetByID(ctx, *recipientID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("recipient", nil)
			}
			return nil, err
		}
		if !recipient.IsTeamMember() {
			return nil, apperrors.NewValidationError("direct messages go to staff or admin only", nil)
		}
		msg.RecipientID = &recipient.ID
		msg.RecipientName = &recipient.Name
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.publishSent(ctx, user, msg)
	return msg, nil
}

func (s *MessageService) stamp(user *domain.User, channelID, text string, msgType domain.MessageType) *domain.Message {
	msg := &domain.Message{
		ChannelID:  channelID,
		SenderID:   user.ID,
		SenderName: user.Name,
		Type:       msgType,
		Text:       text,
	}
	if user.StaffRoleLabel != nil {
		msg.SenderRole = user.StaffRoleLabel
	}
	return msg
}

func (s *MessageService) publishSent(ctx context.Context, user *domain.User, msg *domain.Message) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventMessageSent,
		ActorID: user.ID,
		Payload: events.MessageSentPayload{
			MessageID:   msg.ID,
			ChannelID:   msg.ChannelID,
			SenderID:    msg.SenderID,
			SenderName:  msg.SenderName,
			MessageType: msg.Type,
			RecipientID: msg.RecipientID,
		},
	})
}
