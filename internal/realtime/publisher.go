package realtime

import (
	"context"
	"fmt"

	"github.com/offloadr/connect-api/internal/events"
)

// Publisher turns domain events into change-feed publications so live
// subscribers learn about workspace, task, and message mutations.
// Notification changes are published directly by the notification service,
// which owns the per-user targeting.
type Publisher struct {
	hub        *Hub
	dispatcher events.Dispatcher
}

// NewPublisher creates a publisher.
func NewPublisher(hub *Hub, dispatcher events.Dispatcher) *Publisher {
	return &Publisher{hub: hub, dispatcher: dispatcher}
}

// RegisterHandlers subscribes to the mutating events.
func (p *Publisher) RegisterHandlers() {
	if p.dispatcher == nil {
		return
	}
	p.dispatcher.Subscribe(events.EventWorkspaceCreated, p.handleWorkspaceCreated)
	p.dispatcher.Subscribe(events.EventWorkspaceDeleted, p.handleWorkspaceDeleted)
	p.dispatcher.Subscribe(events.EventWorkspaceProgressChanged, p.handleProgressChanged)
	p.dispatcher.Subscribe(events.EventTaskCreated, p.handleTaskCreated)
	p.dispatcher.Subscribe(events.EventTaskToggled, p.handleTaskToggled)
	p.dispatcher.Subscribe(events.EventMessageSent, p.handleMessageSent)
}

func (p *Publisher) handleWorkspaceCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.WorkspaceCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	p.hub.Publish(ctx, WorkspaceIndexTopic, Change{
		Collection: "workspaces",
		Action:     "created",
		EntityID:   payload.WorkspaceID,
	})
	return nil
}

func (p *Publisher) handleWorkspaceDeleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.WorkspaceDeletedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	p.hub.Publish(ctx, WorkspaceIndexTopic, Change{
		Collection: "workspaces",
		Action:     "deleted",
		EntityID:   payload.WorkspaceID,
	})
	return nil
}

func (p *Publisher) handleProgressChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.WorkspaceProgressChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	p.hub.Publish(ctx, WorkspaceTopic(payload.WorkspaceID), Change{
		Collection: "workspaces",
		Action:     "updated",
		EntityID:   payload.WorkspaceID,
		ChannelID:  payload.WorkspaceID,
	})
	return nil
}

func (p *Publisher) handleTaskCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	p.hub.Publish(ctx, WorkspaceTopic(payload.WorkspaceID), Change{
		Collection: "tasks",
		Action:     "created",
		EntityID:   payload.TaskID,
		ChannelID:  payload.WorkspaceID,
	})
	return nil
}

func (p *Publisher) handleTaskToggled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskToggledPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	p.hub.Publish(ctx, WorkspaceTopic(payload.WorkspaceID), Change{
		Collection: "tasks",
		Action:     "updated",
		EntityID:   payload.TaskID,
		ChannelID:  payload.WorkspaceID,
	})
	return nil
}

func (p *Publisher) handleMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	p.hub.Publish(ctx, WorkspaceTopic(payload.ChannelID), Change{
		Collection: "messages",
		Action:     "created",
		EntityID:   payload.MessageID,
		ChannelID:  payload.ChannelID,
	})
	return nil
}
