package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/offloadr/connect-api/internal/config"
	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/events"
	"github.com/offloadr/connect-api/internal/realtime"
)

func newNotificationFixture(t *testing.T, cfg config.NotifyConfig) (*NotificationService, *fakeNotificationRepo, events.Dispatcher, *fakeFeed) {
	t.Helper()
	repo := newFakeNotificationRepo()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	feed := &fakeFeed{}
	svc := NewNotificationService(repo, dispatcher, feed, zap.NewNop(), cfg)
	svc.RegisterHandlers()
	return svc, repo, dispatcher, feed
}

func TestWorkspaceCreatedFanOut(t *testing.T) {
	_, repo, dispatcher, feed := newNotificationFixture(t, config.NotifyConfig{})

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventWorkspaceCreated,
		Payload: events.WorkspaceCreatedPayload{
			WorkspaceID:      "w1",
			Name:             "Brand Refresh",
			ClientID:         "c1",
			AssignedStaffIDs: []string{"s1", "s2"},
		},
	})
	require.NoError(t, err)

	client := repo.byUser("c1")
	require.Len(t, client, 1)
	assert.Equal(t, domain.NotificationWorkspaceAssigned, client[0].Type)
	assert.Equal(t, `You've been added to "Brand Refresh"`, client[0].Message)
	require.NotNil(t, client[0].WorkspaceID)
	assert.Equal(t, "w1", *client[0].WorkspaceID)

	for _, staffID := range []string{"s1", "s2"} {
		staff := repo.byUser(staffID)
		require.Len(t, staff, 1, "staff %s", staffID)
		assert.Equal(t, `You've been assigned to "Brand Refresh"`, staff[0].Message)
	}

	// each persisted notification reaches the live feed on the target's topic
	assert.Len(t, feed.changes, 3)
	assert.Equal(t, realtime.UserTopic("c1"), feed.changes[0].Topic)
}

func TestWorkspaceCreatedNoClient(t *testing.T) {
	_, repo, dispatcher, _ := newNotificationFixture(t, config.NotifyConfig{})

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventWorkspaceCreated,
		Payload: events.WorkspaceCreatedPayload{
			WorkspaceID:      "w1",
			Name:             "Internal Ops",
			AssignedStaffIDs: []string{"s1"},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, repo.byUser(""))
	assert.Len(t, repo.byUser("s1"), 1)
}

func TestProgressMilestones(t *testing.T) {
	tests := []struct {
		name        string
		clientID    string
		oldProgress int
		newProgress int
		wantType    domain.NotificationType
		wantMessage string
	}{
		{
			name: "25 notifies progress_update", clientID: "c1",
			oldProgress: 10, newProgress: 25,
			wantType:    domain.NotificationProgressUpdate,
			wantMessage: `"Site Build" is now 25% complete`,
		},
		{
			name: "50 notifies progress_update", clientID: "c1",
			oldProgress: 25, newProgress: 50,
			wantType:    domain.NotificationProgressUpdate,
			wantMessage: `"Site Build" is now 50% complete`,
		},
		{
			name: "100 notifies workspace_completed", clientID: "c1",
			oldProgress: 75, newProgress: 100,
			wantType:    domain.NotificationWorkspaceCompleted,
			wantMessage: `"Site Build" has been completed`,
		},
		{name: "non-milestone is silent", clientID: "c1", oldProgress: 25, newProgress: 40},
		{name: "unchanged milestone is silent", clientID: "c1", oldProgress: 50, newProgress: 50},
		{name: "no client is silent", clientID: "", oldProgress: 10, newProgress: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, repo, dispatcher, _ := newNotificationFixture(t, config.NotifyConfig{})

			err := dispatcher.Publish(context.Background(), events.Event{
				Type: events.EventWorkspaceProgressChanged,
				Payload: events.WorkspaceProgressChangedPayload{
					WorkspaceID: "w1",
					Name:        "Site Build",
					ClientID:    tt.clientID,
					OldProgress: tt.oldProgress,
					NewProgress: tt.newProgress,
				},
			})
			require.NoError(t, err)

			got := repo.byUser(tt.clientID)
			if tt.wantType == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantType, got[0].Type)
			assert.Equal(t, tt.wantMessage, got[0].Message)
		})
	}
}

func TestTaskTriggersGatedByConfig(t *testing.T) {
	payload := events.TaskCreatedPayload{
		TaskID:      "t1",
		WorkspaceID: "w1",
		ClientID:    "c1",
		Label:       "Draft homepage copy",
	}

	t.Run("disabled by default", func(t *testing.T) {
		_, repo, dispatcher, _ := newNotificationFixture(t, config.NotifyConfig{})
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
			Type: events.EventTaskCreated, Payload: payload,
		}))
		assert.Empty(t, repo.byUser("c1"))
	})

	t.Run("enabled notifies the client", func(t *testing.T) {
		_, repo, dispatcher, _ := newNotificationFixture(t, config.NotifyConfig{TaskEvents: true})
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
			Type: events.EventTaskCreated, Payload: payload,
		}))
		got := repo.byUser("c1")
		require.Len(t, got, 1)
		assert.Equal(t, domain.NotificationTaskAssigned, got[0].Type)
	})
}

func TestFanOutFailureDoesNotSurface(t *testing.T) {
	_, repo, dispatcher, _ := newNotificationFixture(t, config.NotifyConfig{})
	repo.failCreate = true

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventWorkspaceCreated,
		Payload: events.WorkspaceCreatedPayload{
			WorkspaceID:      "w1",
			Name:             "Brand Refresh",
			ClientID:         "c1",
			AssignedStaffIDs: []string{"s1"},
		},
	})
	assert.NoError(t, err)
}

func TestSendRequiresAdminAndValidType(t *testing.T) {
	svc, repo, _, _ := newNotificationFixture(t, config.NotifyConfig{})
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	staff := &domain.User{ID: "s1", Role: domain.RoleStaff}

	err := svc.Send(context.Background(), staff, &domain.Notification{
		UserID: "c1", Type: domain.NotificationMessage, Title: "t", Message: "m",
	})
	assert.Error(t, err)

	err = svc.Send(context.Background(), admin, &domain.Notification{
		UserID: "c1", Type: "bogus", Title: "t", Message: "m",
	})
	assert.Error(t, err)

	err = svc.Send(context.Background(), admin, &domain.Notification{
		UserID: "c1", Type: domain.NotificationDeadlineReminder, Title: "Reminder", Message: "Due soon",
	})
	require.NoError(t, err)
	assert.Len(t, repo.byUser("c1"), 1)
}

func TestMarkRead(t *testing.T) {
	svc, repo, _, _ := newNotificationFixture(t, config.NotifyConfig{})
	owner := &domain.User{ID: "c1", Role: domain.RoleClient}
	other := &domain.User{ID: "c2", Role: domain.RoleClient}

	n := &domain.Notification{UserID: "c1", Type: domain.NotificationMessage, Title: "t", Message: "m"}
	require.NoError(t, repo.Create(context.Background(), n))

	assert.Error(t, svc.MarkRead(context.Background(), other, n.ID), "foreign notification")
	assert.Error(t, svc.MarkRead(context.Background(), owner, "missing"))

	require.NoError(t, svc.MarkRead(context.Background(), owner, n.ID))
	stored, err := repo.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)

	// already-read is a no-op, not an error
	assert.NoError(t, svc.MarkRead(context.Background(), owner, n.ID))
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	svc, repo, _, _ := newNotificationFixture(t, config.NotifyConfig{})
	user := &domain.User{ID: "c1", Role: domain.RoleClient}

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), &domain.Notification{
			UserID: "c1", Type: domain.NotificationMessage, Title: "t", Message: "m",
		}))
	}

	_, unread, err := svc.ListForUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 3, unread)

	require.NoError(t, svc.MarkAllRead(context.Background(), user))

	_, unread, err = svc.ListForUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}
