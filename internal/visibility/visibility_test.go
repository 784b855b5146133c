package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offloadr/connect-api/internal/domain"
)

func user(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Role: role}
}

func ids(workspaces []domain.Workspace) []string {
	out := make([]string, 0, len(workspaces))
	for _, ws := range workspaces {
		out = append(out, ws.ID)
	}
	return out
}

func TestVisibleWorkspaces(t *testing.T) {
	workspaces := []domain.Workspace{
		{ID: "w1", ClientID: "c1", AssignedStaffIDs: []string{"s1"}},
		{ID: "w2", ClientID: "c2", AssignedStaffIDs: []string{"s1", "s2"}},
		{ID: "w3", ClientID: "c1"},
		{ID: "w4", ClientID: "", AssignedStaffIDs: []string{"s2"}}, // internal-only
	}

	tests := []struct {
		name string
		user *domain.User
		want []string
	}{
		{name: "admin sees everything", user: user("a1", domain.RoleAdmin), want: []string{"w1", "w2", "w3", "w4"}},
		{name: "staff sees assigned only", user: user("s1", domain.RoleStaff), want: []string{"w1", "w2"}},
		{name: "staff assigned to internal workspace", user: user("s2", domain.RoleStaff), want: []string{"w2", "w4"}},
		{name: "unassigned staff sees nothing", user: user("s3", domain.RoleStaff), want: []string{}},
		{name: "client sees own workspaces", user: user("c1", domain.RoleClient), want: []string{"w1", "w3"}},
		{name: "other client sees own", user: user("c2", domain.RoleClient), want: []string{"w2"}},
		{name: "client never sees internal workspace", user: user("", domain.RoleClient), want: []string{}},
		{name: "nil user sees nothing", user: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleWorkspaces(tt.user, workspaces)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestCanAccessWorkspace(t *testing.T) {
	ws := &domain.Workspace{ID: "w1", ClientID: "c1", AssignedStaffIDs: []string{"s1"}}
	internal := &domain.Workspace{ID: "w2", AssignedStaffIDs: []string{"s1"}}

	assert.True(t, CanAccessWorkspace(user("a1", domain.RoleAdmin), ws))
	assert.True(t, CanAccessWorkspace(user("s1", domain.RoleStaff), ws))
	assert.False(t, CanAccessWorkspace(user("s2", domain.RoleStaff), ws))
	assert.True(t, CanAccessWorkspace(user("c1", domain.RoleClient), ws))
	assert.False(t, CanAccessWorkspace(user("c2", domain.RoleClient), ws))

	// empty ClientID must never match an empty user id
	assert.False(t, CanAccessWorkspace(user("", domain.RoleClient), internal))
	assert.False(t, CanAccessWorkspace(nil, ws))
	assert.False(t, CanAccessWorkspace(user("a1", domain.RoleAdmin), nil))
}

func TestVisibleWorkspaceMessages(t *testing.T) {
	messages := []domain.Message{
		{ID: "m1", Type: domain.MessageTypeClient},
		{ID: "m2", Type: domain.MessageTypeStaff},
		{ID: "m3", Type: domain.MessageTypeClient},
	}

	t.Run("client gets only client partition", func(t *testing.T) {
		got := VisibleWorkspaceMessages(user("c1", domain.RoleClient), messages)
		require.Len(t, got, 2)
		assert.Equal(t, "m1", got[0].ID)
		assert.Equal(t, "m3", got[1].ID)
	})

	t.Run("staff gets both partitions", func(t *testing.T) {
		got := VisibleWorkspaceMessages(user("s1", domain.RoleStaff), messages)
		assert.Len(t, got, 3)
	})

	t.Run("admin gets both partitions", func(t *testing.T) {
		got := VisibleWorkspaceMessages(user("a1", domain.RoleAdmin), messages)
		assert.Len(t, got, 3)
	})
}

func TestVisibleGlobalMessages(t *testing.T) {
	s2 := "s2"
	s3 := "s3"
	// b* are broadcasts; d1 is s1 -> s2, d2 is s2 -> s3
	messages := []domain.Message{
		{ID: "b1", Type: domain.MessageTypeStaff},
		{ID: "d1", Type: domain.MessageTypeStaff, SenderID: "s1", RecipientID: &s2},
		{ID: "d2", Type: domain.MessageTypeStaff, SenderID: "s2", RecipientID: &s3},
		{ID: "b2", Type: domain.MessageTypeStaff},
	}

	t.Run("staff sees broadcasts plus own DMs", func(t *testing.T) {
		got := VisibleGlobalMessages(user("s1", domain.RoleStaff), messages)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"b1", "d1", "b2"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("recipient sees DM addressed to them", func(t *testing.T) {
		got := VisibleGlobalMessages(user("s3", domain.RoleStaff), messages)
		require.Len(t, got, 3)
		assert.Equal(t, "d2", got[1].ID)
	})

	t.Run("uninvolved staff sees only broadcasts", func(t *testing.T) {
		got := VisibleGlobalMessages(user("s4", domain.RoleStaff), messages)
		require.Len(t, got, 2)
	})

	t.Run("admin sees every DM", func(t *testing.T) {
		got := VisibleGlobalMessages(user("a1", domain.RoleAdmin), messages)
		assert.Len(t, got, 4)
	})

	t.Run("client sees nothing", func(t *testing.T) {
		assert.Nil(t, VisibleGlobalMessages(user("c1", domain.RoleClient), messages))
	})
}

func TestCapabilities(t *testing.T) {
	admin := user("a1", domain.RoleAdmin)
	staff := user("s1", domain.RoleStaff)
	client := user("c1", domain.RoleClient)

	assert.True(t, CanManageUsers(admin))
	assert.False(t, CanManageUsers(staff))
	assert.False(t, CanManageUsers(client))

	assert.True(t, CanManageWorkspaces(admin))
	assert.False(t, CanManageWorkspaces(staff))

	for _, pred := range []func(*domain.User) bool{CanEditTasks, CanSetProgress, CanSeeTeamChannel, CanUseGlobalChannel} {
		assert.True(t, pred(admin))
		assert.True(t, pred(staff))
		assert.False(t, pred(client))
		assert.False(t, pred(nil))
	}
}
