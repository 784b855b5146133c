// Package visibility holds the role-based read rules: which workspaces,
// messages, and channels a given user observes. Every list endpoint and
// stream subscription narrows its result through these predicates so the
// rules live in one place instead of being re-derived per handler.
package visibility

import (
	"github.com/offloadr/connect-api/internal/domain"
)

// VisibleWorkspaces returns the subset of workspaces the user may observe.
// Clients see only workspaces they own; a workspace with an empty ClientID is
// internal-only and never returned to any client. Staff see workspaces they
// are assigned to. Admins see everything.
func VisibleWorkspaces(user *domain.User, workspaces []domain.Workspace) []domain.Workspace {
	if user == nil {
		return nil
	}
	if user.Role == domain.RoleAdmin {
		return workspaces
	}

	out := make([]domain.Workspace, 0, len(workspaces))
	for _, ws := range workspaces {
		if CanAccessWorkspace(user, &ws) {
			out = append(out, ws)
		}
	}
	return out
}

// CanAccessWorkspace reports whether the user may open the workspace at all.
func CanAccessWorkspace(user *domain.User, ws *domain.Workspace) bool {
	if user == nil || ws == nil {
		return false
	}
	switch user.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleStaff:
		return ws.HasAssignedStaff(user.ID)
	case domain.RoleClient:
		return ws.ClientID != "" && ws.ClientID == user.ID
	}
	return false
}

// VisibleWorkspaceMessages filters a workspace channel for the user. Clients
// receive only the client partition; staff and admin receive both partitions
// (the composer's active tab decides what is rendered, not what is fetched).
func VisibleWorkspaceMessages(user *domain.User, messages []domain.Message) []domain.Message {
	if user == nil {
		return nil
	}
	if user.IsTeamMember() {
		return messages
	}

	out := make([]domain.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Type == domain.MessageTypeClient {
			out = append(out, msg)
		}
	}
	return out
}

// VisibleGlobalMessages filters the global staff channel. Clients never see
// it. Broadcasts reach every staff/admin; direct messages reach only sender
// and recipient, except admins, who see every direct message. The admin
// carve-out is the oversight exception: it is intentional, not an accident
// of the query shape, and is kept as an explicit branch so the product can
// revisit it.
func VisibleGlobalMessages(user *domain.User, messages []domain.Message) []domain.Message {
	if user == nil || !user.IsTeamMember() {
		return nil
	}
	if user.Role == domain.RoleAdmin {
		return messages
	}

	out := make([]domain.Message, 0, len(messages))
	for _, msg := range messages {
		if !msg.IsDirect() {
			out = append(out, msg)
			continue
		}
		if msg.SenderID == user.ID || *msg.RecipientID == user.ID {
			out = append(out, msg)
		}
	}
	return out
}
