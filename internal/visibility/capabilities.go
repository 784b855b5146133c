package visibility

import "github.com/offloadr/connect-api/internal/domain"

// Capability predicates consolidate the per-role permission checks that
// would otherwise be re-derived ad hoc at every call site.

// CanManageUsers limits the user admin surface (role changes, deletes).
func CanManageUsers(user *domain.User) bool {
	return user != nil && user.Role == domain.RoleAdmin
}

// CanManageWorkspaces limits workspace create/delete.
func CanManageWorkspaces(user *domain.User) bool {
	return user != nil && user.Role == domain.RoleAdmin
}

// CanEditTasks allows creating and toggling tasks; clients are read-only.
func CanEditTasks(user *domain.User) bool {
	return user != nil && user.IsTeamMember()
}

// CanSetProgress allows writing the stored progress percentage.
func CanSetProgress(user *domain.User) bool {
	return user != nil && user.IsTeamMember()
}

// CanSeeTeamChannel gates the team-internal message partition of a workspace.
func CanSeeTeamChannel(user *domain.User) bool {
	return user != nil && user.IsTeamMember()
}

// CanUseGlobalChannel gates the cross-workspace staff chat.
func CanUseGlobalChannel(user *domain.User) bool {
	return user != nil && user.IsTeamMember()
}
