package service

import (
	"context"
	"strings"

	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/repository"
	"github.com/offloadr/connect-api/internal/visibility"
	apperrors "github.com/offloadr/connect-api/pkg/util"
)

const (
	msgCannotChangeOwnRole    = "You cannot change your own role"
	msgCannotDeleteOwnAccount = "You cannot delete your own account"
)

// UserService covers profile self-service and the admin user-management
// surface.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ProfileUpdateInput carries the self-editable profile fields. Role is
// deliberately absent: a user can never change their own role.
type ProfileUpdateInput struct {
	Name                   *string
	Phone                  *string
	TimeZone               *string
	CompanyName            *string
	ClientType             *domain.ClientType
	PreferredContactMethod *domain.ContactMethod
	CommunicationFrequency *domain.ContactFrequency
	StaffRole              *domain.StaffRole
}

// UpdateProfile applies self-edits to the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, input ProfileUpdateInput) (*domain.User, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.TimeZone != nil {
		user.TimeZone = input.TimeZone
	}

	if user.Role == domain.RoleClient {
		if input.ClientType != nil {
			user.ClientType = input.ClientType
		}
		if input.CompanyName != nil {
			user.CompanyName = input.CompanyName
		}
		if input.PreferredContactMethod != nil {
			user.PreferredContactMethod = input.PreferredContactMethod
		}
		if input.CommunicationFrequency != nil {
			user.CommunicationFrequency = input.CommunicationFrequency
		}
	}

	if user.Role == domain.RoleStaff && input.StaffRole != nil {
		if !domain.ValidStaffRole(*input.StaffRole) {
			return nil, apperrors.NewValidationError("unknown staff role", nil)
		}
		user.StaffRole = input.StaffRole
		label := input.StaffRole.Label()
		user.StaffRoleLabel = &label
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every profile; admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !visibility.CanManageUsers(actor) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	return s.users.List(ctx)
}

// ListStaff returns the staff directory used for workspace assignment and
// direct-message recipient selection.
func (s *UserService) ListStaff(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !visibility.CanSeeTeamChannel(actor) {
		return nil, apperrors.NewForbidden("staff or admin role required")
	}
	return s.users.ListByRole(ctx, domain.RoleStaff)
}

// ChangeRole sets another user's role. The self-role-change rejection is a
// hard rule checked before any write.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.User, targetID string, role domain.Role) error {
	if !visibility.CanManageUsers(actor) {
		return apperrors.NewForbidden("admin role required")
	}
	if actor.ID == targetID {
		return apperrors.NewForbidden(msgCannotChangeOwnRole)
	}
	if !domain.ValidRole(role) {
		return apperrors.NewValidationError("unknown role", nil)
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.users.UpdateRole(ctx, targetID, role)
}

// DeleteUser removes another user's account. Self-delete is rejected before
// any write.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, targetID string) error {
	if !visibility.CanManageUsers(actor) {
		return apperrors.NewForbidden("admin role required")
	}
	if actor.ID == targetID {
		return apperrors.NewForbidden(msgCannotDeleteOwnAccount)
	}
	return s.users.Delete(ctx, targetID)
}
