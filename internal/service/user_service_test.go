package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offloadr/connect-api/internal/domain"
	apperrors "github.com/offloadr/connect-api/pkg/util"
)

func TestChangeRoleRejectsSelf(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(&domain.User{ID: "a1", Role: domain.RoleAdmin})
	repo.add(&domain.User{ID: "u1", Role: domain.RoleClient})
	svc := NewUserService(repo)

	err := svc.ChangeRole(context.Background(), admin, admin.ID, domain.RoleStaff)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "You cannot change your own role", domainErr.Message)
	// the write never happened
	assert.Empty(t, repo.roleChanges)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	require.NoError(t, svc.ChangeRole(context.Background(), admin, "u1", domain.RoleStaff))
	assert.Equal(t, []string{"u1"}, repo.roleChanges)
}

func TestChangeRoleValidation(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(&domain.User{ID: "a1", Role: domain.RoleAdmin})
	staff := repo.add(&domain.User{ID: "s1", Role: domain.RoleStaff})
	repo.add(&domain.User{ID: "u1", Role: domain.RoleClient})
	svc := NewUserService(repo)

	assert.Error(t, svc.ChangeRole(context.Background(), staff, "u1", domain.RoleStaff), "non-admin actor")
	assert.Error(t, svc.ChangeRole(context.Background(), admin, "u1", "superuser"), "unknown role")
	assert.Error(t, svc.ChangeRole(context.Background(), admin, "ghost", domain.RoleStaff), "missing target")
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(&domain.User{ID: "a1", Role: domain.RoleAdmin})
	repo.add(&domain.User{ID: "u1", Role: domain.RoleClient})
	svc := NewUserService(repo)

	err := svc.DeleteUser(context.Background(), admin, admin.ID)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "You cannot delete your own account", domainErr.Message)
	assert.Empty(t, repo.deletes)

	require.NoError(t, svc.DeleteUser(context.Background(), admin, "u1"))
	assert.Equal(t, []string{"u1"}, repo.deletes)
}

func TestUpdateProfileScopesFieldsByRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	company := "Acme"
	staffRole := domain.StaffRoleWebDeveloper

	t.Run("client fields apply to clients", func(t *testing.T) {
		client := repo.add(&domain.User{ID: "c1", Role: domain.RoleClient, Name: "Client"})
		updated, err := svc.UpdateProfile(context.Background(), client, ProfileUpdateInput{CompanyName: &company})
		require.NoError(t, err)
		require.NotNil(t, updated.CompanyName)
		assert.Equal(t, "Acme", *updated.CompanyName)
	})

	t.Run("client fields ignored for staff", func(t *testing.T) {
		staff := repo.add(&domain.User{ID: "s1", Role: domain.RoleStaff, Name: "Staff"})
		updated, err := svc.UpdateProfile(context.Background(), staff, ProfileUpdateInput{CompanyName: &company})
		require.NoError(t, err)
		assert.Nil(t, updated.CompanyName)
	})

	t.Run("staff role derives label", func(t *testing.T) {
		staff := repo.add(&domain.User{ID: "s2", Role: domain.RoleStaff, Name: "Staff"})
		updated, err := svc.UpdateProfile(context.Background(), staff, ProfileUpdateInput{StaffRole: &staffRole})
		require.NoError(t, err)
		require.NotNil(t, updated.StaffRoleLabel)
		assert.Equal(t, "Web Developer", *updated.StaffRoleLabel)
	})

	t.Run("unknown staff role rejected", func(t *testing.T) {
		staff := repo.add(&domain.User{ID: "s3", Role: domain.RoleStaff, Name: "Staff"})
		bogus := domain.StaffRole("wizard")
		_, err := svc.UpdateProfile(context.Background(), staff, ProfileUpdateInput{StaffRole: &bogus})
		assert.Error(t, err)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		client := repo.add(&domain.User{ID: "c2", Role: domain.RoleClient, Name: "Client"})
		empty := "   "
		_, err := svc.UpdateProfile(context.Background(), client, ProfileUpdateInput{Name: &empty})
		assert.Error(t, err)
	})
}

func TestListUsersAdminOnly(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(&domain.User{ID: "a1", Role: domain.RoleAdmin})
	staff := repo.add(&domain.User{ID: "s1", Role: domain.RoleStaff})
	client := repo.add(&domain.User{ID: "c1", Role: domain.RoleClient})
	svc := NewUserService(repo)

	users, err := svc.ListUsers(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = svc.ListUsers(context.Background(), staff)
	assert.Error(t, err)

	_, err = svc.ListStaff(context.Background(), client)
	assert.Error(t, err)

	directory, err := svc.ListStaff(context.Background(), staff)
	require.NoError(t, err)
	require.Len(t, directory, 1)
	assert.Equal(t, "s1", directory[0].ID)
}
