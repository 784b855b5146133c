package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/offloadr/connect-api/internal/config"
	"github.com/offloadr/connect-api/internal/domain"
	apperrors "github.com/offloadr/connect-api/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeResetRepo) {
	t.Helper()
	users := newFakeUserRepo()
	resets := newFakeResetRepo()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4, // keep test runs fast
			LoginMaxAttempts:        5,
			LoginWindowMinutes:      15,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:          users,
		PasswordResetRepo: resets,
		Logger:            zap.NewNop(),
	})
	return svc, users, resets
}

func TestRegister(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	t.Run("client by default", func(t *testing.T) {
		user, token, _, err := svc.Register(ctx, RegisterInput{
			Name: "Jo", Email: "JO@Example.com", Password: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleClient, user.Role)
		assert.Equal(t, "jo@example.com", user.Email, "email normalized")
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, _, err := svc.Register(ctx, RegisterInput{
			Name: "Jo2", Email: "jo@example.com", Password: "secret1",
		})
		require.Error(t, err)
		assert.Equal(t, "This email is already registered. Please sign in instead.", apperrors.ToDomainError(err).Message)
	})

	t.Run("staff signup derives role label", func(t *testing.T) {
		sr := domain.StaffRoleCopywriter
		user, _, _, err := svc.Register(ctx, RegisterInput{
			Name: "Sam", Email: "sam@example.com", Password: "secret1",
			Role: domain.RoleStaff, StaffRole: &sr,
		})
		require.NoError(t, err)
		require.NotNil(t, user.StaffRoleLabel)
		assert.Equal(t, "Copywriter", *user.StaffRoleLabel)
	})

	t.Run("admin signup rejected", func(t *testing.T) {
		_, _, _, err := svc.Register(ctx, RegisterInput{
			Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: domain.RoleAdmin,
		})
		assert.Error(t, err)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		_, _, _, err := svc.Register(ctx, RegisterInput{
			Name: "Al", Email: "al@example.com", Password: "12345",
		})
		require.Error(t, err)
		assert.Equal(t, "Password should be at least 6 characters.", apperrors.ToDomainError(err).Message)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		_, _, _, err := svc.Register(ctx, RegisterInput{
			Name: "Al", Email: "not-an-email", Password: "secret1",
		})
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Jo", Email: "jo@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, token, _, err := svc.Login(ctx, "JO@example.com ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "jo@example.com", user.Email)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "jo@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password. Please check your credentials and try again.", apperrors.ToDomainError(err).Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "ghost@example.com", "secret1")
		require.Error(t, err)
		assert.Equal(t, "No account found with this email. Please sign up first.", apperrors.ToDomainError(err).Message)
	})
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Jo", Email: "jo@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	assert.Error(t, svc.ChangePassword(ctx, user.ID, "wrong", "newsecret"))
	assert.Error(t, svc.ChangePassword(ctx, user.ID, "secret1", "short"))

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "secret1", "newsecret"))
	_, _, _, err = svc.Login(ctx, "jo@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Jo", Email: "jo@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(ctx, "jo@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token.Token, "resetpass"))

	_, _, _, err = svc.Login(ctx, "jo@example.com", "resetpass")
	assert.NoError(t, err)

	// a token is single-use
	assert.Error(t, svc.ConfirmPasswordReset(ctx, token.Token, "another1"))
	assert.Error(t, svc.ConfirmPasswordReset(ctx, "bogus", "another1"))
}
