package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/config"
	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/repository"
	apperrors "github.com/offloadr/connect-api/pkg/util"
)

// User-facing auth error strings. Unmapped failures fall back to the generic
// internal error produced by the error middleware.
const (
	msgInvalidCredentials = "Invalid email or password. Please check your credentials and try again."
	msgUserNotFound       = "No account found with this email. Please sign up first."
	msgTooManyAttempts    = "Too many failed login attempts. Please try again later or reset your password."
	msgInvalidEmail       = "Please enter a valid email address."
	msgEmailInUse         = "This email is already registered. Please sign in instead."
	msgWeakPassword       = "Password should be at least 6 characters."
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterInput describes a signup payload. Admin accounts are never created
// through signup; they come from promoting an existing user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role // client (default) or staff

	// Client profile fields.
	ClientType             *domain.ClientType
	CompanyName            *string
	Phone                  *string
	TimeZone               *string
	PreferredContactMethod *domain.ContactMethod
	CommunicationFrequency *domain.ContactFrequency

	// Staff profile field; the display label is derived.
	StaffRole *domain.StaffRole
}

// AuthService coordinates registration, login, and password flows.
type AuthService struct {
	users       repository.UserRepository
	resets      repository.PasswordResetRepository
	tokenMgr    *auth.TokenManager
	rdb         *redis.Client
	logger      *zap.Logger
	bcryptCost  int
	resetTTL    time.Duration
	maxAttempts int
	loginWindow time.Duration
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Redis             *redis.Client
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		resets:      deps.PasswordResetRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		rdb:         deps.Redis,
		logger:      deps.Logger,
		bcryptCost:  cfg.Auth.BcryptCost,
		resetTTL:    time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		maxAttempts: cfg.Auth.LoginMaxAttempts,
		loginWindow: cfg.Auth.LoginWindow(),
	}
}

// Register creates a new account with its profile written in the same flow
// that issues the token, so the identity resolver never observes a
// profile-less signup.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, "", time.Time{}, apperrors.NewValidationError(msgInvalidEmail, nil)
	}
	if !auth.StrongEnough(input.Password) {
		return nil, "", time.Time{}, apperrors.NewValidationError(msgWeakPassword, nil)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name required", nil)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleClient
	}
	if role != domain.RoleClient && role != domain.RoleStaff {
		return nil, "", time.Time{}, apperrors.NewValidationError("role must be client or staff", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict(msgEmailInUse, nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         role,
	}
	switch role {
	case domain.RoleClient:
		user.ClientType = input.ClientType
		user.CompanyName = input.CompanyName
		user.Phone = input.Phone
		user.TimeZone = input.TimeZone
		user.PreferredContactMethod = input.PreferredContactMethod
		user.CommunicationFrequency = input.CommunicationFrequency
	case domain.RoleStaff:
		if input.StaffRole != nil {
			if !domain.ValidStaffRole(*input.StaffRole) {
				return nil, "", time.Time{}, apperrors.NewValidationError("unknown staff role", nil)
			}
			user.StaffRole = input.StaffRole
			label := input.StaffRole.Label()
			user.StaffRoleLabel = &label
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account by email and password, throttling repeated
// failures per email when Redis is available.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.checkThrottle(ctx, email); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized(msgUserNotFound)
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return nil, "", time.Time{}, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	s.clearFailures(ctx, email)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout currently no-ops for stateless JWT approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// ChangePassword verifies the current password before updating to the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if !auth.StrongEnough(newPassword) {
		return apperrors.NewValidationError(msgWeakPassword, nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// RequestPasswordReset persists a reset token for the account's email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	if !auth.StrongEnough(newPassword) {
		return apperrors.NewValidationError(msgWeakPassword, nil)
	}

	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewValidationError("invalid reset token", nil)
		}
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("reset token expired or used", nil)
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func throttleKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

func (s *AuthService) checkThrottle(ctx context.Context, email string) error {
	if s.rdb == nil || s.maxAttempts <= 0 {
		return nil
	}
	count, err := s.rdb.Get(ctx, throttleKey(email)).Int()
	if err != nil && err != redis.Nil {
		s.logger.Warn("login throttle check failed", zap.Error(err))
		return nil
	}
	if count >= s.maxAttempts {
		return apperrors.NewTooManyAttempts(msgTooManyAttempts)
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.rdb == nil {
		return
	}
	key := throttleKey(email)
	if err := s.rdb.Incr(ctx, key).Err(); err != nil {
		s.logger.Warn("login throttle incr failed", zap.Error(err))
		return
	}
	_ = s.rdb.Expire(ctx, key, s.loginWindow).Err()
}

func (s *AuthService) clearFailures(ctx context.Context, email string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, throttleKey(email)).Err()
}
