package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/placement-portal/experience-service/internal/auth"
	"github.com/placement-portal/experience-service/internal/config"
	"github.com/placement-portal/experience-service/internal/domain"
	"github.com/placement-portal/experience-service/internal/repository"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

const userResource = "user"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
	now        func() time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Logger   *zap.Logger
	Clock    func() time.Time
}

// RegisterInput describes a registration request.
type RegisterInput struct {
	Email          string
	Password       string
	Name           string
	Department     string
	GraduationYear *int
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
		logger:     loggerOrNop(deps.Logger),
		now:        clockOrNow(deps.Clock),
	}
}

// Register creates a new student account and signs them in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("invalid email address", map[string]any{"field": "email"})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperrors.NewValidationError("password too long", map[string]any{"field": "password", "maxBytes": auth.MaxPasswordBytes})
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:          email,
		PasswordHash:   hash,
		Name:           name,
		Department:     strings.TrimSpace(input.Department),
		GraduationYear: input.GraduationYear,
		IsVerified:     false,
		CreatedAt:      s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("user already exists", nil)
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.issue(user)
}

// Login authenticates a student by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			auth.PasswordMatches("", password)
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issue(user)
}

// Profile returns the user identified by userID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, userResource)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
