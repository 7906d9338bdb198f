package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/dto"
	"github.com/unionbooks/chapter_ledger/internal/platform/config"
	"github.com/unionbooks/chapter_ledger/internal/utils"
)

type authService struct {
	BaseService
	userRepo  portsrepo.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
	now       func() time.Time
}

// AuthServiceOption configures optional auth service dependencies.
type AuthServiceOption func(*authService)

// WithAuthClock overrides the time source.
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) { s.now = now }
}

// NewAuthService creates the registration and login service.
func NewAuthService(userRepo portsrepo.UserRepository, cfg *config.Config, opts ...AuthServiceOption) portssvc.AuthSvcFacade {
	s := &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiryDuration,
		jwtIssuer: cfg.JWTIssuer,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates a new user account with a bcrypt password hash.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", "username", req.Username)
		return nil, err
	}

	s.LogInfo(ctx, "User registered", "user_id", user.UserID)
	return &user, nil
}

// Login verifies the credentials and issues a signed JWT. Wrong username and
// wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to look up user during login")
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		Issuer:    s.jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", "user_id", user.UserID)
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", "user_id", user.UserID)
	return token, user, nil
}
