package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/user"
)

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

// NewService creates a new auth service
func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Register creates an active account. Email and username must both be unused.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*user.User, error) {
	dto.Email = strings.TrimSpace(dto.Email)
	dto.Username = strings.TrimSpace(dto.Username)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, dto.Email, dto.Username)
	if err != nil {
		s.logger.Error("failed to check existing user", "error", err, "username", dto.Username)
		return nil, err
	}
	if exists {
		s.logger.Warn("registration rejected: user exists", "username", dto.Username)
		return nil, internal.ErrUserExists
	}

	hash, err := s.HashPassword(dto.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, internal.NewValidationFieldError("password", err.Error(), internal.ErrCodeValidationFailed)
	}
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		Username:     dto.Username,
		FullName:     dto.FullName,
		Role:         dto.RoleOrDefault(),
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// Login verifies credentials and issues an access token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(u.PasswordHash, dto.Password) {
		return nil, internal.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, internal.ErrUserInactive
	}

	token, err := s.tokenGenerator.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		User:        u,
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// ResolveActor turns a bearer token into the acting identity.
func (s *Service) ResolveActor(ctx context.Context, tokenString string) (*coreUser.Actor, error) {
	claims, err := s.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, internal.ErrUserInactive
	}

	return u.Actor(), nil
}

// Me returns the stored profile of the acting user.
func (s *Service) Me(ctx context.Context, actor *coreUser.Actor) (*user.User, error) {
	if actor == nil {
		return nil, internal.ErrMissingToken
	}
	return s.userRepo.GetByID(ctx, actor.ID)
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
