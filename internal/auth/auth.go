package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/timesheet-tracker/internal/user"
)

const TokenTypeBearer = "bearer"

// UserRepository is the slice of the identity store that authentication needs.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// TokenGenerator creates and verifies access tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID, username string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents JWT token claims. Subject carries the username.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        *user.User `json:"user"`
}
