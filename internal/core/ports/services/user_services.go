package services

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// UserSvcFacade manages user accounts and local credential checks.
type UserSvcFacade interface {
	// RegisterUser creates a local user with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AuthenticateUser verifies local credentials and returns the user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a Google identity to a local user,
	// creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthSvcFacade wraps the Google sign-in exchange.
type GoogleOAuthSvcFacade interface {
	// AuthCodeURL builds the Google consent redirect URL for a state value.
	AuthCodeURL(state string) string

	// ExchangeCode exchanges an authorization code and validates the ID
	// token, returning the verified user info.
	ExchangeCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error)
}
