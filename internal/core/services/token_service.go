package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/utils"
)

// tokenService issues HS256 access tokens.
type tokenService struct {
	secret string
	issuer string
	expiry time.Duration
}

// NewTokenService creates a new token service.
func NewTokenService(secret, issuer string, expiry time.Duration) portssvc.TokenSvcFacade {
	return &tokenService{secret: secret, issuer: issuer, expiry: expiry}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(_ context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiry)
	token, err := utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}
