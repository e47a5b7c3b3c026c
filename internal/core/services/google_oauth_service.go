package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
)

// googleOAuthService implements the Google sign-in exchange. The ID token
// returned alongside the access token is validated against the configured
// client ID; we never trust the payload without that check.
type googleOAuthService struct {
	clientID     string
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new Google OAuth service.
func NewGoogleOAuthService(clientID, clientSecret, redirectURL string) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		clientID: clientID,
		oauth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

func (s *googleOAuthService) AuthCodeURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("token response did not include an id_token")
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google id token validation failed: %w", err)
	}

	info := &domain.GoogleUserInfo{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if info.Email == "" {
		return nil, errors.New("google id token did not include an email claim")
	}
	return info, nil
}
