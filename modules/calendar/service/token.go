package service

import (
	"context"
	"encoding/json"
	"os"

	"calendar-insights/core/config"
	"calendar-insights/core/errors"
	"calendar-insights/core/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var calendarScopes = []string{"https://www.googleapis.com/auth/calendar.readonly"}

// TokenManager loads the OAuth2 token provisioned out of band, refreshes it
// when expired and persists the refreshed token back to disk. The interactive
// consent flow is out of scope here.
type TokenManager struct {
	tokenFile string
	oauthCfg  *oauth2.Config
}

func NewTokenManager(cfg config.GoogleConfig) *TokenManager {
	return &TokenManager{
		tokenFile: cfg.TokenFile,
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       calendarScopes,
		},
	}
}

// AccessToken returns a valid bearer token or an AUTHENTICATION error when
// no usable credential exists.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	token, err := m.load()
	if err != nil {
		return "", errors.NewAppError(errors.ErrAuthentication,
			"no OAuth2 token available; run the authorization flow to provision one", err)
	}

	if token.Valid() {
		return token.AccessToken, nil
	}

	if token.RefreshToken == "" {
		return "", errors.NewAppError(errors.ErrAuthentication,
			"OAuth2 token expired and no refresh token available", nil)
	}

	logger.Info("TokenManager:AccessToken:Refreshing")
	refreshed, err := m.oauthCfg.TokenSource(ctx, token).Token()
	if err != nil {
		return "", errors.NewAppError(errors.ErrAuthentication, "failed to refresh OAuth2 token", err)
	}

	if err := m.save(refreshed); err != nil {
		// The refreshed token still works for this run.
		logger.Warn("TokenManager:AccessToken:SaveFailed", "error", err)
	}
	return refreshed.AccessToken, nil
}

func (m *TokenManager) load() (*oauth2.Token, error) {
	raw, err := os.ReadFile(m.tokenFile)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (m *TokenManager) save(token *oauth2.Token) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(m.tokenFile, raw, 0o600)
}
