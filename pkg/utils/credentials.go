package utils

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/jakechorley/oncall-scheduler/internal/config"
)

// OAuth scopes for Google APIs
const (
	ScopeSheets    = "https://www.googleapis.com/auth/spreadsheets"
	ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"
)

// JWTConfig builds a service-account config for the given scopes.
// subject is the user to impersonate and may be empty.
func JWTConfig(sa *config.ServiceAccount, subject string, scopes ...string) (*jwt.Config, error) {
	if sa == nil || len(sa.Raw) == 0 {
		return nil, fmt.Errorf("service account credentials not loaded")
	}
	if len(scopes) == 0 {
		return nil, fmt.Errorf("at least one scope is required")
	}

	jwtConfig, err := google.JWTConfigFromJSON(sa.Raw, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt config: %w", err)
	}
	jwtConfig.Subject = subject

	return jwtConfig, nil
}

// SheetsHTTPClient returns an authorised client for the Sheets API
func SheetsHTTPClient(ctx context.Context, sa *config.ServiceAccount) (*http.Client, error) {
	jwtConfig, err := JWTConfig(sa, "", ScopeSheets)
	if err != nil {
		return nil, err
	}
	return jwtConfig.Client(ctx), nil
}

// GmailHTTPClient returns an authorised client that sends mail as sender.
// The service account needs domain-wide delegation for the sender's domain.
func GmailHTTPClient(ctx context.Context, sa *config.ServiceAccount, sender string) (*http.Client, error) {
	if sender == "" {
		return nil, fmt.Errorf("gmail sender is required")
	}
	jwtConfig, err := JWTConfig(sa, sender, ScopeGmailSend)
	if err != nil {
		return nil, err
	}
	return jwtConfig.Client(ctx), nil
}
