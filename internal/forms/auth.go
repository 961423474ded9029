package forms

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	formsapi "google.golang.org/api/forms/v1"
)

// Scopes the refresh token is expected to have been granted.
var Scopes = []string{
	formsapi.FormsBodyScope,
	formsapi.FormsResponsesReadonlyScope,
}

// Credentials are the installed-app OAuth2 client plus a long-lived refresh token.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Validate reports every missing field at once.
func (c Credentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, "client id")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		missing = append(missing, "client secret")
	}
	if strings.TrimSpace(c.RefreshToken) == "" {
		missing = append(missing, "refresh token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("google credentials incomplete: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// TokenSource exchanges the refresh token for access tokens on demand and
// caches them until expiry.
func (c Credentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
	return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: c.RefreshToken})
}
