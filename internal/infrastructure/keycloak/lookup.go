// Package keycloak resolves user profiles through Keycloak's Admin REST
// API, authenticated with the OAuth2 client-credentials grant.
package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/text/language"

	"github.com/identity-platform/identity-service/internal/core/domain"
	oidcadapter "github.com/identity-platform/identity-service/internal/infrastructure/oidc"
)

// Lookup implements ports.UserInfoLookup against a Keycloak realm. The
// underlying HTTP client acquires and refreshes its service-account token
// transparently; construct once and Close on shutdown.
type Lookup struct {
	creds  Credentials
	client *http.Client
	log    zerolog.Logger
}

// NewLookup builds a Lookup for the given credentials. The token is
// fetched lazily on the first request, so construction itself performs no
// network I/O.
func NewLookup(creds Credentials, log zerolog.Logger) (*Lookup, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	grant := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.tokenURL(),
	}

	log.Info().
		Str("server_url", creds.ServerURL).
		Str("realm", creds.Realm).
		Msg("keycloak user lookup configured")

	return &Lookup{
		creds:  creds,
		client: grant.Client(context.Background()),
		log:    log,
	}, nil
}

// newLookupWithClient is used by tests to bypass the token exchange.
func newLookupWithClient(creds Credentials, client *http.Client, log zerolog.Logger) *Lookup {
	return &Lookup{creds: creds, client: client, log: log}
}

// userRepresentation mirrors the fields of Keycloak's admin user payload
// this service reads.
type userRepresentation struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	FirstName  string              `json:"firstName"`
	LastName   string              `json:"lastName"`
	Email      string              `json:"email"`
	Attributes map[string][]string `json:"attributes"`
}

func (u *userRepresentation) firstAttribute(name string) string {
	if values := u.Attributes[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// FindUserInfo fetches the user from the Admin REST API. A 404 response
// maps to domain.ErrUserNotFound; transport errors and unexpected
// statuses wrap domain.ErrLookupUnavailable and are never retried here.
func (l *Lookup) FindUserInfo(ctx context.Context, id domain.UserID) (domain.AppUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.creds.adminUserURL(id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrLookupUnavailable, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		l.log.Error().Err(err).Str("user_id", id.String()).Msg("keycloak user lookup failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		l.log.Debug().Str("user_id", id.String()).Msg("user not found in keycloak")
		return nil, domain.ErrUserNotFound
	default:
		l.log.Error().Int("status", resp.StatusCode).Str("user_id", id.String()).Msg("keycloak returned unexpected status")
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrLookupUnavailable, resp.StatusCode)
	}

	var user userRepresentation
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrLookupUnavailable, err)
	}

	return newAdminUserInfo(&user)
}

// Close releases the long-lived remote client resource. Call exactly once
// during shutdown.
func (l *Lookup) Close() {
	l.client.CloseIdleConnections()
}

type adminUserInfo struct {
	userID     domain.UserID
	fullName   string
	email      domain.Email
	profileURL string
	pictureURL string
	zoneInfo   *time.Location
	locale     language.Tag
}

func newAdminUserInfo(user *userRepresentation) (*adminUserInfo, error) {
	userID, err := domain.ParseUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("keycloak user id: %w", err)
	}
	email, err := domain.ParseEmail(user.Email)
	if err != nil {
		return nil, fmt.Errorf("keycloak user email: %w", err)
	}

	return &adminUserInfo{
		userID:     userID,
		fullName:   buildFullName(user),
		email:      email,
		profileURL: user.firstAttribute("profile"),
		pictureURL: user.firstAttribute("picture"),
		zoneInfo:   oidcadapter.ParseZoneInfo(user.firstAttribute("zoneinfo")),
		locale:     oidcadapter.ParseLocale(user.firstAttribute("locale")),
	}, nil
}

func buildFullName(user *userRepresentation) string {
	switch {
	case user.FirstName != "" && user.LastName != "":
		return user.FirstName + " " + user.LastName
	case user.FirstName != "":
		return user.FirstName
	case user.LastName != "":
		return user.LastName
	}
	return user.Username
}

func (u *adminUserInfo) UserID() domain.UserID    { return u.userID }
func (u *adminUserInfo) FullName() string         { return u.fullName }
func (u *adminUserInfo) Email() domain.Email      { return u.email }
func (u *adminUserInfo) ProfileURL() string       { return u.profileURL }
func (u *adminUserInfo) PictureURL() string       { return u.pictureURL }
func (u *adminUserInfo) ZoneInfo() *time.Location { return u.zoneInfo }
func (u *adminUserInfo) Locale() language.Tag     { return u.locale }
