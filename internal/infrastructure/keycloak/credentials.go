package keycloak

import (
	"fmt"
	"net/url"
	"strings"
)

// Credentials holds the connection details for the Keycloak Admin REST
// API: the base server URL, the realm, and a client id/secret pair with
// permission to read users (typically the realm-management "view-users"
// role).
type Credentials struct {
	ServerURL    string
	Realm        string
	ClientID     string
	ClientSecret string
}

// Validate reports whether all required fields are present.
func (c Credentials) Validate() error {
	switch {
	case c.ServerURL == "":
		return fmt.Errorf("keycloak credentials: server url must not be empty")
	case c.Realm == "":
		return fmt.Errorf("keycloak credentials: realm must not be empty")
	case c.ClientID == "":
		return fmt.Errorf("keycloak credentials: client id must not be empty")
	case c.ClientSecret == "":
		return fmt.Errorf("keycloak credentials: client secret must not be empty")
	}
	return nil
}

const realmsSegment = "/realms/"

// CredentialsFromIssuer derives Credentials from a standard Keycloak OIDC
// issuer URI of the form "https://host/realms/{realm}". This lets the
// admin client reuse the issuer already configured for authentication.
func CredentialsFromIssuer(issuerURI, clientID, clientSecret string) (Credentials, error) {
	idx := strings.Index(issuerURI, realmsSegment)
	if idx < 0 {
		return Credentials{}, fmt.Errorf("oidc issuer does not appear to be keycloak: %q", issuerURI)
	}

	serverURL := issuerURI[:idx]
	realm := issuerURI[idx+len(realmsSegment):]
	if slash := strings.IndexByte(realm, '/'); slash >= 0 {
		realm = realm[:slash]
	}
	if realm == "" {
		return Credentials{}, fmt.Errorf("realm name is empty in oidc issuer: %q", issuerURI)
	}

	creds := Credentials{
		ServerURL:    serverURL,
		Realm:        realm,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// tokenURL returns the client-credentials token endpoint for the realm.
func (c Credentials) tokenURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.ServerURL, c.Realm)
}

// adminUserURL returns the Admin REST endpoint for a single user. The ID
// is path-escaped so it always stays a single path segment.
func (c Credentials) adminUserURL(userID string) string {
	return fmt.Sprintf("%s/admin/realms/%s/users/%s", c.ServerURL, c.Realm, url.PathEscape(userID))
}
