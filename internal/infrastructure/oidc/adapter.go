// Package oidc adapts OpenID Connect claims into the application's user
// info model. The actual protocol handshake and token validation belong
// to the surrounding security layer; this package only maps the claims it
// produced.
package oidc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zitadel/oidc/v3/pkg/oidc"
	"golang.org/x/text/language"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

// Principal wraps an authenticated set of OIDC claims. The underlying
// oidc.UserInfo keeps its own accessor surface, so the application
// capability is exposed through delegation instead.
type Principal struct {
	claims *oidc.UserInfo
	info   domain.AppUserInfo
}

// NewPrincipal builds a session principal from validated OIDC claims.
func NewPrincipal(claims *oidc.UserInfo) (*Principal, error) {
	info, err := FromUserInfo(claims)
	if err != nil {
		return nil, err
	}
	return &Principal{claims: claims, info: info}, nil
}

// AppUserInfo exposes the application-facing identity capability.
func (p *Principal) AppUserInfo() domain.AppUserInfo { return p.info }

// Claims returns the raw OIDC claims the principal was built from.
func (p *Principal) Claims() *oidc.UserInfo { return p.claims }

type claimsUserInfo struct {
	userID     domain.UserID
	fullName   string
	email      domain.Email
	profileURL string
	pictureURL string
	zoneInfo   *time.Location
	locale     language.Tag
}

func (u *claimsUserInfo) UserID() domain.UserID    { return u.userID }
func (u *claimsUserInfo) FullName() string         { return u.fullName }
func (u *claimsUserInfo) Email() domain.Email      { return u.email }
func (u *claimsUserInfo) ProfileURL() string       { return u.profileURL }
func (u *claimsUserInfo) PictureURL() string       { return u.pictureURL }
func (u *claimsUserInfo) ZoneInfo() *time.Location { return u.zoneInfo }
func (u *claimsUserInfo) Locale() language.Tag     { return u.locale }

// FromUserInfo maps OIDC claims to domain.AppUserInfo. The subject and
// email claims are mandatory; zoneinfo and locale fall back to defaults
// on absence or parse failure because display preferences are never
// critical path.
func FromUserInfo(claims *oidc.UserInfo) (domain.AppUserInfo, error) {
	userID, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("oidc subject: %w", err)
	}
	email, err := domain.ParseEmail(claims.Email)
	if err != nil {
		return nil, fmt.Errorf("oidc email claim: %w", err)
	}

	var localeClaim string
	if claims.Locale != nil {
		localeClaim = claims.Locale.Tag().String()
	}

	return &claimsUserInfo{
		userID:     userID,
		fullName:   fullNameFromClaims(claims),
		email:      email,
		profileURL: claims.Profile,
		pictureURL: claims.Picture,
		zoneInfo:   ParseZoneInfo(claims.Zoneinfo),
		locale:     ParseLocale(localeClaim),
	}, nil
}

// FromClaims maps a generic claim set (e.g. decoded JWT claims) through
// oidc.UserInfo into domain.AppUserInfo.
func FromClaims(claims map[string]any) (*Principal, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("encode claims: %w", err)
	}
	var info oidc.UserInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}
	return NewPrincipal(&info)
}

func fullNameFromClaims(claims *oidc.UserInfo) string {
	if claims.Name != "" {
		return claims.Name
	}
	switch {
	case claims.GivenName != "" && claims.FamilyName != "":
		return claims.GivenName + " " + claims.FamilyName
	case claims.GivenName != "":
		return claims.GivenName
	case claims.FamilyName != "":
		return claims.FamilyName
	case claims.PreferredUsername != "":
		return claims.PreferredUsername
	}
	return claims.Subject
}

// ParseZoneInfo parses a zoneinfo claim such as "Europe/Helsinki". Absent
// or unparseable values fall back to the server's local zone.
func ParseZoneInfo(zoneInfo string) *time.Location {
	if zoneInfo == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(zoneInfo)
	if err != nil {
		return time.Local
	}
	return loc
}

// ParseLocale parses a locale claim such as "en-US". Absent or
// unparseable values fall back to domain.DefaultLocale.
func ParseLocale(locale string) language.Tag {
	if locale == "" {
		return domain.DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		return domain.DefaultLocale
	}
	return tag
}
