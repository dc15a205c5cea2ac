package domain

import (
	"time"

	"golang.org/x/text/language"
)

// AppUserInfo is a read-only capability for accessing identity attributes
// of an application user. It covers both the current user and arbitrary
// users resolved by ID (audit trails, attribution), so it deliberately
// carries no authorization concerns such as roles or credentials.
//
// Implementations are constructed fresh per authentication event or per
// lookup call and are never mutated afterwards.
type AppUserInfo interface {
	// UserID returns the stable identifier of the user.
	UserID() UserID
	// FullName returns the user's display name.
	FullName() string
	// Email returns the user's email address.
	Email() Email
	// ProfileURL returns the user's profile page URL, or "" when unknown.
	ProfileURL() string
	// PictureURL returns the user's avatar URL, or "" when unknown.
	PictureURL() string
	// ZoneInfo returns the user's time zone, falling back to the server's
	// local zone when the identity source did not provide one.
	ZoneInfo() *time.Location
	// Locale returns the user's preferred locale, falling back to
	// DefaultLocale when the identity source did not provide one.
	Locale() language.Tag
}

// DefaultLocale is the locale assumed for users whose identity source
// carries no locale claim.
var DefaultLocale = language.English
