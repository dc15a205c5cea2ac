package domain

import "errors"

// ErrInvalidUserID is returned when a raw user ID fails validation.
var ErrInvalidUserID = errors.New("invalid user id")

// UserID is a domain primitive wrapping the identity provider's opaque
// subject identifier. Two UserIDs are equal when their underlying strings
// are equal; the struct is comparable and usable as a map key.
type UserID struct {
	id string
}

// ParseUserID wraps a raw subject string. The provider treats subjects as
// opaque, so the only rule enforced here is non-emptiness.
func ParseUserID(raw string) (UserID, error) {
	if raw == "" {
		return UserID{}, ErrInvalidUserID
	}
	return UserID{id: raw}, nil
}

// IsZero reports whether the ID is the uninitialised zero value.
func (u UserID) IsZero() bool {
	return u.id == ""
}

func (u UserID) String() string {
	return u.id
}

// MarshalText serialises the ID as its plain string form. Together with
// UnmarshalText this is the storage-column conversion boundary.
func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.id), nil
}

func (u *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
