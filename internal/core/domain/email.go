package domain

import (
	"errors"
	"strings"
)

// ErrInvalidEmail is returned when a raw string fails email validation.
var ErrInvalidEmail = errors.New("invalid email address")

const (
	maxEmailLength     = 320
	maxLocalPartLength = 64
	maxDomainLength    = 253
	maxLabelLength     = 63
)

// Email is a domain primitive representing a validated email address.
// Equality is by underlying string; the struct is comparable.
type Email struct {
	address string
}

// ParseEmail validates raw and wraps it in an Email.
func ParseEmail(raw string) (Email, error) {
	if !IsValidEmail(raw) {
		return Email{}, ErrInvalidEmail
	}
	return Email{address: raw}, nil
}

func (e Email) String() string {
	return e.address
}

// IsZero reports whether the Email is the uninitialised zero value.
func (e Email) IsZero() bool {
	return e.address == ""
}

// IsValidEmail reports whether raw is an acceptable email address:
// at most 320 characters, exactly one "@", a local part of at most 64
// characters from a restricted character set without leading, trailing
// or consecutive dots, and a domain of at most 253 characters made of
// alphanumeric-and-hyphen labels of at most 63 characters each.
func IsValidEmail(raw string) bool {
	if raw == "" || len(raw) > maxEmailLength {
		return false
	}
	at := strings.IndexByte(raw, '@')
	if at < 0 || strings.IndexByte(raw[at+1:], '@') >= 0 {
		return false
	}
	return isValidLocalPart(raw[:at]) && isValidDomainName(raw[at+1:])
}

func isValidLocalPart(local string) bool {
	if local == "" || len(local) > maxLocalPartLength {
		return false
	}
	for i := 0; i < len(local); i++ {
		if !isLocalPartChar(local[i]) {
			return false
		}
	}
	if strings.Contains(local, "..") {
		return false
	}
	return local[0] != '.' && local[len(local)-1] != '.'
}

func isLocalPartChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte(".!#$%&'*+/=?^_`{|}~-", c) >= 0
}

func isValidDomainName(domain string) bool {
	if domain == "" || len(domain) > maxDomainLength {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" || len(label) > maxLabelLength {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
	}
	return true
}
