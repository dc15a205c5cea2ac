package ports

import (
	"context"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

// UserInfoLookup resolves full profile information for any user in the
// system by ID, not just the current one. Typical callers are audit
// trails and attribution displays.
//
// FindUserInfo returns domain.ErrUserNotFound when no such user exists.
// Infrastructure failures surface as errors wrapping
// domain.ErrLookupUnavailable so callers can tell "no such user" apart
// from "identity store down".
type UserInfoLookup interface {
	FindUserInfo(ctx context.Context, id domain.UserID) (domain.AppUserInfo, error)
}
