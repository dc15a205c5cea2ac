// Package auth exposes the authenticated user of the current request.
//
// The HTTP layer authenticates a request, wraps the resulting principal
// and stores it in the request context; everything downstream reads it
// back through Current or Require. The context is passed explicitly, so
// there is no hidden process-global session state.
package auth

import (
	"context"

	"github.com/identity-platform/identity-service/internal/core/domain"
	"github.com/identity-platform/identity-service/pkg/logger"
)

// Principal is the capability a session principal must expose so the
// application can read identity attributes from it. Principal types that
// cannot implement domain.AppUserInfo directly (wrapped third-party user
// objects with their own accessor names) satisfy this instead and
// delegate.
type Principal interface {
	AppUserInfo() domain.AppUserInfo
}

// Anonymous marks a request that passed authentication middleware without
// carrying a user identity. Current treats it as "no user" without
// logging a warning.
type Anonymous struct{}

func (Anonymous) AppUserInfo() domain.AppUserInfo { return nil }

type principalKey struct{}

// WithPrincipal returns a child context carrying the given session
// principal. The value is stored untyped; Current tolerates foreign
// values under the same key.
func WithPrincipal(ctx context.Context, principal any) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// Current returns the authenticated user of the request, if any. The
// second return is false when the context carries no principal, an
// anonymous principal, or a value that does not expose the Principal
// capability. The last case logs a warning: it signals a wiring bug, but
// is deliberately treated as "no identity" rather than an error.
func Current(ctx context.Context) (domain.AppUserInfo, bool) {
	value := ctx.Value(principalKey{})
	if value == nil {
		return nil, false
	}

	principal, ok := value.(Principal)
	if !ok {
		log := logger.Get()
		log.Warn().
			Type("principal_type", value).
			Msg("unexpected principal type in request context")
		return nil, false
	}

	info := principal.AppUserInfo()
	if info == nil {
		return nil, false
	}
	return info, true
}

// Require returns the authenticated user or domain.ErrNoCurrentUser when
// Current would be empty. Use it on code paths where authentication is
// mandatory.
func Require(ctx context.Context) (domain.AppUserInfo, error) {
	info, ok := Current(ctx)
	if !ok {
		return nil, domain.ErrNoCurrentUser
	}
	return info, nil
}
