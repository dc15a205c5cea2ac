package ports

import (
	"context"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

// Authenticator verifies a user's credentials and mints a session token.
// Only the development profile provides an implementation; in production
// authentication is handled entirely by the external identity provider.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (token string, info domain.AppUserInfo, err error)
}
