// Package devusers provides a static in-memory user registry for local
// development. It stands in for the identity provider: users are defined
// in code, passwords are bcrypt-hashed at construction, and login mints a
// session token the auth middleware accepts. Never enable it in
// production.
package devusers

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"

	"github.com/identity-platform/identity-service/internal/core/domain"
	oidcadapter "github.com/identity-platform/identity-service/internal/infrastructure/oidc"
)

// User is a development user. It implements domain.AppUserInfo directly
// and also exposes the principal capability, so it can serve both as a
// lookup result and as a session principal.
type User struct {
	id           domain.UserID
	username     string
	fullName     string
	email        domain.Email
	profileURL   string
	pictureURL   string
	zoneInfo     *time.Location
	locale       language.Tag
	roles        []string
	passwordHash []byte
}

// UserConfig describes a development user. Username, Email and Password
// are required; FullName is derived from FirstName/LastName with the
// username as last resort. ID defaults to a random UUID.
type UserConfig struct {
	ID         string
	Username   string
	FirstName  string
	LastName   string
	Email      string
	Password   string
	ProfileURL string
	PictureURL string
	ZoneInfo   string
	Locale     string
	Roles      []string
}

// NewUser validates cfg and builds a User with a bcrypt password hash.
func NewUser(cfg UserConfig) (*User, error) {
	if cfg.Username == "" {
		return nil, fmt.Errorf("dev user: username must not be empty")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("dev user %q: password must not be empty", cfg.Username)
	}

	rawID := cfg.ID
	if rawID == "" {
		rawID = uuid.NewString()
	}
	id, err := domain.ParseUserID(rawID)
	if err != nil {
		return nil, fmt.Errorf("dev user %q: %w", cfg.Username, err)
	}
	email, err := domain.ParseEmail(cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("dev user %q: %w", cfg.Username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("dev user %q: hash password: %w", cfg.Username, err)
	}

	return &User{
		id:           id,
		username:     cfg.Username,
		fullName:     deriveFullName(cfg.FirstName, cfg.LastName, cfg.Username),
		email:        email,
		profileURL:   cfg.ProfileURL,
		pictureURL:   cfg.PictureURL,
		zoneInfo:     oidcadapter.ParseZoneInfo(cfg.ZoneInfo),
		locale:       oidcadapter.ParseLocale(cfg.Locale),
		roles:        append([]string(nil), cfg.Roles...),
		passwordHash: hash,
	}, nil
}

func deriveFullName(first, last, username string) string {
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	return username
}

func (u *User) UserID() domain.UserID    { return u.id }
func (u *User) FullName() string         { return u.fullName }
func (u *User) Email() domain.Email      { return u.email }
func (u *User) ProfileURL() string       { return u.profileURL }
func (u *User) PictureURL() string       { return u.pictureURL }
func (u *User) ZoneInfo() *time.Location { return u.zoneInfo }
func (u *User) Locale() language.Tag     { return u.locale }

// AppUserInfo exposes the session-principal capability.
func (u *User) AppUserInfo() domain.AppUserInfo { return u }

// Roles returns the user's role names.
func (u *User) Roles() []string { return append([]string(nil), u.roles...) }

// Registry holds the static development users and serves as both the
// lookup source and the login authenticator.
type Registry struct {
	byID     map[domain.UserID]*User
	byEmail  map[domain.Email]*User
	secret   []byte
	tokenTTL time.Duration
}

// NewRegistry builds a registry from the given users. secret signs the
// session tokens minted by Login.
func NewRegistry(users []*User, secret string, tokenTTL time.Duration) (*Registry, error) {
	if secret == "" {
		return nil, fmt.Errorf("dev registry: token secret must not be empty")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	r := &Registry{
		byID:     make(map[domain.UserID]*User, len(users)),
		byEmail:  make(map[domain.Email]*User, len(users)),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
	for _, u := range users {
		if _, dup := r.byID[u.id]; dup {
			return nil, fmt.Errorf("dev registry: duplicate user id %q", u.id)
		}
		r.byID[u.id] = u
		r.byEmail[u.email] = u
	}
	return r, nil
}

// FindUserInfo resolves a development user by ID. Never fails with an
// infrastructure error; unknown IDs map to domain.ErrUserNotFound.
func (r *Registry) FindUserInfo(_ context.Context, id domain.UserID) (domain.AppUserInfo, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Login verifies the email/password pair and mints an HS256 session token
// carrying the standard OIDC claims the auth middleware reads back.
func (r *Registry) Login(_ context.Context, email, password string) (string, domain.AppUserInfo, error) {
	parsed, err := domain.ParseEmail(email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	user, ok := r.byEmail[parsed]
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(user.passwordHash, []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":                user.id.String(),
		"preferred_username": user.username,
		"name":               user.fullName,
		"email":              user.email.String(),
		"zoneinfo":           user.zoneInfo.String(),
		"locale":             user.locale.String(),
		"roles":              user.roles,
		"exp":                time.Now().Add(r.tokenTTL).Unix(),
	}
	if user.profileURL != "" {
		claims["profile"] = user.profileURL
	}
	if user.pictureURL != "" {
		claims["picture"] = user.pictureURL
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign dev token: %w", err)
	}
	return token, user, nil
}
