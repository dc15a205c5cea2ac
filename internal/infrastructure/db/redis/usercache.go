package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/identity-platform/identity-service/internal/core/domain"
	"github.com/identity-platform/identity-service/internal/core/ports"
	oidcadapter "github.com/identity-platform/identity-service/internal/infrastructure/oidc"
)

const defaultUserCacheTTL = time.Hour

// UserInfoCache decorates a UserInfoLookup with a Redis-backed cache,
// giving cached lookups that survive process restarts and are shared
// across replicas. Only successful lookups are stored; not-found results
// and failures always fall through to the delegate on the next call.
// Redis being down degrades to delegate-only lookups rather than failing.
type UserInfoCache struct {
	client   *redis.Client
	delegate ports.UserInfoLookup
	ttl      time.Duration
	log      zerolog.Logger
}

// NewUserInfoCache wraps delegate with a Redis cache. A non-positive ttl
// falls back to one hour.
func NewUserInfoCache(client *redis.Client, delegate ports.UserInfoLookup, ttl time.Duration, log zerolog.Logger) (*UserInfoCache, error) {
	if delegate == nil {
		return nil, fmt.Errorf("user info cache: delegate must be set")
	}
	if ttl <= 0 {
		ttl = defaultUserCacheTTL
	}
	return &UserInfoCache{client: client, delegate: delegate, ttl: ttl, log: log}, nil
}

// cachedUserInfo is the JSON cache record. Zone and locale are stored as
// their string forms and re-parsed on read with the usual safe fallbacks.
type cachedUserInfo struct {
	UserID     string `json:"user_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	ProfileURL string `json:"profile_url,omitempty"`
	PictureURL string `json:"picture_url,omitempty"`
	ZoneInfo   string `json:"zoneinfo,omitempty"`
	Locale     string `json:"locale,omitempty"`
}

func (c *UserInfoCache) FindUserInfo(ctx context.Context, id domain.UserID) (domain.AppUserInfo, error) {
	key := c.key(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		info, decodeErr := decodeCachedUserInfo(raw)
		if decodeErr == nil {
			return info, nil
		}
		c.log.Warn().Err(decodeErr).Str("user_id", id.String()).Msg("dropping undecodable cached user info")
		_ = c.client.Del(ctx, key).Err()
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("user_id", id.String()).Msg("user info cache read failed, falling through")
	}

	info, err := c.delegate.FindUserInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(encodeCachedUserInfo(info)); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("user_id", id.String()).Msg("user info cache write failed")
		}
	}
	return info, nil
}

func (c *UserInfoCache) key(id domain.UserID) string {
	return "userinfo:" + id.String()
}

func encodeCachedUserInfo(info domain.AppUserInfo) cachedUserInfo {
	return cachedUserInfo{
		UserID:     info.UserID().String(),
		FullName:   info.FullName(),
		Email:      info.Email().String(),
		ProfileURL: info.ProfileURL(),
		PictureURL: info.PictureURL(),
		ZoneInfo:   info.ZoneInfo().String(),
		Locale:     info.Locale().String(),
	}
}

func decodeCachedUserInfo(raw []byte) (domain.AppUserInfo, error) {
	var record cachedUserInfo
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}

	userID, err := domain.ParseUserID(record.UserID)
	if err != nil {
		return nil, err
	}
	email, err := domain.ParseEmail(record.Email)
	if err != nil {
		return nil, err
	}

	return &restoredUserInfo{
		userID:     userID,
		fullName:   record.FullName,
		email:      email,
		profileURL: record.ProfileURL,
		pictureURL: record.PictureURL,
		zoneInfo:   oidcadapter.ParseZoneInfo(record.ZoneInfo),
		locale:     oidcadapter.ParseLocale(record.Locale),
	}, nil
}

type restoredUserInfo struct {
	userID     domain.UserID
	fullName   string
	email      domain.Email
	profileURL string
	pictureURL string
	zoneInfo   *time.Location
	locale     language.Tag
}

func (u *restoredUserInfo) UserID() domain.UserID    { return u.userID }
func (u *restoredUserInfo) FullName() string         { return u.fullName }
func (u *restoredUserInfo) Email() domain.Email      { return u.email }
func (u *restoredUserInfo) ProfileURL() string       { return u.profileURL }
func (u *restoredUserInfo) PictureURL() string       { return u.pictureURL }
func (u *restoredUserInfo) ZoneInfo() *time.Location { return u.zoneInfo }
func (u *restoredUserInfo) Locale() language.Tag     { return u.locale }
