package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/identity-platform/identity-service/internal/api/metrics"
	"github.com/identity-platform/identity-service/internal/core/domain"
	"github.com/identity-platform/identity-service/internal/core/ports"
)

const (
	defaultCacheMaxSize          = 1000
	defaultCacheExpireAfterWrite = 15 * time.Minute
)

// ErrMissingDelegate is returned by NewCachingUserInfoLookup when no
// delegate lookup is configured.
var ErrMissingDelegate = errors.New("caching lookup: delegate must be set")

// CachingLookupConfig configures a CachingUserInfoLookup.
type CachingLookupConfig struct {
	// Delegate is the underlying lookup consulted on cache misses. Required.
	Delegate ports.UserInfoLookup
	// MaxSize bounds the number of cached entries. Zero means the default
	// of 1000; the least recently used entry is evicted when full.
	MaxSize int
	// ExpireAfterWrite evicts entries this long after insertion. Zero means
	// the default of 15 minutes; a negative value disables write expiry.
	ExpireAfterWrite time.Duration
	// ExpireAfterAccess evicts entries this long after the last read.
	// Zero (the default) disables access expiry. Both policies may be
	// combined; whichever fires first evicts the entry.
	ExpireAfterAccess time.Duration
}

// CachingUserInfoLookup decorates a UserInfoLookup with a bounded,
// time-expiring in-memory cache.
//
// Only successful lookups are cached. Not-found results and failures are
// never cached, so a user that is provisioned later (or a transient
// outage) resolves correctly on the next call. Concurrent misses for the
// same key may each call the delegate; the last write wins, which is
// harmless because both calls fetch the same remote record.
type CachingUserInfoLookup struct {
	delegate          ports.UserInfoLookup
	cache             *lru.Cache[domain.UserID, *cacheEntry]
	expireAfterWrite  time.Duration
	expireAfterAccess time.Duration
	now               func() time.Time
}

type cacheEntry struct {
	info      domain.AppUserInfo
	writtenAt time.Time
	// accessedAt holds unix nanoseconds of the last read; atomic because
	// concurrent hits update it without the cache's own lock held.
	accessedAt atomic.Int64
}

// NewCachingUserInfoLookup builds the decorator, applying defaults for
// unset policy fields. Fails with ErrMissingDelegate when cfg.Delegate
// is nil.
func NewCachingUserInfoLookup(cfg CachingLookupConfig) (*CachingUserInfoLookup, error) {
	if cfg.Delegate == nil {
		return nil, ErrMissingDelegate
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultCacheMaxSize
	}

	expireAfterWrite := cfg.ExpireAfterWrite
	if expireAfterWrite == 0 {
		expireAfterWrite = defaultCacheExpireAfterWrite
	} else if expireAfterWrite < 0 {
		expireAfterWrite = 0
	}

	cache, err := lru.New[domain.UserID, *cacheEntry](maxSize)
	if err != nil {
		return nil, err
	}

	return &CachingUserInfoLookup{
		delegate:          cfg.Delegate,
		cache:             cache,
		expireAfterWrite:  expireAfterWrite,
		expireAfterAccess: cfg.ExpireAfterAccess,
		now:               time.Now,
	}, nil
}

// FindUserInfo returns the cached info for id when present and fresh,
// otherwise consults the delegate and caches a successful result.
func (l *CachingUserInfoLookup) FindUserInfo(ctx context.Context, id domain.UserID) (domain.AppUserInfo, error) {
	if entry, ok := l.cache.Get(id); ok {
		if l.fresh(entry) {
			entry.accessedAt.Store(l.now().UnixNano())
			metrics.UserLookupsTotal.WithLabelValues("cache").Inc()
			return entry.info, nil
		}
		l.cache.Remove(id)
	}

	info, err := l.delegate.FindUserInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := &cacheEntry{info: info, writtenAt: l.now()}
	entry.accessedAt.Store(entry.writtenAt.UnixNano())
	l.cache.Add(id, entry)

	metrics.UserLookupsTotal.WithLabelValues("delegate").Inc()
	return info, nil
}

func (l *CachingUserInfoLookup) fresh(entry *cacheEntry) bool {
	now := l.now()
	if l.expireAfterWrite > 0 && now.Sub(entry.writtenAt) >= l.expireAfterWrite {
		return false
	}
	if l.expireAfterAccess > 0 {
		lastAccess := time.Unix(0, entry.accessedAt.Load())
		if now.Sub(lastAccess) >= l.expireAfterAccess {
			return false
		}
	}
	return true
}

// Len reports the current number of cached entries, expired or not.
func (l *CachingUserInfoLookup) Len() int {
	return l.cache.Len()
}
