package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/identity-platform/identity-service/docs"
	"github.com/identity-platform/identity-service/internal/api"
	"github.com/identity-platform/identity-service/internal/core/ports"
	"github.com/identity-platform/identity-service/internal/core/service"
	"github.com/identity-platform/identity-service/internal/infrastructure/config"
	mongodb "github.com/identity-platform/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/identity-platform/identity-service/internal/infrastructure/db/redis"
	"github.com/identity-platform/identity-service/internal/infrastructure/devusers"
	"github.com/identity-platform/identity-service/internal/infrastructure/keycloak"
	"github.com/identity-platform/identity-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                      Identity Service API
// @version                    1.0
// @description                User identity resolution, session introspection and task attribution.
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()

	// --- Redis (optional second cache level) ---
	rdb, err := connectRedis(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to redis")
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("close redis")
			}
		}()
	}

	// --- User lookup chain and authentication ---
	lookup, authenticator, cleanup, err := buildLookup(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build user lookup")
	}
	defer cleanup()

	if rdb != nil {
		cache, err := redisdb.NewUserInfoCache(rdb, lookup, cfg.Cache.RedisTTL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("build redis user cache")
		}
		lookup = cache
	}

	cached, err := service.NewCachingUserInfoLookup(service.CachingLookupConfig{
		Delegate:          lookup,
		MaxSize:           cfg.Cache.MaxSize,
		ExpireAfterWrite:  cfg.Cache.ExpireAfterWrite,
		ExpireAfterAccess: cfg.Cache.ExpireAfterAccess,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build caching user lookup")
	}

	// --- Task management ---
	taskRepo := mongodb.NewTaskRepository(db)
	taskService := service.NewTaskService(taskRepo, cached, log)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterConfig{
		Lookup:        cached,
		Tasks:         taskService,
		Authenticator: authenticator,
		JWTSecret:     cfg.JWTSecret,
		Mongo:         db,
		Redis:         rdb,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting identity service")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown http server")
	}
}

// buildLookup assembles the source of user information: the static
// development registry when dev auth is enabled, the Keycloak admin
// client otherwise. The returned cleanup releases any held connections
// and is safe to call exactly once.
func buildLookup(cfg *config.Config, log zerolog.Logger) (ports.UserInfoLookup, ports.Authenticator, func(), error) {
	if cfg.DevAuth.Enabled {
		users, err := devusers.SampleUsers(cfg.DevAuth.Password)
		if err != nil {
			return nil, nil, nil, err
		}
		registry, err := devusers.NewRegistry(users, cfg.JWTSecret, cfg.DevAuth.TokenTTL)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Warn().Msg("development user registry enabled, do not use in production")
		return registry, registry, func() {}, nil
	}

	creds, err := keycloakCredentials(cfg.Keycloak)
	if err != nil {
		return nil, nil, nil, err
	}
	kc, err := keycloak.NewLookup(creds, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return kc, nil, kc.Close, nil
}

func keycloakCredentials(cfg config.KeycloakConfig) (keycloak.Credentials, error) {
	if cfg.IssuerURI != "" {
		return keycloak.CredentialsFromIssuer(cfg.IssuerURI, cfg.ClientID, cfg.ClientSecret)
	}
	creds := keycloak.Credentials{
		ServerURL:    cfg.ServerURL,
		Realm:        cfg.Realm,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}
	if err := creds.Validate(); err != nil {
		return keycloak.Credentials{}, err
	}
	return creds, nil
}

func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*goredis.Client, error) {
	if !cfg.Cache.RedisEnabled {
		return nil, nil
	}
	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis user cache enabled")
	return client, nil
}
