// Command api runs the event registration HTTP server.
//
// @title        Event Registration API
// @version      1.0
// @description  Event registration resource with an OAuth2 password-grant token endpoint.
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

	_ "github.com/eventdesk/registration-api/docs"
	"github.com/eventdesk/registration-api/internal/api"
	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
	"github.com/eventdesk/registration-api/internal/core/service"
	mongodb "github.com/eventdesk/registration-api/internal/infrastructure/db/mongo"
	redisdb "github.com/eventdesk/registration-api/internal/infrastructure/db/redis"
	"github.com/eventdesk/registration-api/internal/infrastructure/queue"
	"github.com/eventdesk/registration-api/internal/infrastructure/token"
	"github.com/eventdesk/registration-api/internal/pkg/config"
	"github.com/eventdesk/registration-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Persistence ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	accountRepo := mongodb.NewAccountRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := eventRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Token store: constructed once, injected everywhere ---
	store, rdb, err := buildTokenStore(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Core services ---
	hasher := service.NewBcryptHasher(0)

	accountSvc := service.NewAccountService(accountRepo, hasher, log)
	if err := seedAccounts(ctx, cfg, accountSvc); err != nil {
		return err
	}

	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	clientSecretHash, err := hasher.Hash(cfg.OAuth.ClientSecret)
	if err != nil {
		return err
	}
	clients := []domain.Client{{
		ID:              cfg.OAuth.ClientID,
		SecretHash:      clientSecretHash,
		GrantTypes:      []string{domain.GrantTypePassword, domain.GrantTypeRefreshToken},
		Scopes:          []string{domain.ScopeRead, domain.ScopeWrite},
		AccessTokenTTL:  cfg.OAuth.AccessTokenTTL,
		RefreshTokenTTL: cfg.OAuth.RefreshTokenTTL,
	}}

	tokenSvc := service.NewTokenService(clients, accountSvc, hasher, store, dispatcher, log)
	eventSvc := service.NewEventService(eventRepo, dispatcher, log)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		TokenService: tokenSvc,
		EventService: eventSvc,
		TokenStore:   store,
		Mongo:        db,
		Redis:        rdb,
		Logger:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info().Str("port", cfg.Port).Str("token_store", cfg.TokenStore).Msg("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func buildTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, *goredis.Client, error) {
	if cfg.TokenStore != "redis" {
		return token.NewMemoryStore(), nil, nil
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	return redisdb.NewTokenStore(rdb), rdb, nil
}

func seedAccounts(ctx context.Context, cfg *config.Config, accounts *service.AccountService) error {
	if err := accounts.EnsureAccount(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword,
		[]domain.AccountRole{domain.RoleAdmin, domain.RoleUser}); err != nil {
		return err
	}
	return accounts.EnsureAccount(ctx, cfg.Seed.UserEmail, cfg.Seed.UserPassword,
		[]domain.AccountRole{domain.RoleUser})
}
