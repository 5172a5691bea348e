package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/menuglobal/menu-admin/internal/core/service"
	"github.com/menuglobal/menu-admin/internal/infrastructure/config"
	"github.com/menuglobal/menu-admin/internal/infrastructure/db/mongo"
	"github.com/menuglobal/menu-admin/internal/infrastructure/db/redis"
	"github.com/menuglobal/menu-admin/pkg/logger"
)

const closeTimeout = 10 * time.Second

// app holds the process-wide collaborators shared by every subcommand.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	mongo  *mongo.Provider
	redis  *goredis.Client
	creds  *service.Credentials
	auth   *service.AuthService
	idents *mongo.IdentityRepository
	rests  *mongo.RestaurantRepository
	cats   *mongo.CategoryRepository
	items  *mongo.MenuItemRepository
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel))

	creds, err := service.NewCredentials(cfg.JWTSecret, service.WithBcryptCost(cfg.BcryptCost))
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}

	provider := mongo.NewProvider(mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	}, mongo.EnsureIndexes)

	a := &app{
		cfg:    cfg,
		log:    log,
		mongo:  provider,
		redis:  redis.NewClient(redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}),
		creds:  creds,
		idents: mongo.NewIdentityRepository(provider),
		rests:  mongo.NewRestaurantRepository(provider),
		cats:   mongo.NewCategoryRepository(provider),
		items:  mongo.NewMenuItemRepository(provider),
	}
	a.auth = service.NewAuthService(a.idents, a.rests, creds, log.With().Str("component", "auth").Logger())
	return a, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := a.mongo.Close(ctx); err != nil {
		a.log.Warn().Err(err).Msg("mongo disconnect")
	}
	if err := a.redis.Close(); err != nil {
		a.log.Warn().Err(err).Msg("redis close")
	}
}
