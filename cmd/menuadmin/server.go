package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/menuglobal/menu-admin/internal/api"
	"github.com/menuglobal/menu-admin/internal/api/handler"
	"github.com/menuglobal/menu-admin/internal/api/session"
	"github.com/menuglobal/menu-admin/internal/core/service"
	"github.com/menuglobal/menu-admin/internal/infrastructure/db/redis"
	"github.com/menuglobal/menu-admin/internal/infrastructure/queue"
	"github.com/menuglobal/menu-admin/internal/infrastructure/storage"
)

const shutdownTimeout = 15 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the menu administration API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.log

	images, err := storage.New(ctx, a.cfg.Storage, log)
	if err != nil {
		return err
	}
	if err := images.EnsureBucket(ctx); err != nil {
		// uploads fail until the bucket exists; the rest of the API still serves
		log.Warn().Err(err).Msg("image bucket not ready")
	}

	cleaner := queue.NewImageCleaner(a.cfg.Storage.Workers, images, log.With().Str("component", "image_cleaner").Logger())
	cleaner.Start(context.WithoutCancel(ctx))
	defer cleaner.Close()

	restaurants := service.NewRestaurantService(
		a.rests, a.cats, a.items,
		service.NewSlugAllocator(a.rests, service.DefaultMaxSlugProbes),
		redis.NewIdempotencyStore(a.redis),
		log.With().Str("component", "restaurants").Logger(),
	)
	menu := service.NewMenuService(a.rests, a.cats, a.items, cleaner, log.With().Str("component", "menu").Logger())

	e := api.NewRouter(api.Dependencies{
		Auth:        a.auth,
		Restaurants: restaurants,
		Menu:        menu,
		Images:      images,
		Sessions:    session.NewManager(a.creds, a.cfg.IsProduction()),
		Checks: map[string]handler.DependencyCheck{
			"mongodb": a.mongo.Ping,
			"redis":   redis.Ping(a.redis),
		},
		Logger: log,
	})

	// Connect eagerly so a misconfigured store shows up in the first log lines.
	if err := a.mongo.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("mongodb not reachable yet, will retry on first use")
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + a.cfg.Port
		log.Info().Str("addr", addr).Str("env", a.cfg.Env).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
