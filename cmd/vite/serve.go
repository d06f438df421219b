package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joestump/vite/internal/config"
	"github.com/joestump/vite/internal/db"
	"github.com/joestump/vite/internal/handler"
	"github.com/joestump/vite/internal/links"
	"github.com/joestump/vite/internal/metrics"
	"github.com/joestump/vite/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			linkStore, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if n, err := linkStore.Count(ctx); err != nil {
				logger.Warn("count links", zap.Error(err))
			} else {
				metrics.LinksTotal.Set(float64(n))
			}

			codec, obf, err := newCodec(cfg)
			if err != nil {
				return err
			}
			resolver, err := links.NewResolver(links.Config{
				Domain:     cfg.Domain(),
				ShortHost:  cfg.ShortHost(),
				Codec:      codec,
				Obfuscator: obf,
				Store:      linkStore,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr: cfg.HTTP.Addr,
				Handler: handler.NewRouter(handler.Deps{
					Resolver: resolver,
					Store:    linkStore,
					Logger:   logger,
				}),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening",
					zap.String("addr", cfg.HTTP.Addr),
					zap.String("domain", cfg.Domain()),
					zap.String("backend", cfg.Store.Backend),
					zap.String("charset", codec.Charset().String()),
					zap.Bool("obfuscated", obf != nil),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
				logger.Info("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		},
	}
}

// openStore connects the configured backend. SQL databases are migrated
// before use.
func openStore(ctx context.Context, cfg *config.Config) (store.LinkStoreIface, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s := store.NewRedisLinkStore(rdb)
		if err := s.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return s, func() { _ = rdb.Close() }, nil
	default:
		database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(database, cfg.DB.Driver); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
		return store.NewLinkStore(database), func() { _ = database.Close() }, nil
	}
}
