// Command api levanta el servidor HTTP de tingrrr.
//
// @title Tingrrr API
// @version 1.0
// @description Swipe de perros en adopción con recomendaciones por compatibilidad.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tingrrr/internal/adapters/auth/jwtauth"
	"tingrrr/internal/adapters/storage/sqlstore"
	"tingrrr/internal/adapters/vision/azure"
	"tingrrr/internal/domain/swipes"
	"tingrrr/internal/platform/config"
	"tingrrr/internal/platform/logger"
	"tingrrr/internal/ports/auth"
	"tingrrr/internal/router"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *sqlstore.Store
	if !cfg.InMemory() {
		driver, err := sqlstore.ParseDriver(cfg.Database.Driver)
		if err != nil {
			return err
		}
		store, err = sqlstore.Open(driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer store.Close()

		if cfg.Database.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				return err
			}
		}
		log.Info("using sql storage", map[string]any{"driver": string(driver)})
	} else {
		log.Info("using in-memory storage", map[string]any{"seed": cfg.Database.SeedMockData})
	}

	// sin secreto queda el modo dev con X-Debug-User-ID
	var verifier auth.Verifier
	if cfg.Auth.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	} else {
		log.Warn("JWT_SECRET not set, accepting X-Debug-User-ID header", nil)
	}

	analyzer, err := azure.New(azure.Options{
		Endpoint: cfg.Vision.Endpoint,
		Key:      cfg.Vision.Key,
		Timeout:  cfg.Vision.Timeout,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	if !analyzer.Configured() {
		log.Warn("azure vision not configured, rescue uploads use mock analysis", nil)
	}

	r := router.NewRouter(router.Options{
		Verifier:     verifier,
		Store:        store,
		SeedMockData: cfg.Database.SeedMockData,
		Logger:       log,
		AppName:      cfg.App.Name,
		Vision:       analyzer,
		Swipes: swipes.HandlerOptions{
			DefaultLimit: cfg.Recommend.DefaultLimit,
			MaxLimit:     cfg.Recommend.MaxLimit,
		},
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
