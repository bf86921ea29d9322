// gym-api serves the staff API: member roster, appointments, equipment
// checklist, staff accounts and profiles.
//
// @title                      Gym System API
// @version                    1.0
// @description                Member roster, appointments and equipment checklist for gym staff.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the JWT token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gimnasio/gym-system/internal/api"
	"github.com/gimnasio/gym-system/internal/api/handler"
	"github.com/gimnasio/gym-system/internal/core/service"
	"github.com/gimnasio/gym-system/internal/core/validation"
	mongodb "github.com/gimnasio/gym-system/internal/infrastructure/db/mongo"
	redisdb "github.com/gimnasio/gym-system/internal/infrastructure/db/redis"
	"github.com/gimnasio/gym-system/internal/infrastructure/media"
	"github.com/gimnasio/gym-system/internal/infrastructure/notify"
	"github.com/gimnasio/gym-system/internal/infrastructure/queue"
	"github.com/gimnasio/gym-system/internal/pkg/config"
	"github.com/gimnasio/gym-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gym-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "gym-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "gym-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	socioDir := mongodb.NewSocioDirectory(db)
	authRepo := mongodb.NewAuthRepository(db)
	accesorioRepo := mongodb.NewAccesorioRepository(db)
	if err := mongodb.EnsureIndexes(ctx, map[string]mongodb.Indexed{
		"socios":     socioDir,
		"users":      authRepo,
		"accesorios": accesorioRepo,
	}); err != nil {
		return err
	}

	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notify.NewLogNotifier(log), log)
	dispatcher.Start(ctx)

	sessions := service.NewSessions(socioDir, log)
	socios := service.NewSocioService(
		sessions,
		validation.NewSocioValidator(validation.Rules{RequirePhone: cfg.PhoneRequired}),
		dispatcher,
		redisdb.NewIdempotencyStore(rdb),
		log,
	)
	auth := service.NewAuthService(
		authRepo,
		redisdb.NewResetTokenStore(rdb),
		dispatcher,
		cfg.JWTSecret,
		service.AuthOptions{TokenTTL: cfg.TokenTTL, AdminEmail: cfg.AdminEmail},
		log,
	)
	uploader := media.NewCloudinaryUploader(media.Config{
		BaseURL:      cfg.Cloudinary.BaseURL,
		CloudName:    cfg.Cloudinary.CloudName,
		UploadPreset: cfg.Cloudinary.UploadPreset,
	}, nil)

	e := api.NewRouter(
		api.RouterConfig{JWTSecret: cfg.JWTSecret, Logger: log},
		api.Handlers{
			Auth:       handler.NewAuthHandler(auth, socios),
			Socios:     handler.NewSocioHandler(socios),
			Profile:    handler.NewProfileHandler(service.NewProfileService(authRepo, uploader, log)),
			Turnos:     handler.NewTurnoHandler(service.NewTurnoService(time.Now, log)),
			Accesorios: handler.NewAccesorioHandler(service.NewAccesorioService(accesorioRepo, log)),
			Health:     handler.NewHealthHandler(),
			Ready: handler.NewHealthDependenciesHandler(map[string]handler.DependencyCheck{
				"mongo": mongodb.Pinger(mongoClient),
				"redis": redisdb.Pinger(rdb),
			}),
		},
	)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("gym-api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stop()
	dispatcher.Wait()
	log.Info().Int("open_sessions", sessions.Len()).Msg("gym-api stopped")
	return nil
}
