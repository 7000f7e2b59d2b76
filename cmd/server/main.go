package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/ui-crate/backend/internal/cache"
	"github.com/anonto42/ui-crate/backend/internal/middleware"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/revalidate"
	"github.com/anonto42/ui-crate/backend/internal/router"
	"github.com/anonto42/ui-crate/backend/pkg/config"
	"github.com/anonto42/ui-crate/backend/pkg/firebase"
	"github.com/anonto42/ui-crate/backend/pkg/logger"
	"github.com/anonto42/ui-crate/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Configure(cfg.LogLevel)
	log := logger.WithComponent("server")

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize databases")
	}
	defer db.CloseDB()

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		log.WithError(err).Fatal("failed to migrate schema")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authn, err := newAuthenticator(ctx, cfg, db)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize authentication")
	}

	// Revalidation sinks follow whichever stores are configured
	var sinks []revalidate.Sink
	var profileCache cache.ProfileCache
	if db.Redis != nil {
		redisCache := cache.NewRedisProfileCache(db.Redis, "feed", cfg.ProfileCacheTTL)
		profileCache = redisCache
		sinks = append(sinks,
			revalidate.NewCacheSink(redisCache),
			revalidate.NewPublishSink(db.Redis, cfg.RevalidateChannel),
		)
	}
	if db.Mongo != nil {
		repo := repositories.NewMongoRevalidationRepository(db.Mongo.Database(cfg.MongoDatabase))
		sinks = append(sinks, revalidate.NewLogSink(repo))
	}
	dispatcher := revalidate.NewDispatcher(cfg.RevalidateQueueSize, 5*time.Second, sinks...)
	dispatcher.Start()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e)

	router.SetupRoutes(e, router.Dependencies{
		Postgres:      db.Postgres,
		Authenticator: authn,
		Notifier:      dispatcher,
		ProfileCache:  profileCache,
	})

	go func() {
		log.WithField("port", cfg.Port).Info("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to shut down http server")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("revalidation queue not drained")
	}
}

func newAuthenticator(ctx context.Context, cfg *config.Config, db *config.DB) (middleware.Authenticator, error) {
	if cfg.AuthProvider == config.AuthProviderFirebase {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		users := repositories.NewPostgresUserRepository(db.Postgres)
		return middleware.NewFirebaseAuthenticator(app.AuthClient, users), nil
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}
	return middleware.NewJWTAuthenticator(cfg.JWTSecret), nil
}
