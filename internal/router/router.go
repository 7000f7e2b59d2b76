package router

import (
	"github.com/anonto42/ui-crate/backend/internal/cache"
	"github.com/anonto42/ui-crate/backend/internal/handlers"
	"github.com/anonto42/ui-crate/backend/internal/middleware"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/anonto42/ui-crate/backend/internal/revalidate"
	"github.com/anonto42/ui-crate/backend/internal/services"
	"github.com/anonto42/ui-crate/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	Postgres      *gorm.DB
	Authenticator middleware.Authenticator
	Notifier      revalidate.Notifier
	// ProfileCache may be nil.
	ProfileCache cache.ProfileCache
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	log := logger.WithComponent("router")

	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	postRepo := repositories.NewPostgresPostRepository(deps.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)

	// --- Services ---
	paginator := services.NewPaginator(postRepo, likeRepo)
	feedService := services.NewFeedService(paginator)
	postService := services.NewPostService(postRepo, likeRepo, deps.Notifier)
	profileService := services.NewProfileService(userRepo, postRepo, followRepo, deps.ProfileCache, deps.Notifier)

	// --- Procedures; sessions are optional except where required per route ---
	rpc := e.Group("/api/rpc", middleware.SessionMiddleware(deps.Authenticator))

	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(rpc)
	handlers.NewPostHandler(postService).RegisterPostRoutes(rpc)
	handlers.NewProfileHandler(profileService).RegisterProfileRoutes(rpc)

	log.Info("all routes configured")
}
