package router

import (
	"github.com/inkwellhq/inkwell/internal/application"
	"github.com/inkwellhq/inkwell/internal/container"
	pginfra "github.com/inkwellhq/inkwell/internal/infrastructure/postgres"
	handlers "github.com/inkwellhq/inkwell/internal/interface/http"
	"github.com/inkwellhq/inkwell/internal/router/modules"
	"github.com/inkwellhq/inkwell/pkg/googleauth"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	blogs := pginfra.NewBlogRepository(container.GetPGPool())

	authService := application.NewAuthService(
		users,
		container.GetJWT(),
		googleauth.NewVerifier(cfg.GoogleClientID),
		container.GetRabbitPub(),
		logger,
		cfg.MailSendEnabled,
	)
	blogService := application.NewBlogService(
		blogs,
		users,
		container.GetRedis(),
		container.GetES(),
		cfg.ESBlogsIndex,
		logger,
	)
	profileService := application.NewProfileService(users)

	authHandler := handlers.NewAuthHandler(authService, logger)
	blogHandler := handlers.NewBlogHandler(blogService, container.GetGCS(), cfg.GCSBucket, logger)
	userHandler := handlers.NewUserHandler(profileService)
	healthHandler := handlers.NewHealthHandler()

	r.Add(modules.NewHealthModule(healthHandler))
	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewBlogModule(blogHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler))
}
