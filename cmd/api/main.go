package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nomadcrew/nomad-backend/internal/config"
	"github.com/nomadcrew/nomad-backend/internal/handler"
	"github.com/nomadcrew/nomad-backend/internal/middleware"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"github.com/nomadcrew/nomad-backend/internal/service"
	"github.com/nomadcrew/nomad-backend/pkg/clock"
	"github.com/nomadcrew/nomad-backend/pkg/database"
	"github.com/nomadcrew/nomad-backend/pkg/email"
	"github.com/nomadcrew/nomad-backend/pkg/logger"
	"github.com/nomadcrew/nomad-backend/pkg/storage"
	"github.com/nomadcrew/nomad-backend/pkg/utils"
	"github.com/nomadcrew/nomad-backend/pkg/webcache"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zapLogger := logger.New()
	defer zapLogger.Sync()

	db := database.NewDatabase()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tripRepo := repository.NewTripRepository(db)
	cityRepo := repository.NewCityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)

	// Object storage for city images
	r2Storage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// Email service
	emailService := email.NewEmailService(zapLogger)

	// Shared cached HTTP client for Wikipedia and GitHub
	webClient := webcache.NewClient()

	appClock := clock.New()

	// Services
	authService := service.NewAuthService(userRepo, emailService, appClock)
	userService := service.NewUserService(userRepo, appClock)
	tripService := service.NewTripService(tripRepo, userRepo, cityRepo, emailService, zapLogger)
	notificationService := service.NewNotificationService(notificationRepo)
	cityService := service.NewCityService(cityRepo, r2Storage, webClient, cfg.WikipediaAPI, zapLogger)
	githubService := service.NewGithubService(webClient, cfg.GithubAPI)
	checklistService := service.NewChecklistService(checklistRepo, appClock)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	tripHandler := handler.NewTripHandler(tripService, validator)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	cityHandler := handler.NewCityHandler(cityService)
	githubHandler := handler.NewGithubHandler(githubService)
	checklistHandler := handler.NewChecklistHandler(checklistService, validator)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Put("/profile", userHandler.UpdateProfile)

		// Membership mutations ride on GET for client compatibility.
		trips := api.Group("/trips")
		trips.Post("/", tripHandler.CreateTrip)
		trips.Get("/", tripHandler.GetUserTrips)
		trips.Get("/common/:userId", tripHandler.CommonTrips)
		trips.Get("/:id", tripHandler.GetTrip)
		trips.Get("/:id/add/:userId", tripHandler.AddMember)
		trips.Get("/:id/remove/:userId", tripHandler.RemoveMember)
		trips.Get("/:id/name/:name", tripHandler.RenameTrip)
		trips.Get("/:id/leave", tripHandler.LeaveTrip)

		notifications := api.Group("/notifications")
		notifications.Get("/", notificationHandler.GetNotifications)
		notifications.Get("/read-all", notificationHandler.MarkAllRead)
		notifications.Get("/:id/read", notificationHandler.MarkRead)

		cities := api.Group("/cities")
		cities.Get("/", cityHandler.GetPopularCities)
		cities.Get("/visits", cityHandler.GetCityVisits)
		cities.Get("/search/:prefix", cityHandler.SearchCities)
		cities.Get("/:id", cityHandler.GetCity)
		cities.Get("/:id/facts", cityHandler.GetCityFacts)
		cities.Get("/:id/images", cityHandler.GetCityImages)
		cities.Post("/:id/images", cityHandler.UploadCityImage)
		cities.Get("/:id/information", cityHandler.GetCityInformation)

		github := api.Group("/github")
		github.Get("/contributors/:owner/:repo", githubHandler.GetContributors)

		analytics := api.Group("/analytics")
		analytics.Get("/users", userHandler.GetUserAnalytics)

		checklist := api.Group("/checklist")
		checklist.Get("/", checklistHandler.GetChecklist)
		checklist.Post("/items", checklistHandler.AddItem)
		checklist.Delete("/items/:id", checklistHandler.DeleteItem)
		checklist.Put("/items/:id/toggle", checklistHandler.ToggleItem)
	}

	zapLogger.Info("starting server", zap.String("port", cfg.Port))
	log.Fatal(app.Listen(":" + cfg.Port))
}
