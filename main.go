package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/zxcv616/WavHaven/internal/config"
	"github.com/zxcv616/WavHaven/internal/handlers"
	"github.com/zxcv616/WavHaven/internal/middleware"
	"github.com/zxcv616/WavHaven/internal/models"
	"github.com/zxcv616/WavHaven/internal/repositories"
	"github.com/zxcv616/WavHaven/internal/services"
	"github.com/zxcv616/WavHaven/pkg/identity"
	"github.com/zxcv616/WavHaven/pkg/objectstore"
	"github.com/zxcv616/WavHaven/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Track{}, &models.License{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- External collaborators ---
	gateway := identity.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)

	store, err := objectstore.NewClient(objectstore.Config{
		KeyID:    cfg.B2KeyID,
		AppKey:   cfg.B2AppKey,
		Bucket:   cfg.B2BucketName,
		Region:   cfg.B2Region,
		S3Domain: cfg.B2S3Domain,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage client: %v", err)
	}

	// Event publication is optional; without a broker URL the services
	// simply skip it.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()

		// Drain our own queue so events do not pile up when no
		// dedicated consumer is deployed. A real deployment would
		// point a worker at marketplace_events instead.
		log.Println("Starting marketplace events consumer...")
		if consumerErr := mqClient.Consume(func(msg amqp.Delivery) error {
			log.Printf("Received %s event (tag %d): %s", msg.Type, msg.DeliveryTag, msg.Body)
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start marketplace events consumer: %v", consumerErr)
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	trackRepo := repositories.NewGORMTrackRepository(db)
	licenseRepo := repositories.NewGORMLicenseRepository(db)

	// --- Services ---
	tokenService := services.NewTokenService(userRepo, cfg.JWTSecret)
	registrationService := services.NewRegistrationService(userRepo, gateway, tokenService)
	userService := services.NewUserService(userRepo)
	trackService := services.NewTrackService(trackRepo, store, mqClient)
	licenseService := services.NewLicenseService(licenseRepo, trackRepo, mqClient)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(registrationService, userService)
	trackHandler := handlers.NewTrackHandler(trackService)
	licenseHandler := handlers.NewLicenseHandler(licenseService)
	tokenHandler := handlers.NewTokenHandler(tokenService)

	// --- Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())

	// --- API Routes ---
	// Registration and the token endpoints are open; everything else
	// requires a valid access token.
	userHandler.RegisterPublicRoutes(app)
	tokenHandler.RegisterRoutes(app)

	protected := app.Group("", middleware.AuthRequired(tokenService))
	userHandler.RegisterRoutes(protected)
	trackHandler.RegisterRoutes(protected)
	licenseHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
