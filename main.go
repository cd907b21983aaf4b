package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/schemegenie/schemegenie-backend/database"
	"github.com/schemegenie/schemegenie-backend/internal/jobs"
	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/routes"
	"github.com/schemegenie/schemegenie-backend/internal/seed"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.Scheme{},
			&models.Application{},
			&models.Document{},
			&models.Notification{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		// Use database store
		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Set global instance
	storage.SetStore(store)

	// Seed the scheme catalog on first boot
	if os.Getenv("SEED_DATA") != "false" {
		if err := seed.Schemes(store); err != nil {
			log.Printf("⚠️  Scheme seeding failed: %v", err)
		}
	}

	// Bootstrap an admin account if configured
	seedAdmin(store)

	// Initialize and start the cleanup job (expired notifications + documents)
	cleanupJob := jobs.NewCleanupJob(store, time.Hour)
	cleanupJob.Start()

	log.Println("✅ All services initialized and scheduled jobs started")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Scheme Genie Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint with database status
	app.Get("/", func(c *fiber.Ctx) error {
		response := fiber.Map{
			"service":     "Scheme Genie Backend API",
			"version":     "1.0.0",
			"status":      "healthy",
			"environment": getEnvironment(),
			"storage":     getStorageType(),
		}

		// Add database status if using database
		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			dbStatus := "connected"
			if err != nil {
				dbStatus = "error: " + err.Error()
			} else if err := sqlDB.Ping(); err != nil {
				dbStatus = "error: " + err.Error()
			}

			// Get counts
			var userCount, schemeCount, applicationCount, documentCount, notificationCount int64
			database.DB.Model(&models.User{}).Count(&userCount)
			database.DB.Model(&models.Scheme{}).Count(&schemeCount)
			database.DB.Model(&models.Application{}).Count(&applicationCount)
			database.DB.Model(&models.Document{}).Count(&documentCount)
			database.DB.Model(&models.Notification{}).Count(&notificationCount)

			response["database"] = fiber.Map{
				"status":        dbStatus,
				"users":         userCount,
				"schemes":       schemeCount,
				"applications":  applicationCount,
				"documents":     documentCount,
				"notifications": notificationCount,
			}
		}

		return c.JSON(response)
	})

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		// Check database if using it
		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"cleanup":  cleanupJob.IsRunning(),
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app, store)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping cleanup job...")
		cleanupJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 Scheme Genie Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("🌍 Environment: %s", getEnvironment())
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

// seedAdmin creates the admin user from ADMIN_EMAIL/ADMIN_PASSWORD if it
// does not exist yet.
func seedAdmin(store storage.Store) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	if _, err := store.GetUserByEmail(email); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️  Admin seeding failed: %v", err)
		return
	}

	_, err = store.CreateUser(&models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsVerified:   true,
	})
	if err != nil {
		log.Printf("⚠️  Admin seeding failed: %v", err)
		return
	}
	log.Printf("✅ Admin account ready: %s", email)
}

func getEnvironment() string {
	if os.Getenv("INSTANCE_CONNECTION_NAME") != "" {
		return "Production (Cloud Run)"
	}
	return "Development (Local)"
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}
