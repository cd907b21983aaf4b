package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/schemegenie/schemegenie-backend/internal/handlers"
	"github.com/schemegenie/schemegenie-backend/internal/middleware"
	"github.com/schemegenie/schemegenie-backend/internal/services"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store) {
	notifier := services.NewNotificationService(store)
	lifecycle := services.NewLifecycleEngine(store, notifier)
	chatbot := services.NewChatbotService(store)

	authHandler := handlers.NewAuthHandler(store)
	schemeHandler := handlers.NewSchemeHandler(store)
	applicationHandler := handlers.NewApplicationHandler(store, lifecycle)
	documentHandler := handlers.NewDocumentHandler(store, notifier)
	notificationHandler := handlers.NewNotificationHandler(store, notifier)
	adminHandler := handlers.NewAdminHandler(store, lifecycle, notifier)
	chatbotHandler := handlers.NewChatbotHandler(chatbot)

	// ========== AUTH ROUTES ==========
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)
	app.Get("/profile", middleware.Protect(), authHandler.Profile)

	api := app.Group("/api")

	// ========== SCHEME CATALOG ==========
	schemes := api.Group("/schemes")
	schemes.Get("/", schemeHandler.ListSchemes)
	schemes.Get("/category/:category", schemeHandler.GetSchemesByCategory)
	schemes.Get("/search/:query", schemeHandler.SearchSchemes)
	schemes.Get("/:id", schemeHandler.GetScheme)
	schemes.Post("/", middleware.Protect(), middleware.RequireAdmin(), schemeHandler.CreateScheme)
	schemes.Put("/:id", middleware.Protect(), middleware.RequireAdmin(), schemeHandler.UpdateScheme)
	schemes.Delete("/:id", middleware.Protect(), middleware.RequireAdmin(), schemeHandler.DeleteScheme)

	api.Post("/recommendations", schemeHandler.Recommendations)

	// ========== APPLICATIONS ==========
	// Specific paths must be registered before the :id routes
	applications := api.Group("/applications")
	applications.Get("/pending", middleware.Protect(), middleware.RequireAdmin(), adminHandler.PendingApplications)
	applications.Get("/public-track/:trackingId", applicationHandler.PublicTrackApplication)
	applications.Get("/track/:trackingId", middleware.Protect(), applicationHandler.TrackApplication)
	applications.Patch("/verify/:id", middleware.Protect(), middleware.RequireAdmin(), adminHandler.VerifyApplication)
	applications.Get("/", middleware.Protect(), applicationHandler.ListApplications)
	applications.Post("/", middleware.Protect(), applicationHandler.CreateApplication)
	applications.Get("/:id", middleware.Protect(), applicationHandler.GetApplication)
	applications.Put("/:id", middleware.Protect(), applicationHandler.UpdateApplication)

	// ========== DOCUMENTS ==========
	documents := api.Group("/documents", middleware.Protect())
	documents.Get("/expiry-status", documentHandler.ExpiryStatus)
	documents.Get("/", documentHandler.ListDocuments)
	documents.Post("/", documentHandler.UploadDocument)
	documents.Put("/:id/report-wrong", documentHandler.ReportWrong)
	documents.Delete("/:id", documentHandler.DeleteDocument)

	// ========== NOTIFICATIONS ==========
	notifications := api.Group("/notifications", middleware.Protect())
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Get("/", notificationHandler.ListNotifications)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	// ========== ADMIN ROUTES ==========
	admin := api.Group("/admin", middleware.Protect(), middleware.RequireAdmin())
	admin.Get("/applications", adminHandler.AllApplications)
	admin.Get("/documents", adminHandler.AllDocuments)
	admin.Put("/documents/:id", adminHandler.VerifyDocument)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/users", adminHandler.ListUsers)

	// ========== CHATBOT ==========
	api.Post("/chatbot", chatbotHandler.Chat)
}
