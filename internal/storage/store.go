package storage

import (
	"time"

	"github.com/schemegenie/schemegenie-backend/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetAllUsers() ([]*models.User, error)
	UpdateUser(user *models.User) error
	CountUsers() (int64, error)
	CountUsersSince(since time.Time) (int64, error)

	// Scheme operations
	CreateScheme(scheme *models.Scheme) (*models.Scheme, error)
	GetScheme(schemeID string) (*models.Scheme, error)
	GetActiveSchemes() ([]*models.Scheme, error)
	GetSchemesByCategory(category string) ([]*models.Scheme, error)
	SearchSchemes(query string) ([]*models.Scheme, error)
	UpdateScheme(scheme *models.Scheme) error
	DeleteScheme(schemeID string) error
	CountSchemes() (int64, error)

	// Application operations
	CreateApplication(app *models.Application) (*models.Application, error)
	GetApplication(applicationID string) (*models.Application, error)
	GetApplicationByTrackingID(trackingID string) (*models.Application, error)
	GetApplicationsByUser(userID string) ([]*models.Application, error)
	GetApplicationsByStatus(statuses ...string) ([]*models.Application, error)
	GetAllApplications() ([]*models.Application, error)
	GetActiveApplication(userID, schemeID string) (*models.Application, error)
	UpdateApplication(app *models.Application) error
	CountApplications() (int64, error)
	CountApplicationsByStatus(status string) (int64, error)

	// Document operations
	CreateDocument(doc *models.Document) (*models.Document, error)
	GetDocument(documentID string) (*models.Document, error)
	GetDocumentsByUser(userID string) ([]*models.Document, error)
	GetDocumentsByStatus(status string) ([]*models.Document, error)
	GetAllDocuments() ([]*models.Document, error)
	UpdateDocument(doc *models.Document) error
	DeleteDocument(documentID string) error
	GetExpiredDocuments(asOf time.Time) ([]*models.Document, error)

	// Notification operations
	CreateNotification(n *models.Notification) (*models.Notification, error)
	GetNotification(notificationID string) (*models.Notification, error)
	GetNotificationsByUser(userID string, limit int) ([]*models.Notification, error)
	CountUnreadNotifications(userID string) (int64, error)
	UpdateNotification(n *models.Notification) error
	MarkAllNotificationsRead(userID string) error
	DeleteExpiredNotifications(asOf time.Time) (int64, error)
}
