package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/schemegenie/schemegenie-backend/internal/models"
)

// DatabaseStore implements Store on top of PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// User operations

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("email already registered")
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStore) GetAllUsers() ([]*models.User, error) {
	var users []*models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *DatabaseStore) UpdateUser(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *DatabaseStore) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (s *DatabaseStore) CountUsersSince(since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// Scheme operations

func (s *DatabaseStore) CreateScheme(scheme *models.Scheme) (*models.Scheme, error) {
	scheme.IsActive = true
	if err := s.db.Create(scheme).Error; err != nil {
		return nil, err
	}
	return scheme, nil
}

func (s *DatabaseStore) GetScheme(schemeID string) (*models.Scheme, error) {
	var scheme models.Scheme
	if err := s.db.Where("scheme_id = ?", schemeID).First(&scheme).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("scheme not found")
		}
		return nil, err
	}
	return &scheme, nil
}

func (s *DatabaseStore) GetActiveSchemes() ([]*models.Scheme, error) {
	var schemes []*models.Scheme
	if err := s.db.Where("is_active = ?", true).Order("created_at DESC").Find(&schemes).Error; err != nil {
		return nil, err
	}
	return schemes, nil
}

func (s *DatabaseStore) GetSchemesByCategory(category string) ([]*models.Scheme, error) {
	var schemes []*models.Scheme
	err := s.db.Where("is_active = ? AND category ILIKE ?", true, category).
		Order("created_at DESC").Find(&schemes).Error
	if err != nil {
		return nil, err
	}
	return schemes, nil
}

func (s *DatabaseStore) SearchSchemes(query string) ([]*models.Scheme, error) {
	var schemes []*models.Scheme
	pattern := "%" + query + "%"
	err := s.db.Where("is_active = ? AND (name ILIKE ? OR description ILIKE ? OR category ILIKE ?)",
		true, pattern, pattern, pattern).
		Order("created_at DESC").Find(&schemes).Error
	if err != nil {
		return nil, err
	}
	return schemes, nil
}

func (s *DatabaseStore) UpdateScheme(scheme *models.Scheme) error {
	return s.db.Save(scheme).Error
}

func (s *DatabaseStore) DeleteScheme(schemeID string) error {
	result := s.db.Where("scheme_id = ?", schemeID).Delete(&models.Scheme{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("scheme not found")
	}
	return nil
}

func (s *DatabaseStore) CountSchemes() (int64, error) {
	var count int64
	err := s.db.Model(&models.Scheme{}).Count(&count).Error
	return count, err
}

// Application operations

func (s *DatabaseStore) CreateApplication(app *models.Application) (*models.Application, error) {
	// Duplicate guard: one active application per (user, scheme).
	// Best-effort check at write time, as in the original system.
	var count int64
	s.db.Model(&models.Application{}).
		Where("user_id = ? AND scheme_id = ? AND status IN ?", app.UserID, app.SchemeID, models.ActiveStatuses).
		Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("application already exists")
	}

	if err := s.db.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (s *DatabaseStore) GetApplication(applicationID string) (*models.Application, error) {
	var app models.Application
	if err := s.db.Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application not found")
		}
		return nil, err
	}
	return &app, nil
}

func (s *DatabaseStore) GetApplicationByTrackingID(trackingID string) (*models.Application, error) {
	var app models.Application
	if err := s.db.Where("tracking_id = ? AND tracking_id <> ''", trackingID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application not found")
		}
		return nil, err
	}
	return &app, nil
}

func (s *DatabaseStore) GetApplicationsByUser(userID string) ([]*models.Application, error) {
	var apps []*models.Application
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *DatabaseStore) GetApplicationsByStatus(statuses ...string) ([]*models.Application, error) {
	var apps []*models.Application
	if err := s.db.Where("status IN ?", statuses).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *DatabaseStore) GetAllApplications() ([]*models.Application, error) {
	var apps []*models.Application
	if err := s.db.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *DatabaseStore) GetActiveApplication(userID, schemeID string) (*models.Application, error) {
	var app models.Application
	err := s.db.Where("user_id = ? AND scheme_id = ? AND status IN ?", userID, schemeID, models.ActiveStatuses).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application not found")
		}
		return nil, err
	}
	return &app, nil
}

func (s *DatabaseStore) UpdateApplication(app *models.Application) error {
	return s.db.Save(app).Error
}

func (s *DatabaseStore) CountApplications() (int64, error) {
	var count int64
	err := s.db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

func (s *DatabaseStore) CountApplicationsByStatus(status string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Application{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Document operations

func (s *DatabaseStore) CreateDocument(doc *models.Document) (*models.Document, error) {
	if err := s.db.Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DatabaseStore) GetDocument(documentID string) (*models.Document, error) {
	var doc models.Document
	if err := s.db.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document not found")
		}
		return nil, err
	}
	return &doc, nil
}

func (s *DatabaseStore) GetDocumentsByUser(userID string) ([]*models.Document, error) {
	var docs []*models.Document
	if err := s.db.Where("user_id = ?", userID).Order("upload_date DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *DatabaseStore) GetDocumentsByStatus(status string) ([]*models.Document, error) {
	var docs []*models.Document
	if err := s.db.Where("verification_status = ?", status).Order("upload_date DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *DatabaseStore) GetAllDocuments() ([]*models.Document, error) {
	var docs []*models.Document
	if err := s.db.Order("upload_date DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *DatabaseStore) UpdateDocument(doc *models.Document) error {
	return s.db.Save(doc).Error
}

func (s *DatabaseStore) DeleteDocument(documentID string) error {
	result := s.db.Where("document_id = ?", documentID).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document not found")
	}
	return nil
}

func (s *DatabaseStore) GetExpiredDocuments(asOf time.Time) ([]*models.Document, error) {
	var docs []*models.Document
	err := s.db.Where("expiry_date < ? AND is_expired = ?", asOf, false).Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Notification operations

func (s *DatabaseStore) CreateNotification(n *models.Notification) (*models.Notification, error) {
	if err := s.db.Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (s *DatabaseStore) GetNotification(notificationID string) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.Where("notification_id = ?", notificationID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification not found")
		}
		return nil, err
	}
	return &n, nil
}

func (s *DatabaseStore) GetNotificationsByUser(userID string, limit int) ([]*models.Notification, error) {
	var list []*models.Notification
	q := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *DatabaseStore) CountUnreadNotifications(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).Count(&count).Error
	return count, err
}

func (s *DatabaseStore) UpdateNotification(n *models.Notification) error {
	return s.db.Save(n).Error
}

func (s *DatabaseStore) MarkAllNotificationsRead(userID string) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (s *DatabaseStore) DeleteExpiredNotifications(asOf time.Time) (int64, error) {
	result := s.db.Where("expires_at < ?", asOf).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
