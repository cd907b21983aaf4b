package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/schemegenie/schemegenie-backend/internal/models"
)

// MemoryStore holds all data in memory for tests and local development
type MemoryStore struct {
	users         map[string]*models.User
	schemes       map[string]*models.Scheme
	applications  map[string]*models.Application
	documents     map[string]*models.Document
	notifications map[string]*models.Notification

	// Mutexes for thread safety
	userMu         sync.RWMutex
	schemeMu       sync.RWMutex
	applicationMu  sync.RWMutex
	documentMu     sync.RWMutex
	notificationMu sync.RWMutex

	// Counters for ID generation
	userCounter         int
	schemeCounter       int
	applicationCounter  int
	documentCounter     int
	notificationCounter int
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]*models.User),
		schemes:       make(map[string]*models.Scheme),
		applications:  make(map[string]*models.Application),
		documents:     make(map[string]*models.Document),
		notifications: make(map[string]*models.Notification),
	}
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, fmt.Errorf("email already registered")
		}
	}

	m.userCounter++
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("USR%05d", m.userCounter)
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	m.users[user.UserID] = user
	return user, nil
}

func (m *MemoryStore) GetUserByID(userID string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[userID]
	if !exists {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (m *MemoryStore) GetAllUsers() ([]*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	users := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.users[user.UserID]; !exists {
		return fmt.Errorf("user not found")
	}
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *MemoryStore) CountUsers() (int64, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MemoryStore) CountUsersSince(since time.Time) (int64, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	var count int64
	for _, user := range m.users {
		if user.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

// Scheme operations

func (m *MemoryStore) CreateScheme(scheme *models.Scheme) (*models.Scheme, error) {
	m.schemeMu.Lock()
	defer m.schemeMu.Unlock()

	m.schemeCounter++
	if scheme.SchemeID == "" {
		scheme.SchemeID = fmt.Sprintf("SCH%05d", m.schemeCounter)
	}
	scheme.IsActive = true
	scheme.CreatedAt = time.Now()
	scheme.UpdatedAt = time.Now()

	m.schemes[scheme.SchemeID] = scheme
	return scheme, nil
}

func (m *MemoryStore) GetScheme(schemeID string) (*models.Scheme, error) {
	m.schemeMu.RLock()
	defer m.schemeMu.RUnlock()

	scheme, exists := m.schemes[schemeID]
	if !exists {
		return nil, fmt.Errorf("scheme not found")
	}
	return scheme, nil
}

func (m *MemoryStore) GetActiveSchemes() ([]*models.Scheme, error) {
	m.schemeMu.RLock()
	defer m.schemeMu.RUnlock()

	var schemes []*models.Scheme
	for _, scheme := range m.schemes {
		if scheme.IsActive {
			schemes = append(schemes, scheme)
		}
	}
	sort.Slice(schemes, func(i, j int) bool {
		return schemes[i].CreatedAt.After(schemes[j].CreatedAt)
	})
	return schemes, nil
}

func (m *MemoryStore) GetSchemesByCategory(category string) ([]*models.Scheme, error) {
	m.schemeMu.RLock()
	defer m.schemeMu.RUnlock()

	var schemes []*models.Scheme
	for _, scheme := range m.schemes {
		if scheme.IsActive && strings.EqualFold(scheme.Category, category) {
			schemes = append(schemes, scheme)
		}
	}
	sort.Slice(schemes, func(i, j int) bool {
		return schemes[i].CreatedAt.After(schemes[j].CreatedAt)
	})
	return schemes, nil
}

func (m *MemoryStore) SearchSchemes(query string) ([]*models.Scheme, error) {
	m.schemeMu.RLock()
	defer m.schemeMu.RUnlock()

	query = strings.ToLower(query)
	var schemes []*models.Scheme
	for _, scheme := range m.schemes {
		if !scheme.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(scheme.Name), query) ||
			strings.Contains(strings.ToLower(scheme.Description), query) ||
			strings.Contains(strings.ToLower(scheme.Category), query) {
			schemes = append(schemes, scheme)
		}
	}
	sort.Slice(schemes, func(i, j int) bool {
		return schemes[i].CreatedAt.After(schemes[j].CreatedAt)
	})
	return schemes, nil
}

func (m *MemoryStore) UpdateScheme(scheme *models.Scheme) error {
	m.schemeMu.Lock()
	defer m.schemeMu.Unlock()

	if _, exists := m.schemes[scheme.SchemeID]; !exists {
		return fmt.Errorf("scheme not found")
	}
	scheme.UpdatedAt = time.Now()
	m.schemes[scheme.SchemeID] = scheme
	return nil
}

func (m *MemoryStore) DeleteScheme(schemeID string) error {
	m.schemeMu.Lock()
	defer m.schemeMu.Unlock()

	if _, exists := m.schemes[schemeID]; !exists {
		return fmt.Errorf("scheme not found")
	}
	delete(m.schemes, schemeID)
	return nil
}

func (m *MemoryStore) CountSchemes() (int64, error) {
	m.schemeMu.RLock()
	defer m.schemeMu.RUnlock()
	return int64(len(m.schemes)), nil
}

// Application operations

func (m *MemoryStore) CreateApplication(app *models.Application) (*models.Application, error) {
	m.applicationMu.Lock()
	defer m.applicationMu.Unlock()

	// Duplicate guard: one active application per (user, scheme)
	for _, existing := range m.applications {
		if existing.UserID == app.UserID && existing.SchemeID == app.SchemeID &&
			models.IsActiveStatus(existing.Status) {
			return nil, fmt.Errorf("application already exists")
		}
	}

	m.applicationCounter++
	if app.ApplicationID == "" {
		app.ApplicationID = fmt.Sprintf("APL%05d", m.applicationCounter)
	}
	if app.Status == "" {
		app.Status = models.StatusDraft
	}
	if app.Priority == "" {
		app.Priority = "medium"
	}
	if app.EstimatedApprovalDays == 0 {
		app.EstimatedApprovalDays = 30
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()

	m.applications[app.ApplicationID] = app
	return app, nil
}

func (m *MemoryStore) GetApplication(applicationID string) (*models.Application, error) {
	m.applicationMu.RLock()
	defer m.applicationMu.RUnlock()

	app, exists := m.applications[applicationID]
	if !exists {
		return nil, fmt.Errorf("application not found")
	}
	return app, nil
}

func (m *MemoryStore) GetApplicationByTrackingID(trackingID string) (*models.Application, error) {
	m.applicationMu.RLock()
	defer m.applicationMu.RUnlock()

	for _, app := range m.applications {
		if app.TrackingID != "" && app.TrackingID == trackingID {
			return app, nil
		}
	}
	return nil, fmt.Errorf("application not found")
}

func (m *MemoryStore) GetApplicationsByUser(userID string) ([]*models.Application, error) {
	m.applicationMu.RLock()
	defer m.applicationMu.RUnlock()

	var apps []*models.Application
	for _, app := range m.applications {
		if app.UserID == userID {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func (m *MemoryStore) GetApplicationsByStatus(statuses ...string) ([]*models.Application, error) {
	m.applicationMu.RLock()
	defer m.applicationMu.RUnlock()

	wanted := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var apps []*models.Application
	for _, app := range m.applications {
		if wanted[app.Status] {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func (m *MemoryStore) GetAllApplications() ([]*models.Application, error) {
	m.applicationMu.RLock()
	defer m.applicationMu.RUnlock()

	apps := make([]*models.Application, 0, len(m.applications))
	for _, app := range m.applications {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func (m *MemoryStore) GetActiveApplication(userID, schemeID string) (*models.Application, error) {
	m.applicationMu.RLock()
	defer m.applicationMu.RUnlock()

	for _, app := range m.applications {
		if app.UserID == userID && app.SchemeID == schemeID && models.IsActiveStatus(app.Status) {
			return app, nil
		}
	}
	return nil, fmt.Errorf("application not found")
}

func (m *MemoryStore) UpdateApplication(app *models.Application) error {
	m.applicationMu.Lock()
	defer m.applicationMu.Unlock()

	if _, exists := m.applications[app.ApplicationID]; !exists {
		return fmt.Errorf("application not found")
	}
	app.UpdatedAt = time.Now()
	m.applications[app.ApplicationID] = app
	return nil
}

func (m *MemoryStore) CountApplications() (int64, error) {
	m.applicationMu.RLock()
	defer m.applicationMu.RUnlock()
	return int64(len(m.applications)), nil
}

func (m *MemoryStore) CountApplicationsByStatus(status string) (int64, error) {
	m.applicationMu.RLock()
	defer m.applicationMu.RUnlock()

	var count int64
	for _, app := range m.applications {
		if app.Status == status {
			count++
		}
	}
	return count, nil
}

// Document operations

func (m *MemoryStore) CreateDocument(doc *models.Document) (*models.Document, error) {
	m.documentMu.Lock()
	defer m.documentMu.Unlock()

	m.documentCounter++
	if doc.DocumentID == "" {
		doc.DocumentID = fmt.Sprintf("DOC%05d", m.documentCounter)
	}
	if doc.VerificationStatus == "" {
		doc.VerificationStatus = models.DocumentStatusPending
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = time.Now()
	}
	if doc.ExpiryDate == nil {
		exp := models.DefaultExpiryDate(doc.Category, time.Now())
		doc.ExpiryDate = &exp
	}
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	m.documents[doc.DocumentID] = doc
	return doc, nil
}

func (m *MemoryStore) GetDocument(documentID string) (*models.Document, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	doc, exists := m.documents[documentID]
	if !exists {
		return nil, fmt.Errorf("document not found")
	}
	return doc, nil
}

func (m *MemoryStore) GetDocumentsByUser(userID string) ([]*models.Document, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	var docs []*models.Document
	for _, doc := range m.documents {
		if doc.UserID == userID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadDate.After(docs[j].UploadDate)
	})
	return docs, nil
}

func (m *MemoryStore) GetDocumentsByStatus(status string) ([]*models.Document, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	var docs []*models.Document
	for _, doc := range m.documents {
		if doc.VerificationStatus == status {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadDate.After(docs[j].UploadDate)
	})
	return docs, nil
}

func (m *MemoryStore) GetAllDocuments() ([]*models.Document, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	docs := make([]*models.Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadDate.After(docs[j].UploadDate)
	})
	return docs, nil
}

func (m *MemoryStore) UpdateDocument(doc *models.Document) error {
	m.documentMu.Lock()
	defer m.documentMu.Unlock()

	if _, exists := m.documents[doc.DocumentID]; !exists {
		return fmt.Errorf("document not found")
	}
	doc.UpdatedAt = time.Now()
	m.documents[doc.DocumentID] = doc
	return nil
}

func (m *MemoryStore) DeleteDocument(documentID string) error {
	m.documentMu.Lock()
	defer m.documentMu.Unlock()

	if _, exists := m.documents[documentID]; !exists {
		return fmt.Errorf("document not found")
	}
	delete(m.documents, documentID)
	return nil
}

func (m *MemoryStore) GetExpiredDocuments(asOf time.Time) ([]*models.Document, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	var docs []*models.Document
	for _, doc := range m.documents {
		if doc.ExpiryDate != nil && doc.ExpiryDate.Before(asOf) && !doc.IsExpired {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Notification operations

func (m *MemoryStore) CreateNotification(n *models.Notification) (*models.Notification, error) {
	m.notificationMu.Lock()
	defer m.notificationMu.Unlock()

	m.notificationCounter++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("NTF%05d", m.notificationCounter)
	}
	if n.ExpiresAt.IsZero() {
		n.ExpiresAt = time.Now().Add(models.NotificationTTL)
	}
	n.CreatedAt = time.Now()
	n.UpdatedAt = time.Now()

	m.notifications[n.NotificationID] = n
	return n, nil
}

func (m *MemoryStore) GetNotification(notificationID string) (*models.Notification, error) {
	m.notificationMu.RLock()
	defer m.notificationMu.RUnlock()

	n, exists := m.notifications[notificationID]
	if !exists {
		return nil, fmt.Errorf("notification not found")
	}
	return n, nil
}

func (m *MemoryStore) GetNotificationsByUser(userID string, limit int) ([]*models.Notification, error) {
	m.notificationMu.RLock()
	defer m.notificationMu.RUnlock()

	var list []*models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MemoryStore) CountUnreadNotifications(userID string) (int64, error) {
	m.notificationMu.RLock()
	defer m.notificationMu.RUnlock()

	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) UpdateNotification(n *models.Notification) error {
	m.notificationMu.Lock()
	defer m.notificationMu.Unlock()

	if _, exists := m.notifications[n.NotificationID]; !exists {
		return fmt.Errorf("notification not found")
	}
	n.UpdatedAt = time.Now()
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *MemoryStore) MarkAllNotificationsRead(userID string) error {
	m.notificationMu.Lock()
	defer m.notificationMu.Unlock()

	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			n.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (m *MemoryStore) DeleteExpiredNotifications(asOf time.Time) (int64, error) {
	m.notificationMu.Lock()
	defer m.notificationMu.Unlock()

	var deleted int64
	for id, n := range m.notifications {
		if n.ExpiresAt.Before(asOf) {
			delete(m.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
