package jobs

import (
	"log"
	"time"

	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// CleanupJob sweeps expired records on a fixed interval: notifications
// past their retention deadline are deleted, and documents whose expiry
// date has passed get their expired flag set.
type CleanupJob struct {
	store     storage.Store
	interval  time.Duration
	isRunning bool
	stop      chan struct{}
}

// NewCleanupJob creates a cleanup job scheduler
func NewCleanupJob(store storage.Store, interval time.Duration) *CleanupJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupJob{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the cleanup loop
func (j *CleanupJob) Start() {
	if j.isRunning {
		log.Println("Cleanup job already running")
		return
	}

	j.isRunning = true
	j.stop = make(chan struct{})
	log.Println("Starting cleanup job...")

	go j.run(j.stop)
}

// IsRunning reports whether the loop is active
func (j *CleanupJob) IsRunning() bool {
	return j.isRunning
}

// Stop halts the cleanup loop
func (j *CleanupJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	log.Println("Stopping cleanup job...")
}

func (j *CleanupJob) run(stop <-chan struct{}) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-stop:
			return
		}
	}
}

// sweep performs one cleanup pass
func (j *CleanupJob) sweep() {
	now := time.Now()

	deleted, err := j.store.DeleteExpiredNotifications(now)
	if err != nil {
		log.Printf("Error deleting expired notifications: %v", err)
	} else if deleted > 0 {
		log.Printf("Deleted %d expired notifications", deleted)
	}

	docs, err := j.store.GetExpiredDocuments(now)
	if err != nil {
		log.Printf("Error fetching expired documents: %v", err)
		return
	}

	for _, doc := range docs {
		doc.IsExpired = true
		doc.ExpiryCheckedAt = &now
		if err := j.store.UpdateDocument(doc); err != nil {
			log.Printf("Error marking document %s expired: %v", doc.DocumentID, err)
		}
	}
	if len(docs) > 0 {
		log.Printf("Marked %d documents as expired", len(docs))
	}
}
