package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pharmatrace/internal/adapters/persistence/models"
	"pharmatrace/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
)

// NotificationService persists the append-only record of structured events
// emitted by successful state-changing operations, and optionally forwards
// each record to an external webhook. Records are observability only; no
// business decision ever reads them back.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	webhookURL       string
	client           *http.Client
}

// NewNotificationService creates a new notification service. An empty
// webhookURL disables forwarding.
func NewNotificationService(notificationRepo repositories.NotificationRepository, webhookURL string) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		webhookURL:       webhookURL,
		client:           &http.Client{Timeout: 10 * time.Second},
	}
}

// Emit appends one notification record. Callers invoke it only after their
// own state change has been committed, so a failed operation never leaves a
// partial record behind. Persistence failures are logged, not propagated:
// the side channel must not fail the operation it describes.
func (s *NotificationService) Emit(ctx context.Context, name string, fields map[string]interface{}) {
	payload, err := json.Marshal(fields)
	if err != nil {
		log.Printf("⚠️ Failed to encode notification %s: %v", name, err)
		return
	}

	record := &models.Notification{
		RecordID: uuid.NewString(),
		Name:     name,
		Fields:   string(payload),
	}

	if err := s.notificationRepo.Create(ctx, record); err != nil {
		log.Printf("⚠️ Failed to persist notification %s: %v", name, err)
		return
	}

	if s.webhookURL != "" {
		go s.forward(record)
	}
}

// forward posts one record to the configured webhook, best effort
func (s *NotificationService) forward(record *models.Notification) {
	body, err := json.Marshal(record)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Failed to forward notification %s: %v", record.Name, err)
		return
	}
	defer resp.Body.Close()
}

// List lists notification records, newest first
func (s *NotificationService) List(ctx context.Context, offset, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.List(ctx, offset, limit)
}
