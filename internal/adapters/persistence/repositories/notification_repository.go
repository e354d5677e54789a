package repositories

import (
	"context"

	"pharmatrace/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create appends a notification record
func (r *notificationRepository) Create(ctx context.Context, record *models.Notification) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// List lists notification records, newest first
func (r *notificationRepository) List(ctx context.Context, offset, limit int) ([]*models.Notification, int64, error) {
	var records []*models.Notification
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}
