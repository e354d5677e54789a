package repositories

import (
	"context"

	"pharmatrace/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// lotRepository implements LotRepository interface
type lotRepository struct {
	db *gorm.DB
}

// NewLotRepository creates a new lot repository
func NewLotRepository(db *gorm.DB) LotRepository {
	return &lotRepository{db: db}
}

// Create creates a new lot
func (r *lotRepository) Create(ctx context.Context, lot *models.Lot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

// GetByIdentity gets a lot by identity
func (r *lotRepository) GetByIdentity(ctx context.Context, identity string) (*models.Lot, error) {
	var lot models.Lot
	err := r.db.WithContext(ctx).Where("identity = ?", identity).First(&lot).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// Update saves all lot fields
func (r *lotRepository) Update(ctx context.Context, lot *models.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// List lists lots with pagination
func (r *lotRepository) List(ctx context.Context, offset, limit int) ([]*models.Lot, int64, error) {
	var lots []*models.Lot
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Lot{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&lots).Error
	return lots, total, err
}
