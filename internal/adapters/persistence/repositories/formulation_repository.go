package repositories

import (
	"context"

	"pharmatrace/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// formulationRepository implements FormulationRepository interface
type formulationRepository struct {
	db *gorm.DB
}

// NewFormulationRepository creates a new formulation repository
func NewFormulationRepository(db *gorm.DB) FormulationRepository {
	return &formulationRepository{db: db}
}

// Create creates a formulation together with its composition rows
func (r *formulationRepository) Create(ctx context.Context, formulation *models.Formulation) error {
	return r.db.WithContext(ctx).Create(formulation).Error
}

// GetByIdentity gets a formulation with its composition preloaded
func (r *formulationRepository) GetByIdentity(ctx context.Context, identity string) (*models.Formulation, error) {
	var formulation models.Formulation
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("identity = ?", identity).
		First(&formulation).Error
	if err != nil {
		return nil, err
	}
	return &formulation, nil
}

// List lists formulations with pagination
func (r *formulationRepository) List(ctx context.Context, offset, limit int) ([]*models.Formulation, int64, error) {
	var formulations []*models.Formulation
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Formulation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&formulations).Error
	return formulations, total, err
}
