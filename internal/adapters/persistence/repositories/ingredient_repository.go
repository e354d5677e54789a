package repositories

import (
	"context"

	"pharmatrace/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ingredientRepository implements IngredientRepository interface
type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// Create creates a new ingredient catalog entry
func (r *ingredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

// GetByIdentity gets an ingredient by identity
func (r *ingredientRepository) GetByIdentity(ctx context.Context, identity string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).Where("identity = ?", identity).First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// List lists ingredients with pagination
func (r *ingredientRepository) List(ctx context.Context, offset, limit int) ([]*models.Ingredient, int64, error) {
	var ingredients []*models.Ingredient
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Ingredient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&ingredients).Error
	return ingredients, total, err
}
