package services

import (
	"context"
	"errors"

	"pharmatrace/internal/adapters/persistence/models"
	"pharmatrace/internal/adapters/persistence/repositories"
	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/pkg/identity"

	"gorm.io/gorm"
)

// IngredientService manages the ingredient catalog: the descriptive entry
// (name, dose bounds) behind an ingredient identity. Certification lives
// at the registry, keyed by identity alone; registering an ingredient here
// is not a precondition for the registry to certify its identity.
type IngredientService struct {
	ingredientRepo repositories.IngredientRepository
}

// NewIngredientService creates a new ingredient service
func NewIngredientService(ingredientRepo repositories.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// CreateIngredientInput represents ingredient registration input
type CreateIngredientInput struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	MinDoseMg int    `json:"min_dose_mg"`
	MaxDoseMg int    `json:"max_dose_mg"`
}

// Create registers an ingredient and mints its identity
func (s *IngredientService) Create(ctx context.Context, caller domain.Identity, input *CreateIngredientInput) (*models.Ingredient, error) {
	kind := domain.IngredientKind(input.Kind)
	if kind != domain.KindAPI && kind != domain.KindExcipient {
		return nil, domain.ErrInvalidInput
	}
	if input.Name == "" || input.MinDoseMg < 0 || input.MaxDoseMg < input.MinDoseMg {
		return nil, domain.ErrInvalidInput
	}

	ingredientID, err := identity.New()
	if err != nil {
		return nil, err
	}

	ingredient := &models.Ingredient{
		Identity:  string(ingredientID),
		Kind:      string(kind),
		Name:      input.Name,
		MinDoseMg: input.MinDoseMg,
		MaxDoseMg: input.MaxDoseMg,
		CreatedBy: string(caller),
	}
	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// GetByIdentity reads one ingredient catalog entry
func (s *IngredientService) GetByIdentity(ctx context.Context, ingredientID domain.Identity) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByIdentity(ctx, string(ingredientID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

// List lists ingredients with pagination
func (s *IngredientService) List(ctx context.Context, offset, limit int) ([]*models.Ingredient, int64, error) {
	return s.ingredientRepo.List(ctx, offset, limit)
}
