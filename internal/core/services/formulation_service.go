package services

import (
	"context"
	"errors"

	"pharmatrace/internal/adapters/persistence/models"
	"pharmatrace/internal/adapters/persistence/repositories"
	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/pkg/identity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FormulationService manages the drug formulation catalog. A formulation
// is validated against the certification registry once, at construction,
// and is immutable afterwards: no update path exists.
type FormulationService struct {
	formulationRepo repositories.FormulationRepository
	registry        *RegistryService
}

// NewFormulationService creates a new formulation service
func NewFormulationService(formulationRepo repositories.FormulationRepository, registry *RegistryService) *FormulationService {
	return &FormulationService{
		formulationRepo: formulationRepo,
		registry:        registry,
	}
}

// IngredientEntryInput is one (ingredient identity, quantity) pair
type IngredientEntryInput struct {
	Identity   string          `json:"ingredient_identity"`
	QuantityMg decimal.Decimal `json:"quantity_mg"`
}

// CreateFormulationInput represents formulation creation input
type CreateFormulationInput struct {
	Name       string                 `json:"name"`
	MinBoxes   int                    `json:"min_boxes"`
	MaxBoxes   int                    `json:"max_boxes"`
	APIs       []IngredientEntryInput `json:"apis"`
	Excipients []IngredientEntryInput `json:"excipients"`
}

// Create constructs a formulation. The whole composition is checked against
// the registry in one atomic admission pass; any uncertified ingredient or
// over-ceiling excipient quantity fails construction entirely, leaving no
// partial object behind. The certification snapshot is taken here once and
// never re-validated.
func (s *FormulationService) Create(ctx context.Context, caller domain.Identity, input *CreateFormulationInput) (*models.Formulation, error) {
	if input.Name == "" || input.MaxBoxes < input.MinBoxes || input.MinBoxes < 0 {
		return nil, domain.ErrInvalidInput
	}

	apis, err := toQuantities(input.APIs)
	if err != nil {
		return nil, err
	}
	excipients, err := toQuantities(input.Excipients)
	if err != nil {
		return nil, err
	}

	if err := s.registry.ValidateComposition(ctx, apis, excipients); err != nil {
		return nil, err
	}

	formulationID, err := identity.New()
	if err != nil {
		return nil, err
	}

	formulation := &models.Formulation{
		Identity:  string(formulationID),
		Name:      input.Name,
		MinBoxes:  input.MinBoxes,
		MaxBoxes:  input.MaxBoxes,
		CreatedBy: string(caller),
	}
	for _, entry := range apis {
		formulation.Ingredients = append(formulation.Ingredients, models.FormulationIngredient{
			IngredientIdentity: string(entry.Identity),
			Kind:               string(domain.KindAPI),
			QuantityMg:         entry.QuantityMg,
		})
	}
	for _, entry := range excipients {
		formulation.Ingredients = append(formulation.Ingredients, models.FormulationIngredient{
			IngredientIdentity: string(entry.Identity),
			Kind:               string(domain.KindExcipient),
			QuantityMg:         entry.QuantityMg,
		})
	}

	if err := s.formulationRepo.Create(ctx, formulation); err != nil {
		return nil, err
	}
	return formulation, nil
}

// GetByIdentity reads one formulation with its composition
func (s *FormulationService) GetByIdentity(ctx context.Context, formulationID domain.Identity) (*models.Formulation, error) {
	formulation, err := s.formulationRepo.GetByIdentity(ctx, string(formulationID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return formulation, nil
}

// QuantityOf returns the formulated milligram quantity for one ingredient.
// Fails with ErrNotFound when the ingredient is not part of the formulation.
func (s *FormulationService) QuantityOf(ctx context.Context, formulationID, ingredient domain.Identity) (decimal.Decimal, error) {
	formulation, err := s.GetByIdentity(ctx, formulationID)
	if err != nil {
		return decimal.Zero, err
	}

	quantity, ok := formulation.QuantityOf(string(ingredient))
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	return quantity, nil
}

// List lists formulations with pagination
func (s *FormulationService) List(ctx context.Context, offset, limit int) ([]*models.Formulation, int64, error) {
	return s.formulationRepo.List(ctx, offset, limit)
}

func toQuantities(entries []IngredientEntryInput) ([]domain.IngredientQuantity, error) {
	out := make([]domain.IngredientQuantity, 0, len(entries))
	for _, entry := range entries {
		id, err := identity.Parse(entry.Identity)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		if entry.QuantityMg.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		out = append(out, domain.IngredientQuantity{Identity: id, QuantityMg: entry.QuantityMg})
	}
	return out, nil
}
