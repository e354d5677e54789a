package repositories

import (
	"context"

	"pharmatrace/internal/adapters/persistence/models"
	"pharmatrace/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// registryRepository implements RegistryRepository interface
type registryRepository struct {
	db *gorm.DB
}

// NewRegistryRepository creates a new registry repository
func NewRegistryRepository(db *gorm.DB) RegistryRepository {
	return &registryRepository{db: db}
}

// GetAdmin returns the identity currently holding the ADMIN role
func (r *registryRepository) GetAdmin(ctx context.Context) (string, error) {
	var role models.RegistryRole
	err := r.db.WithContext(ctx).Where("role = ?", string(domain.RoleAdmin)).First(&role).Error
	if err != nil {
		return "", err
	}
	return role.Identity, nil
}

// SetAdmin replaces the ADMIN role holder in a single update
func (r *registryRepository) SetAdmin(ctx context.Context, identity string) error {
	res := r.db.WithContext(ctx).
		Model(&models.RegistryRole{}).
		Where("role = ?", string(domain.RoleAdmin)).
		Update("identity", identity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.db.WithContext(ctx).Create(&models.RegistryRole{
			Identity: identity,
			Role:     string(domain.RoleAdmin),
		}).Error
	}
	return nil
}

// IsApprover checks approver set membership
func (r *registryRepository) IsApprover(ctx context.Context, identity string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RegistryRole{}).
		Where("identity = ? AND role = ?", identity, string(domain.RoleApprover)).
		Count(&count).Error
	return count > 0, err
}

// AddApprover adds an identity to the approver set
func (r *registryRepository) AddApprover(ctx context.Context, identity string) error {
	return r.db.WithContext(ctx).Create(&models.RegistryRole{
		Identity: identity,
		Role:     string(domain.RoleApprover),
	}).Error
}

// RemoveApprover removes an identity from the approver set. Removing an
// absent identity is not an error.
func (r *registryRepository) RemoveApprover(ctx context.Context, identity string) error {
	return r.db.WithContext(ctx).
		Where("identity = ? AND role = ?", identity, string(domain.RoleApprover)).
		Delete(&models.RegistryRole{}).Error
}

// CountAdmins counts ADMIN role rows
func (r *registryRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RegistryRole{}).
		Where("role = ?", string(domain.RoleAdmin)).
		Count(&count).Error
	return count, err
}

// GetIngredientCertification gets a certification row by ingredient identity
func (r *registryRepository) GetIngredientCertification(ctx context.Context, identity string) (*models.IngredientCertification, error) {
	var cert models.IngredientCertification
	err := r.db.WithContext(ctx).Where("identity = ?", identity).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// UpsertIngredientCertification inserts or overwrites a certification row.
// Re-approval after rejection overwrites all prior data.
func (r *registryRepository) UpsertIngredientCertification(ctx context.Context, cert *models.IngredientCertification) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity"}},
		UpdateAll: true,
	}).Create(cert).Error
}

// DeleteIngredientCertification clears a certification back to absent
func (r *registryRepository) DeleteIngredientCertification(ctx context.Context, identity string) error {
	return r.db.WithContext(ctx).
		Where("identity = ?", identity).
		Delete(&models.IngredientCertification{}).Error
}

// ListAPICertificationsExpiringBefore lists API certifications whose patent
// expiry falls before the given epoch
func (r *registryRepository) ListAPICertificationsExpiringBefore(ctx context.Context, epoch int64) ([]*models.IngredientCertification, error) {
	var certs []*models.IngredientCertification
	err := r.db.WithContext(ctx).
		Where("kind = ? AND patent_expiry > 0 AND patent_expiry < ?", string(domain.KindAPI), epoch).
		Find(&certs).Error
	return certs, err
}

// GetFormulationCertification gets a formulation certification row
func (r *registryRepository) GetFormulationCertification(ctx context.Context, formulationIdentity string) (*models.FormulationCertification, error) {
	var cert models.FormulationCertification
	err := r.db.WithContext(ctx).Where("formulation_identity = ?", formulationIdentity).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// UpsertFormulationCertification inserts or overwrites a formulation
// certification row
func (r *registryRepository) UpsertFormulationCertification(ctx context.Context, cert *models.FormulationCertification) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "formulation_identity"}},
		UpdateAll: true,
	}).Create(cert).Error
}
