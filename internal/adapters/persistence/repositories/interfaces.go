package repositories

import (
	"context"

	"pharmatrace/internal/adapters/persistence/models"
)

// Repositories return gorm.ErrRecordNotFound when a single-row lookup
// misses; list lookups return empty slices.

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByIdentity(ctx context.Context, identity string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
}

// RegistryRepository defines certification registry storage
type RegistryRepository interface {
	GetAdmin(ctx context.Context) (string, error)
	SetAdmin(ctx context.Context, identity string) error
	IsApprover(ctx context.Context, identity string) (bool, error)
	AddApprover(ctx context.Context, identity string) error
	RemoveApprover(ctx context.Context, identity string) error
	CountAdmins(ctx context.Context) (int64, error)

	GetIngredientCertification(ctx context.Context, identity string) (*models.IngredientCertification, error)
	UpsertIngredientCertification(ctx context.Context, cert *models.IngredientCertification) error
	DeleteIngredientCertification(ctx context.Context, identity string) error
	ListAPICertificationsExpiringBefore(ctx context.Context, epoch int64) ([]*models.IngredientCertification, error)

	GetFormulationCertification(ctx context.Context, formulationIdentity string) (*models.FormulationCertification, error)
	UpsertFormulationCertification(ctx context.Context, cert *models.FormulationCertification) error
}

// IngredientRepository defines ingredient catalog storage
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	GetByIdentity(ctx context.Context, identity string) (*models.Ingredient, error)
	List(ctx context.Context, offset, limit int) ([]*models.Ingredient, int64, error)
}

// FormulationRepository defines formulation storage
type FormulationRepository interface {
	Create(ctx context.Context, formulation *models.Formulation) error
	GetByIdentity(ctx context.Context, identity string) (*models.Formulation, error)
	List(ctx context.Context, offset, limit int) ([]*models.Formulation, int64, error)
}

// LotRepository defines lot storage
type LotRepository interface {
	Create(ctx context.Context, lot *models.Lot) error
	GetByIdentity(ctx context.Context, identity string) (*models.Lot, error)
	Update(ctx context.Context, lot *models.Lot) error
	List(ctx context.Context, offset, limit int) ([]*models.Lot, int64, error)
}

// NotificationRepository defines append-only notification storage
type NotificationRepository interface {
	Create(ctx context.Context, record *models.Notification) error
	List(ctx context.Context, offset, limit int) ([]*models.Notification, int64, error)
}
