package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pharmatrace/internal/core/domain"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table. Identity is the user's chain identity,
// minted at registration and carried by every access token.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Identity  string         `gorm:"uniqueIndex;size:42;not null" json:"identity"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Identity  string    `json:"identity"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Identity:  u.Identity,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Certification Registry Tables
// ============================================================

// RegistryRole represents registry_roles table. Exactly one row carries
// the ADMIN role at all times; APPROVER rows form a set.
type RegistryRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Identity  string    `gorm:"uniqueIndex;size:42;not null" json:"identity"`
	Role      string    `gorm:"size:20;not null;index" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RegistryRole) TableName() string {
	return "registry_roles"
}

// IngredientCertification represents ingredient_certifications table.
// A missing row means the ingredient is not certified; rejection deletes
// the row outright.
type IngredientCertification struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Identity      string          `gorm:"uniqueIndex;size:42;not null" json:"identity"`
	Kind          string          `gorm:"size:20;not null" json:"kind"`
	PatentExpiry  int64           `gorm:"default:0" json:"patent_expiry"`
	MaxQuantityMg decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"max_quantity_mg"`
	ApprovedBy    string          `gorm:"size:42;not null" json:"approved_by"`
	ApprovedAt    time.Time       `gorm:"autoCreateTime" json:"approved_at"`
}

func (IngredientCertification) TableName() string {
	return "ingredient_certifications"
}

func (c *IngredientCertification) ToDomain() *domain.IngredientCertification {
	return &domain.IngredientCertification{
		Identity:      domain.Identity(c.Identity),
		Kind:          domain.IngredientKind(c.Kind),
		PatentExpiry:  c.PatentExpiry,
		MaxQuantityMg: c.MaxQuantityMg,
		ApprovedBy:    domain.Identity(c.ApprovedBy),
		ApprovedAt:    c.ApprovedAt,
	}
}

// FormulationCertification represents formulation_certifications table.
// The registry flips Approved to true exactly once; no un-approve exists.
type FormulationCertification struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	FormulationIdentity string    `gorm:"uniqueIndex;size:42;not null" json:"formulation_identity"`
	Approved            bool      `gorm:"not null;default:false" json:"approved"`
	ApprovedBy          string    `gorm:"size:42;not null" json:"approved_by"`
	ApprovedAt          time.Time `gorm:"autoCreateTime" json:"approved_at"`
}

func (FormulationCertification) TableName() string {
	return "formulation_certifications"
}

// ============================================================
// Ingredient Catalog Tables
// ============================================================

// Ingredient represents ingredients table: the catalog entry behind an
// ingredient identity (name and dose bounds). Certification is tracked
// separately by the registry, keyed by identity alone.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Identity  string    `gorm:"uniqueIndex;size:42;not null" json:"identity"`
	Kind      string    `gorm:"size:20;not null" json:"kind"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	MinDoseMg int       `gorm:"not null;default:0" json:"min_dose_mg"`
	MaxDoseMg int       `gorm:"not null;default:0" json:"max_dose_mg"`
	CreatedBy string    `gorm:"size:42;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// ============================================================
// Formulation Tables
// ============================================================

// Formulation represents formulations table. Immutable after creation:
// no update path exists anywhere in the service layer.
type Formulation struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	Identity    string                  `gorm:"uniqueIndex;size:42;not null" json:"identity"`
	Name        string                  `gorm:"size:100;not null" json:"name"`
	MinBoxes    int                     `gorm:"not null;default:0" json:"min_boxes"`
	MaxBoxes    int                     `gorm:"not null;default:0" json:"max_boxes"`
	CreatedBy   string                  `gorm:"size:42;not null" json:"created_by"`
	CreatedAt   time.Time               `gorm:"autoCreateTime" json:"created_at"`
	Ingredients []FormulationIngredient `gorm:"foreignKey:FormulationID" json:"ingredients"`
}

func (Formulation) TableName() string {
	return "formulations"
}

// APIEntries returns the API composition rows in insertion order
func (f *Formulation) APIEntries() []FormulationIngredient {
	return f.entriesOfKind(string(domain.KindAPI))
}

// ExcipientEntries returns the excipient composition rows in insertion order
func (f *Formulation) ExcipientEntries() []FormulationIngredient {
	return f.entriesOfKind(string(domain.KindExcipient))
}

func (f *Formulation) entriesOfKind(kind string) []FormulationIngredient {
	var out []FormulationIngredient
	for _, ing := range f.Ingredients {
		if ing.Kind == kind {
			out = append(out, ing)
		}
	}
	return out
}

// QuantityOf returns the formulated quantity for one ingredient identity
func (f *Formulation) QuantityOf(ingredient string) (decimal.Decimal, bool) {
	for _, ing := range f.Ingredients {
		if ing.IngredientIdentity == ingredient {
			return ing.QuantityMg, true
		}
	}
	return decimal.Zero, false
}

// FormulationIngredient represents formulation_ingredients table
type FormulationIngredient struct {
	ID                 uint            `gorm:"primaryKey" json:"-"`
	FormulationID      uint            `gorm:"index;not null" json:"-"`
	IngredientIdentity string          `gorm:"size:42;not null;index" json:"ingredient_identity"`
	Kind               string          `gorm:"size:20;not null" json:"kind"`
	QuantityMg         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_mg"`
}

func (FormulationIngredient) TableName() string {
	return "formulation_ingredients"
}

// ============================================================
// Lot Tables
// ============================================================

// Lot represents lots table: one row per manufactured batch
type Lot struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Identity            string    `gorm:"uniqueIndex;size:42;not null" json:"identity"`
	FormulationIdentity string    `gorm:"size:42;not null;index" json:"formulation_identity"`
	State               string    `gorm:"size:20;not null;default:'CREATED'" json:"state"`
	CreatedBy           string    `gorm:"size:42;not null" json:"created_by"`
	Manufacturer        *string   `gorm:"size:42" json:"manufacturer,omitempty"`
	Distributor         *string   `gorm:"size:42" json:"distributor,omitempty"`
	Pharmacy            *string   `gorm:"size:42" json:"pharmacy,omitempty"`
	LotName             string    `gorm:"size:100" json:"lot_name,omitempty"`
	NumBoxes            int       `gorm:"default:0" json:"num_boxes,omitempty"`
	LotPrice            int64     `gorm:"default:0" json:"lot_price,omitempty"`
	BoxPrice            int64     `gorm:"default:0" json:"box_price,omitempty"`
	ManufacturingDate   int64     `gorm:"default:0" json:"manufacturing_date,omitempty"`
	ExpiryDate          int64     `gorm:"default:0" json:"expiry_date,omitempty"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Lot) TableName() string {
	return "lots"
}

// RoleBound reports whether the given lot role has been assigned
func (l *Lot) RoleBound(role domain.LotRole) bool {
	switch role {
	case domain.LotRoleManufacturer:
		return l.Manufacturer != nil
	case domain.LotRoleDistributor:
		return l.Distributor != nil
	case domain.LotRolePharmacy:
		return l.Pharmacy != nil
	}
	return false
}

// IsManufacturer reports whether caller equals the bound manufacturer
func (l *Lot) IsManufacturer(caller domain.Identity) bool {
	return l.Manufacturer != nil && domain.Identity(*l.Manufacturer) == caller
}

// ============================================================
// Notification Tables
// ============================================================

// Notification represents notifications table: the append-only record of
// structured events emitted by successful state-changing operations.
// Records are a pure side channel, never consulted for business logic.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecordID  string    `gorm:"uniqueIndex;size:36;not null" json:"record_id"`
	Name      string    `gorm:"size:50;not null;index" json:"name"`
	Fields    string    `gorm:"type:json;not null" json:"fields"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Registry
		&RegistryRole{},
		&IngredientCertification{},
		&FormulationCertification{},
		// Catalog
		&Ingredient{},
		&Formulation{},
		&FormulationIngredient{},
		// Lots
		&Lot{},
		// Observability
		&Notification{},
	)
}
