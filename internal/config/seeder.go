package config

import (
	"log"

	"pharmatrace/internal/adapters/persistence/models"
	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/pkg/identity"
	"pharmatrace/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedRegistryAdmin(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin user seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedRegistryAdmin establishes the single ADMIN role holder. The
// registry is unusable without one, so this seeder is not optional.
func (s *Seeder) seedRegistryAdmin() error {
	var count int64
	if err := s.db.Model(&models.RegistryRole{}).
		Where("role = ?", string(domain.RoleAdmin)).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already established
	}

	adminIdentity := s.cfg.Registry.AdminIdentity
	if adminIdentity == "" {
		generated, err := identity.New()
		if err != nil {
			return err
		}
		adminIdentity = string(generated)
		log.Printf("🔑 Generated registry admin identity: %s", adminIdentity)
	} else if _, err := identity.Parse(adminIdentity); err != nil {
		return err
	}

	return s.db.Create(&models.RegistryRole{
		Identity: adminIdentity,
		Role:     string(domain.RoleAdmin),
	}).Error
}

// seedAdminUser seeds a default user account holding the registry admin
// identity. Development convenience only; in production the admin account
// is created through a secure process.
func (s *Seeder) seedAdminUser() error {
	if !s.cfg.IsDev() {
		return nil
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil // Admin user already exists
	}

	var adminRole models.RegistryRole
	if err := s.db.Where("role = ?", string(domain.RoleAdmin)).First(&adminRole).Error; err != nil {
		return err
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Identity: adminRole.Identity,
		Username: "admin",
		Email:    "admin@pharmatrace.local",
		Password: hashedPassword,
		IsActive: true,
	}
	return s.db.Create(admin).Error
}

// SeedAll runs the seeder against db
func SeedAll(db *gorm.DB, cfg *Config) error {
	return NewSeeder(db, cfg).Run()
}
