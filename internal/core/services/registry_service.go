package services

import (
	"context"
	"errors"
	"sync"

	"pharmatrace/internal/adapters/persistence/models"
	"pharmatrace/internal/adapters/persistence/repositories"
	"pharmatrace/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegistryService is the certification authority ("FDA"). It owns the
// admin/approver role assignments and the ingredient and formulation
// certifications. Every mutation checks the caller's stored role; the
// caller identity always comes from the request, never from a cached
// claim. One RWMutex serializes mutations while allowing concurrent
// reads, so an admission check always observes a fully-applied state.
type RegistryService struct {
	registryRepo repositories.RegistryRepository
	notify       *NotificationService

	mu sync.RWMutex
}

// NewRegistryService creates a new registry service. Registries are
// constructed and injected explicitly; nothing here is process-global, so
// independent deployments can coexist.
func NewRegistryService(registryRepo repositories.RegistryRepository, notify *NotificationService) *RegistryService {
	return &RegistryService{
		registryRepo: registryRepo,
		notify:       notify,
	}
}

// requireAdmin fails with ErrUnauthorized unless caller holds the ADMIN role
func (s *RegistryService) requireAdmin(ctx context.Context, caller domain.Identity) error {
	admin, err := s.registryRepo.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}
	if domain.Identity(admin) != caller {
		return domain.ErrUnauthorized
	}
	return nil
}

// requireApprover fails with ErrUnauthorized unless caller is in the approver set
func (s *RegistryService) requireApprover(ctx context.Context, caller domain.Identity) error {
	ok, err := s.registryRepo.IsApprover(ctx, string(caller))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

// ============================================================
// Role management (admin only)
// ============================================================

// AddApprover adds an identity to the approver set
func (s *RegistryService) AddApprover(ctx context.Context, caller, approver domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}

	exists, err := s.registryRepo.IsApprover(ctx, string(approver))
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateApprover
	}

	return s.registryRepo.AddApprover(ctx, string(approver))
}

// RemoveApprover removes an identity from the approver set. Removing an
// identity that is not an approver succeeds silently.
func (s *RegistryService) RemoveApprover(ctx context.Context, caller, approver domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}

	return s.registryRepo.RemoveApprover(ctx, string(approver))
}

// ChangeAdmin transfers the ADMIN role to a new identity atomically
func (s *RegistryService) ChangeAdmin(ctx context.Context, caller, newAdmin domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}

	return s.registryRepo.SetAdmin(ctx, string(newAdmin))
}

// IsApprover reports approver set membership. Pure read, no auth check.
func (s *RegistryService) IsApprover(ctx context.Context, identity domain.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.registryRepo.IsApprover(ctx, string(identity))
}

// Admin returns the current ADMIN identity. Pure read, no auth check.
func (s *RegistryService) Admin(ctx context.Context) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, err := s.registryRepo.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return domain.Identity(admin), nil
}

// ============================================================
// Ingredient certifications (approver only)
// ============================================================

// ApproveAPI certifies an active pharmaceutical ingredient with its patent
// expiry. Re-approval after rejection overwrites prior data.
func (s *RegistryService) ApproveAPI(ctx context.Context, caller, api domain.Identity, patentExpiry int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireApprover(ctx, caller); err != nil {
		return err
	}

	cert := &models.IngredientCertification{
		Identity:     string(api),
		Kind:         string(domain.KindAPI),
		PatentExpiry: patentExpiry,
		ApprovedBy:   string(caller),
	}
	if err := s.registryRepo.UpsertIngredientCertification(ctx, cert); err != nil {
		return err
	}

	s.notify.Emit(ctx, domain.EventAPIApproved, map[string]interface{}{
		"api":           string(api),
		"patent_expiry": patentExpiry,
		"approver":      string(caller),
	})
	return nil
}

// RejectAPI clears an API certification back to absent. The reason is
// carried on the notification only, never stored.
func (s *RegistryService) RejectAPI(ctx context.Context, caller, api domain.Identity, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireApprover(ctx, caller); err != nil {
		return err
	}

	if err := s.registryRepo.DeleteIngredientCertification(ctx, string(api)); err != nil {
		return err
	}

	s.notify.Emit(ctx, domain.EventAPIRejected, map[string]interface{}{
		"api":      string(api),
		"reason":   reason,
		"approver": string(caller),
	})
	return nil
}

// ApproveExcipient certifies an excipient with its quantity ceiling
func (s *RegistryService) ApproveExcipient(ctx context.Context, caller, excipient domain.Identity, maxQuantityMg decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireApprover(ctx, caller); err != nil {
		return err
	}

	cert := &models.IngredientCertification{
		Identity:      string(excipient),
		Kind:          string(domain.KindExcipient),
		MaxQuantityMg: maxQuantityMg,
		ApprovedBy:    string(caller),
	}
	if err := s.registryRepo.UpsertIngredientCertification(ctx, cert); err != nil {
		return err
	}

	s.notify.Emit(ctx, domain.EventExcipientApproved, map[string]interface{}{
		"excipient":       string(excipient),
		"max_quantity_mg": maxQuantityMg,
		"approver":        string(caller),
	})
	return nil
}

// RejectExcipient clears an excipient certification back to absent
func (s *RegistryService) RejectExcipient(ctx context.Context, caller, excipient domain.Identity, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireApprover(ctx, caller); err != nil {
		return err
	}

	if err := s.registryRepo.DeleteIngredientCertification(ctx, string(excipient)); err != nil {
		return err
	}

	s.notify.Emit(ctx, domain.EventExcipientRejected, map[string]interface{}{
		"excipient": string(excipient),
		"reason":    reason,
		"approver":  string(caller),
	})
	return nil
}

// ============================================================
// Formulation certification (approver only)
// ============================================================

// ApproveFormulation sets the certification flag for a formulation.
// There is no un-approve: ingredient revocation after this point does not
// retroactively invalidate the formulation.
func (s *RegistryService) ApproveFormulation(ctx context.Context, caller, formulation domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireApprover(ctx, caller); err != nil {
		return err
	}

	cert := &models.FormulationCertification{
		FormulationIdentity: string(formulation),
		Approved:            true,
		ApprovedBy:          string(caller),
	}
	if err := s.registryRepo.UpsertFormulationCertification(ctx, cert); err != nil {
		return err
	}

	s.notify.Emit(ctx, domain.EventFormulationApproved, map[string]interface{}{
		"formulation": string(formulation),
		"approver":    string(caller),
	})
	return nil
}

// ============================================================
// Queries (no auth)
// ============================================================

// CheckAPIApproval reports whether the identity holds an API certification
func (s *RegistryService) CheckAPIApproval(ctx context.Context, api domain.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.certifiedAs(ctx, api, domain.KindAPI)
}

// CheckExcipientApproval reports whether the identity holds an excipient
// certification
func (s *RegistryService) CheckExcipientApproval(ctx context.Context, excipient domain.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.certifiedAs(ctx, excipient, domain.KindExcipient)
}

// GetAPICertification returns the full certification record for an API
func (s *RegistryService) GetAPICertification(ctx context.Context, api domain.Identity) (*domain.IngredientCertification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.certification(ctx, api, domain.KindAPI)
}

// GetExcipientCertification returns the full certification record for an
// excipient
func (s *RegistryService) GetExcipientCertification(ctx context.Context, excipient domain.Identity) (*domain.IngredientCertification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.certification(ctx, excipient, domain.KindExcipient)
}

// GetAPIPatentExpiry returns the patent expiry for a certified API
func (s *RegistryService) GetAPIPatentExpiry(ctx context.Context, api domain.Identity) (int64, error) {
	cert, err := s.GetAPICertification(ctx, api)
	if err != nil {
		return 0, err
	}
	return cert.PatentExpiry, nil
}

// IsFormulationApproved reports whether a formulation's certification flag
// is set
func (s *RegistryService) IsFormulationApproved(ctx context.Context, formulation domain.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cert, err := s.registryRepo.GetFormulationCertification(ctx, string(formulation))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return cert.Approved, nil
}

func (s *RegistryService) certifiedAs(ctx context.Context, ingredient domain.Identity, kind domain.IngredientKind) (bool, error) {
	cert, err := s.registryRepo.GetIngredientCertification(ctx, string(ingredient))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return domain.IngredientKind(cert.Kind) == kind, nil
}

func (s *RegistryService) certification(ctx context.Context, ingredient domain.Identity, kind domain.IngredientKind) (*domain.IngredientCertification, error) {
	cert, err := s.registryRepo.GetIngredientCertification(ctx, string(ingredient))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if domain.IngredientKind(cert.Kind) != kind {
		return nil, domain.ErrNotFound
	}
	return cert.ToDomain(), nil
}

// ============================================================
// Composition admission check
// ============================================================

// ValidateComposition validates a whole formulation composition in a single
// read-locked pass: every API must be certified, every excipient must be
// certified with the requested quantity within its ceiling. Holding the
// read lock for the full pass keeps the admission decision consistent with
// one registry snapshot.
func (s *RegistryService) ValidateComposition(ctx context.Context, apis, excipients []domain.IngredientQuantity) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range apis {
		ok, err := s.certifiedAs(ctx, entry.Identity, domain.KindAPI)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrIngredientNotCertified
		}
	}

	for _, entry := range excipients {
		cert, err := s.registryRepo.GetIngredientCertification(ctx, string(entry.Identity))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrIngredientNotCertified
			}
			return err
		}
		if domain.IngredientKind(cert.Kind) != domain.KindExcipient {
			return domain.ErrIngredientNotCertified
		}
		if entry.QuantityMg.GreaterThan(cert.MaxQuantityMg) {
			return domain.ErrQuantityExceedsCertifiedLimit
		}
	}

	return nil
}
