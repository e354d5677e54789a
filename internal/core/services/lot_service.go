package services

import (
	"context"
	"errors"
	"sync"

	"pharmatrace/internal/adapters/persistence/models"
	"pharmatrace/internal/adapters/persistence/repositories"
	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/pkg/identity"

	"gorm.io/gorm"
)

// LotService drives the per-batch manufacturing state machine. Each lot
// moves strictly forward through CREATED -> MANUFACTURING -> MANUFACTURED;
// a keyed mutex serializes all mutations on the same lot, so every
// transition observes a fully-applied prior state and fails atomically
// with no partial writes.
type LotService struct {
	lotRepo  repositories.LotRepository
	registry *RegistryService
	notify   *NotificationService

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewLotService creates a new lot service
func NewLotService(lotRepo repositories.LotRepository, registry *RegistryService, notify *NotificationService) *LotService {
	return &LotService{
		lotRepo:  lotRepo,
		registry: registry,
		notify:   notify,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing mutations for one lot
func (s *LotService) lockFor(lotID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	mu, ok := s.locks[lotID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[lotID] = mu
	}
	return mu
}

// Create constructs a lot bound to one certified formulation. The
// formulation's certification flag must be true at construction time.
func (s *LotService) Create(ctx context.Context, caller, formulationID domain.Identity) (*models.Lot, error) {
	approved, err := s.registry.IsFormulationApproved(ctx, formulationID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, domain.ErrFormulationNotApproved
	}

	lotID, err := identity.New()
	if err != nil {
		return nil, err
	}

	lot := &models.Lot{
		Identity:            string(lotID),
		FormulationIdentity: string(formulationID),
		State:               string(domain.LotCreated),
		CreatedBy:           string(caller),
	}
	if err := s.lotRepo.Create(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// BindRole assigns the manufacturer, distributor or pharmacy identity for a
// lot. Each role binds at most once and only while the lot is CREATED.
// Deliberately unrestricted by caller: the setup phase trusts whoever holds
// the lot, and every subsequent transition is gated on the bound identities.
func (s *LotService) BindRole(ctx context.Context, lotID domain.Identity, role domain.LotRole, holder domain.Identity) (*models.Lot, error) {
	mu := s.lockFor(string(lotID))
	mu.Lock()
	defer mu.Unlock()

	lot, err := s.getLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	if domain.LotState(lot.State) != domain.LotCreated {
		return nil, domain.ErrInvalidStateTransition
	}
	if lot.RoleBound(role) {
		return nil, domain.ErrRoleAlreadyBound
	}

	value := string(holder)
	switch role {
	case domain.LotRoleManufacturer:
		lot.Manufacturer = &value
	case domain.LotRoleDistributor:
		lot.Distributor = &value
	case domain.LotRolePharmacy:
		lot.Pharmacy = &value
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := s.lotRepo.Update(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// StartManufacturingInput represents manufacturing start parameters
type StartManufacturingInput struct {
	LotName  string `json:"lot_name"`
	NumBoxes int    `json:"num_boxes"`
	LotPrice int64  `json:"lot_price"`
	BoxPrice int64  `json:"box_price"`
}

// StartManufacturing moves a lot from CREATED to MANUFACTURING. The state
// guard runs before the caller check so a repeated call always fails with
// ErrInvalidStateTransition regardless of who retries it.
func (s *LotService) StartManufacturing(ctx context.Context, caller, lotID domain.Identity, input *StartManufacturingInput) (*models.Lot, error) {
	mu := s.lockFor(string(lotID))
	mu.Lock()
	defer mu.Unlock()

	lot, err := s.getLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	if domain.LotState(lot.State) != domain.LotCreated {
		return nil, domain.ErrInvalidStateTransition
	}
	if !lot.IsManufacturer(caller) {
		return nil, domain.ErrUnauthorized
	}

	lot.LotName = input.LotName
	lot.NumBoxes = input.NumBoxes
	lot.LotPrice = input.LotPrice
	lot.BoxPrice = input.BoxPrice
	lot.State = string(domain.LotManufacturing)

	if err := s.lotRepo.Update(ctx, lot); err != nil {
		return nil, err
	}

	s.notify.Emit(ctx, domain.EventLotManufacturingStarted, map[string]interface{}{
		"lot":          lot.Identity,
		"manufacturer": string(caller),
		"lot_name":     lot.LotName,
		"num_boxes":    lot.NumBoxes,
	})
	return lot, nil
}

// CompleteManufacturingInput represents manufacturing completion parameters
type CompleteManufacturingInput struct {
	ManufacturingDate int64 `json:"manufacturing_date"`
	ExpiryDate        int64 `json:"expiry_date"`
}

// CompleteManufacturing moves a lot from MANUFACTURING to MANUFACTURED,
// recording the manufacturing and expiry dates.
func (s *LotService) CompleteManufacturing(ctx context.Context, caller, lotID domain.Identity, input *CompleteManufacturingInput) (*models.Lot, error) {
	mu := s.lockFor(string(lotID))
	mu.Lock()
	defer mu.Unlock()

	lot, err := s.getLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	if domain.LotState(lot.State) != domain.LotManufacturing {
		return nil, domain.ErrInvalidStateTransition
	}
	if !lot.IsManufacturer(caller) {
		return nil, domain.ErrUnauthorized
	}

	lot.ManufacturingDate = input.ManufacturingDate
	lot.ExpiryDate = input.ExpiryDate
	lot.State = string(domain.LotManufactured)

	if err := s.lotRepo.Update(ctx, lot); err != nil {
		return nil, err
	}

	s.notify.Emit(ctx, domain.EventLotManufactured, map[string]interface{}{
		"lot":                lot.Identity,
		"manufacturer":       string(caller),
		"lot_name":           lot.LotName,
		"num_boxes":          lot.NumBoxes,
		"manufacturing_date": lot.ManufacturingDate,
		"expiry_date":        lot.ExpiryDate,
	})
	return lot, nil
}

// GetByIdentity reads one lot
func (s *LotService) GetByIdentity(ctx context.Context, lotID domain.Identity) (*models.Lot, error) {
	return s.getLot(ctx, lotID)
}

// List lists lots with pagination
func (s *LotService) List(ctx context.Context, offset, limit int) ([]*models.Lot, int64, error) {
	return s.lotRepo.List(ctx, offset, limit)
}

func (s *LotService) getLot(ctx context.Context, lotID domain.Identity) (*models.Lot, error) {
	lot, err := s.lotRepo.GetByIdentity(ctx, string(lotID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return lot, nil
}
