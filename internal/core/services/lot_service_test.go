package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pharmatrace/internal/core/domain"

	"github.com/shopspring/decimal"
)

const (
	testManufacturer = domain.Identity("0x4444444444444444444444444444444444444444")
	testDistributor  = domain.Identity("0x5555555555555555555555555555555555555555")
	testPharmacy     = domain.Identity("0x6666666666666666666666666666666666666666")
)

type lotFixture struct {
	lots          *LotService
	registry      *RegistryService
	notifications *memNotificationRepo
	formulationID domain.Identity
}

func newLotFixture(t *testing.T) *lotFixture {
	t.Helper()
	ctx := context.Background()

	registryRepo := newMemRegistryRepo(string(testAdmin))
	notificationRepo := newMemNotificationRepo()
	notify := NewNotificationService(notificationRepo, "")
	registry := NewRegistryService(registryRepo, notify)

	if err := registry.AddApprover(ctx, testAdmin, testApprover); err != nil {
		t.Fatalf("AddApprover: %v", err)
	}
	if err := registry.ApproveAPI(ctx, testApprover, testAPI, 1704724087); err != nil {
		t.Fatalf("ApproveAPI: %v", err)
	}
	if err := registry.ApproveExcipient(ctx, testApprover, testExcipient, decimal.RequireFromString("1.5")); err != nil {
		t.Fatalf("ApproveExcipient: %v", err)
	}

	formulations := NewFormulationService(newMemFormulationRepo(), registry)
	formulation, err := formulations.Create(ctx, testAdmin, validFormulationInput())
	if err != nil {
		t.Fatalf("Create formulation: %v", err)
	}
	if err := registry.ApproveFormulation(ctx, testApprover, domain.Identity(formulation.Identity)); err != nil {
		t.Fatalf("ApproveFormulation: %v", err)
	}

	return &lotFixture{
		lots:          NewLotService(newMemLotRepo(), registry, notify),
		registry:      registry,
		notifications: notificationRepo,
		formulationID: domain.Identity(formulation.Identity),
	}
}

// boundLot creates a lot with the manufacturer already bound
func (f *lotFixture) boundLot(t *testing.T) domain.Identity {
	t.Helper()
	ctx := context.Background()

	lot, err := f.lots.Create(ctx, testAdmin, f.formulationID)
	if err != nil {
		t.Fatalf("Create lot: %v", err)
	}
	lotID := domain.Identity(lot.Identity)

	if _, err := f.lots.BindRole(ctx, lotID, domain.LotRoleManufacturer, testManufacturer); err != nil {
		t.Fatalf("BindRole manufacturer: %v", err)
	}
	return lotID
}

func TestCreateLot(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)

	lot, err := f.lots.Create(ctx, testAdmin, f.formulationID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lot.State != string(domain.LotCreated) {
		t.Fatalf("state = %s, want %s", lot.State, domain.LotCreated)
	}
	if lot.Manufacturer != nil || lot.Distributor != nil || lot.Pharmacy != nil {
		t.Fatal("lot starts with no roles bound")
	}
}

func TestCreateLotUnapprovedFormulation(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)

	_, err := f.lots.Create(ctx, testAdmin, testFormulation)
	if !errors.Is(err, domain.ErrFormulationNotApproved) {
		t.Fatalf("expected ErrFormulationNotApproved, got %v", err)
	}
}

func TestBindRoleOnce(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)
	lotID := f.boundLot(t)

	_, err := f.lots.BindRole(ctx, lotID, domain.LotRoleManufacturer, testOutsider)
	if !errors.Is(err, domain.ErrRoleAlreadyBound) {
		t.Fatalf("expected ErrRoleAlreadyBound, got %v", err)
	}

	// The original binding is untouched
	lot, _ := f.lots.GetByIdentity(ctx, lotID)
	if lot.Manufacturer == nil || *lot.Manufacturer != string(testManufacturer) {
		t.Fatal("manufacturer binding must be unchanged")
	}

	// Other roles bind independently
	if _, err := f.lots.BindRole(ctx, lotID, domain.LotRoleDistributor, testDistributor); err != nil {
		t.Fatalf("BindRole distributor: %v", err)
	}
	if _, err := f.lots.BindRole(ctx, lotID, domain.LotRolePharmacy, testPharmacy); err != nil {
		t.Fatalf("BindRole pharmacy: %v", err)
	}
}

func TestBindRoleUnknownLot(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)

	_, err := f.lots.BindRole(ctx, testFormulation, domain.LotRoleManufacturer, testManufacturer)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStartManufacturing(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)
	lotID := f.boundLot(t)

	lot, err := f.lots.StartManufacturing(ctx, testManufacturer, lotID, &StartManufacturingInput{
		LotName:  "Test Lot",
		NumBoxes: 20,
		LotPrice: 1000,
		BoxPrice: 55,
	})
	if err != nil {
		t.Fatalf("StartManufacturing: %v", err)
	}
	if lot.State != string(domain.LotManufacturing) {
		t.Fatalf("state = %s, want %s", lot.State, domain.LotManufacturing)
	}
	if lot.LotName != "Test Lot" || lot.NumBoxes != 20 || lot.LotPrice != 1000 || lot.BoxPrice != 55 {
		t.Fatalf("manufacturing parameters not recorded: %+v", lot)
	}

	records := f.notifications.byName(domain.EventLotManufacturingStarted)
	if len(records) != 1 {
		t.Fatalf("expected 1 %s notification, got %d", domain.EventLotManufacturingStarted, len(records))
	}
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(records[0].Fields), &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if fields["lot"] != string(lotID) {
		t.Fatalf("fields.lot = %v, want %s", fields["lot"], lotID)
	}
	if fields["manufacturer"] != string(testManufacturer) {
		t.Fatalf("fields.manufacturer = %v", fields["manufacturer"])
	}
	if fields["num_boxes"] != float64(20) {
		t.Fatalf("fields.num_boxes = %v, want 20", fields["num_boxes"])
	}
}

func TestStartManufacturingOnlyManufacturer(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)
	lotID := f.boundLot(t)
	if _, err := f.lots.BindRole(ctx, lotID, domain.LotRoleDistributor, testDistributor); err != nil {
		t.Fatalf("BindRole distributor: %v", err)
	}

	input := &StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20}

	// Neither the lot creator nor another bound role may start
	for _, caller := range []domain.Identity{testAdmin, testDistributor, testOutsider} {
		_, err := f.lots.StartManufacturing(ctx, caller, lotID, input)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("caller %s: expected ErrUnauthorized, got %v", caller, err)
		}
	}

	// State is untouched by the failed attempts
	lot, _ := f.lots.GetByIdentity(ctx, lotID)
	if lot.State != string(domain.LotCreated) {
		t.Fatalf("state = %s, want %s", lot.State, domain.LotCreated)
	}
	if got := len(f.notifications.byName(domain.EventLotManufacturingStarted)); got != 0 {
		t.Fatalf("no notification may be emitted for a failed transition, got %d", got)
	}
}

func TestStartManufacturingWithoutBoundManufacturer(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)

	lot, err := f.lots.Create(ctx, testAdmin, f.formulationID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.lots.StartManufacturing(ctx, testManufacturer, domain.Identity(lot.Identity),
		&StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized with no manufacturer bound, got %v", err)
	}
}

func TestStartManufacturingRepeatFailsOnState(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)
	lotID := f.boundLot(t)

	input := &StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20}
	if _, err := f.lots.StartManufacturing(ctx, testManufacturer, lotID, input); err != nil {
		t.Fatalf("StartManufacturing: %v", err)
	}

	// A repeat fails on state for every caller, the manufacturer included
	for _, caller := range []domain.Identity{testManufacturer, testOutsider} {
		_, err := f.lots.StartManufacturing(ctx, caller, lotID, input)
		if !errors.Is(err, domain.ErrInvalidStateTransition) {
			t.Fatalf("caller %s: expected ErrInvalidStateTransition, got %v", caller, err)
		}
	}
}

func TestBindRoleAfterStartFails(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)
	lotID := f.boundLot(t)

	if _, err := f.lots.StartManufacturing(ctx, testManufacturer, lotID,
		&StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20}); err != nil {
		t.Fatalf("StartManufacturing: %v", err)
	}

	_, err := f.lots.BindRole(ctx, lotID, domain.LotRoleDistributor, testDistributor)
	if !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("role binding is a setup-phase operation, got %v", err)
	}
}

func TestCompleteManufacturing(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)
	lotID := f.boundLot(t)

	if _, err := f.lots.StartManufacturing(ctx, testManufacturer, lotID,
		&StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20, LotPrice: 1000, BoxPrice: 55}); err != nil {
		t.Fatalf("StartManufacturing: %v", err)
	}

	lot, err := f.lots.CompleteManufacturing(ctx, testManufacturer, lotID, &CompleteManufacturingInput{
		ManufacturingDate: 1675000000,
		ExpiryDate:        1738072000,
	})
	if err != nil {
		t.Fatalf("CompleteManufacturing: %v", err)
	}
	if lot.State != string(domain.LotManufactured) {
		t.Fatalf("state = %s, want %s", lot.State, domain.LotManufactured)
	}
	if lot.ManufacturingDate != 1675000000 || lot.ExpiryDate != 1738072000 {
		t.Fatalf("dates not recorded: %+v", lot)
	}

	records := f.notifications.byName(domain.EventLotManufactured)
	if len(records) != 1 {
		t.Fatalf("expected 1 %s notification, got %d", domain.EventLotManufactured, len(records))
	}
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(records[0].Fields), &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if fields["manufacturing_date"] != float64(1675000000) || fields["expiry_date"] != float64(1738072000) {
		t.Fatalf("notification dates = %v / %v", fields["manufacturing_date"], fields["expiry_date"])
	}
}

func TestCompleteManufacturingGuards(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)
	lotID := f.boundLot(t)

	input := &CompleteManufacturingInput{ManufacturingDate: 1675000000, ExpiryDate: 1738072000}

	// Completing before starting fails on state
	_, err := f.lots.CompleteManufacturing(ctx, testManufacturer, lotID, input)
	if !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition before start, got %v", err)
	}

	if _, err := f.lots.StartManufacturing(ctx, testManufacturer, lotID,
		&StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20}); err != nil {
		t.Fatalf("StartManufacturing: %v", err)
	}

	// Only the manufacturer may complete
	_, err = f.lots.CompleteManufacturing(ctx, testOutsider, lotID, input)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if _, err := f.lots.CompleteManufacturing(ctx, testManufacturer, lotID, input); err != nil {
		t.Fatalf("CompleteManufacturing: %v", err)
	}

	// The state machine only moves forward
	_, err = f.lots.CompleteManufacturing(ctx, testManufacturer, lotID, input)
	if !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition on repeat, got %v", err)
	}
	_, err = f.lots.StartManufacturing(ctx, testManufacturer, lotID,
		&StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20})
	if !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition going backwards, got %v", err)
	}
}

// TestFullLotLifecycle walks the whole happy path end to end: roles and
// certifications through the registry, formulation construction, lot
// creation, role binding, and both manufacturing transitions, checking
// every notification along the way.
func TestFullLotLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newLotFixture(t)

	lot, err := f.lots.Create(ctx, testAdmin, f.formulationID)
	if err != nil {
		t.Fatalf("Create lot: %v", err)
	}
	lotID := domain.Identity(lot.Identity)

	for _, binding := range []struct {
		role   domain.LotRole
		holder domain.Identity
	}{
		{domain.LotRoleManufacturer, testManufacturer},
		{domain.LotRoleDistributor, testDistributor},
		{domain.LotRolePharmacy, testPharmacy},
	} {
		if _, err := f.lots.BindRole(ctx, lotID, binding.role, binding.holder); err != nil {
			t.Fatalf("BindRole %s: %v", binding.role, err)
		}
	}

	// The distributor cannot drive manufacturing
	_, err = f.lots.StartManufacturing(ctx, testDistributor, lotID,
		&StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for distributor, got %v", err)
	}

	if _, err := f.lots.StartManufacturing(ctx, testManufacturer, lotID,
		&StartManufacturingInput{LotName: "Test Lot", NumBoxes: 20, LotPrice: 1000, BoxPrice: 55}); err != nil {
		t.Fatalf("StartManufacturing: %v", err)
	}
	final, err := f.lots.CompleteManufacturing(ctx, testManufacturer, lotID, &CompleteManufacturingInput{
		ManufacturingDate: 1675000000,
		ExpiryDate:        1738072000,
	})
	if err != nil {
		t.Fatalf("CompleteManufacturing: %v", err)
	}

	if final.State != string(domain.LotManufactured) {
		t.Fatalf("final state = %s", final.State)
	}
	if final.LotName != "Test Lot" || final.NumBoxes != 20 {
		t.Fatalf("lot record incomplete: %+v", final)
	}

	for _, name := range []string{
		domain.EventAPIApproved,
		domain.EventExcipientApproved,
		domain.EventFormulationApproved,
		domain.EventLotManufacturingStarted,
		domain.EventLotManufactured,
	} {
		if got := len(f.notifications.byName(name)); got != 1 {
			t.Errorf("expected 1 %s notification, got %d", name, got)
		}
	}
}
