package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Identity is an opaque 20-byte account identifier rendered as a
// 0x-prefixed lowercase hex string. Identities are compared by exact
// equality only.
type Identity string

// RegistryRole represents a role held at the certification registry
type RegistryRole string

const (
	RoleAdmin    RegistryRole = "ADMIN"
	RoleApprover RegistryRole = "APPROVER"
)

// IngredientKind distinguishes active ingredients from excipients
type IngredientKind string

const (
	KindAPI       IngredientKind = "API"
	KindExcipient IngredientKind = "EXCIPIENT"
)

// LotState represents the manufacturing lifecycle state of a drug lot.
// Transitions are strictly forward: CREATED -> MANUFACTURING -> MANUFACTURED.
type LotState string

const (
	LotCreated       LotState = "CREATED"
	LotManufacturing LotState = "MANUFACTURING"
	LotManufactured  LotState = "MANUFACTURED"
)

// LotRole identifies one of the three identities bound to a lot
type LotRole string

const (
	LotRoleManufacturer LotRole = "MANUFACTURER"
	LotRoleDistributor  LotRole = "DISTRIBUTOR"
	LotRolePharmacy     LotRole = "PHARMACY"
)

// IngredientQuantity pairs an ingredient identity with a milligram quantity.
// Quantities are fixed-point decimals, never floats.
type IngredientQuantity struct {
	Identity   Identity
	QuantityMg decimal.Decimal
}

// IngredientCertification is the registry's record for one certified
// ingredient. Absence of a record means the ingredient is not certified.
type IngredientCertification struct {
	Identity      Identity
	Kind          IngredientKind
	PatentExpiry  int64           // API only, unix epoch seconds
	MaxQuantityMg decimal.Decimal // excipient only, approved ceiling
	ApprovedBy    Identity
	ApprovedAt    time.Time
}

// Notification event names emitted by state-changing operations
const (
	EventAPIApproved             = "ApiApproved"
	EventAPIRejected             = "ApiRejected"
	EventExcipientApproved       = "ExcipientApproved"
	EventExcipientRejected       = "ExcipientRejected"
	EventFormulationApproved     = "FormulationApproved"
	EventLotManufacturingStarted = "LotManufacturingStarted"
	EventLotManufactured         = "LotManufactured"
	EventAPIPatentExpired        = "ApiPatentExpired"
)
