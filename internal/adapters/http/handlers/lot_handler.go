package handlers

import (
	"errors"

	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/core/services"
	"pharmatrace/internal/pkg/identity"
	"pharmatrace/internal/pkg/pagination"
	"pharmatrace/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LotHandler handles drug lot lifecycle endpoints
type LotHandler struct {
	lotService *services.LotService
}

// NewLotHandler creates a new lot handler
func NewLotHandler(lotService *services.LotService) *LotHandler {
	return &LotHandler{
		lotService: lotService,
	}
}

// CreateLotRequest represents a lot creation request
type CreateLotRequest struct {
	FormulationIdentity string `json:"formulation_identity"`
}

// BindRoleRequest represents a role binding request
type BindRoleRequest struct {
	Role     string `json:"role"`
	Identity string `json:"identity"`
}

// lotError maps lot service errors to HTTP responses
func lotError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Lot not found")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Forbidden(c, "Caller is not the lot's bound manufacturer")
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return response.UnprocessableEntity(c, "Lot state does not allow this transition")
	case errors.Is(err, domain.ErrRoleAlreadyBound):
		return response.Conflict(c, "Role is already bound for this lot")
	case errors.Is(err, domain.ErrFormulationNotApproved):
		return response.UnprocessableEntity(c, "Formulation is not approved")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, "Failed to "+action)
	}
}

// Create creates a lot
// @Summary Create lot
// @Description Create a lot for an approved formulation; the lot starts in the CREATED state with no roles bound
// @Tags Lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLotRequest true "Lot data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var req CreateLotRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	formulationID, err := identity.Parse(req.FormulationIdentity)
	if err != nil {
		return response.BadRequest(c, "Invalid formulation identity")
	}

	lot, err := h.lotService.Create(c.Context(), caller(c), formulationID)
	if err != nil {
		return lotError(c, err, "create lot")
	}

	return response.Created(c, "Lot created successfully", lot)
}

// BindRole binds an identity to a lot role
// @Summary Bind lot role
// @Description Bind the manufacturer, distributor, or pharmacy identity for a lot; each role binds exactly once while the lot is in CREATED
// @Tags Lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identity path string true "Lot identity"
// @Param body body BindRoleRequest true "Role binding data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /lots/{identity}/roles [post]
func (h *LotHandler) BindRole(c *fiber.Ctx) error {
	lotID, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid lot identity")
	}

	var req BindRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	role := domain.LotRole(req.Role)
	if role != domain.LotRoleManufacturer && role != domain.LotRoleDistributor && role != domain.LotRolePharmacy {
		return response.BadRequest(c, "Role must be MANUFACTURER, DISTRIBUTOR, or PHARMACY")
	}

	holder, err := identity.Parse(req.Identity)
	if err != nil {
		return response.BadRequest(c, "Invalid holder identity")
	}

	lot, err := h.lotService.BindRole(c.Context(), lotID, role, holder)
	if err != nil {
		return lotError(c, err, "bind role")
	}

	return response.Success(c, "Role bound successfully", lot)
}

// StartManufacturing starts manufacturing a lot
// @Summary Start manufacturing
// @Description Move a lot from CREATED to MANUFACTURING; only the bound manufacturer may call this
// @Tags Lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identity path string true "Lot identity"
// @Param body body services.StartManufacturingInput true "Manufacturing data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /lots/{identity}/manufacturing/start [post]
func (h *LotHandler) StartManufacturing(c *fiber.Ctx) error {
	lotID, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid lot identity")
	}

	var req services.StartManufacturingInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	lot, err := h.lotService.StartManufacturing(c.Context(), caller(c), lotID, &req)
	if err != nil {
		return lotError(c, err, "start manufacturing")
	}

	return response.Success(c, "Manufacturing started successfully", lot)
}

// CompleteManufacturing completes manufacturing a lot
// @Summary Complete manufacturing
// @Description Move a lot from MANUFACTURING to MANUFACTURED, recording manufacturing and expiry dates; only the bound manufacturer may call this
// @Tags Lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identity path string true "Lot identity"
// @Param body body services.CompleteManufacturingInput true "Completion data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /lots/{identity}/manufacturing/complete [post]
func (h *LotHandler) CompleteManufacturing(c *fiber.Ctx) error {
	lotID, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid lot identity")
	}

	var req services.CompleteManufacturingInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	lot, err := h.lotService.CompleteManufacturing(c.Context(), caller(c), lotID, &req)
	if err != nil {
		return lotError(c, err, "complete manufacturing")
	}

	return response.Success(c, "Manufacturing completed successfully", lot)
}

// Get returns a lot by identity
// @Summary Get lot
// @Description Read a lot's state, bound roles, and manufacturing record
// @Tags Lots
// @Produce json
// @Param identity path string true "Lot identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lots/{identity} [get]
func (h *LotHandler) Get(c *fiber.Ctx) error {
	lotID, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid lot identity")
	}

	lot, err := h.lotService.GetByIdentity(c.Context(), lotID)
	if err != nil {
		return lotError(c, err, "get lot")
	}

	return response.Success(c, "Lot retrieved successfully", lot)
}

// List returns lots with pagination
// @Summary List lots
// @Description List lots
// @Tags Lots
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	lots, total, err := h.lotService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list lots")
	}

	return response.Success(c, "Lots retrieved successfully",
		pagination.NewResponse(lots, params, total))
}
