package handlers

import (
	"errors"

	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/core/services"
	"pharmatrace/internal/pkg/identity"
	"pharmatrace/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// RegistryHandler handles certification registry endpoints
type RegistryHandler struct {
	registryService *services.RegistryService
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(registryService *services.RegistryService) *RegistryHandler {
	return &RegistryHandler{
		registryService: registryService,
	}
}

// caller extracts the authenticated caller's chain identity
func caller(c *fiber.Ctx) domain.Identity {
	id, _ := c.Locals("identity").(string)
	return domain.Identity(id)
}

// parseIdentityParam parses an identity path parameter
func parseIdentityParam(c *fiber.Ctx, name string) (domain.Identity, error) {
	return identity.Parse(c.Params(name))
}

// IdentityRequest carries a single identity in the request body
type IdentityRequest struct {
	Identity string `json:"identity"`
}

// ApproveAPIRequest represents an API approval request
type ApproveAPIRequest struct {
	PatentExpiry int64 `json:"patent_expiry"`
}

// ApproveExcipientRequest represents an excipient approval request.
// The quantity ceiling travels as a fixed-point decimal string.
type ApproveExcipientRequest struct {
	MaxQuantityMg string `json:"max_quantity_mg"`
}

// RejectRequest represents a rejection request
type RejectRequest struct {
	Reason string `json:"reason"`
}

// registryError maps registry service errors to HTTP responses
func registryError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Forbidden(c, "Caller does not hold the required registry role")
	case errors.Is(err, domain.ErrDuplicateApprover):
		return response.Conflict(c, "Identity is already an approver")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Certification not found")
	default:
		return response.InternalServerError(c, "Failed to "+action)
	}
}

// AddApprover adds an approver
// @Summary Add approver
// @Description Add an identity to the approver set (admin only)
// @Tags Registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body IdentityRequest true "Approver identity"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /registry/approvers [post]
func (h *RegistryHandler) AddApprover(c *fiber.Ctx) error {
	var req IdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	approver, err := identity.Parse(req.Identity)
	if err != nil {
		return response.BadRequest(c, "Invalid approver identity")
	}

	if err := h.registryService.AddApprover(c.Context(), caller(c), approver); err != nil {
		return registryError(c, err, "add approver")
	}

	return response.Created(c, "Approver added successfully", fiber.Map{
		"identity": approver,
	})
}

// RemoveApprover removes an approver
// @Summary Remove approver
// @Description Remove an identity from the approver set (admin only); removing a non-member succeeds
// @Tags Registry
// @Produce json
// @Security BearerAuth
// @Param identity path string true "Approver identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /registry/approvers/{identity} [delete]
func (h *RegistryHandler) RemoveApprover(c *fiber.Ctx) error {
	approver, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid approver identity")
	}

	if err := h.registryService.RemoveApprover(c.Context(), caller(c), approver); err != nil {
		return registryError(c, err, "remove approver")
	}

	return response.Success(c, "Approver removed successfully", nil)
}

// ChangeAdmin transfers the admin role
// @Summary Change admin
// @Description Transfer the registry admin role to a new identity (admin only)
// @Tags Registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body IdentityRequest true "New admin identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /registry/admin [put]
func (h *RegistryHandler) ChangeAdmin(c *fiber.Ctx) error {
	var req IdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	newAdmin, err := identity.Parse(req.Identity)
	if err != nil {
		return response.BadRequest(c, "Invalid admin identity")
	}

	if err := h.registryService.ChangeAdmin(c.Context(), caller(c), newAdmin); err != nil {
		return registryError(c, err, "change admin")
	}

	return response.Success(c, "Admin changed successfully", fiber.Map{
		"identity": newAdmin,
	})
}

// ApproveAPI approves an active pharmaceutical ingredient
// @Summary Approve API
// @Description Certify an active pharmaceutical ingredient with its patent expiry (approver only)
// @Tags Registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identity path string true "API identity"
// @Param body body ApproveAPIRequest true "Approval data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /registry/apis/{identity}/approve [post]
func (h *RegistryHandler) ApproveAPI(c *fiber.Ctx) error {
	api, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid API identity")
	}

	var req ApproveAPIRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PatentExpiry <= 0 {
		return response.BadRequest(c, "Patent expiry is required")
	}

	if err := h.registryService.ApproveAPI(c.Context(), caller(c), api, req.PatentExpiry); err != nil {
		return registryError(c, err, "approve API")
	}

	return response.Success(c, "API approved successfully", fiber.Map{
		"identity":      api,
		"patent_expiry": req.PatentExpiry,
	})
}

// RejectAPI rejects an active pharmaceutical ingredient
// @Summary Reject API
// @Description Clear an API certification back to absent (approver only)
// @Tags Registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identity path string true "API identity"
// @Param body body RejectRequest true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /registry/apis/{identity}/reject [post]
func (h *RegistryHandler) RejectAPI(c *fiber.Ctx) error {
	api, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid API identity")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.registryService.RejectAPI(c.Context(), caller(c), api, req.Reason); err != nil {
		return registryError(c, err, "reject API")
	}

	return response.Success(c, "API rejected successfully", nil)
}

// ApproveExcipient approves an excipient
// @Summary Approve excipient
// @Description Certify an excipient with its maximum quantity (approver only)
// @Tags Registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identity path string true "Excipient identity"
// @Param body body ApproveExcipientRequest true "Approval data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /registry/excipients/{identity}/approve [post]
func (h *RegistryHandler) ApproveExcipient(c *fiber.Ctx) error {
	excipient, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid excipient identity")
	}

	var req ApproveExcipientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	maxQuantity, err := decimal.NewFromString(req.MaxQuantityMg)
	if err != nil || maxQuantity.LessThanOrEqual(decimal.Zero) {
		return response.BadRequest(c, "Max quantity must be a positive decimal string")
	}

	if err := h.registryService.ApproveExcipient(c.Context(), caller(c), excipient, maxQuantity); err != nil {
		return registryError(c, err, "approve excipient")
	}

	return response.Success(c, "Excipient approved successfully", fiber.Map{
		"identity":        excipient,
		"max_quantity_mg": maxQuantity,
	})
}

// RejectExcipient rejects an excipient
// @Summary Reject excipient
// @Description Clear an excipient certification back to absent (approver only)
// @Tags Registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identity path string true "Excipient identity"
// @Param body body RejectRequest true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /registry/excipients/{identity}/reject [post]
func (h *RegistryHandler) RejectExcipient(c *fiber.Ctx) error {
	excipient, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid excipient identity")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.registryService.RejectExcipient(c.Context(), caller(c), excipient, req.Reason); err != nil {
		return registryError(c, err, "reject excipient")
	}

	return response.Success(c, "Excipient rejected successfully", nil)
}

// ApproveFormulation approves a formulation
// @Summary Approve formulation
// @Description Set the certification flag for a formulation (approver only)
// @Tags Registry
// @Produce json
// @Security BearerAuth
// @Param identity path string true "Formulation identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /registry/formulations/{identity}/approve [post]
func (h *RegistryHandler) ApproveFormulation(c *fiber.Ctx) error {
	formulation, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid formulation identity")
	}

	if err := h.registryService.ApproveFormulation(c.Context(), caller(c), formulation); err != nil {
		return registryError(c, err, "approve formulation")
	}

	return response.Success(c, "Formulation approved successfully", fiber.Map{
		"identity": formulation,
	})
}

// GetAPI returns API certification status
// @Summary Get API certification
// @Description Read an API's approval status and patent expiry (public)
// @Tags Registry
// @Produce json
// @Param identity path string true "API identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /registry/apis/{identity} [get]
func (h *RegistryHandler) GetAPI(c *fiber.Ctx) error {
	api, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid API identity")
	}

	approved, err := h.registryService.CheckAPIApproval(c.Context(), api)
	if err != nil {
		return response.InternalServerError(c, "Failed to read API certification")
	}
	if !approved {
		return response.Success(c, "API certification status", fiber.Map{
			"identity": api,
			"approved": false,
		})
	}

	expiry, err := h.registryService.GetAPIPatentExpiry(c.Context(), api)
	if err != nil {
		return response.InternalServerError(c, "Failed to read API certification")
	}

	return response.Success(c, "API certification status", fiber.Map{
		"identity":      api,
		"approved":      true,
		"patent_expiry": expiry,
	})
}

// GetExcipient returns excipient certification status
// @Summary Get excipient certification
// @Description Read an excipient's approval status and quantity ceiling (public)
// @Tags Registry
// @Produce json
// @Param identity path string true "Excipient identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /registry/excipients/{identity} [get]
func (h *RegistryHandler) GetExcipient(c *fiber.Ctx) error {
	excipient, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid excipient identity")
	}

	cert, err := h.registryService.GetExcipientCertification(c.Context(), excipient)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Success(c, "Excipient certification status", fiber.Map{
				"identity": excipient,
				"approved": false,
			})
		}
		return response.InternalServerError(c, "Failed to read excipient certification")
	}

	return response.Success(c, "Excipient certification status", fiber.Map{
		"identity":        excipient,
		"approved":        true,
		"max_quantity_mg": cert.MaxQuantityMg,
	})
}
