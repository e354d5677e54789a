package handlers

import (
	"errors"

	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/core/services"
	"pharmatrace/internal/pkg/pagination"
	"pharmatrace/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FormulationHandler handles formulation catalog endpoints
type FormulationHandler struct {
	formulationService *services.FormulationService
}

// NewFormulationHandler creates a new formulation handler
func NewFormulationHandler(formulationService *services.FormulationService) *FormulationHandler {
	return &FormulationHandler{
		formulationService: formulationService,
	}
}

// Create constructs a formulation
// @Summary Create formulation
// @Description Construct a formulation; the whole composition is validated against the registry and any uncertified ingredient fails the request
// @Tags Formulations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateFormulationInput true "Formulation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /formulations [post]
func (h *FormulationHandler) Create(c *fiber.Ctx) error {
	var req services.CreateFormulationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	formulation, err := h.formulationService.Create(c.Context(), caller(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrIngredientNotCertified):
			return response.UnprocessableEntity(c, "Composition includes an uncertified ingredient")
		case errors.Is(err, domain.ErrQuantityExceedsCertifiedLimit):
			return response.UnprocessableEntity(c, "Excipient quantity exceeds its certified limit")
		default:
			return response.InternalServerError(c, "Failed to create formulation")
		}
	}

	return response.Created(c, "Formulation created successfully", formulation)
}

// Get returns a formulation by identity
// @Summary Get formulation
// @Description Read a formulation with its full composition
// @Tags Formulations
// @Produce json
// @Param identity path string true "Formulation identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /formulations/{identity} [get]
func (h *FormulationHandler) Get(c *fiber.Ctx) error {
	formulationID, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid formulation identity")
	}

	formulation, err := h.formulationService.GetByIdentity(c.Context(), formulationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Formulation not found")
		}
		return response.InternalServerError(c, "Failed to get formulation")
	}

	return response.Success(c, "Formulation retrieved successfully", formulation)
}

// Quantity returns an ingredient's quantity within a formulation
// @Summary Get ingredient quantity
// @Description Read the per-unit quantity of an ingredient within a formulation
// @Tags Formulations
// @Produce json
// @Param identity path string true "Formulation identity"
// @Param ingredient path string true "Ingredient identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /formulations/{identity}/ingredients/{ingredient} [get]
func (h *FormulationHandler) Quantity(c *fiber.Ctx) error {
	formulationID, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid formulation identity")
	}

	ingredientID, err := parseIdentityParam(c, "ingredient")
	if err != nil {
		return response.BadRequest(c, "Invalid ingredient identity")
	}

	quantity, err := h.formulationService.QuantityOf(c.Context(), formulationID, ingredientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Ingredient is not part of the formulation")
		}
		return response.InternalServerError(c, "Failed to get ingredient quantity")
	}

	return response.Success(c, "Ingredient quantity retrieved successfully", fiber.Map{
		"formulation": formulationID,
		"ingredient":  ingredientID,
		"quantity_mg": quantity,
	})
}

// List returns formulations with pagination
// @Summary List formulations
// @Description List formulations in the catalog
// @Tags Formulations
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /formulations [get]
func (h *FormulationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	formulations, total, err := h.formulationService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list formulations")
	}

	return response.Success(c, "Formulations retrieved successfully",
		pagination.NewResponse(formulations, params, total))
}
