package handlers

import (
	"errors"

	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/core/services"
	"pharmatrace/internal/pkg/pagination"
	"pharmatrace/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// IngredientHandler handles ingredient catalog endpoints
type IngredientHandler struct {
	ingredientService *services.IngredientService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(ingredientService *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
	}
}

// Create registers an ingredient
// @Summary Register ingredient
// @Description Register an API or excipient and mint its chain identity
// @Tags Ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateIngredientInput true "Ingredient data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var req services.CreateIngredientInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ingredient, err := h.ingredientService.Create(c.Context(), caller(c), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to register ingredient")
	}

	return response.Created(c, "Ingredient registered successfully", ingredient)
}

// Get returns an ingredient by identity
// @Summary Get ingredient
// @Description Read an ingredient's catalog entry
// @Tags Ingredients
// @Produce json
// @Param identity path string true "Ingredient identity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /ingredients/{identity} [get]
func (h *IngredientHandler) Get(c *fiber.Ctx) error {
	ingredientID, err := parseIdentityParam(c, "identity")
	if err != nil {
		return response.BadRequest(c, "Invalid ingredient identity")
	}

	ingredient, err := h.ingredientService.GetByIdentity(c.Context(), ingredientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Ingredient not found")
		}
		return response.InternalServerError(c, "Failed to get ingredient")
	}

	return response.Success(c, "Ingredient retrieved successfully", ingredient)
}

// List returns ingredients with pagination
// @Summary List ingredients
// @Description List registered ingredients
// @Tags Ingredients
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	ingredients, total, err := h.ingredientService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list ingredients")
	}

	return response.Success(c, "Ingredients retrieved successfully",
		pagination.NewResponse(ingredients, params, total))
}
