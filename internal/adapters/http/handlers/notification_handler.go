package handlers

import (
	"pharmatrace/internal/core/services"
	"pharmatrace/internal/pkg/pagination"
	"pharmatrace/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles the notification feed endpoint
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List returns emitted notifications, newest first
// @Summary List notifications
// @Description List lifecycle notifications emitted by the registry, formulations, and lots
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	notifications, total, err := h.notificationService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully",
		pagination.NewResponse(notifications, params, total))
}
