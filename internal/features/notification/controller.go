package notification

import (
	"errors"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

// List godoc
// @Summary  The caller's notifications, newest first
// @Tags     notifications
// @Produce  json
// @Param    limit  query  int  false  "Max rows (default 50)"
// @Router   /api/notifications [get]
func (c *NotificationController) List(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	limit := int64(ctx.QueryInt("limit", 50))
	notifications, err := c.service.ListForUser(ctx.Context(), claims.FamilyID, claims.UserID, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}
	return ctx.JSON(fiber.Map{"data": notifications})
}

// MarkRead godoc
// @Summary  Mark one notification as read
// @Tags     notifications
// @Router   /api/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.MarkRead(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
}

// MarkAllRead godoc
// @Summary  Mark all of the caller's notifications as read
// @Tags     notifications
// @Router   /api/notifications/read [put]
func (c *NotificationController) MarkAllRead(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	count, err := c.service.MarkAllRead(ctx.Context(), claims.FamilyID, claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notifications"})
	}
	return ctx.JSON(fiber.Map{"status": "success", "updated": count})
}
