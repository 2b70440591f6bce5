package dashboard

import (
	"errors"
	"time"

	"casa360/internal/features/family"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	service DashboardService
}

func NewDashboardController(service DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

// GetLayout godoc
// @Summary  The caller's widget arrangement
// @Tags     dashboard
// @Produce  json
// @Router   /api/dashboard/layout [get]
func (c *DashboardController) GetLayout(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	return ctx.JSON(fiber.Map{"data": c.service.Layout(ctx.Context(), claims.UserID)})
}

// SaveLayout godoc
// @Summary  Replace the caller's widget arrangement
// @Tags     dashboard
// @Accept   json
// @Router   /api/dashboard/layout [put]
func (c *DashboardController) SaveLayout(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req []family.LayoutNode
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.SaveLayout(ctx.Context(), claims.UserID, req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrInvalidLayout):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save layout"})
	}
}

// ResetLayout godoc
// @Summary  Drop the saved arrangement and return to the default
// @Tags     dashboard
// @Router   /api/dashboard/layout [delete]
func (c *DashboardController) ResetLayout(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	if err := c.service.ResetLayout(ctx.Context(), claims.UserID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset layout"})
	}
	return ctx.JSON(fiber.Map{"data": DefaultLayout})
}

// Summary godoc
// @Summary  One-shot dashboard data: next events, urgent items, today's shifts and doses
// @Tags     dashboard
// @Produce  json
// @Router   /api/dashboard/summary [get]
func (c *DashboardController) Summary(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	summary, err := c.service.Summary(ctx.Context(), claims.FamilyID, time.Now())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}
	return ctx.JSON(fiber.Map{"data": summary})
}
