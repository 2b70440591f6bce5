package automation

import (
	"errors"

	"casa360/internal/common/models"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AutomationController struct {
	service AutomationService
}

func NewAutomationController(service AutomationService) *AutomationController {
	return &AutomationController{service: service}
}

// List godoc
// @Summary  List the family's automation rules
// @Tags     automation
// @Produce  json
// @Router   /api/automation [get]
func (c *AutomationController) List(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	rules, err := c.service.List(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load rules"})
	}
	return ctx.JSON(fiber.Map{"data": rules})
}

// Create godoc
// @Summary  Add a rule (admin only)
// @Tags     automation
// @Accept   json
// @Router   /api/automation [post]
func (c *AutomationController) Create(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req RuleInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	rule, err := c.service.Create(ctx.Context(), claims.FamilyID, req)
	switch {
	case err == nil:
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": rule})
	case errors.Is(err, ErrBadScript):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// Update godoc
// @Summary  Update a rule (admin only)
// @Tags     automation
// @Accept   json
// @Router   /api/automation/{id} [put]
func (c *AutomationController) Update(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req RuleInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.Update(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrBadScript):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rule not found"})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// Delete godoc
// @Summary  Remove a rule (admin only)
// @Tags     automation
// @Router   /api/automation/{id} [delete]
func (c *AutomationController) Delete(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.Delete(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rule not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete rule"})
	}
}

// Test godoc
// @Summary  Dry-run a script against a synthetic change event
// @Tags     automation
// @Accept   json
// @Router   /api/automation/test [post]
func (c *AutomationController) Test(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req struct {
		Script string `json:"script"`
		Table  string `json:"table"`
		Event  string `json:"event"`
		RowID  string `json:"row_id"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := c.service.Test(ctx.Context(), req.Script, models.ChangeEvent{
		Table:    req.Table,
		Event:    normalizeEvent(req.Event),
		RowID:    req.RowID,
		FamilyID: claims.FamilyID,
	})
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if result == nil {
		return ctx.JSON(fiber.Map{"fired": false})
	}
	return ctx.JSON(fiber.Map{"fired": true, "title": result.Title, "body": result.Body})
}
