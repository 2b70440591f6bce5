package shopping

import (
	"errors"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ShoppingController struct {
	service ShoppingService
}

func NewShoppingController(service ShoppingService) *ShoppingController {
	return &ShoppingController{service: service}
}

// List godoc
// @Summary  The family shopping list, open items first
// @Tags     shopping
// @Produce  json
// @Router   /api/shopping [get]
func (c *ShoppingController) List(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	items, err := c.service.List(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load shopping list"})
	}
	return ctx.JSON(fiber.Map{"data": items})
}

// Create godoc
// @Summary  Add an item
// @Tags     shopping
// @Accept   json
// @Router   /api/shopping [post]
func (c *ShoppingController) Create(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req ItemInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	item, err := c.service.Create(ctx.Context(), claims.FamilyID, claims.UserID, req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add item"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": item})
}

// Update godoc
// @Summary  Update an item
// @Tags     shopping
// @Accept   json
// @Router   /api/shopping/{id} [put]
func (c *ShoppingController) Update(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req ItemInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.Update(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update item"})
	}
}

// Purchase godoc
// @Summary  Toggle an item's purchased flag
// @Tags     shopping
// @Accept   json
// @Router   /api/shopping/{id}/purchase [put]
func (c *ShoppingController) Purchase(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req struct {
		Purchased bool `json:"purchased"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.SetPurchased(ctx.Context(), claims.FamilyID, ctx.Params("id"), req.Purchased)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update item"})
	}
}

// ClearPurchased godoc
// @Summary  Remove every purchased item
// @Tags     shopping
// @Router   /api/shopping/purchased [delete]
func (c *ShoppingController) ClearPurchased(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	count, err := c.service.ClearPurchased(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear list"})
	}
	return ctx.JSON(fiber.Map{"status": "success", "removed": count})
}

// Delete godoc
// @Summary  Remove an item
// @Tags     shopping
// @Router   /api/shopping/{id} [delete]
func (c *ShoppingController) Delete(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.Delete(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete item"})
	}
}
