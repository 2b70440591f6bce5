package family

import (
	"errors"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FamilyController struct {
	service FamilyService
}

func NewFamilyController(service FamilyService) *FamilyController {
	return &FamilyController{service: service}
}

// GetGroup godoc
// @Summary  Get the current family group
// @Tags     family
// @Produce  json
// @Router   /api/family [get]
func (c *FamilyController) GetGroup(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	group, err := c.service.GetGroup(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load family"})
	}
	return ctx.JSON(fiber.Map{"data": group})
}

// ListMembers godoc
// @Summary  List family members
// @Tags     family
// @Produce  json
// @Router   /api/family/members [get]
func (c *FamilyController) ListMembers(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	members, err := c.service.ListMembers(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load members"})
	}
	return ctx.JSON(fiber.Map{"data": members})
}

// UpdateMember godoc
// @Summary  Update a member's profile (role changes are admin-only)
// @Tags     family
// @Accept   json
// @Router   /api/family/members/{id} [put]
func (c *FamilyController) UpdateMember(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req MemberUpdate
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.UpdateMember(ctx.Context(), claims.FamilyID, claims.UserID, claims.Role, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotPermitted), errors.Is(err, ErrLastAdmin):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidRole):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotYourOwn):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update member"})
	}
}

// RemoveMember godoc
// @Summary  Remove a member from the family
// @Tags     family
// @Router   /api/family/members/{id} [delete]
func (c *FamilyController) RemoveMember(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.RemoveMember(ctx.Context(), claims.FamilyID, claims.Role, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotPermitted), errors.Is(err, ErrLastAdmin):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotYourOwn):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove member"})
	}
}
