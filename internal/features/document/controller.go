package document

import (
	"errors"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DocumentController struct {
	service DocumentService
}

func NewDocumentController(service DocumentService) *DocumentController {
	return &DocumentController{service: service}
}

// List godoc
// @Summary  List the family's archived documents
// @Tags     documents
// @Produce  json
// @Router   /api/documents [get]
func (c *DocumentController) List(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	docs, err := c.service.List(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load documents"})
	}
	return ctx.JSON(fiber.Map{"data": docs})
}

// Get godoc
// @Summary  Get a document
// @Tags     documents
// @Produce  json
// @Router   /api/documents/{id} [get]
func (c *DocumentController) Get(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	d, err := c.service.Get(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}
	return ctx.JSON(fiber.Map{"data": d})
}

// Create godoc
// @Summary  Archive a document
// @Tags     documents
// @Accept   json
// @Router   /api/documents [post]
func (c *DocumentController) Create(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req DocumentInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}

	d, err := c.service.Create(ctx.Context(), claims.FamilyID, claims.UserID, req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": d})
}

// Update godoc
// @Summary  Update a document
// @Tags     documents
// @Accept   json
// @Router   /api/documents/{id} [put]
func (c *DocumentController) Update(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req DocumentInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.Update(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to update document"})
	}
}

// Delete godoc
// @Summary  Remove a document
// @Tags     documents
// @Router   /api/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.Delete(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete document"})
	}
}
