package vehicle

import (
	"errors"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type VehicleController struct {
	service VehicleService
}

func NewVehicleController(service VehicleService) *VehicleController {
	return &VehicleController{service: service}
}

// List godoc
// @Summary  List the family's vehicles
// @Tags     vehicles
// @Produce  json
// @Router   /api/vehicles [get]
func (c *VehicleController) List(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	vehicles, err := c.service.List(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load vehicles"})
	}
	return ctx.JSON(fiber.Map{"data": vehicles})
}

// Get godoc
// @Summary  Get a vehicle with its deadlines
// @Tags     vehicles
// @Produce  json
// @Router   /api/vehicles/{id} [get]
func (c *VehicleController) Get(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	v, err := c.service.Get(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	return ctx.JSON(fiber.Map{"data": v, "deadlines": v.Deadlines()})
}

// Create godoc
// @Summary  Add a vehicle
// @Tags     vehicles
// @Accept   json
// @Router   /api/vehicles [post]
func (c *VehicleController) Create(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req VehicleInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	v, err := c.service.Create(ctx.Context(), claims.FamilyID, req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create vehicle"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": v})
}

// Update godoc
// @Summary  Update a vehicle
// @Tags     vehicles
// @Accept   json
// @Router   /api/vehicles/{id} [put]
func (c *VehicleController) Update(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req VehicleInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.Update(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vehicle"})
	}
}

// Renew godoc
// @Summary  Move one expiry date forward after renewal
// @Tags     vehicles
// @Accept   json
// @Router   /api/vehicles/{id}/renew [post]
func (c *VehicleController) Renew(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req struct {
		Kind string `json:"kind"`
		Date string `json:"date"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.Renew(ctx.Context(), claims.FamilyID, ctx.Params("id"), req.Kind, req.Date)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrUnknownKind):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to renew"})
	}
}

// Delete godoc
// @Summary  Remove a vehicle
// @Tags     vehicles
// @Router   /api/vehicles/{id} [delete]
func (c *VehicleController) Delete(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.Delete(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete vehicle"})
	}
}
