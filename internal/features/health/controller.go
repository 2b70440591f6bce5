package health

import (
	"errors"
	"time"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	service HealthService
}

func NewHealthController(service HealthService) *HealthController {
	return &HealthController{service: service}
}

// ListMedications godoc
// @Summary  List the family's therapies
// @Tags     health
// @Produce  json
// @Router   /api/health/medications [get]
func (c *HealthController) ListMedications(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	meds, err := c.service.ListMedications(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load medications"})
	}
	return ctx.JSON(fiber.Map{"data": meds})
}

// DailyDoses godoc
// @Summary  Today's intake plan from active therapies
// @Tags     health
// @Produce  json
// @Router   /api/health/medications/today [get]
func (c *HealthController) DailyDoses(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	doses, err := c.service.DailyDoses(ctx.Context(), claims.FamilyID, time.Now())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load daily plan"})
	}
	return ctx.JSON(fiber.Map{"data": doses})
}

// CreateMedication godoc
// @Summary  Add a therapy
// @Tags     health
// @Accept   json
// @Router   /api/health/medications [post]
func (c *HealthController) CreateMedication(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req MedicationInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	m, err := c.service.CreateMedication(ctx.Context(), claims.FamilyID, req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": m})
}

// UpdateMedication godoc
// @Summary  Update a therapy
// @Tags     health
// @Accept   json
// @Router   /api/health/medications/{id} [put]
func (c *HealthController) UpdateMedication(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req MedicationInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.UpdateMedication(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrMedicationNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Medication not found"})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// DeleteMedication godoc
// @Summary  Remove a therapy
// @Tags     health
// @Router   /api/health/medications/{id} [delete]
func (c *HealthController) DeleteMedication(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.DeleteMedication(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrMedicationNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Medication not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete medication"})
	}
}

// GetProfile godoc
// @Summary  A member's health sheet
// @Tags     health
// @Produce  json
// @Param    memberId path string true "Member ID"
// @Router   /api/health/profile/{memberId} [get]
func (c *HealthController) GetProfile(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	p, err := c.service.Profile(ctx.Context(), claims.FamilyID, ctx.Params("memberId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to load profile"})
	}
	return ctx.JSON(fiber.Map{"data": p})
}

// SaveProfile godoc
// @Summary  Replace a member's health sheet
// @Tags     health
// @Accept   json
// @Param    memberId path string true "Member ID"
// @Router   /api/health/profile/{memberId} [put]
func (c *HealthController) SaveProfile(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req ProfileInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := c.service.SaveProfile(ctx.Context(), claims.FamilyID, ctx.Params("memberId"), req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": p})
}

// ListMeasurements godoc
// @Summary  Recent logged vitals
// @Tags     health
// @Produce  json
// @Param    limit  query  int  false  "Max rows (default 50)"
// @Router   /api/health/measurements [get]
func (c *HealthController) ListMeasurements(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	limit := int64(ctx.QueryInt("limit", 50))
	measurements, err := c.service.ListMeasurements(ctx.Context(), claims.FamilyID, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load measurements"})
	}
	return ctx.JSON(fiber.Map{"data": measurements})
}

// CreateMeasurement godoc
// @Summary  Log a vital
// @Tags     health
// @Accept   json
// @Router   /api/health/measurements [post]
func (c *HealthController) CreateMeasurement(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req MeasurementInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Kind == "" || req.Value == "" || req.Date == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Kind, value and date are required"})
	}

	m, err := c.service.CreateMeasurement(ctx.Context(), claims.FamilyID, req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": m})
}

// DeleteMeasurement godoc
// @Summary  Remove a logged vital
// @Tags     health
// @Router   /api/health/measurements/{id} [delete]
func (c *HealthController) DeleteMeasurement(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.DeleteMeasurement(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrMeasurementNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Measurement not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete measurement"})
	}
}
