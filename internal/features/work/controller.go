package work

import (
	"errors"
	"time"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ShiftController struct {
	service ShiftService
}

func NewShiftController(service ShiftService) *ShiftController {
	return &ShiftController{service: service}
}

// Week godoc
// @Summary  Week planner: the Monday-first week containing the anchor date
// @Tags     work
// @Produce  json
// @Param    date  query  string  false  "Anchor day YYYY-MM-DD (defaults to today)"
// @Router   /api/work/week [get]
func (c *ShiftController) Week(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	anchor := time.Now()
	if q := ctx.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
		}
		anchor = parsed
	}

	week, err := c.service.Week(ctx.Context(), claims.FamilyID, anchor)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load week"})
	}
	return ctx.JSON(fiber.Map{"data": week})
}

// Presets godoc
// @Summary  Recently used shift times for the acting user
// @Tags     work
// @Produce  json
// @Router   /api/work/presets [get]
func (c *ShiftController) Presets(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	presets, err := c.service.RecentPresets(ctx.Context(), claims.FamilyID, claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load presets"})
	}
	return ctx.JSON(fiber.Map{"data": presets})
}

// List godoc
// @Summary  List shifts in a date window
// @Tags     work
// @Produce  json
// @Param    from  query  string  true  "First day YYYY-MM-DD"
// @Param    to    query  string  true  "Last day YYYY-MM-DD"
// @Router   /api/work/shifts [get]
func (c *ShiftController) List(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	from, to := ctx.Query("from"), ctx.Query("to")
	if from == "" || to == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from and to are required"})
	}

	shifts, err := c.service.Range(ctx.Context(), claims.FamilyID, from, to)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load shifts"})
	}
	return ctx.JSON(fiber.Map{"data": shifts})
}

// Create godoc
// @Summary  Add a shift
// @Tags     work
// @Accept   json
// @Router   /api/work/shifts [post]
func (c *ShiftController) Create(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req ShiftInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	shift, err := c.service.Create(ctx.Context(), claims.FamilyID, req)
	switch {
	case err == nil:
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": shift})
	case errors.Is(err, ErrInvalidShiftType):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to create shift"})
	}
}

// ReplaceDay godoc
// @Summary  Replace a member's shifts for one day
// @Tags     work
// @Accept   json
// @Router   /api/work/shifts/day [put]
func (c *ShiftController) ReplaceDay(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req struct {
		MemberID string       `json:"member_id"`
		Date     string       `json:"date"`
		Shifts   []ShiftInput `json:"shifts"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MemberID == "" || req.Date == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "member_id and date are required"})
	}

	shifts, err := c.service.ReplaceDay(ctx.Context(), claims.FamilyID, req.MemberID, req.Date, req.Shifts)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"data": shifts})
	case errors.Is(err, ErrInvalidShiftType):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to save day"})
	}
}

// Update godoc
// @Summary  Update a shift
// @Tags     work
// @Accept   json
// @Router   /api/work/shifts/{id} [put]
func (c *ShiftController) Update(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req ShiftInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.Update(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrInvalidShiftType):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shift not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update shift"})
	}
}

// Delete godoc
// @Summary  Remove a shift
// @Tags     work
// @Router   /api/work/shifts/{id} [delete]
func (c *ShiftController) Delete(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.Delete(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shift not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete shift"})
	}
}
