package calendar

import (
	"errors"
	"time"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CalendarController struct {
	service CalendarService
	loc     *time.Location
}

func NewCalendarController(service CalendarService, aggregator *Aggregator) *CalendarController {
	return &CalendarController{service: service, loc: aggregator.Loc}
}

// GetMonth godoc
// @Summary  Month view: grid cells, indicator dots and the selected day's list
// @Tags     calendar
// @Produce  json
// @Param    year   query  int     false  "Year (defaults to current)"
// @Param    month  query  int     false  "Month 1-12 (defaults to current)"
// @Param    day    query  string  false  "Selected day YYYY-MM-DD"
// @Router   /api/calendar/month [get]
func (c *CalendarController) GetMonth(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	now := time.Now().In(c.loc)

	year := ctx.QueryInt("year", now.Year())
	month := ctx.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month must be 1-12"})
	}

	view, err := c.service.MonthView(ctx.Context(), claims.FamilyID, year, time.Month(month), ctx.Query("day"), now)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load calendar"})
	}
	return ctx.JSON(fiber.Map{"data": view})
}

// GetEvents godoc
// @Summary  Raw aggregated events for the month-wide window, grouped by day
// @Tags     calendar
// @Produce  json
// @Router   /api/calendar/events [get]
func (c *CalendarController) GetEvents(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	now := time.Now().In(c.loc)

	year := ctx.QueryInt("year", now.Year())
	month := ctx.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month must be 1-12"})
	}

	agg, err := c.service.AggregateMonth(ctx.Context(), claims.FamilyID, year, time.Month(month))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load events"})
	}
	return ctx.JSON(fiber.Map{"data": agg})
}

// GetNext godoc
// @Summary  Today's next-event card for the dashboard
// @Tags     calendar
// @Produce  json
// @Router   /api/calendar/next [get]
func (c *CalendarController) GetNext(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	card, err := c.service.NextEvents(ctx.Context(), claims.FamilyID, time.Now().In(c.loc))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load next events"})
	}
	return ctx.JSON(fiber.Map{"data": card})
}

// CreateEvent godoc
// @Summary  Create a calendar event
// @Tags     calendar
// @Accept   json
// @Router   /api/calendar/events [post]
func (c *CalendarController) CreateEvent(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req EventInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || req.Date == "" || req.Time == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title, date and time are required"})
	}
	if req.EventType == "" {
		req.EventType = TypeGeneric
	}

	row, err := c.service.Create(ctx.Context(), claims.FamilyID, claims.UserID, req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": row})
}

// UpdateEvent godoc
// @Summary  Update a calendar event (virtual events are rejected)
// @Tags     calendar
// @Accept   json
// @Router   /api/calendar/events/{id} [put]
func (c *CalendarController) UpdateEvent(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req EventInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.Update(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrVirtualReadOnly):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update event"})
	}
}

// DeleteEvent godoc
// @Summary  Delete a calendar event (virtual events are rejected)
// @Tags     calendar
// @Router   /api/calendar/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.Delete(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrVirtualReadOnly):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete event"})
	}
}
