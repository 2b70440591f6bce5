package calendar

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CalendarApi struct {
	Controller *CalendarController
	Config     *config.Config
}

func NewCalendarApi(controller *CalendarController, cfg *config.Config) api.Route {
	return &CalendarApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *CalendarApi) Setup(app *fiber.App) {
	group := app.Group("/api/calendar",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/month", h.Controller.GetMonth)
	group.Get("/next", h.Controller.GetNext)
	group.Get("/events", h.Controller.GetEvents)
	group.Post("/events", h.Controller.CreateEvent)
	group.Put("/events/:id", h.Controller.UpdateEvent)
	group.Delete("/events/:id", h.Controller.DeleteEvent)
}
