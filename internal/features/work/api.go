package work

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type WorkApi struct {
	Controller *ShiftController
	Config     *config.Config
}

func NewWorkApi(controller *ShiftController, cfg *config.Config) api.Route {
	return &WorkApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *WorkApi) Setup(app *fiber.App) {
	group := app.Group("/api/work",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/week", h.Controller.Week)
	group.Get("/presets", h.Controller.Presets)
	group.Get("/shifts", h.Controller.List)
	group.Post("/shifts", h.Controller.Create)
	group.Put("/shifts/day", h.Controller.ReplaceDay)
	group.Put("/shifts/:id", h.Controller.Update)
	group.Delete("/shifts/:id", h.Controller.Delete)
}
