package automation

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AutomationApi struct {
	Controller *AutomationController
	Config     *config.Config
}

func NewAutomationApi(controller *AutomationController, cfg *config.Config) api.Route {
	return &AutomationApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *AutomationApi) Setup(app *fiber.App) {
	group := app.Group("/api/automation",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/", h.Controller.List)
	group.Post("/test", h.Controller.Test)

	admin := group.Group("/", middleware.AdminOnly())
	admin.Post("/", h.Controller.Create)
	admin.Put("/:id", h.Controller.Update)
	admin.Delete("/:id", h.Controller.Delete)
}
