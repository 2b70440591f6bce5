package finance

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FinanceApi struct {
	Controller *FinanceController
	Config     *config.Config
}

func NewFinanceApi(controller *FinanceController, cfg *config.Config) api.Route {
	return &FinanceApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *FinanceApi) Setup(app *fiber.App) {
	group := app.Group("/api/finance",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/", h.Controller.Month)
	group.Get("/export", h.Controller.Export)
	group.Post("/", h.Controller.Create)
	group.Put("/:id", h.Controller.Update)
	group.Delete("/:id", h.Controller.Delete)
}
