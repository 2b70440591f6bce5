package dashboard

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	Controller *DashboardController
	Config     *config.Config
}

func NewDashboardApi(controller *DashboardController, cfg *config.Config) api.Route {
	return &DashboardApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *DashboardApi) Setup(app *fiber.App) {
	group := app.Group("/api/dashboard",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/layout", h.Controller.GetLayout)
	group.Put("/layout", h.Controller.SaveLayout)
	group.Delete("/layout", h.Controller.ResetLayout)
	group.Get("/summary", h.Controller.Summary)
}
