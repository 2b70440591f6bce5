package vehicle

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type VehicleApi struct {
	Controller *VehicleController
	Config     *config.Config
}

func NewVehicleApi(controller *VehicleController, cfg *config.Config) api.Route {
	return &VehicleApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *VehicleApi) Setup(app *fiber.App) {
	group := app.Group("/api/vehicles",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/", h.Controller.List)
	group.Post("/", h.Controller.Create)
	group.Get("/:id", h.Controller.Get)
	group.Put("/:id", h.Controller.Update)
	group.Post("/:id/renew", h.Controller.Renew)
	group.Delete("/:id", h.Controller.Delete)
}
