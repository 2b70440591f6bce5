package health

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	Controller *HealthController
	Config     *config.Config
}

func NewHealthApi(controller *HealthController, cfg *config.Config) api.Route {
	return &HealthApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *HealthApi) Setup(app *fiber.App) {
	group := app.Group("/api/health",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/medications", h.Controller.ListMedications)
	group.Get("/medications/today", h.Controller.DailyDoses)
	group.Post("/medications", h.Controller.CreateMedication)
	group.Put("/medications/:id", h.Controller.UpdateMedication)
	group.Delete("/medications/:id", h.Controller.DeleteMedication)

	group.Get("/profile/:memberId", h.Controller.GetProfile)
	group.Put("/profile/:memberId", h.Controller.SaveProfile)

	group.Get("/measurements", h.Controller.ListMeasurements)
	group.Post("/measurements", h.Controller.CreateMeasurement)
	group.Delete("/measurements/:id", h.Controller.DeleteMeasurement)
}
