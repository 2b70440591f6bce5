package pet

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PetApi struct {
	Controller *PetController
	Config     *config.Config
}

func NewPetApi(controller *PetController, cfg *config.Config) api.Route {
	return &PetApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *PetApi) Setup(app *fiber.App) {
	group := app.Group("/api/pets",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	// Reminder routes first: "/reminders" must not be captured by ":id".
	group.Get("/reminders", h.Controller.ListReminders)
	group.Post("/reminders", h.Controller.CreateReminder)
	group.Put("/reminders/:id/complete", h.Controller.CompleteReminder)
	group.Delete("/reminders/:id", h.Controller.DeleteReminder)

	group.Delete("/medical/:id", h.Controller.DeleteMedical)

	group.Get("/", h.Controller.ListPets)
	group.Post("/", h.Controller.CreatePet)
	group.Put("/:id", h.Controller.UpdatePet)
	group.Delete("/:id", h.Controller.DeletePet)
	group.Get("/:id/medical", h.Controller.ListMedical)
	group.Post("/:id/medical", h.Controller.CreateMedical)
}
