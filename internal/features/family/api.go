package family

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FamilyApi struct {
	Controller *FamilyController
	Config     *config.Config
}

func NewFamilyApi(controller *FamilyController, cfg *config.Config) api.Route {
	return &FamilyApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *FamilyApi) Setup(app *fiber.App) {
	group := app.Group("/api/family",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/", h.Controller.GetGroup)
	group.Get("/members", h.Controller.ListMembers)
	group.Put("/members/:id", h.Controller.UpdateMember)
	group.Delete("/members/:id", h.Controller.RemoveMember)
}
