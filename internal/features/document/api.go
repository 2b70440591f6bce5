package document

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DocumentApi struct {
	Controller *DocumentController
	Config     *config.Config
}

func NewDocumentApi(controller *DocumentController, cfg *config.Config) api.Route {
	return &DocumentApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *DocumentApi) Setup(app *fiber.App) {
	group := app.Group("/api/documents",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/", h.Controller.List)
	group.Post("/", h.Controller.Create)
	group.Get("/:id", h.Controller.Get)
	group.Put("/:id", h.Controller.Update)
	group.Delete("/:id", h.Controller.Delete)
}
