package file

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FileApi struct {
	Controller *FileController
	Config     *config.Config
}

func NewFileApi(controller *FileController, cfg *config.Config) api.Route {
	return &FileApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *FileApi) Setup(app *fiber.App) {
	// Download is public: the signed query string is the credential.
	app.Get("/api/files/download/:id", h.Controller.Download)

	group := app.Group("/api/files",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/", h.Controller.List)
	group.Post("/upload", h.Controller.Upload)
	group.Delete("/:id", h.Controller.Delete)
}
