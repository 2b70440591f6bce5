package notification

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	Controller *NotificationController
	Config     *config.Config
}

func NewNotificationApi(controller *NotificationController, cfg *config.Config) api.Route {
	return &NotificationApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/", h.Controller.List)
	group.Put("/read", h.Controller.MarkAllRead)
	group.Put("/:id/read", h.Controller.MarkRead)
}
