package shopping

import (
	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ShoppingApi struct {
	Controller *ShoppingController
	Config     *config.Config
}

func NewShoppingApi(controller *ShoppingController, cfg *config.Config) api.Route {
	return &ShoppingApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *ShoppingApi) Setup(app *fiber.App) {
	group := app.Group("/api/shopping",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware())

	group.Get("/", h.Controller.List)
	group.Post("/", h.Controller.Create)
	group.Delete("/purchased", h.Controller.ClearPurchased)
	group.Put("/:id/purchase", h.Controller.Purchase)
	group.Put("/:id", h.Controller.Update)
	group.Delete("/:id", h.Controller.Delete)
}
