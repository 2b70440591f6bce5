package system

import (
	"casa360/internal/common/api"
	"casa360/internal/database"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	DB *database.MongodbDB
}

func NewHealthApi(db *database.MongodbDB) api.Route {
	return &HealthApi{DB: db}
}

func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.health)
}

// health godoc
// @Summary  Liveness and database reachability probe
// @Tags     system
// @Produce  json
// @Router   /health [get]
func (h *HealthApi) health(ctx *fiber.Ctx) error {
	if err := h.DB.DB.Client().Ping(ctx.Context(), nil); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  "database unreachable",
		})
	}
	return ctx.JSON(fiber.Map{"status": "ok"})
}
