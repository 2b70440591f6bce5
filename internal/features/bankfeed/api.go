package bankfeed

import (
	"errors"
	"time"

	"casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BankFeedApi struct {
	Importer *Importer
	Config   *config.Config
}

func NewBankFeedApi(importer *Importer, cfg *config.Config) api.Route {
	return &BankFeedApi{
		Importer: importer,
		Config:   cfg,
	}
}

func (h *BankFeedApi) Setup(app *fiber.App) {
	group := app.Group("/api/finance/bankfeed",
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.FamilyMiddleware(),
		middleware.AdminOnly())

	group.Post("/import", h.runImport)
}

// runImport godoc
// @Summary  Pull booked statement rows into the ledger (admin only)
// @Tags     finance
// @Accept   json
// @Router   /api/finance/bankfeed/import [post]
func (h *BankFeedApi) runImport(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req struct {
		Since string `json:"since"`
	}
	if err := ctx.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Since == "" {
		// Default window: the last 30 days.
		req.Since = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}

	report, err := h.Importer.Import(ctx.Context(), claims.FamilyID, req.Since)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"data": report})
	case errors.Is(err, ErrDisabled):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Import failed"})
	}
}
