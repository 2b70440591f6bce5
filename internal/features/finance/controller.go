package finance

import (
	"errors"
	"fmt"
	"time"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FinanceController struct {
	service FinanceService
}

func NewFinanceController(service FinanceService) *FinanceController {
	return &FinanceController{service: service}
}

func monthParams(ctx *fiber.Ctx) (int, time.Month, error) {
	now := time.Now()
	year := ctx.QueryInt("year", now.Year())
	month := ctx.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return 0, 0, errors.New("month must be 1-12")
	}
	return year, time.Month(month), nil
}

// Month godoc
// @Summary  Month transactions with the summary block
// @Tags     finance
// @Produce  json
// @Param    year   query  int  false  "Year"
// @Param    month  query  int  false  "Month 1-12"
// @Router   /api/finance [get]
func (c *FinanceController) Month(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	year, month, err := monthParams(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	txs, summary, err := c.service.Month(ctx.Context(), claims.FamilyID, year, month)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}
	return ctx.JSON(fiber.Map{"data": txs, "summary": summary})
}

// Export godoc
// @Summary  Download the month as a spreadsheet
// @Tags     finance
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router   /api/finance/export [get]
func (c *FinanceController) Export(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	year, month, err := monthParams(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	txs, summary, err := c.service.Month(ctx.Context(), claims.FamilyID, year, month)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}

	workbook, err := BuildMonthWorkbook(txs, summary)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}
	defer workbook.Close()

	filename := fmt.Sprintf("finanze-%04d-%02d.xlsx", year, month)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return workbook.Write(ctx.Response().BodyWriter())
}

// Create godoc
// @Summary  Record a transaction
// @Tags     finance
// @Accept   json
// @Router   /api/finance [post]
func (c *FinanceController) Create(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req TransactionInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	t, err := c.service.Create(ctx.Context(), claims.FamilyID, req)
	switch {
	case err == nil:
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": t})
	case errors.Is(err, ErrInvalidType):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// Update godoc
// @Summary  Update a transaction
// @Tags     finance
// @Accept   json
// @Router   /api/finance/{id} [put]
func (c *FinanceController) Update(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req TransactionInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.Update(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// Delete godoc
// @Summary  Remove a transaction
// @Tags     finance
// @Router   /api/finance/{id} [delete]
func (c *FinanceController) Delete(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.Delete(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction"})
	}
}
