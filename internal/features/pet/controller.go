package pet

import (
	"errors"

	"casa360/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PetController struct {
	service PetService
}

func NewPetController(service PetService) *PetController {
	return &PetController{service: service}
}

// ListPets godoc
// @Summary  List the family's pets
// @Tags     pets
// @Produce  json
// @Router   /api/pets [get]
func (c *PetController) ListPets(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	pets, err := c.service.ListPets(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load pets"})
	}
	return ctx.JSON(fiber.Map{"data": pets})
}

// CreatePet godoc
// @Summary  Add a pet
// @Tags     pets
// @Accept   json
// @Router   /api/pets [post]
func (c *PetController) CreatePet(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req PetInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	p, err := c.service.CreatePet(ctx.Context(), claims.FamilyID, req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create pet"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": p})
}

// UpdatePet godoc
// @Summary  Update a pet
// @Tags     pets
// @Accept   json
// @Router   /api/pets/{id} [put]
func (c *PetController) UpdatePet(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req PetInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.UpdatePet(ctx.Context(), claims.FamilyID, ctx.Params("id"), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrPetNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update pet"})
	}
}

// DeletePet godoc
// @Summary  Remove a pet and its reminders
// @Tags     pets
// @Router   /api/pets/{id} [delete]
func (c *PetController) DeletePet(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.DeletePet(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrPetNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete pet"})
	}
}

// ListReminders godoc
// @Summary  List care reminders for all the family's pets
// @Tags     pets
// @Produce  json
// @Router   /api/pets/reminders [get]
func (c *PetController) ListReminders(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	reminders, err := c.service.ListReminders(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load reminders"})
	}
	return ctx.JSON(fiber.Map{"data": reminders})
}

// CreateReminder godoc
// @Summary  Add a care reminder
// @Tags     pets
// @Accept   json
// @Router   /api/pets/reminders [post]
func (c *PetController) CreateReminder(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req ReminderInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PetID == "" || req.ReminderType == "" || req.DueDate == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Pet, type and due date are required"})
	}

	rem, err := c.service.CreateReminder(ctx.Context(), claims.FamilyID, req)
	switch {
	case err == nil:
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": rem})
	case errors.Is(err, ErrPetNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found"})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// CompleteReminder godoc
// @Summary  Toggle a reminder's completed flag
// @Tags     pets
// @Accept   json
// @Router   /api/pets/reminders/{id}/complete [put]
func (c *PetController) CompleteReminder(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := c.service.SetCompleted(ctx.Context(), claims.FamilyID, ctx.Params("id"), req.Completed)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrReminderNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reminder not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update reminder"})
	}
}

// DeleteReminder godoc
// @Summary  Remove a care reminder
// @Tags     pets
// @Router   /api/pets/reminders/{id} [delete]
func (c *PetController) DeleteReminder(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.DeleteReminder(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrReminderNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reminder not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete reminder"})
	}
}

// ListMedical godoc
// @Summary  A pet's medical log
// @Tags     pets
// @Produce  json
// @Param    id path string true "Pet ID"
// @Router   /api/pets/{id}/medical [get]
func (c *PetController) ListMedical(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	records, err := c.service.ListMedical(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"data": records})
	case errors.Is(err, ErrPetNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load medical records"})
	}
}

// CreateMedical godoc
// @Summary  Add a medical log entry
// @Tags     pets
// @Accept   json
// @Param    id path string true "Pet ID"
// @Router   /api/pets/{id}/medical [post]
func (c *PetController) CreateMedical(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	var req MedicalInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.PetID = ctx.Params("id")
	if req.Title == "" || req.RecordDate == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title and date are required"})
	}

	rec, err := c.service.CreateMedical(ctx.Context(), claims.FamilyID, req)
	switch {
	case err == nil:
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": rec})
	case errors.Is(err, ErrPetNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found"})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// DeleteMedical godoc
// @Summary  Remove a medical log entry
// @Tags     pets
// @Router   /api/pets/medical/{id} [delete]
func (c *PetController) DeleteMedical(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.DeleteMedical(ctx.Context(), claims.FamilyID, ctx.Params("id"))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrRecordNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete record"})
	}
}
