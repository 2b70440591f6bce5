package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"casa360/internal/config"
	"casa360/internal/middleware"
	"casa360/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FileController struct {
	UploadDir string
	service   FileService
}

func NewFileController(service FileService, cfg *config.Config) *FileController {
	if _, err := os.Stat(cfg.FSPath); os.IsNotExist(err) {
		os.MkdirAll(cfg.FSPath, 0755)
	}
	return &FileController{
		UploadDir: cfg.FSPath,
		service:   service,
	}
}

// Upload godoc
// @Summary  Upload a file
// @Tags     files
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "File to upload"
// @Router   /api/files/upload [post]
func (c *FileController) Upload(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	header, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Error retrieving file"})
	}
	if err := c.service.ValidateUpload(header.Size); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	familyOID, err := primitive.ObjectIDFromHex(claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid family ID"})
	}
	userOID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	originalName := filepath.Base(header.Filename)
	uniqueName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), originalName)
	uniqueName = strings.ReplaceAll(uniqueName, " ", "_")
	dstPath := filepath.Join(c.UploadDir, uniqueName)

	if err := ctx.SaveFile(header, dstPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error saving file to disk"})
	}

	record := &StoredFile{
		FamilyID:         familyOID,
		OriginalFilename: originalName,
		Path:             dstPath,
		Size:             header.Size,
		MimeType:         header.Header.Get("Content-Type"),
		UploadedBy:       userOID,
	}
	if err := c.service.Save(ctx.Context(), record); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error saving file metadata"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// List godoc
// @Summary  List the family's files
// @Tags     files
// @Produce  json
// @Router   /api/files [get]
func (c *FileController) List(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	files, err := c.service.List(ctx.Context(), claims.FamilyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error retrieving files"})
	}
	return ctx.JSON(fiber.Map{"data": files})
}

// Download godoc
// @Summary  Download a file via signed link
// @Tags     files
// @Param    id path string true "File ID"
// @Param    expires query string true "Unix expiry"
// @Param    sig query string true "HMAC signature"
// @Router   /api/files/download/{id} [get]
func (c *FileController) Download(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	err := utils.VerifySignedResource(id, ctx.Query("expires"), ctx.Query("sig"))
	switch {
	case errors.Is(err, utils.ErrLinkExpired):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Link expired"})
	case err != nil:
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid link"})
	}

	// A valid signature proves the link came from us, so no auth middleware
	// runs on this route.
	f, err := c.service.Fetch(ctx.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error retrieving file"})
	}

	return ctx.Download(f.Path, f.OriginalFilename)
}

// Delete godoc
// @Summary  Delete a file (uploader or admin)
// @Tags     files
// @Param    id path string true "File ID"
// @Router   /api/files/{id} [delete]
func (c *FileController) Delete(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)

	err := c.service.Delete(ctx.Context(), claims.FamilyID, ctx.Params("id"), claims.UserID, claims.Role == "admin")
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{"status": "success"})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	case errors.Is(err, ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete file"})
	}
}
