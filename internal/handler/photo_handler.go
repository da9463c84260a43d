package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/service"
	"github.com/photolog-app/photolog-backend/pkg/utils"
)

// PhotoHandler host'un fotoğraf moderasyon uçları
type PhotoHandler struct {
	photoService  *service.PhotoService
	eventService  *service.EventService
	exportService *service.ExportService
	validator     *utils.Validator
}

func NewPhotoHandler(
	photoService *service.PhotoService,
	eventService *service.EventService,
	exportService *service.ExportService,
	validator *utils.Validator,
) *PhotoHandler {
	return &PhotoHandler{
		photoService:  photoService,
		eventService:  eventService,
		exportService: exportService,
		validator:     validator,
	}
}

// ListPhotos host görünümü: onaysızlar dahil tüm fotoğraflar
func (h *PhotoHandler) ListPhotos(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	p := utils.GetPaginationParams(c)

	if _, err := h.eventService.GetOwnedEvent(c.Params("id"), userID); err != nil {
		return errorJSON(c, err)
	}

	photos, total, err := h.photoService.ListEventPhotos(c.Params("id"), false, p.Offset, p.PageSize)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(models.SuccessResponse(buildPhotoList(photos, total, p), "Photos retrieved successfully"))
}

func (h *PhotoHandler) UpdatePhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var patch models.PhotoPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	photo, err := h.photoService.ModeratePhoto(c.Params("id"), c.Params("photoId"), userID, patch)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(models.NewPhotoResponse(photo), "Photo updated successfully"))
}

func (h *PhotoHandler) DeletePhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	if err := h.photoService.DeletePhoto(c.Context(), c.Params("id"), c.Params("photoId"), userID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Photo deleted successfully"))
}

func (h *PhotoHandler) BulkDelete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req models.BulkDeletePhotosRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	deleted, err := h.photoService.BulkDelete(c.Context(), c.Params("id"), userID, req.PhotoIDs)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"deleted": deleted,
	}, "Photos deleted successfully"))
}

// BulkDownload seçilen fotoğrafların ZIP paketini hazırlatır
func (h *PhotoHandler) BulkDownload(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	userEmail, _ := c.Locals("userEmail").(string)

	var req models.BulkDownloadPhotosRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	event, err := h.eventService.GetOwnedEvent(c.Params("id"), userID)
	if err != nil {
		return errorJSON(c, err)
	}

	jobID, err := h.exportService.StartEventExport(event, req.PhotoIDs, userEmail)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.SuccessResponse(fiber.Map{
		"export_job_id": jobID,
	}, "Export started, you will receive an email when it is ready"))
}

func buildPhotoList(photos []models.Photo, total int64, p utils.PaginationParams) models.PhotoListResponse {
	responses := make([]models.PhotoResponse, 0, len(photos))
	for i := range photos {
		responses = append(responses, models.NewPhotoResponse(&photos[i]))
	}
	return models.PhotoListResponse{
		Photos:   responses,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  int64(p.Offset+len(photos)) < total,
	}
}
