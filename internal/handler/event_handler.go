package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/service"
	"github.com/photolog-app/photolog-backend/pkg/utils"
)

type EventHandler struct {
	eventService  *service.EventService
	exportService *service.ExportService
	validator     *utils.Validator
}

func NewEventHandler(eventService *service.EventService, exportService *service.ExportService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventService:  eventService,
		exportService: exportService,
		validator:     validator,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req models.EventCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	event, err := h.eventService.CreateEvent(userID, req)
	if err != nil {
		return errorJSON(c, err)
	}

	resp, err := h.eventService.BuildResponse(event, false)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "Event created successfully"))
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	p := utils.GetPaginationParams(c)

	events, total, err := h.eventService.ListEvents(userID, p.Offset, p.PageSize)
	if err != nil {
		return errorJSON(c, err)
	}

	responses := make([]models.EventResponse, 0, len(events))
	for i := range events {
		resp, err := h.eventService.BuildResponse(&events[i], false)
		if err != nil {
			return errorJSON(c, err)
		}
		responses = append(responses, resp)
	}

	return c.JSON(models.SuccessResponse(models.EventListResponse{
		Events:   responses,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  int64(p.Offset+len(events)) < total,
	}, "Events retrieved successfully"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	event, err := h.eventService.GetOwnedEvent(c.Params("id"), userID)
	if err != nil {
		return errorJSON(c, err)
	}

	resp, err := h.eventService.BuildResponse(event, false)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Event retrieved successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var patch models.EventPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	event, err := h.eventService.UpdateEvent(c.Params("id"), userID, patch)
	if err != nil {
		return errorJSON(c, err)
	}

	resp, err := h.eventService.BuildResponse(event, false)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	if err := h.eventService.DeleteEvent(c.Context(), c.Params("id"), userID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}

func (h *EventHandler) UploadCover(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	file, err := c.FormFile("cover")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Cover file is required"))
	}

	event, err := h.eventService.UploadCover(c.Context(), c.Params("id"), userID, file)
	if err != nil {
		return errorJSON(c, err)
	}

	resp, err := h.eventService.BuildResponse(event, false)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Cover uploaded successfully"))
}

// QRCode paylaşım linkinin PNG QR kodunu üretir
func (h *EventHandler) QRCode(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	size, err := strconv.Atoi(c.Query("size", "256"))
	if err != nil || size < 64 || size > 1024 {
		size = 256
	}

	png, err := h.eventService.QRCode(c.Params("id"), userID, size)
	if err != nil {
		return errorJSON(c, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// Download onaylı fotoğrafların ZIP paketini arka planda hazırlatır,
// hazır olduğunda indirme linki email ile gelir
func (h *EventHandler) Download(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	userEmail, _ := c.Locals("userEmail").(string)

	event, err := h.eventService.GetOwnedEvent(c.Params("id"), userID)
	if err != nil {
		return errorJSON(c, err)
	}

	jobID, err := h.exportService.StartEventExport(event, nil, userEmail)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.SuccessResponse(fiber.Map{
		"export_job_id": jobID,
	}, "Export started, you will receive an email when it is ready"))
}

func (h *EventHandler) BulkAction(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req models.BulkEventActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	updated, err := h.eventService.BulkAction(userID, req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"updated": updated,
	}, "Bulk action applied successfully"))
}
