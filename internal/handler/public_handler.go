package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/photolog-app/photolog-backend/internal/config"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/service"
	"github.com/photolog-app/photolog-backend/pkg/captcha"
	"github.com/photolog-app/photolog-backend/pkg/gallerytoken"
	"github.com/photolog-app/photolog-backend/pkg/utils"
)

// Şifreli galerilere erişim bu cookie'deki imzalı token ile yapılır
const galleryCookieName = "photolog_gallery"

// PublicHandler ziyaretçi uçları: kimlik doğrulama yok, etkinlik şifresi
// ve/veya captcha ile korunur
type PublicHandler struct {
	eventService *service.EventService
	photoService *service.PhotoService
	cfg          *config.Config
	validator    *utils.Validator
}

func NewPublicHandler(eventService *service.EventService, photoService *service.PhotoService, cfg *config.Config, validator *utils.Validator) *PublicHandler {
	return &PublicHandler{
		eventService: eventService,
		photoService: photoService,
		cfg:          cfg,
		validator:    validator,
	}
}

// GetEvent ziyaretçiye etkinlik bilgisini döner; fotoğraf sayısı sadece
// onaylıları kapsar
func (h *PublicHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.eventService.GetPublicEvent(c.Params("slug"))
	if err != nil {
		return errorJSON(c, err)
	}

	resp, err := h.eventService.BuildResponse(event, true)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Event retrieved successfully"))
}

// ListPhotos onaylı fotoğrafları döner. Şifreli etkinlikte geçerli galeri
// token'ı gerekir.
func (h *PublicHandler) ListPhotos(c *fiber.Ctx) error {
	event, err := h.eventService.GetPublicEvent(c.Params("slug"))
	if err != nil {
		return errorJSON(c, err)
	}

	if event.HasPassword() && !h.hasGalleryAccess(c, event.ID) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("This gallery is password protected"))
	}

	p := utils.GetPaginationParams(c)
	photos, total, err := h.photoService.ListEventPhotos(event.ID, true, p.Offset, p.PageSize)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(models.SuccessResponse(buildPhotoList(photos, total, p), "Photos retrieved successfully"))
}

// VerifyPassword şifre doğruysa galeri erişim cookie'si verir
func (h *PublicHandler) VerifyPassword(c *fiber.Ctx) error {
	event, err := h.eventService.GetPublicEvent(c.Params("slug"))
	if err != nil {
		return errorJSON(c, err)
	}

	var req models.EventPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.eventService.VerifyPassword(event, req.Password); err != nil {
		return errorJSON(c, err)
	}

	token, err := gallerytoken.Generate(event.ID, []byte(h.cfg.GallerySecret))
	if err != nil {
		return errorJSON(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     galleryCookieName,
		Value:    token,
		Expires:  time.Now().Add(gallerytoken.TokenExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(models.SuccessResponse(fiber.Map{
		"gallery_token": token,
	}, "Password verified"))
}

// UploadPhoto ziyaretçi yüklemesi: şifre (ya da galeri token) ve captcha
// kontrolünden sonra fotoğraf onaysız olarak kaydedilir
func (h *PublicHandler) UploadPhoto(c *fiber.Ctx) error {
	event, err := h.eventService.GetPublicEvent(c.Params("slug"))
	if err != nil {
		return errorJSON(c, err)
	}

	if event.HasPassword() && !h.hasGalleryAccess(c, event.ID) {
		if err := h.eventService.VerifyPassword(event, c.FormValue("password")); err != nil {
			return errorJSON(c, err)
		}
	}

	ok, err := captcha.VerifyTurnstile(h.cfg.TurnstileSecret, c.FormValue("captcha_token"))
	if err != nil || !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Captcha verification failed"))
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Photo file is required"))
	}

	photo, err := h.photoService.PublicUpload(c.Context(), event, file, c.FormValue("caption"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(
		models.NewPhotoResponse(photo),
		"Photo uploaded, it will appear once the host approves it",
	))
}

func (h *PublicHandler) hasGalleryAccess(c *fiber.Ctx, eventID string) bool {
	token := c.Cookies(galleryCookieName)
	if token == "" {
		token = c.Get("X-Gallery-Token")
	}
	if token == "" {
		return false
	}

	tokenEventID, err := gallerytoken.Validate(token, []byte(h.cfg.GallerySecret))
	return err == nil && tokenEventID == eventID
}
