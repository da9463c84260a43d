package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/service"
)

// statusForError servis hatalarını HTTP durum kodlarına çevirir
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrDuplicateIdentity):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrQuotaExceeded):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrPhotoNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrIncorrectPassword):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrInvalidFileType),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrEmptyFile):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
}

func userResponse(user *models.User, emailVerified bool) models.UserResponse {
	return models.UserResponse{
		UID:                user.ID,
		Email:              user.Email,
		EmailVerified:      emailVerified,
		Name:               user.Name,
		AvatarURL:          user.AvatarURL,
		AvatarThumbnailURL: user.AvatarThumbnailURL,
	}
}
