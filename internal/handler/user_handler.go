package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/service"
	"github.com/photolog-app/photolog-backend/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	user, err := h.userService.GetByID(userID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(userResponse(user, true), "Profile retrieved successfully"))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.userService.UpdateProfile(userID, models.UserPatch{Name: &req.Name})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(userResponse(user, true), "Profile updated successfully"))
}

func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Avatar file is required"))
	}

	user, err := h.userService.UploadAvatar(c.Context(), userID, file)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(userResponse(user, true), "Avatar uploaded successfully"))
}

func (h *UserHandler) DeleteAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	user, err := h.userService.DeleteAvatar(c.Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(userResponse(user, true), "Avatar removed successfully"))
}
