package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/photolog-app/photolog-backend/internal/config"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/service"
	"github.com/photolog-app/photolog-backend/pkg/firebase"
	"github.com/photolog-app/photolog-backend/pkg/utils"
)

type AdminHandler struct {
	adminService *service.AdminService
	authService  *service.AuthService
	verifier     *firebase.Verifier
	cfg          *config.Config
	validator    *utils.Validator
}

func NewAdminHandler(
	adminService *service.AdminService,
	authService *service.AuthService,
	verifier *firebase.Verifier,
	cfg *config.Config,
	validator *utils.Validator,
) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		authService:  authService,
		verifier:     verifier,
		cfg:          cfg,
		validator:    validator,
	}
}

// Signin normal girişin üstüne admin yetki kontrolü ekler
func (h *AdminHandler) Signin(c *fiber.Ctx) error {
	var req models.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	identity, err := h.verifier.VerifyIDToken(c.Context(), req.Token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
	}

	user, err := h.authService.Signin(identity)
	if err != nil {
		return errorJSON(c, err)
	}

	if !user.IsAdmin && !h.cfg.IsAdminEmail(user.Email) {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
	}

	resp := models.SigninResponse{
		Token: req.Token,
		User:  userResponse(user, identity.EmailVerified),
	}
	return c.JSON(models.SuccessResponse(resp, "Signed in successfully"))
}

// Refresh admin oturumu için Signin ile aynı kontrolleri uygular
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	return h.Signin(c)
}

func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	stats, err := h.adminService.Overview()
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(stats, "Overview retrieved successfully"))
}

func (h *AdminHandler) ListEvents(c *fiber.Ctx) error {
	p := utils.GetPaginationParams(c)

	events, total, err := h.adminService.ListEvents(p.Offset, p.PageSize)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(models.SuccessResponse(models.AdminEventListResponse{
		Events:   events,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  int64(p.Offset+len(events)) < total,
	}, "Events retrieved successfully"))
}

func (h *AdminHandler) InspectEvent(c *fiber.Ctx) error {
	event, err := h.adminService.InspectEvent(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(event, "Event retrieved successfully"))
}

func (h *AdminHandler) UpdateEventStatus(c *fiber.Ctx) error {
	var req models.UpdateEventStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	event, err := h.adminService.UpdateEventStatus(c.Params("id"), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(event, "Event status updated successfully"))
}

func (h *AdminHandler) ForceDeleteEvent(c *fiber.Ctx) error {
	if err := h.adminService.ForceDeleteEvent(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(p.Offset, p.PageSize)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(models.SuccessResponse(models.AdminUserListResponse{
		Users:    users,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  int64(p.Offset+len(users)) < total,
	}, "Users retrieved successfully"))
}

func (h *AdminHandler) InspectUser(c *fiber.Ctx) error {
	user, err := h.adminService.InspectUser(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "User retrieved successfully"))
}

// UpdateUserStatus askıya alma bayrağını değiştirir; hesap silinmez
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	var req models.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	user, err := h.adminService.SetUserSuspended(c.Params("id"), req.IsSuspended)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "User status updated successfully"))
}

func (h *AdminHandler) RecentUploads(c *fiber.Ctx) error {
	p := utils.GetPaginationParams(c)

	uploads, total, err := h.adminService.RecentUploads(p.Offset, p.PageSize)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(models.SuccessResponse(models.RecentUploadsResponse{
		Uploads:  uploads,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, "Recent uploads retrieved successfully"))
}

func (h *AdminHandler) SystemExport(c *fiber.Ctx) error {
	resp := h.adminService.StartSystemExport()
	return c.Status(fiber.StatusAccepted).JSON(models.SuccessResponse(resp, "System export started"))
}
