package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/service"
	"github.com/photolog-app/photolog-backend/pkg/email"
	"github.com/photolog-app/photolog-backend/pkg/firebase"
	"github.com/photolog-app/photolog-backend/pkg/utils"
	"go.uber.org/zap"
)

// AuthHandler kimlik akışları: token sağlayıcıdan gelir, biz doğrulayıp
// yerel kullanıcı satırıyla eşleriz
type AuthHandler struct {
	authService  *service.AuthService
	verifier     *firebase.Verifier
	emailService *email.EmailService
	validator    *utils.Validator
	logger       *zap.Logger
}

func NewAuthHandler(
	authService *service.AuthService,
	verifier *firebase.Verifier,
	emailService *email.EmailService,
	validator *utils.Validator,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		verifier:     verifier,
		emailService: emailService,
		validator:    validator,
		logger:       logger,
	}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	identity, req, err := h.verifyTokenRequest(c)
	if identity == nil {
		return err
	}

	user, err := h.authService.Signup(identity)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := models.SigninResponse{
		Token: req.Token,
		User:  userResponse(user, identity.EmailVerified),
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "Account created successfully"))
}

func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	identity, req, err := h.verifyTokenRequest(c)
	if identity == nil {
		return err
	}

	user, err := h.authService.Signin(identity)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := models.SigninResponse{
		Token: req.Token,
		User:  userResponse(user, identity.EmailVerified),
	}
	return c.JSON(models.SuccessResponse(resp, "Signed in successfully"))
}

// Signout sağlayıcı tarafındaki refresh token'ları iptal eder
func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	identity, _, err := h.verifyTokenRequest(c)
	if identity == nil {
		return err
	}

	if err := h.verifier.RevokeTokens(c.Context(), identity.UID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Signed out successfully"))
}

// Refresh taze bir token'ı doğrular ve güncel kullanıcı bilgisini döner.
// Token yenileme sağlayıcı SDK'sında yapılır, burada sadece eşleriz.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	identity, req, err := h.verifyTokenRequest(c)
	if identity == nil {
		return err
	}

	user, err := h.authService.Signin(identity)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := models.SigninResponse{
		Token: req.Token,
		User:  userResponse(user, identity.EmailVerified),
	}
	return c.JSON(models.SuccessResponse(resp, "Session refreshed"))
}

// VerifyEmail token'daki doğrulama durumunu raporlar
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	identity, _, err := h.verifyTokenRequest(c)
	if identity == nil {
		return err
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"email":          identity.Email,
		"email_verified": identity.EmailVerified,
	}, "Verification status retrieved"))
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	identity, _, err := h.verifyTokenRequest(c)
	if identity == nil {
		return err
	}

	if identity.EmailVerified {
		return c.JSON(models.SuccessResponse(nil, "Email is already verified"))
	}

	link, err := h.verifier.EmailVerificationLink(c.Context(), identity.Email)
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.emailService.SendVerificationEmail(identity.Email, link); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Verification email sent"))
}

// ForgotPassword her durumda aynı cevabı döner, hesap varlığını sızdırmaz
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	link, err := h.verifier.PasswordResetLink(c.Context(), req.Email)
	if err != nil {
		h.logger.Warn("password reset link generation failed", zap.String("email", req.Email), zap.Error(err))
	} else if err := h.emailService.SendPasswordResetEmail(req.Email, link); err != nil {
		h.logger.Warn("password reset email failed", zap.String("email", req.Email), zap.Error(err))
	}

	return c.JSON(models.SuccessResponse(nil, "If an account exists for that email, a reset link has been sent"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
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

	if err := h.verifier.UpdatePassword(c.Context(), identity.UID, req.NewPassword); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Password updated successfully"))
}

// verifyTokenRequest gövdedeki token'ı okuyup doğrular; hata durumunda
// cevabı kendisi yazar ve fiber hatasını döner
func (h *AuthHandler) verifyTokenRequest(c *fiber.Ctx) (*firebase.Identity, *models.TokenRequest, error) {
	var req models.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	identity, err := h.verifier.VerifyIDToken(c.Context(), req.Token)
	if err != nil {
		return nil, nil, c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
	}
	return identity, &req, nil
}
