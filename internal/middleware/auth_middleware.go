package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/photolog-app/photolog-backend/internal/config"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/repository"
	"github.com/photolog-app/photolog-backend/pkg/firebase"
	"gorm.io/gorm"
)

// AuthMiddleware Firebase ID token doğrular ve kullanıcı bilgilerini
// context'e koyar. Askıya alınmış kullanıcılar 403 alır.
func AuthMiddleware(verifier *firebase.Verifier, userRepo *repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := verifier.VerifyIDToken(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		// Token geçerli ama kullanıcı kayıtlı değilse giriş akışı tamamlanmamıştır
		user, err := userRepo.GetByID(identity.UID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Account not found, please sign in"))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to load account"))
		}

		if user.IsSuspended {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Account is suspended"))
		}

		c.Locals("userID", user.ID)
		c.Locals("userEmail", user.Email)
		c.Locals("isAdmin", user.IsAdmin)

		return c.Next()
	}
}

// AdminMiddleware AuthMiddleware'den sonra çalışır; admin bayrağı ya da
// yapılandırılmış admin email listesi üzerinden yetki kontrolü yapar
func AdminMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("isAdmin").(bool)
		email, _ := c.Locals("userEmail").(string)

		if !isAdmin && !cfg.IsAdminEmail(email) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
		}

		return c.Next()
	}
}
