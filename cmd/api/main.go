package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/photolog-app/photolog-backend/internal/config"
	"github.com/photolog-app/photolog-backend/internal/handler"
	"github.com/photolog-app/photolog-backend/internal/middleware"
	"github.com/photolog-app/photolog-backend/internal/repository"
	"github.com/photolog-app/photolog-backend/internal/service"
	"github.com/photolog-app/photolog-backend/pkg/database"
	"github.com/photolog-app/photolog-backend/pkg/email"
	"github.com/photolog-app/photolog-backend/pkg/firebase"
	"github.com/photolog-app/photolog-backend/pkg/logger"
	"github.com/photolog-app/photolog-backend/pkg/qrcode"
	"github.com/photolog-app/photolog-backend/pkg/storage"
	"github.com/photolog-app/photolog-backend/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// .env varsa yükle, production'da env doğrudan gelir
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zapLogger, err := logger.NewLogger(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Firebase doğrulayıcı başlangıçta bir kez kurulur
	verifier, err := firebase.NewVerifier(context.Background(), cfg.FirebaseCredentialsFile)
	if err != nil {
		zapLogger.Fatal("Failed to initialize firebase", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	// Storage
	imgStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL)
	if err != nil {
		zapLogger.Fatal("Failed to initialize CDN storage", zap.Error(err))
	}
	archive, err := storage.NewR2Storage(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to initialize archive storage", zap.Error(err))
	}

	emailService := email.NewEmailService(cfg, zapLogger)
	// QR kod paylaşım linkinin kendisini kodlar
	qrService := qrcode.NewQRService(cfg.PublicBaseURL + "/api/public/events/")

	// Services
	quotaService := service.NewQuotaService(userRepo, eventRepo, photoRepo, zapLogger)
	authService := service.NewAuthService(userRepo, emailService, zapLogger)
	userService := service.NewUserService(userRepo, imgStorage, quotaService, cfg.MaxUploadBytesPerUser, zapLogger)
	eventService := service.NewEventService(
		eventRepo,
		photoRepo,
		imgStorage,
		archive,
		quotaService,
		qrService,
		cfg.PublicBaseURL,
		cfg.MaxUploadBytesPerUser,
		zapLogger,
	)
	photoService := service.NewPhotoService(
		photoRepo,
		eventRepo,
		imgStorage,
		archive,
		quotaService,
		cfg.MaxUploadBytesPerUser,
		zapLogger,
	)
	exportService := service.NewExportService(photoService, archive, emailService, zapLogger)
	adminService := service.NewAdminService(userRepo, eventRepo, photoRepo, eventService, quotaService, zapLogger)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, verifier, emailService, validator, zapLogger)
	userHandler := handler.NewUserHandler(userService, validator)
	eventHandler := handler.NewEventHandler(eventService, exportService, validator)
	photoHandler := handler.NewPhotoHandler(photoService, eventService, exportService, validator)
	publicHandler := handler.NewPublicHandler(eventService, photoService, cfg, validator)
	adminHandler := handler.NewAdminHandler(adminService, authService, verifier, cfg, validator)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Gallery-Token",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	authMW := middleware.AuthMiddleware(verifier, userRepo)
	adminMW := middleware.AdminMiddleware(cfg)

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)
	auth.Post("/signout", authHandler.Signout)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/resend-verification", authHandler.ResendVerification)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Ziyaretçi uçları, kimlik doğrulaması yok
	public := api.Group("/public/events/:slug")
	public.Get("/", publicHandler.GetEvent)
	public.Get("/photos", publicHandler.ListPhotos)
	public.Post("/verify-password", publicHandler.VerifyPassword)
	public.Post("/photos", publicHandler.UploadPhoto)

	// Profil
	me := api.Group("/me", authMW)
	me.Get("/", userHandler.GetProfile)
	me.Patch("/", userHandler.UpdateProfile)
	me.Post("/avatar", userHandler.UploadAvatar)
	me.Delete("/avatar", userHandler.DeleteAvatar)

	// Host etkinlik yönetimi
	events := api.Group("/events", authMW)
	events.Post("/", eventHandler.CreateEvent)
	events.Get("/", eventHandler.ListEvents)
	events.Post("/actions/bulk", eventHandler.BulkAction)
	events.Get("/:id", eventHandler.GetEvent)
	events.Patch("/:id", eventHandler.UpdateEvent)
	events.Delete("/:id", eventHandler.DeleteEvent)
	events.Post("/:id/cover", eventHandler.UploadCover)
	events.Get("/:id/qr", eventHandler.QRCode)
	events.Post("/:id/download", eventHandler.Download)

	// Host fotoğraf moderasyonu
	events.Get("/:id/photos", photoHandler.ListPhotos)
	events.Patch("/:id/photos/:photoId", photoHandler.UpdatePhoto)
	events.Delete("/:id/photos/:photoId", photoHandler.DeletePhoto)
	events.Post("/:id/photos/bulk-delete", photoHandler.BulkDelete)
	events.Post("/:id/photos/bulk-download", photoHandler.BulkDownload)

	// Admin
	adminAuth := api.Group("/admin/auth")
	adminAuth.Post("/signin", adminHandler.Signin)
	adminAuth.Post("/refresh", adminHandler.Refresh)

	admin := api.Group("/admin", authMW, adminMW)
	admin.Get("/overview", adminHandler.Overview)
	admin.Get("/events", adminHandler.ListEvents)
	admin.Get("/events/:id", adminHandler.InspectEvent)
	admin.Patch("/events/:id/status", adminHandler.UpdateEventStatus)
	admin.Delete("/events/:id", adminHandler.ForceDeleteEvent)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.InspectUser)
	admin.Patch("/users/:id/status", adminHandler.UpdateUserStatus)
	admin.Get("/uploads/recent", adminHandler.RecentUploads)
	admin.Post("/system/export", adminHandler.SystemExport)

	zapLogger.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Server failed", zap.Error(err))
	}
}
