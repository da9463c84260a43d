package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/repository"
	"github.com/photolog-app/photolog-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo       *repository.UserRepository
	imgStorage     storage.ImageService
	quota          *QuotaService
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	imgStorage storage.ImageService,
	quota *QuotaService,
	maxUploadBytes int64,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		imgStorage:     imgStorage,
		quota:          quota,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID string, patch models.UserPatch) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	// Suspension admin tarafında yönetilir, profil güncellemesi dokunamaz
	patch.IsSuspended = nil
	user.ApplyPatch(patch)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar avatar görselini CDN'e yükler ve kullanıcıya bağlar.
// Yeni boyut kota tavanına karşı kontrol edilir.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if err := validateImageFile(file); err != nil {
		return nil, err
	}

	// Kota kontrolü
	if s.quota.TotalUploadBytes(userID)+file.Size > s.maxUploadBytes {
		return nil, ErrQuotaExceeded
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	upload, err := s.imgStorage.Upload(ctx, src, "avatars/"+userID)
	if err != nil {
		return nil, fmt.Errorf("avatar upload failed: %w", err)
	}

	// Eski avatarı CDN'den temizle
	if user.AvatarImageID != "" {
		if err := s.imgStorage.Delete(ctx, user.AvatarImageID); err != nil {
			s.logger.Warn("failed to delete old avatar", zap.String("user_id", userID), zap.Error(err))
		}
	}

	user.AvatarURL = upload.URL
	user.AvatarThumbnailURL = upload.ThumbnailURL
	user.AvatarImageID = upload.PublicID
	user.AvatarFileSize = strconv.FormatInt(file.Size, 10)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteAvatar(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if user.AvatarImageID != "" {
		if err := s.imgStorage.Delete(ctx, user.AvatarImageID); err != nil {
			s.logger.Warn("failed to delete avatar", zap.String("user_id", userID), zap.Error(err))
		}
	}

	user.AvatarURL = ""
	user.AvatarThumbnailURL = ""
	user.AvatarImageID = ""
	user.AvatarFileSize = ""

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func validateImageFile(file *multipart.FileHeader) error {
	if file.Size == 0 {
		return ErrEmptyFile
	}
	if file.Size > MaxPhotoFileSize {
		return ErrFileTooLarge
	}
	if !isValidImageType(file.Header.Get("Content-Type")) {
		return ErrInvalidFileType
	}
	return nil
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
