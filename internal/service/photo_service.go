package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/repository"
	"github.com/photolog-app/photolog-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PhotoService struct {
	photoRepo      *repository.PhotoRepository
	eventRepo      *repository.EventRepository
	imgStorage     storage.ImageService
	archive        storage.ArchiveService
	quota          *QuotaService
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewPhotoService(
	photoRepo *repository.PhotoRepository,
	eventRepo *repository.EventRepository,
	imgStorage storage.ImageService,
	archive storage.ArchiveService,
	quota *QuotaService,
	maxUploadBytes int64,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		photoRepo:      photoRepo,
		eventRepo:      eventRepo,
		imgStorage:     imgStorage,
		archive:        archive,
		quota:          quota,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// PublicUpload ziyaretçi yüklemesi: dosya doğrulanır, host kotası kontrol
// edilir, orijinal arşive ve CDN'e yüklenir, kayıt onaysız oluşturulur.
// Şifre/captcha kontrolleri çağıran tarafta yapılmış olmalıdır.
func (s *PhotoService) PublicUpload(ctx context.Context, event *models.Event, file *multipart.FileHeader, caption string) (*models.Photo, error) {
	if err := validateImageFile(file); err != nil {
		return nil, err
	}

	// Kota host'a karşı kontrol edilir; okuma ile yazma arasında küçük bir
	// bayatlık penceresi kabul edilir, rezervasyon yapılmaz
	if s.quota.TotalUploadBytes(event.HostID)+file.Size > s.maxUploadBytes {
		return nil, ErrQuotaExceeded
	}

	photoID := uuid.NewString()
	archiveKey := fmt.Sprintf("events/%s/%s%s", event.ID, photoID, filepath.Ext(file.Filename))

	// Önce orijinali arşivle
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	if err := s.archive.Upload(ctx, archiveKey, src); err != nil {
		src.Close()
		return nil, fmt.Errorf("archive upload failed: %w", err)
	}
	src.Close()

	// Sonra CDN'e yükle; başarısız olursa arşivi geri al
	src, err = file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	upload, err := s.imgStorage.Upload(ctx, src, "events/"+event.ID)
	if err != nil {
		if cleanupErr := s.archive.Delete(ctx, archiveKey); cleanupErr != nil {
			s.logger.Warn("archive cleanup failed", zap.String("key", archiveKey), zap.Error(cleanupErr))
		}
		return nil, fmt.Errorf("image upload failed: %w", err)
	}

	photo := &models.Photo{
		ID:           photoID,
		EventID:      event.ID,
		URL:          upload.URL,
		ThumbnailURL: upload.ThumbnailURL,
		Caption:      caption,
		Approved:     false, // host onayı gerekir
		UploadedAt:   time.Now(),
		UploadedBy:   event.HostID,
		// Anonim yükleyici için ayrı takip kimliği
		PublicUploaderID: uuid.NewString(),
		FileSize:         strconv.FormatInt(file.Size, 10),
		ImageID:          upload.PublicID,
		ArchiveKey:       archiveKey,
	}

	if err := s.photoRepo.Create(photo); err != nil {
		// Cleanup
		if cleanupErr := s.imgStorage.Delete(ctx, upload.PublicID); cleanupErr != nil {
			s.logger.Warn("CDN cleanup failed", zap.String("public_id", upload.PublicID), zap.Error(cleanupErr))
		}
		if cleanupErr := s.archive.Delete(ctx, archiveKey); cleanupErr != nil {
			s.logger.Warn("archive cleanup failed", zap.String("key", archiveKey), zap.Error(cleanupErr))
		}
		return nil, err
	}

	return photo, nil
}

// ListEventPhotos sayfalı fotoğraf listesi döner; approvedOnly ziyaretçi
// görünümü içindir, host onaysızlar dahil hepsini görür
func (s *PhotoService) ListEventPhotos(eventID string, approvedOnly bool, offset, limit int) ([]models.Photo, int64, error) {
	return s.photoRepo.GetByEventID(eventID, approvedOnly, offset, limit)
}

// ModeratePhoto host'un caption/onay güncellemesi
func (s *PhotoService) ModeratePhoto(eventID, photoID, hostID string, patch models.PhotoPatch) (*models.Photo, error) {
	if err := s.checkOwnership(eventID, hostID); err != nil {
		return nil, err
	}

	photo, err := s.getEventPhoto(eventID, photoID)
	if err != nil {
		return nil, err
	}

	photo.ApplyPatch(patch)

	if err := s.photoRepo.Update(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) DeletePhoto(ctx context.Context, eventID, photoID, hostID string) error {
	if err := s.checkOwnership(eventID, hostID); err != nil {
		return err
	}

	photo, err := s.getEventPhoto(eventID, photoID)
	if err != nil {
		return err
	}

	s.deleteAssets(ctx, photo)
	return s.photoRepo.Delete(photo.ID)
}

// BulkDelete seçilen fotoğrafları tek seferde siler, silinen sayıyı döner
func (s *PhotoService) BulkDelete(ctx context.Context, eventID, hostID string, photoIDs []string) (int64, error) {
	if err := s.checkOwnership(eventID, hostID); err != nil {
		return 0, err
	}

	photos, err := s.photoRepo.GetByIDsForEvent(eventID, photoIDs)
	if err != nil {
		return 0, err
	}
	for i := range photos {
		s.deleteAssets(ctx, &photos[i])
	}

	return s.photoRepo.DeleteByIDsForEvent(eventID, photoIDs)
}

func (s *PhotoService) GetPhotosForExport(eventID string, photoIDs []string) ([]models.Photo, error) {
	if len(photoIDs) > 0 {
		return s.photoRepo.GetByIDsForEvent(eventID, photoIDs)
	}
	return s.photoRepo.GetApprovedByEventID(eventID)
}

func (s *PhotoService) checkOwnership(eventID, hostID string) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.HostID != hostID {
		return ErrUnauthorized
	}
	return nil
}

func (s *PhotoService) getEventPhoto(eventID, photoID string) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	if photo.EventID != eventID {
		return nil, ErrPhotoNotFound
	}
	return photo, nil
}

// CDN ve arşiv temizliği best-effort yapılır
func (s *PhotoService) deleteAssets(ctx context.Context, photo *models.Photo) {
	if err := s.imgStorage.Delete(ctx, photo.ImageID); err != nil {
		s.logger.Warn("failed to delete photo from CDN", zap.String("photo_id", photo.ID), zap.Error(err))
	}
	if err := s.archive.Delete(ctx, photo.ArchiveKey); err != nil {
		s.logger.Warn("failed to delete photo from archive", zap.String("photo_id", photo.ID), zap.Error(err))
	}
}
