package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/google/uuid"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/repository"
	"github.com/photolog-app/photolog-backend/pkg/bcrypt"
	"github.com/photolog-app/photolog-backend/pkg/qrcode"
	"github.com/photolog-app/photolog-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EventService struct {
	eventRepo      *repository.EventRepository
	photoRepo      *repository.PhotoRepository
	imgStorage     storage.ImageService
	archive        storage.ArchiveService
	quota          *QuotaService
	qrService      *qrcode.QRService
	publicBaseURL  string
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	photoRepo *repository.PhotoRepository,
	imgStorage storage.ImageService,
	archive storage.ArchiveService,
	quota *QuotaService,
	qrService *qrcode.QRService,
	publicBaseURL string,
	maxUploadBytes int64,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:      eventRepo,
		photoRepo:      photoRepo,
		imgStorage:     imgStorage,
		archive:        archive,
		quota:          quota,
		qrService:      qrService,
		publicBaseURL:  publicBaseURL,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (s *EventService) CreateEvent(hostID string, req models.EventCreateRequest) (*models.Event, error) {
	event := &models.Event{
		ID:          uuid.NewString(),
		HostID:      hostID,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		IsActive:    true,
	}

	// Şifre düz metin saklanmaz, her zaman hashlenir
	if req.Password != "" {
		hashed, err := bcrypt.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		event.Password = hashed
	}

	return s.eventRepo.Create(event)
}

// GetOwnedEvent etkinliği getirir ve sahiplik kontrolü yapar
func (s *EventService) GetOwnedEvent(eventID, hostID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.HostID != hostID {
		return nil, ErrUnauthorized
	}
	return event, nil
}

// GetPublicEvent ziyaretçi erişimi için aktif ve arşivlenmemiş etkinliği getirir
func (s *EventService) GetPublicEvent(slug string) (*models.Event, error) {
	event, err := s.eventRepo.GetPublicByID(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) ListEvents(hostID string, offset, limit int) ([]models.Event, int64, error) {
	return s.eventRepo.GetByHostID(hostID, offset, limit)
}

func (s *EventService) UpdateEvent(eventID, hostID string, patch models.EventPatch) (*models.Event, error) {
	event, err := s.GetOwnedEvent(eventID, hostID)
	if err != nil {
		return nil, err
	}

	event.ApplyPatch(patch)

	// Şifre değişikliği: boş string şifreyi kaldırır, dolu değer hashlenir
	if patch.Password != nil {
		if *patch.Password == "" {
			event.Password = ""
		} else {
			hashed, err := bcrypt.HashPassword(*patch.Password)
			if err != nil {
				return nil, err
			}
			event.Password = hashed
		}
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent etkinliği ve tüm fotoğraflarını siler. CDN ve arşiv
// temizliği best-effort yapılır; satırlar her durumda silinir.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, hostID string) error {
	event, err := s.GetOwnedEvent(eventID, hostID)
	if err != nil {
		return err
	}
	return s.deleteEventWithAssets(ctx, event)
}

// AdminDeleteEvent sahiplik kontrolü olmadan etkinliği ve tüm
// varlıklarını siler (yönetici yolu)
func (s *EventService) AdminDeleteEvent(ctx context.Context, eventID string) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return s.deleteEventWithAssets(ctx, event)
}

func (s *EventService) deleteEventWithAssets(ctx context.Context, event *models.Event) error {
	photos, _, err := s.photoRepo.GetByEventID(event.ID, false, 0, -1)
	if err != nil {
		return err
	}

	for _, photo := range photos {
		if err := s.imgStorage.Delete(ctx, photo.ImageID); err != nil {
			s.logger.Warn("failed to delete photo from CDN", zap.String("photo_id", photo.ID), zap.Error(err))
		}
		if err := s.archive.Delete(ctx, photo.ArchiveKey); err != nil {
			s.logger.Warn("failed to delete photo from archive", zap.String("photo_id", photo.ID), zap.Error(err))
		}
	}

	if event.CoverImageID != "" {
		if err := s.imgStorage.Delete(ctx, event.CoverImageID); err != nil {
			s.logger.Warn("failed to delete cover from CDN", zap.String("event_id", event.ID), zap.Error(err))
		}
	}

	if err := s.photoRepo.DeleteByEventID(event.ID); err != nil {
		return err
	}
	return s.eventRepo.Delete(event.ID)
}

// UploadCover kapak görselini CDN'e yükler; boyut host kotasına sayılır
func (s *EventService) UploadCover(ctx context.Context, eventID, hostID string, file *multipart.FileHeader) (*models.Event, error) {
	event, err := s.GetOwnedEvent(eventID, hostID)
	if err != nil {
		return nil, err
	}

	if err := validateImageFile(file); err != nil {
		return nil, err
	}

	if s.quota.TotalUploadBytes(hostID)+file.Size > s.maxUploadBytes {
		return nil, ErrQuotaExceeded
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	upload, err := s.imgStorage.Upload(ctx, src, "covers/"+eventID)
	if err != nil {
		return nil, fmt.Errorf("cover upload failed: %w", err)
	}

	if event.CoverImageID != "" {
		if err := s.imgStorage.Delete(ctx, event.CoverImageID); err != nil {
			s.logger.Warn("failed to delete old cover", zap.String("event_id", eventID), zap.Error(err))
		}
	}

	event.CoverImageURL = upload.URL
	event.CoverThumbnailURL = upload.ThumbnailURL
	event.CoverImageID = upload.PublicID
	event.CoverFileSize = strconv.FormatInt(file.Size, 10)

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// VerifyPassword ziyaretçinin girdiği şifreyi kontrol eder.
// Şifresiz etkinlikte her zaman başarılıdır.
func (s *EventService) VerifyPassword(event *models.Event, password string) error {
	if !event.HasPassword() {
		return nil
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if err := bcrypt.ComparePassword(event.Password, password); err != nil {
		return ErrIncorrectPassword
	}
	return nil
}

// BulkAction sahibine ait etkinliklerde toplu durum değişikliği yapar,
// güncellenen etkinlik sayısını döner
func (s *EventService) BulkAction(hostID string, req models.BulkEventActionRequest) (int, error) {
	events, err := s.eventRepo.GetByIDsForHost(hostID, req.EventIDs)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range events {
		switch req.Action {
		case "archive":
			events[i].IsArchived = true
		case "activate":
			events[i].IsActive = true
		case "deactivate":
			events[i].IsActive = false
		}
		if err := s.eventRepo.Update(&events[i]); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// QRCode etkinliğin paylaşım linki için PNG QR kod üretir
func (s *EventService) QRCode(eventID, hostID string, size int) ([]byte, error) {
	if _, err := s.GetOwnedEvent(eventID, hostID); err != nil {
		return nil, err
	}
	return s.qrService.GenerateQRCode(eventID, size)
}

// BuildResponse API yanıtı için etkinliği şekillendirir.
// approvedOnly ziyaretçi görünümünde sadece onaylı fotoğrafları sayar.
func (s *EventService) BuildResponse(event *models.Event, approvedOnly bool) (models.EventResponse, error) {
	count, err := s.photoRepo.CountByEventID(event.ID, approvedOnly)
	if err != nil {
		return models.EventResponse{}, err
	}

	return models.EventResponse{
		ID:                event.ID,
		Name:              event.Name,
		Description:       event.Description,
		Date:              event.Date,
		CoverImageURL:     event.CoverImageURL,
		CoverThumbnailURL: event.CoverThumbnailURL,
		HasPassword:       event.HasPassword(),
		IsActive:          event.IsActive,
		IsArchived:        event.IsArchived,
		PhotoCount:        count,
		ShareLink:         s.publicBaseURL + "/api/public/events/" + event.ID,
		CreatedAt:         event.CreatedAt,
		UpdatedAt:         event.UpdatedAt,
	}, nil
}
