package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminService yönetici panelinin okuma ve müdahale işlemleri
type AdminService struct {
	userRepo     *repository.UserRepository
	eventRepo    *repository.EventRepository
	photoRepo    *repository.PhotoRepository
	eventService *EventService
	quota        *QuotaService
	logger       *zap.Logger
}

func NewAdminService(
	userRepo *repository.UserRepository,
	eventRepo *repository.EventRepository,
	photoRepo *repository.PhotoRepository,
	eventService *EventService,
	quota *QuotaService,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		photoRepo:    photoRepo,
		eventService: eventService,
		quota:        quota,
		logger:       logger,
	}
}

func (s *AdminService) Overview() (*models.OverviewStats, error) {
	events, err := s.eventRepo.Count()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.Count()
	if err != nil {
		return nil, err
	}

	stored := s.quota.TotalStoredBytes()

	return &models.OverviewStats{
		TotalEvents:    events,
		TotalUsers:     users,
		TotalPhotos:    photos,
		TotalStorageGB: float64(stored) / (1 << 30),
	}, nil
}

func (s *AdminService) ListEvents(offset, limit int) ([]models.AdminEventResponse, int64, error) {
	events, total, err := s.eventRepo.List(offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]models.AdminEventResponse, 0, len(events))
	for i := range events {
		resp, err := s.buildEventResponse(&events[i])
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}
	return responses, total, nil
}

func (s *AdminService) InspectEvent(eventID string) (*models.AdminEventResponse, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.Host == nil {
		if host, err := s.userRepo.GetByID(event.HostID); err == nil {
			event.Host = host
		}
	}

	resp, err := s.buildEventResponse(event)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateEventStatus bir etkinliğin yayın durumunu yönetici tarafından
// değiştirir; sahiplik kontrolü yapılmaz
func (s *AdminService) UpdateEventStatus(eventID string, req models.UpdateEventStatusRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	event.ApplyPatch(models.EventPatch{
		IsActive:   req.IsActive,
		IsArchived: req.IsArchived,
	})

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *AdminService) ForceDeleteEvent(ctx context.Context, eventID string) error {
	s.logger.Info("admin force-deleting event", zap.String("event_id", eventID))
	return s.eventService.AdminDeleteEvent(ctx, eventID)
}

func (s *AdminService) ListUsers(offset, limit int) ([]models.AdminUserResponse, int64, error) {
	users, total, err := s.userRepo.List(offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]models.AdminUserResponse, 0, len(users))
	for i := range users {
		resp, err := s.buildUserResponse(&users[i])
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}
	return responses, total, nil
}

func (s *AdminService) InspectUser(userID string) (*models.AdminUserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp, err := s.buildUserResponse(user)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetUserSuspended askıya alınan kullanıcı giriş yapamaz; hesap ve
// içerik silinmez
func (s *AdminService) SetUserSuspended(userID string, suspended bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.ApplyPatch(models.UserPatch{IsSuspended: &suspended})

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.logger.Info("user suspension updated",
		zap.String("user_id", userID),
		zap.Bool("suspended", suspended))
	return user, nil
}

func (s *AdminService) RecentUploads(offset, limit int) ([]models.RecentUpload, int64, error) {
	photos, total, err := s.photoRepo.Recent(offset, limit)
	if err != nil {
		return nil, 0, err
	}

	uploads := make([]models.RecentUpload, 0, len(photos))
	for i := range photos {
		upload := models.RecentUpload{PhotoResponse: models.NewPhotoResponse(&photos[i])}
		if photos[i].Event != nil && photos[i].Event.Host != nil {
			upload.HostEmail = photos[i].Event.Host.Email
		}
		uploads = append(uploads, upload)
	}
	return uploads, total, nil
}

// StartSystemExport tüm sistem verisinin dışa aktarımı için iş kaydı açar.
// Paketleme henüz devreye alınmadı, iş kimliği takip için döner.
func (s *AdminService) StartSystemExport() *models.SystemExportResponse {
	jobID := "system-export-" + uuid.NewString()
	s.logger.Info("system export requested", zap.String("job_id", jobID))
	return &models.SystemExportResponse{ExportJobID: jobID}
}

func (s *AdminService) buildEventResponse(event *models.Event) (models.AdminEventResponse, error) {
	base, err := s.eventService.BuildResponse(event, false)
	if err != nil {
		return models.AdminEventResponse{}, err
	}

	resp := models.AdminEventResponse{EventResponse: base}
	if event.Host != nil {
		resp.Host = &models.UserResponse{
			UID:                event.Host.ID,
			Email:              event.Host.Email,
			Name:               event.Host.Name,
			AvatarURL:          event.Host.AvatarURL,
			AvatarThumbnailURL: event.Host.AvatarThumbnailURL,
		}
	}
	return resp, nil
}

func (s *AdminService) buildUserResponse(user *models.User) (models.AdminUserResponse, error) {
	eventCount, err := s.eventRepo.CountByHost(user.ID)
	if err != nil {
		return models.AdminUserResponse{}, err
	}

	return models.AdminUserResponse{
		UserResponse: models.UserResponse{
			UID:                user.ID,
			Email:              user.Email,
			Name:               user.Name,
			AvatarURL:          user.AvatarURL,
			AvatarThumbnailURL: user.AvatarThumbnailURL,
		},
		EventCount:  eventCount,
		IsAdmin:     user.IsAdmin,
		IsSuspended: user.IsSuspended,
	}, nil
}
