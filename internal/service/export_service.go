package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/pkg/email"
	"github.com/photolog-app/photolog-backend/pkg/storage"
	"go.uber.org/zap"
)

// ExportService etkinlik fotoğraflarını ZIP olarak paketler. İş arka planda
// çalışır, hazır olunca host'a indirme linki mail atılır.
type ExportService struct {
	photoService *PhotoService
	archive      storage.ArchiveService
	emailService *email.EmailService
	logger       *zap.Logger
}

func NewExportService(photoService *PhotoService, archive storage.ArchiveService, emailService *email.EmailService, logger *zap.Logger) *ExportService {
	return &ExportService{
		photoService: photoService,
		archive:      archive,
		emailService: emailService,
		logger:       logger,
	}
}

// StartEventExport iş kimliğini hemen döner, paketleme goroutine'de sürer.
// photoIDs boşsa onaylı tüm fotoğraflar dahil edilir.
func (s *ExportService) StartEventExport(event *models.Event, photoIDs []string, notifyEmail string) (string, error) {
	photos, err := s.photoService.GetPhotosForExport(event.ID, photoIDs)
	if err != nil {
		return "", err
	}

	jobID := "export-" + uuid.NewString()

	go s.runExport(jobID, event, photos, notifyEmail)

	return jobID, nil
}

func (s *ExportService) runExport(jobID string, event *models.Event, photos []models.Photo, notifyEmail string) {
	ctx := context.Background()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	packed := 0
	for i := range photos {
		if err := s.addPhoto(ctx, zw, &photos[i], i); err != nil {
			s.logger.Warn("photo skipped during export",
				zap.String("job_id", jobID),
				zap.String("photo_id", photos[i].ID),
				zap.Error(err))
			continue
		}
		packed++
	}

	if err := zw.Close(); err != nil {
		s.logger.Error("failed to finalize export archive", zap.String("job_id", jobID), zap.Error(err))
		return
	}

	key := fmt.Sprintf("exports/%s/%s.zip", event.ID, jobID)
	if err := s.archive.Upload(ctx, key, bytes.NewReader(buf.Bytes())); err != nil {
		s.logger.Error("failed to upload export archive", zap.String("job_id", jobID), zap.Error(err))
		return
	}

	downloadLink := s.archive.PublicURL(key)

	if notifyEmail != "" {
		if err := s.emailService.SendExportReadyEmail(notifyEmail, event.Name, downloadLink, packed); err != nil {
			s.logger.Warn("failed to send export ready email",
				zap.String("job_id", jobID),
				zap.String("email", notifyEmail),
				zap.Error(err))
		}
	}

	s.logger.Info("event export completed",
		zap.String("job_id", jobID),
		zap.String("event_id", event.ID),
		zap.Int("photo_count", packed))
}

func (s *ExportService) addPhoto(ctx context.Context, zw *zip.Writer, photo *models.Photo, index int) error {
	body, err := s.archive.Get(ctx, photo.ArchiveKey)
	if err != nil {
		return err
	}
	defer body.Close()

	ext := path.Ext(photo.ArchiveKey)
	if ext == "" {
		ext = ".jpg"
	}

	entry, err := zw.Create(fmt.Sprintf("photo-%03d-%s%s", index+1, photo.ID, ext))
	if err != nil {
		return err
	}

	_, err = io.Copy(entry, body)
	return err
}
