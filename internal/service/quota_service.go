package service

import (
	"strconv"
	"strings"

	"github.com/photolog-app/photolog-backend/internal/repository"
	"go.uber.org/zap"
)

// QuotaService bir host'un tükettiği toplam depolama alanını hesaplar.
// Boyut kolonları eski şemadan metin olarak gelir; çözümlenemeyen değerler
// hesabı bozmak yerine 0 sayılır.
type QuotaService struct {
	userRepo  *repository.UserRepository
	eventRepo *repository.EventRepository
	photoRepo *repository.PhotoRepository
	logger    *zap.Logger
}

func NewQuotaService(
	userRepo *repository.UserRepository,
	eventRepo *repository.EventRepository,
	photoRepo *repository.PhotoRepository,
	logger *zap.Logger,
) *QuotaService {
	return &QuotaService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		photoRepo: photoRepo,
		logger:    logger,
	}
}

// TotalUploadBytes kullanıcının yüklediği fotoğraflar, sahibi olduğu
// etkinliklerin kapak görselleri ve avatarının toplam boyutunu döner.
// Her kategori tek sorguyla okunur; hata kanalı yoktur, sorun çıkan
// kategori 0 katkı yapar.
func (s *QuotaService) TotalUploadBytes(userID string) int64 {
	var total int64

	photoSizes, err := s.photoRepo.FileSizesByUploader(userID)
	if err != nil {
		s.logger.Warn("quota: photo sizes query failed", zap.String("user_id", userID), zap.Error(err))
	}
	total += sumSizes(photoSizes)

	coverSizes, err := s.eventRepo.CoverFileSizesByHost(userID)
	if err != nil {
		s.logger.Warn("quota: cover sizes query failed", zap.String("user_id", userID), zap.Error(err))
	}
	total += sumSizes(coverSizes)

	user, err := s.userRepo.GetByID(userID)
	if err == nil {
		total += parseSize(user.AvatarFileSize)
	}

	return total
}

// TotalStoredBytes sistemdeki toplam depolama tüketimini döner (admin istatistiği)
func (s *QuotaService) TotalStoredBytes() int64 {
	var total int64

	if sizes, err := s.photoRepo.FileSizes(); err == nil {
		total += sumSizes(sizes)
	}
	if sizes, err := s.eventRepo.CoverFileSizes(); err == nil {
		total += sumSizes(sizes)
	}
	if sizes, err := s.userRepo.AvatarFileSizes(); err == nil {
		total += sumSizes(sizes)
	}

	return total
}

func sumSizes(sizes []string) int64 {
	var total int64
	for _, raw := range sizes {
		total += parseSize(raw)
	}
	return total
}

// parseSize metin boyut değerini bayta çevirir; boş, bozuk veya negatif
// değerler 0 sayılır
func parseSize(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
