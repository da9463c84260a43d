package repository

import (
	"github.com/photolog-app/photolog-backend/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) GetByID(id string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.First(&photo, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetByEventID etkinliğin fotoğraflarını sayfalı döner.
// approvedOnly true ise sadece onaylı fotoğraflar gelir (ziyaretçi galerisi).
func (r *PhotoRepository) GetByEventID(eventID string, approvedOnly bool, offset, limit int) ([]models.Photo, int64, error) {
	query := r.db.Model(&models.Photo{}).Where("event_id = ?", eventID)
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var photos []models.Photo
	err := query.Order("uploaded_at DESC").Offset(offset).Limit(limit).Find(&photos).Error
	if err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

// GetByIDsForEvent toplu silme/indirme için etkinliğe ait fotoğrafları getirir
func (r *PhotoRepository) GetByIDsForEvent(eventID string, ids []string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("event_id = ? AND id IN ?", eventID, ids).Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) GetApprovedByEventID(eventID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("event_id = ? AND approved = ?", eventID, true).Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) Update(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

func (r *PhotoRepository) Delete(id string) error {
	return r.db.Delete(&models.Photo{}, "id = ?", id).Error
}

func (r *PhotoRepository) DeleteByIDsForEvent(eventID string, ids []string) (int64, error) {
	result := r.db.Where("event_id = ? AND id IN ?", eventID, ids).Delete(&models.Photo{})
	return result.RowsAffected, result.Error
}

func (r *PhotoRepository) DeleteByEventID(eventID string) error {
	return r.db.Where("event_id = ?", eventID).Delete(&models.Photo{}).Error
}

func (r *PhotoRepository) CountByEventID(eventID string, approvedOnly bool) (int64, error) {
	query := r.db.Model(&models.Photo{}).Where("event_id = ?", eventID)
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *PhotoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Count(&count).Error
	return count, err
}

// Recent tüm etkinliklerdeki son yüklemeleri host bilgisiyle döner (admin akışı)
func (r *PhotoRepository) Recent(offset, limit int) ([]models.Photo, int64, error) {
	var photos []models.Photo
	var total int64

	if err := r.db.Model(&models.Photo{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Event").Preload("Event.Host").
		Order("uploaded_at DESC").
		Offset(offset).Limit(limit).
		Find(&photos).Error
	if err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

// FileSizesByUploader kota hesabı için boyut kolonlarını tek sorguda döner;
// değerlerin sayıya çevrilmesi çağırana aittir
func (r *PhotoRepository) FileSizesByUploader(userID string) ([]string, error) {
	var sizes []string
	err := r.db.Model(&models.Photo{}).
		Where("uploaded_by = ?", userID).
		Pluck("file_size", &sizes).Error
	return sizes, err
}

// FileSizes tüm fotoğraf boyut kolonlarını döner (admin istatistiği)
func (r *PhotoRepository) FileSizes() ([]string, error) {
	var sizes []string
	err := r.db.Model(&models.Photo{}).Pluck("file_size", &sizes).Error
	return sizes, err
}
