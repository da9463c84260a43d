package repository

import (
	"github.com/photolog-app/photolog-backend/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	result := r.db.Create(event)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

func (r *EventRepository) GetByID(id string) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetPublicByID ziyaretçi erişimine açık etkinliği getirir:
// aktif ve arşivlenmemiş olmalı
func (r *EventRepository) GetPublicByID(id string) (*models.Event, error) {
	var event models.Event
	err := r.db.Where("id = ? AND is_active = ? AND is_archived = ?", id, true, false).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetByHostID(hostID string, offset, limit int) ([]models.Event, int64, error) {
	var events []models.Event
	var total int64

	if err := r.db.Model(&models.Event{}).Where("host_id = ?", hostID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("host_id = ?", hostID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *EventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *EventRepository) Delete(id string) error {
	return r.db.Delete(&models.Event{}, "id = ?", id).Error
}

func (r *EventRepository) CountByHost(hostID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Where("host_id = ?", hostID).Count(&count).Error
	return count, err
}

func (r *EventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Count(&count).Error
	return count, err
}

// List tüm etkinlikleri host bilgisiyle birlikte döner (admin listesi)
func (r *EventRepository) List(offset, limit int) ([]models.Event, int64, error) {
	var events []models.Event
	var total int64

	if err := r.db.Model(&models.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Host").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// GetByIDsForHost toplu işlemler için sahibine ait etkinlikleri getirir
func (r *EventRepository) GetByIDsForHost(hostID string, ids []string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("host_id = ? AND id IN ?", hostID, ids).Find(&events).Error
	return events, err
}

// CoverFileSizesByHost kota hesabı için kapak görseli boyut kolonlarını
// tek sorguda döner
func (r *EventRepository) CoverFileSizesByHost(hostID string) ([]string, error) {
	var sizes []string
	err := r.db.Model(&models.Event{}).
		Where("host_id = ? AND cover_file_size <> ''", hostID).
		Pluck("cover_file_size", &sizes).Error
	return sizes, err
}

// CoverFileSizes tüm kapak boyut kolonlarını döner (admin istatistiği)
func (r *EventRepository) CoverFileSizes() ([]string, error) {
	var sizes []string
	err := r.db.Model(&models.Event{}).Where("cover_file_size <> ''").Pluck("cover_file_size", &sizes).Error
	return sizes, err
}
