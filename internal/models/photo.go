package models

import (
	"strconv"
	"time"
)

type Photo struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	EventID          string    `json:"event_id" gorm:"not null;index"`
	Event            *Event    `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	URL              string    `json:"url" gorm:"not null"`
	ThumbnailURL     string    `json:"thumbnail_url,omitempty"`
	Caption          string    `json:"caption,omitempty"`
	Approved         bool      `json:"approved" gorm:"not null;default:false"`
	UploadedAt       time.Time `json:"uploaded_at"`
	UploadedBy       string    `json:"uploaded_by,omitempty" gorm:"index"` // kota takibi için host ID
	PublicUploaderID string    `json:"public_uploader_identifier,omitempty"`
	FileSize         string    `json:"-"` // metin olarak saklanır, bozuk değerler kotada 0 sayılır
	ImageID          string    `json:"-"` // CDN public ID
	ArchiveKey       string    `json:"-"` // orijinal dosyanın arşiv anahtarı
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PhotoPatch moderasyon sırasında güncellenebilir alanları tanımlar
type PhotoPatch struct {
	Caption  *string `json:"caption"`
	Approved *bool   `json:"approved"`
}

// ApplyPatch patch'te dolu olan alanları fotoğrafa uygular
func (p *Photo) ApplyPatch(patch PhotoPatch) {
	if patch.Caption != nil {
		p.Caption = *patch.Caption
	}
	if patch.Approved != nil {
		p.Approved = *patch.Approved
	}
}

type BulkDeletePhotosRequest struct {
	PhotoIDs []string `json:"photo_ids" validate:"required,min=1"`
}

type BulkDownloadPhotosRequest struct {
	PhotoIDs []string `json:"photo_ids" validate:"required,min=1"`
}

type PhotoResponse struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	Approved     bool      `json:"approved"`
	FileSize     int64     `json:"file_size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// NewPhotoResponse boyut kolonunu sayıya çevirerek API yanıtını şekillendirir
func NewPhotoResponse(p *Photo) PhotoResponse {
	size, _ := strconv.ParseInt(p.FileSize, 10, 64)
	if size < 0 {
		size = 0
	}
	return PhotoResponse{
		ID:           p.ID,
		EventID:      p.EventID,
		URL:          p.URL,
		ThumbnailURL: p.ThumbnailURL,
		Caption:      p.Caption,
		Approved:     p.Approved,
		FileSize:     size,
		UploadedAt:   p.UploadedAt,
	}
}

type PhotoListResponse struct {
	Photos   []PhotoResponse `json:"photos"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	HasMore  bool            `json:"has_more"`
}
