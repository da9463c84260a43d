package models

import (
	"time"
)

type Event struct {
	ID                string     `json:"id" gorm:"primaryKey"`
	HostID            string     `json:"host_id" gorm:"not null;index"`
	Host              *User      `json:"-" gorm:"foreignKey:HostID;constraint:OnDelete:RESTRICT"`
	Name              string     `json:"name" gorm:"not null"`
	Description       string     `json:"description"`
	Date              *time.Time `json:"date"`
	Password          string     `json:"-"` // bcrypt hash, boşsa şifresiz etkinlik
	CoverImageURL     string     `json:"cover_image_url,omitempty"`
	CoverThumbnailURL string     `json:"cover_thumbnail_url,omitempty"`
	CoverFileSize     string     `json:"-"`
	CoverImageID      string     `json:"-"`
	IsActive          bool       `json:"is_active" gorm:"not null;default:true"`
	IsArchived        bool       `json:"is_archived" gorm:"not null;default:false"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasPassword etkinliğin şifre korumalı olup olmadığını döner
func (e *Event) HasPassword() bool {
	return e.Password != ""
}

type EventCreateRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Password    string     `json:"password"`
}

// EventPatch bir etkinlikte sahibin güncelleyebileceği alanları tanımlar.
// Password alanı düz metin gelir, kaydedilmeden önce hashlenir.
type EventPatch struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Password    *string    `json:"password"`
	IsActive    *bool      `json:"is_active"`
	IsArchived  *bool      `json:"is_archived"`
}

// ApplyPatch patch'te dolu olan alanları etkinliğe uygular. Password
// burada uygulanmaz; hashleme servis katmanında yapılır.
func (e *Event) ApplyPatch(p EventPatch) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = p.Date
	}
	if p.IsActive != nil {
		e.IsActive = *p.IsActive
	}
	if p.IsArchived != nil {
		e.IsArchived = *p.IsArchived
	}
}

type EventPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type BulkEventActionRequest struct {
	Action   string   `json:"action" validate:"required,oneof=archive activate deactivate"`
	EventIDs []string `json:"event_ids" validate:"required,min=1"`
}

type EventResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Date              *time.Time `json:"date,omitempty"`
	CoverImageURL     string     `json:"cover_image_url,omitempty"`
	CoverThumbnailURL string     `json:"cover_thumbnail_url,omitempty"`
	HasPassword       bool       `json:"has_password"`
	IsActive          bool       `json:"is_active"`
	IsArchived        bool       `json:"is_archived"`
	PhotoCount        int64      `json:"photo_count"`
	ShareLink         string     `json:"share_link"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type EventListResponse struct {
	Events   []EventResponse `json:"events"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	HasMore  bool            `json:"has_more"`
}
