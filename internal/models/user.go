package models

import (
	"time"
)

type User struct {
	ID                 string    `json:"uid" gorm:"primaryKey"` // Firebase UID
	Email              string    `json:"email" gorm:"unique;not null"`
	Name               string    `json:"name"`
	IsAdmin            bool      `json:"is_admin" gorm:"not null;default:false"`
	IsSuspended        bool      `json:"is_suspended" gorm:"not null;default:false"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	AvatarThumbnailURL string    `json:"avatar_thumbnail_url,omitempty"`
	AvatarFileSize     string    `json:"-"` // bayt sayısı, metin olarak saklanır
	AvatarImageID      string    `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserPatch bir kullanıcıda güncellenebilir alanları tanımlar
type UserPatch struct {
	Name        *string
	IsSuspended *bool
}

// ApplyPatch patch'te dolu olan alanları kullanıcıya uygular
func (u *User) ApplyPatch(p UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.IsSuspended != nil {
		u.IsSuspended = *p.IsSuspended
	}
}

type UserResponse struct {
	UID                string `json:"uid"`
	Email              string `json:"email"`
	EmailVerified      bool   `json:"email_verified"`
	Name               string `json:"name,omitempty"`
	AvatarURL          string `json:"avatar_url,omitempty"`
	AvatarThumbnailURL string `json:"avatar_thumbnail_url,omitempty"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}
