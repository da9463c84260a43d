package service

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrQuotaExceeded     = errors.New("upload quota exceeded for this account")
	ErrPasswordRequired  = errors.New("password required for this event")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrInvalidFileType   = errors.New("file must be an image")
	ErrFileTooLarge      = errors.New("file size exceeds maximum allowed size")
	ErrEmptyFile         = errors.New("file is empty")
)

// Tek bir fotoğraf yüklemesi için üst sınır (10MB)
const MaxPhotoFileSize = 10 * 1024 * 1024
