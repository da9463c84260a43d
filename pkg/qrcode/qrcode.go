package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService etkinlik paylaşım linkleri için QR kod üretir
type QRService struct {
	baseURL string // örn: "https://photolog.app/e/"
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// GenerateQRCode verilen etkinlik slug'ı için PNG formatında QR kod döner
func (s *QRService) GenerateQRCode(eventSlug string, size int) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", s.baseURL, eventSlug)

	png, err := qrcode.Encode(fullURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
