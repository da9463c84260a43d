package storage

import (
	"context"
	"io"
)

// ImageUpload CDN'e yüklenen bir görselin sonucu
type ImageUpload struct {
	URL          string
	ThumbnailURL string
	PublicID     string
}

type ImageService interface {
	Upload(ctx context.Context, reader io.Reader, folder string) (*ImageUpload, error)
	Delete(ctx context.Context, publicID string) error
}

// ArchiveService orijinal dosyaların saklandığı nesne deposu (ZIP export kaynağı)
type ArchiveService interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
