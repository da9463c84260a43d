package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage fotoğrafların servis edildiği CDN istemcisi
type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cloudinaryURL string) (*CloudinaryStorage, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL is not set")
	}

	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	return &CloudinaryStorage{client: client}, nil
}

// Upload görseli CDN'e yükler, tam boy ve thumbnail URL'lerini döner
func (s *CloudinaryStorage) Upload(ctx context.Context, reader io.Reader, folder string) (*ImageUpload, error) {
	overwrite := true
	resp, err := s.client.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:    folder,
		Overwrite: &overwrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image: %s", resp.Error.Message)
	}

	thumbnailURL, err := s.thumbnailURL(resp.PublicID)
	if err != nil {
		return nil, err
	}

	return &ImageUpload{
		URL:          resp.SecureURL,
		ThumbnailURL: thumbnailURL,
		PublicID:     resp.PublicID,
	}, nil
}

// Delete görseli CDN'den public ID ile siler
func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}

// 400x400 kırpılmış thumbnail URL'i üretir
func (s *CloudinaryStorage) thumbnailURL(publicID string) (string, error) {
	img, err := s.client.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build thumbnail URL: %w", err)
	}
	img.Transformation = "c_fill,w_400,h_400"

	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build thumbnail URL: %w", err)
	}
	return url, nil
}
