package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/repository"
	"github.com/photolog-app/photolog-backend/pkg/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB her test için izole bir in-memory sqlite açar.
// TranslateError production'daki gibi açıktır: unique ihlalleri
// gorm.ErrDuplicatedKey olarak görünür.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// sqlite eşzamanlı yazmada kilitlenir, bağlantıları serileştiriyoruz
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Event{}, &models.Photo{}))
	return db
}

type testRepos struct {
	users  *repository.UserRepository
	events *repository.EventRepository
	photos *repository.PhotoRepository
}

func newTestRepos(db *gorm.DB) testRepos {
	return testRepos{
		users:  repository.NewUserRepository(db),
		events: repository.NewEventRepository(db),
		photos: repository.NewPhotoRepository(db),
	}
}

// fakeImageService CDN'i bellekte taklit eder
type fakeImageService struct {
	mu      sync.Mutex
	uploads int
	deleted []string
	failing bool
}

func (f *fakeImageService) Upload(_ context.Context, reader io.Reader, folder string) (*storage.ImageUpload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, fmt.Errorf("cdn unavailable")
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return nil, err
	}
	f.uploads++
	publicID := fmt.Sprintf("%s/img-%d", folder, f.uploads)
	return &storage.ImageUpload{
		URL:          "https://cdn.test/" + publicID,
		ThumbnailURL: "https://cdn.test/thumb/" + publicID,
		PublicID:     publicID,
	}, nil
}

func (f *fakeImageService) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return nil
}

// fakeArchive nesne deposunu bellekte taklit eder
type fakeArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{objects: map[string][]byte{}}
}

func (f *fakeArchive) Upload(_ context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeArchive) Get(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeArchive) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeArchive) PublicURL(key string) string {
	return "https://archive.test/" + key
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func newReader(s string) io.Reader {
	return strings.NewReader(s)
}

// makeImageFile gerçek bir multipart isteğinden *multipart.FileHeader üretir
func makeImageFile(t *testing.T, field, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, name))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File[field]
	require.Len(t, files, 1)
	return files[0]
}

func createTestUser(t *testing.T, repos testRepos, id, email string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Email: email, Name: "Test User"}
	require.NoError(t, repos.users.Create(user))
	return user
}

func createTestEvent(t *testing.T, repos testRepos, hostID string) *models.Event {
	t.Helper()
	event := &models.Event{
		ID:       uuid.NewString(),
		HostID:   hostID,
		Name:     "Test Event",
		IsActive: true,
	}
	_, err := repos.events.Create(event)
	require.NoError(t, err)
	return event
}

func createTestPhoto(t *testing.T, repos testRepos, eventID, uploadedBy, size string) *models.Photo {
	t.Helper()
	photo := &models.Photo{
		ID:         uuid.NewString(),
		EventID:    eventID,
		URL:        "https://cdn.test/photo",
		UploadedBy: uploadedBy,
		FileSize:   size,
		ImageID:    "img-" + uuid.NewString(),
		ArchiveKey: "events/" + eventID + "/" + uuid.NewString(),
	}
	require.NoError(t, repos.photos.Create(photo))
	return photo
}
