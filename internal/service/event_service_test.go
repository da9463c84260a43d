package service

import (
	"context"
	"testing"

	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/pkg/qrcode"
	"github.com/stretchr/testify/require"
)

func newEventService(t *testing.T) (*EventService, testRepos, *fakeImageService, *fakeArchive) {
	t.Helper()
	repos := newTestRepos(setupTestDB(t))
	img := &fakeImageService{}
	archive := newFakeArchive()
	quota := NewQuotaService(repos.users, repos.events, repos.photos, testLogger())
	svc := NewEventService(
		repos.events,
		repos.photos,
		img,
		archive,
		quota,
		qrcode.NewQRService("https://app.test"),
		"https://app.test",
		DefaultTestQuota,
		testLogger(),
	)
	return svc, repos, img, archive
}

const DefaultTestQuota = int64(1 << 20) // testlerde 1 MB tavan

func TestCreateEventHashesPassword(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")

	event, err := svc.CreateEvent("uid-1", models.EventCreateRequest{
		Name:     "Wedding",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.True(t, event.HasPassword())
	// Düz metin asla saklanmaz
	require.NotEqual(t, "secret123", event.Password)

	require.NoError(t, svc.VerifyPassword(event, "secret123"))
	require.ErrorIs(t, svc.VerifyPassword(event, "wrong"), ErrIncorrectPassword)
	require.ErrorIs(t, svc.VerifyPassword(event, ""), ErrPasswordRequired)
}

func TestVerifyPasswordOpenEvent(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")

	event, err := svc.CreateEvent("uid-1", models.EventCreateRequest{Name: "Picnic"})
	require.NoError(t, err)

	// Şifresiz etkinlikte her giriş geçerli
	require.NoError(t, svc.VerifyPassword(event, ""))
	require.NoError(t, svc.VerifyPassword(event, "anything"))
}

func TestGetOwnedEventChecksOwnership(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "a@example.com")
	createTestUser(t, repos, "uid-2", "b@example.com")
	event := createTestEvent(t, repos, "uid-1")

	_, err := svc.GetOwnedEvent(event.ID, "uid-2")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetOwnedEvent("missing", "uid-1")
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestUpdateEventPatch(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	name := "Renamed"
	archived := true
	updated, err := svc.UpdateEvent(event.ID, "uid-1", models.EventPatch{
		Name:       &name,
		IsArchived: &archived,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.True(t, updated.IsArchived)
	// Patch'te olmayan alanlar dokunulmadan kalır
	require.Equal(t, event.Description, updated.Description)
}

func TestUpdateEventPasswordLifecycle(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	pw := "newsecret"
	updated, err := svc.UpdateEvent(event.ID, "uid-1", models.EventPatch{Password: &pw})
	require.NoError(t, err)
	require.True(t, updated.HasPassword())
	require.NoError(t, svc.VerifyPassword(updated, "newsecret"))

	// Boş şifre korumayı kaldırır
	empty := ""
	updated, err = svc.UpdateEvent(event.ID, "uid-1", models.EventPatch{Password: &empty})
	require.NoError(t, err)
	require.False(t, updated.HasPassword())
}

func TestDeleteEventRemovesPhotosAndAssets(t *testing.T) {
	svc, repos, img, archive := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	photo := createTestPhoto(t, repos, event.ID, "uid-1", "1000")
	require.NoError(t, archive.Upload(context.Background(), photo.ArchiveKey, newReader("data")))

	require.NoError(t, svc.DeleteEvent(context.Background(), event.ID, "uid-1"))

	_, err := repos.events.GetByID(event.ID)
	require.Error(t, err)

	count, err := repos.photos.CountByEventID(event.ID, false)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	require.Contains(t, img.deleted, photo.ImageID)
	_, err = archive.Get(context.Background(), photo.ArchiveKey)
	require.Error(t, err)
}

func TestBulkActionOnlyTouchesOwnEvents(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "a@example.com")
	createTestUser(t, repos, "uid-2", "b@example.com")
	mine := createTestEvent(t, repos, "uid-1")
	theirs := createTestEvent(t, repos, "uid-2")

	updated, err := svc.BulkAction("uid-1", models.BulkEventActionRequest{
		Action:   "archive",
		EventIDs: []string{mine.ID, theirs.ID},
	})
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	stored, err := repos.events.GetByID(mine.ID)
	require.NoError(t, err)
	require.True(t, stored.IsArchived)

	other, err := repos.events.GetByID(theirs.ID)
	require.NoError(t, err)
	require.False(t, other.IsArchived)
}

func TestUploadCoverQuotaExceeded(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	// Kota neredeyse dolu
	createTestPhoto(t, repos, event.ID, "uid-1", "1048000")

	file := makeImageFile(t, "cover", "cover.jpg", "image/jpeg", make([]byte, 1000))
	_, err := svc.UploadCover(context.Background(), event.ID, "uid-1", file)
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestUploadCoverStoresSize(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	file := makeImageFile(t, "cover", "cover.jpg", "image/jpeg", make([]byte, 2048))
	updated, err := svc.UploadCover(context.Background(), event.ID, "uid-1", file)
	require.NoError(t, err)
	require.Equal(t, "2048", updated.CoverFileSize)
	require.NotEmpty(t, updated.CoverImageURL)
	require.NotEmpty(t, updated.CoverThumbnailURL)
}

func TestQRCodeGeneratesPNG(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	png, err := svc.QRCode(event.ID, "uid-1", 256)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG imzası
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestBuildResponseCountsApprovedOnly(t *testing.T) {
	svc, repos, _, _ := newEventService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	approved := createTestPhoto(t, repos, event.ID, "uid-1", "100")
	approved.Approved = true
	require.NoError(t, repos.photos.Update(approved))
	createTestPhoto(t, repos, event.ID, "uid-1", "100")

	resp, err := svc.BuildResponse(event, true)
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.PhotoCount)
	require.Contains(t, resp.ShareLink, event.ID)

	resp, err = svc.BuildResponse(event, false)
	require.NoError(t, err)
	require.EqualValues(t, 2, resp.PhotoCount)
}
