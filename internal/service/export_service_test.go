package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func newExportService(t *testing.T) (*ExportService, testRepos, *fakeArchive) {
	t.Helper()
	repos := newTestRepos(setupTestDB(t))
	img := &fakeImageService{}
	archive := newFakeArchive()
	quota := NewQuotaService(repos.users, repos.events, repos.photos, testLogger())
	photoService := NewPhotoService(repos.photos, repos.events, img, archive, quota, DefaultTestQuota, testLogger())
	svc := NewExportService(photoService, archive, nil, testLogger())
	return svc, repos, archive
}

func TestExportPacksApprovedPhotos(t *testing.T) {
	svc, repos, archive := newExportService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	p1 := createTestPhoto(t, repos, event.ID, "uid-1", "100")
	p1.Approved = true
	require.NoError(t, repos.photos.Update(p1))
	require.NoError(t, archive.Upload(context.Background(), p1.ArchiveKey, newReader("first photo")))

	// Onaysız fotoğraf pakete girmez
	createTestPhoto(t, repos, event.ID, "uid-1", "100")

	photos, err := repos.photos.GetApprovedByEventID(event.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)

	svc.runExport("export-test", event, photos, "")

	zipData := findExport(t, archive, event.ID)
	reader, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	require.NoError(t, err)
	require.Len(t, reader.File, 1)

	entry, err := reader.File[0].Open()
	require.NoError(t, err)
	content, err := io.ReadAll(entry)
	require.NoError(t, err)
	entry.Close()
	require.Equal(t, "first photo", string(content))
}

func TestExportSkipsMissingArchiveObjects(t *testing.T) {
	svc, repos, archive := newExportService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	stored := createTestPhoto(t, repos, event.ID, "uid-1", "100")
	require.NoError(t, archive.Upload(context.Background(), stored.ArchiveKey, newReader("kept")))
	missing := createTestPhoto(t, repos, event.ID, "uid-1", "100")

	svc.runExport("export-test", event, []models.Photo{*stored, *missing}, "")

	zipData := findExport(t, archive, event.ID)
	reader, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	require.NoError(t, err)
	// Arşivde olmayan fotoğraf atlanır, paket yine de üretilir
	require.Len(t, reader.File, 1)
}

func TestStartEventExportReturnsJobID(t *testing.T) {
	svc, repos, _ := newExportService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	jobID, err := svc.StartEventExport(event, nil, "")
	require.NoError(t, err)
	require.Contains(t, jobID, "export-")
}

func findExport(t *testing.T, archive *fakeArchive, eventID string) []byte {
	t.Helper()
	archive.mu.Lock()
	defer archive.mu.Unlock()
	for key, data := range archive.objects {
		if bytes.HasPrefix([]byte(key), []byte("exports/"+eventID+"/")) {
			return data
		}
	}
	t.Fatal("no export object found")
	return nil
}
