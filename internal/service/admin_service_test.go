package service

import (
	"context"
	"testing"

	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/pkg/qrcode"
	"github.com/stretchr/testify/require"
)

func newAdminService(t *testing.T) (*AdminService, testRepos) {
	t.Helper()
	repos := newTestRepos(setupTestDB(t))
	img := &fakeImageService{}
	archive := newFakeArchive()
	quota := NewQuotaService(repos.users, repos.events, repos.photos, testLogger())
	eventService := NewEventService(
		repos.events, repos.photos, img, archive, quota,
		qrcode.NewQRService("https://app.test"),
		"https://app.test", DefaultTestQuota, testLogger(),
	)
	svc := NewAdminService(repos.users, repos.events, repos.photos, eventService, quota, testLogger())
	return svc, repos
}

func TestOverviewAggregatesCounts(t *testing.T) {
	svc, repos := newAdminService(t)

	createTestUser(t, repos, "uid-1", "a@example.com")
	createTestUser(t, repos, "uid-2", "b@example.com")
	event := createTestEvent(t, repos, "uid-1")
	createTestPhoto(t, repos, event.ID, "uid-1", "1073741824") // 1 GiB

	stats, err := svc.Overview()
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalUsers)
	require.EqualValues(t, 1, stats.TotalEvents)
	require.EqualValues(t, 1, stats.TotalPhotos)
	require.InDelta(t, 1.0, stats.TotalStorageGB, 0.001)
}

func TestSetUserSuspendedRoundTrip(t *testing.T) {
	svc, repos := newAdminService(t)
	createTestUser(t, repos, "uid-1", "a@example.com")

	user, err := svc.SetUserSuspended("uid-1", true)
	require.NoError(t, err)
	require.True(t, user.IsSuspended)

	user, err = svc.SetUserSuspended("uid-1", false)
	require.NoError(t, err)
	require.False(t, user.IsSuspended)

	_, err = svc.SetUserSuspended("missing", true)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateEventStatusPartialPatch(t *testing.T) {
	svc, repos := newAdminService(t)
	createTestUser(t, repos, "uid-1", "a@example.com")
	event := createTestEvent(t, repos, "uid-1")

	inactive := false
	updated, err := svc.UpdateEventStatus(event.ID, models.UpdateEventStatusRequest{IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.False(t, updated.IsArchived)
}

func TestForceDeleteEventIgnoresOwnership(t *testing.T) {
	svc, repos := newAdminService(t)
	createTestUser(t, repos, "uid-1", "a@example.com")
	event := createTestEvent(t, repos, "uid-1")
	createTestPhoto(t, repos, event.ID, "uid-1", "100")

	require.NoError(t, svc.ForceDeleteEvent(context.Background(), event.ID))

	_, err := repos.events.GetByID(event.ID)
	require.Error(t, err)

	require.ErrorIs(t, svc.ForceDeleteEvent(context.Background(), "missing"), ErrEventNotFound)
}

func TestListUsersIncludesEventCounts(t *testing.T) {
	svc, repos := newAdminService(t)
	createTestUser(t, repos, "uid-1", "a@example.com")
	createTestEvent(t, repos, "uid-1")
	createTestEvent(t, repos, "uid-1")

	users, total, err := svc.ListUsers(0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	require.EqualValues(t, 2, users[0].EventCount)
}

func TestRecentUploadsCarriesHostEmail(t *testing.T) {
	svc, repos := newAdminService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")
	createTestPhoto(t, repos, event.ID, "uid-1", "100")

	uploads, total, err := svc.RecentUploads(0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, uploads, 1)
	require.Equal(t, "host@example.com", uploads[0].HostEmail)
	require.EqualValues(t, 100, uploads[0].FileSize)
}

func TestStartSystemExportReturnsJobID(t *testing.T) {
	svc, _ := newAdminService(t)

	resp := svc.StartSystemExport()
	require.NotEmpty(t, resp.ExportJobID)
	require.Contains(t, resp.ExportJobID, "system-export-")
}
