package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newQuotaService(t *testing.T) (*QuotaService, testRepos) {
	t.Helper()
	repos := newTestRepos(setupTestDB(t))
	return NewQuotaService(repos.users, repos.events, repos.photos, testLogger()), repos
}

func TestTotalUploadBytesEmpty(t *testing.T) {
	svc, repos := newQuotaService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")

	require.EqualValues(t, 0, svc.TotalUploadBytes("uid-1"))
}

func TestTotalUploadBytesUnknownUser(t *testing.T) {
	svc, _ := newQuotaService(t)

	// Kullanıcı yoksa bile hata değil, 0 döner
	require.EqualValues(t, 0, svc.TotalUploadBytes("nobody"))
}

func TestTotalUploadBytesSkipsMalformedSizes(t *testing.T) {
	svc, repos := newQuotaService(t)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")

	createTestPhoto(t, repos, event.ID, "uid-1", "1024")
	createTestPhoto(t, repos, event.ID, "uid-1", "bad")
	createTestPhoto(t, repos, event.ID, "uid-1", "2048")
	createTestPhoto(t, repos, event.ID, "uid-1", "-500")

	require.EqualValues(t, 3072, svc.TotalUploadBytes("uid-1"))
}

func TestTotalUploadBytesSumsAllCategories(t *testing.T) {
	svc, repos := newQuotaService(t)

	user := createTestUser(t, repos, "uid-1", "host@example.com")
	user.AvatarFileSize = "100000"
	require.NoError(t, repos.users.Update(user))

	event := createTestEvent(t, repos, "uid-1")
	event.CoverFileSize = "200000"
	require.NoError(t, repos.events.Update(event))

	createTestPhoto(t, repos, event.ID, "uid-1", "500000")

	require.EqualValues(t, 800000, svc.TotalUploadBytes("uid-1"))
}

func TestTotalUploadBytesIsPerUser(t *testing.T) {
	svc, repos := newQuotaService(t)

	createTestUser(t, repos, "uid-1", "a@example.com")
	createTestUser(t, repos, "uid-2", "b@example.com")
	eventA := createTestEvent(t, repos, "uid-1")
	eventB := createTestEvent(t, repos, "uid-2")

	createTestPhoto(t, repos, eventA.ID, "uid-1", "1000")
	createTestPhoto(t, repos, eventB.ID, "uid-2", "9000")

	require.EqualValues(t, 1000, svc.TotalUploadBytes("uid-1"))
	require.EqualValues(t, 9000, svc.TotalUploadBytes("uid-2"))
}

func TestTotalStoredBytes(t *testing.T) {
	svc, repos := newQuotaService(t)

	user := createTestUser(t, repos, "uid-1", "a@example.com")
	user.AvatarFileSize = "111"
	require.NoError(t, repos.users.Update(user))

	createTestUser(t, repos, "uid-2", "b@example.com")
	eventA := createTestEvent(t, repos, "uid-1")
	eventB := createTestEvent(t, repos, "uid-2")
	eventB.CoverFileSize = "222"
	require.NoError(t, repos.events.Update(eventB))

	createTestPhoto(t, repos, eventA.ID, "uid-1", "1000")
	createTestPhoto(t, repos, eventB.ID, "uid-2", "2000")

	require.EqualValues(t, 3333, svc.TotalStoredBytes())
}

func TestParseSize(t *testing.T) {
	require.EqualValues(t, 42, parseSize("42"))
	require.EqualValues(t, 42, parseSize(" 42 "))
	require.EqualValues(t, 0, parseSize(""))
	require.EqualValues(t, 0, parseSize("abc"))
	require.EqualValues(t, 0, parseSize("-1"))
	require.EqualValues(t, 0, parseSize("3.14"))
}
