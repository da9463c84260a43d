package service

import (
	"context"
	"testing"

	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, maxUploadBytes int64) (*UserService, testRepos, *fakeImageService) {
	t.Helper()
	repos := newTestRepos(setupTestDB(t))
	img := &fakeImageService{}
	quota := NewQuotaService(repos.users, repos.events, repos.photos, testLogger())
	return NewUserService(repos.users, img, quota, maxUploadBytes, testLogger()), repos, img
}

func TestUpdateProfileIgnoresSuspensionField(t *testing.T) {
	svc, repos, _ := newUserService(t, DefaultTestQuota)
	createTestUser(t, repos, "uid-1", "host@example.com")

	name := "New Name"
	suspended := true
	user, err := svc.UpdateProfile("uid-1", models.UserPatch{
		Name:        &name,
		IsSuspended: &suspended,
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", user.Name)
	// Askıya alma sadece admin yolundan değişir
	require.False(t, user.IsSuspended)
}

func TestUploadAvatarStoresSizeAndReplacesOld(t *testing.T) {
	svc, repos, img := newUserService(t, DefaultTestQuota)
	createTestUser(t, repos, "uid-1", "host@example.com")

	first := makeImageFile(t, "avatar", "a.png", "image/png", make([]byte, 500))
	user, err := svc.UploadAvatar(context.Background(), "uid-1", first)
	require.NoError(t, err)
	require.Equal(t, "500", user.AvatarFileSize)
	oldID := user.AvatarImageID

	second := makeImageFile(t, "avatar", "b.png", "image/png", make([]byte, 700))
	user, err = svc.UploadAvatar(context.Background(), "uid-1", second)
	require.NoError(t, err)
	require.Equal(t, "700", user.AvatarFileSize)
	require.Contains(t, img.deleted, oldID)
}

func TestUploadAvatarQuotaExceeded(t *testing.T) {
	svc, repos, _ := newUserService(t, 1000)
	createTestUser(t, repos, "uid-1", "host@example.com")
	event := createTestEvent(t, repos, "uid-1")
	createTestPhoto(t, repos, event.ID, "uid-1", "950")

	file := makeImageFile(t, "avatar", "a.png", "image/png", make([]byte, 100))
	_, err := svc.UploadAvatar(context.Background(), "uid-1", file)
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestDeleteAvatarClearsFields(t *testing.T) {
	svc, repos, img := newUserService(t, DefaultTestQuota)
	createTestUser(t, repos, "uid-1", "host@example.com")

	file := makeImageFile(t, "avatar", "a.png", "image/png", make([]byte, 500))
	user, err := svc.UploadAvatar(context.Background(), "uid-1", file)
	require.NoError(t, err)
	imageID := user.AvatarImageID

	user, err = svc.DeleteAvatar(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Empty(t, user.AvatarURL)
	require.Empty(t, user.AvatarFileSize)
	require.Contains(t, img.deleted, imageID)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := newUserService(t, DefaultTestQuota)

	_, err := svc.GetByID("missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}
