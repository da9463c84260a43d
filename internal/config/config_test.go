package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "8080", cfg.Port)
	require.EqualValues(t, DefaultMaxUploadBytesPerUser, cfg.MaxUploadBytesPerUser)
}

func TestMaxUploadBytesFromEnv(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES_PER_USER", "5000000")

	cfg := LoadConfig()
	require.EqualValues(t, 5000000, cfg.MaxUploadBytesPerUser)
}

func TestMaxUploadBytesIgnoresInvalid(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES_PER_USER", "not-a-number")

	cfg := LoadConfig()
	require.EqualValues(t, DefaultMaxUploadBytesPerUser, cfg.MaxUploadBytesPerUser)
}

func TestIsAdminEmail(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "Admin@Example.com, ops@example.com ,")

	cfg := LoadConfig()
	require.True(t, cfg.IsAdminEmail("admin@example.com"))
	require.True(t, cfg.IsAdminEmail("ADMIN@EXAMPLE.COM"))
	require.True(t, cfg.IsAdminEmail("ops@example.com"))
	require.False(t, cfg.IsAdminEmail("guest@example.com"))
	require.False(t, cfg.IsAdminEmail(""))
}
