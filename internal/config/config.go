package config

import (
	"os"
	"strconv"
	"strings"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type ResendConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type Config struct {
	Env                     string
	Port                    string
	DatabaseURL             string
	FirebaseCredentialsFile string
	CloudinaryURL           string
	R2                      R2Config
	Resend                  ResendConfig
	AdminEmails             []string
	MaxUploadBytesPerUser   int64 // host başına kota tavanı
	PublicBaseURL           string
	FrontendURL             string
	GallerySecret           string
	TurnstileSecret         string
}

// Host başına varsayılan kota: 1 GB
const DefaultMaxUploadBytesPerUser = 1 << 30

func LoadConfig() *Config {
	cfg := &Config{
		Env:                     getEnv("APP_ENV", "development"),
		Port:                    getEnv("PORT", "8080"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "firebase-credentials.json"),
		CloudinaryURL:           os.Getenv("CLOUDINARY_URL"),
		PublicBaseURL:           getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		FrontendURL:             getEnv("FRONTEND_URL", "http://localhost:5173"),
		GallerySecret:           os.Getenv("GALLERY_TOKEN_SECRET"),
		TurnstileSecret:         os.Getenv("CF_TURNSTILE_SECRET_KEY"),
	}

	// R2 config
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	// Resend config
	cfg.Resend.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Resend.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Resend.FromName = getEnv("EMAIL_FROM_NAME", "PhotoLog")

	// Admin email listesi (virgülle ayrılmış)
	for _, e := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, strings.ToLower(e))
		}
	}

	// Kota tavanı
	cfg.MaxUploadBytesPerUser = DefaultMaxUploadBytesPerUser
	if raw := os.Getenv("MAX_UPLOAD_BYTES_PER_USER"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytesPerUser = n
		}
	}

	return cfg
}

// IsAdminEmail email'in yapılandırılmış admin listesinde olup olmadığını döner
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(email)
	for _, a := range c.AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
