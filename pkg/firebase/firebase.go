package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Identity doğrulanmış bir Firebase ID token'ından çıkarılan kimlik bilgisi
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
}

// Verifier Firebase ID token doğrulama handle'ı. Uygulama başlangıcında
// bir kez oluşturulur ve middleware'e referans olarak geçirilir.
type Verifier struct {
	client *auth.Client
}

// NewVerifier service account dosyasıyla Firebase Admin SDK'yı başlatır
func NewVerifier(ctx context.Context, credentialsFile string) (*Verifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &Verifier{client: client}, nil
}

// VerifyIDToken token'ı doğrular ve kimlik bilgisini döner
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid authentication token: %w", err)
	}

	identity := &Identity{UID: token.UID}

	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}

	return identity, nil
}

// PasswordResetLink şifre sıfırlama bağlantısı üretir; gönderim bize aittir
func (v *Verifier) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := v.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate password reset link: %w", err)
	}
	return link, nil
}

// EmailVerificationLink email doğrulama bağlantısı üretir
func (v *Verifier) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	link, err := v.client.EmailVerificationLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification link: %w", err)
	}
	return link, nil
}

// UpdatePassword kullanıcının şifresini sağlayıcı tarafında değiştirir
func (v *Verifier) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).Password(newPassword)
	if _, err := v.client.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// RevokeTokens kullanıcının tüm refresh token'larını geçersiz kılar (signout)
func (v *Verifier) RevokeTokens(ctx context.Context, uid string) error {
	if err := v.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}
