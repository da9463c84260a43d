package email

import (
	"bytes"
	"html/template"
	"path/filepath"
	"time"

	"github.com/photolog-app/photolog-backend/internal/config"
	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	frontendURL  string
	templatesDir string
	logger       *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:       resend.NewClient(cfg.Resend.APIKey),
		from:         cfg.Resend.FromAddress,
		fromName:     cfg.Resend.FromName,
		frontendURL:  cfg.FrontendURL,
		templatesDir: "pkg/email/templates",
		logger:       logger,
	}
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	templateData := map[string]interface{}{
		"Name":        name,
		"Email":       email,
		"FrontendURL": s.frontendURL,
		"Year":        time.Now().Year(),
	}

	html, err := s.parseTemplate("welcome.html", templateData)
	if err != nil {
		s.logger.Error("failed to render welcome template", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to PhotoLog!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send welcome email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("welcome email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) SendExportReadyEmail(email, eventName, downloadLink string, photoCount int) error {
	templateData := map[string]interface{}{
		"EventName":    eventName,
		"DownloadLink": downloadLink,
		"PhotoCount":   photoCount,
		"Email":        email,
		"Year":         time.Now().Year(),
	}

	html, err := s.parseTemplate("export-ready.html", templateData)
	if err != nil {
		s.logger.Error("failed to render export template", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Your photo export from '" + eventName + "' is ready!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send export email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("export email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) SendPasswordResetEmail(email, resetLink string) error {
	templateData := map[string]interface{}{
		"ResetLink": resetLink,
		"Email":     email,
		"Year":      time.Now().Year(),
	}

	html, err := s.parseTemplate("password-reset.html", templateData)
	if err != nil {
		s.logger.Error("failed to render password reset template", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Reset your PhotoLog password",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send password reset email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("password reset email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) SendVerificationEmail(email, verifyLink string) error {
	templateData := map[string]interface{}{
		"VerifyLink": verifyLink,
		"Email":      email,
		"Year":       time.Now().Year(),
	}

	html, err := s.parseTemplate("verify-email.html", templateData)
	if err != nil {
		s.logger.Error("failed to render verification template", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Verify your PhotoLog email address",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send verification email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("verification email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesDir, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
