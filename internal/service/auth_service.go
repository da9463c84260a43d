package service

import (
	"errors"
	"fmt"

	"github.com/photolog-app/photolog-backend/internal/models"
	"github.com/photolog-app/photolog-backend/internal/repository"
	"github.com/photolog-app/photolog-backend/pkg/email"
	"github.com/photolog-app/photolog-backend/pkg/firebase"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconcileIntent kimlik eşlemesinin hangi akıştan geldiğini belirtir
type ReconcileIntent string

const (
	IntentSignup ReconcileIntent = "signup"
	IntentSignin ReconcileIntent = "signin"
)

var (
	// ErrEmailRequired token'da email claim'i yoksa döner
	ErrEmailRequired = errors.New("email is required")
	// ErrDuplicateIdentity aynı email başka bir kimlikle kayıtlıysa signup'ta döner
	ErrDuplicateIdentity = errors.New("an account with this email already exists, please sign in instead")
	// ErrReconciliationFailed insert yarışı sonrası yeniden okuma da boş dönerse oluşur
	ErrReconciliationFailed = errors.New("failed to reconcile user identity")
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
	logger       *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// Reconcile doğrulanmış bir kimliği tam olarak bir yerel kullanıcı satırına
// eşler; satır yoksa oluşturur. Eşleme anahtarı email'dir: aynı gerçek kişi
// sağlayıcı değişikliği sonrası farklı bir UID ile gelebilir.
func (s *AuthService) Reconcile(identity *firebase.Identity, intent ReconcileIntent) (*models.User, error) {
	if identity.Email == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.userRepo.GetByEmail(identity.Email)
	if err == nil {
		return s.reconcileExisting(user, identity, intent)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	// Kayıt yok, yeni kullanıcı oluştur
	user = &models.User{
		ID:    identity.UID,
		Email: identity.Email,
		Name:  identity.Name,
	}

	err = s.userRepo.Create(user)
	if err == nil {
		return user, nil
	}

	// Unique ihlali: eşzamanlı bir istek aynı kullanıcıyı bizden önce
	// oluşturdu. Ham hatayı yaymak yerine kazanan satırı okuyup döneriz.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, rereadErr := s.userRepo.GetByEmailOrID(identity.Email, identity.UID)
		if rereadErr == nil {
			return existing, nil
		}
		// Yarış sonrası satır hâlâ yoksa bu beklenen bir durum değil
		s.logger.Error("reconcile re-read found no row after duplicate key",
			zap.String("uid", identity.UID),
			zap.String("email", identity.Email),
			zap.Error(rereadErr),
		)
		return nil, ErrReconciliationFailed
	}

	return nil, fmt.Errorf("user insert failed: %w", err)
}

func (s *AuthService) reconcileExisting(user *models.User, identity *firebase.Identity, intent ReconcileIntent) (*models.User, error) {
	if user.ID != identity.UID {
		if intent == IntentSignup {
			// Aynı email altında ikinci bir kimlik açmak signup'ta asla doğru değil
			return nil, ErrDuplicateIdentity
		}
		// Signin'de tolere edilir: mevcut hesap korunur, yalnızca operatörler
		// için kayda geçirilir
		s.logger.Warn("subject id mismatch for existing email, keeping stored identity",
			zap.String("email", identity.Email),
			zap.String("stored_uid", user.ID),
			zap.String("token_uid", identity.UID),
		)
	}

	// İsim değiştiyse güncelle
	if identity.Name != "" && identity.Name != user.Name {
		user.Name = identity.Name
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("user name update failed: %w", err)
		}
	}

	return user, nil
}

// Signup yeni host kaydı: reconcile signup niyetiyle çalışır,
// başarıda hoş geldin emaili arka planda gönderilir
func (s *AuthService) Signup(identity *firebase.Identity) (*models.User, error) {
	user, err := s.Reconcile(identity, IntentSignup)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			s.logger.Warn("welcome email failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	return user, nil
}

// Signin mevcut host girişi: kullanıcı yoksa oluşturulur
// (örn. sosyal sağlayıcı ile ilk giriş)
func (s *AuthService) Signin(identity *firebase.Identity) (*models.User, error) {
	return s.Reconcile(identity, IntentSignin)
}
