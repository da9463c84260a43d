package repository

import (
	"github.com/photolog-app/photolog-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmailOrID insert yarışını kaybeden tarafın yeniden okuma sorgusu:
// aynı email ya da aynı ID ile kazanan satırı bulur
func (r *UserRepository) GetByEmailOrID(email, id string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? OR id = ?", email, id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) List(offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// AvatarFileSizes tüm kullanıcıların avatar boyut kolonlarını döner (admin istatistiği)
func (r *UserRepository) AvatarFileSizes() ([]string, error) {
	var sizes []string
	err := r.db.Model(&models.User{}).Where("avatar_file_size <> ''").Pluck("avatar_file_size", &sizes).Error
	return sizes, err
}
