package repository

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uint) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindAll(db *gorm.DB) ([]entity.User, error)
	FindByRole(db *gorm.DB, role string) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdatePassword(db *gorm.DB, id uint, hashedPassword string) error
	UpdateProfileImage(db *gorm.DB, id uint, path *string) error
	Delete(db *gorm.DB, id uint) (bool, error)
	ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error)
	ExistsByResidenceNumber(db *gorm.DB, residenceNumber string, excludeID uint) (bool, error)
}
