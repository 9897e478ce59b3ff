package repository

import (
	"errors"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	domainRepo "github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := db.Preload("HealthAgency").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	if err := db.Preload("HealthAgency").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByRole(db *gorm.DB, role string) ([]entity.User, error) {
	var users []entity.User
	err := db.Preload("HealthAgency").
		Where("role = ?", role).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update saves profile columns. Password and profile image have their own
// update paths.
func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Model(user).
		Select("name", "email", "phone", "role", "residence_number", "health_agency_id", "password", "updated_at").
		Updates(user).Error
}

func (r *userRepository) UpdatePassword(db *gorm.DB, id uint, hashedPassword string) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateProfileImage(db *gorm.DB, id uint, path *string) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Update("profile_img", path).Error
}

func (r *userRepository) Delete(db *gorm.DB, id uint) (bool, error) {
	result := db.Where("id = ?", id).Delete(&entity.User{})
	return result.RowsAffected > 0, result.Error
}

func (r *userRepository) ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error) {
	return r.exists(db, "email", email, excludeID)
}

func (r *userRepository) ExistsByResidenceNumber(db *gorm.DB, residenceNumber string, excludeID uint) (bool, error) {
	return r.exists(db, "residence_number", residenceNumber, excludeID)
}

func (r *userRepository) exists(db *gorm.DB, column, value string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&entity.User{}).Where(column+" = ?", value)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
