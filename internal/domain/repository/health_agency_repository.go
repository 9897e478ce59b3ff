package repository

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"

	"gorm.io/gorm"
)

type HealthAgencyRepository interface {
	Create(db *gorm.DB, agency *entity.HealthAgency) error
	FindByID(db *gorm.DB, id uint) (*entity.HealthAgency, error)
	FindAll(db *gorm.DB) ([]entity.HealthAgency, error)
	Update(db *gorm.DB, agency *entity.HealthAgency) error
	Delete(db *gorm.DB, id uint) (bool, error)
	ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error)
	SearchByName(db *gorm.DB, term string) ([]entity.HealthAgency, error)
	SearchByPolyMasterName(db *gorm.DB, term string) ([]entity.HealthAgency, error)
}
