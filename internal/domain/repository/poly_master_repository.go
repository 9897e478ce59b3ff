package repository

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PolyMasterRepository interface {
	Create(db *gorm.DB, polyMaster *entity.PolyMaster) error
	FindByID(db *gorm.DB, id uint) (*entity.PolyMaster, error)
	FindAll(db *gorm.DB) ([]entity.PolyMaster, error)
	Update(db *gorm.DB, polyMaster *entity.PolyMaster) error
	Delete(db *gorm.DB, id uint) (bool, error)
}
