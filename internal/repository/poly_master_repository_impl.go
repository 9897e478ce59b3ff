package repository

import (
	"errors"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	domainRepo "github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"

	"gorm.io/gorm"
)

type polyMasterRepository struct{}

func NewPolyMasterRepository() domainRepo.PolyMasterRepository {
	return &polyMasterRepository{}
}

func (r *polyMasterRepository) Create(db *gorm.DB, polyMaster *entity.PolyMaster) error {
	return db.Create(polyMaster).Error
}

func (r *polyMasterRepository) FindByID(db *gorm.DB, id uint) (*entity.PolyMaster, error) {
	var polyMaster entity.PolyMaster
	err := db.Where("id = ?", id).First(&polyMaster).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &polyMaster, nil
}

func (r *polyMasterRepository) FindAll(db *gorm.DB) ([]entity.PolyMaster, error) {
	var polyMasters []entity.PolyMaster
	if err := db.Order("name").Find(&polyMasters).Error; err != nil {
		return nil, err
	}
	return polyMasters, nil
}

func (r *polyMasterRepository) Update(db *gorm.DB, polyMaster *entity.PolyMaster) error {
	return db.Save(polyMaster).Error
}

func (r *polyMasterRepository) Delete(db *gorm.DB, id uint) (bool, error) {
	result := db.Where("id = ?", id).Delete(&entity.PolyMaster{})
	return result.RowsAffected > 0, result.Error
}
