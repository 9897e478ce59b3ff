package repository

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	domainRepo "github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"

	"gorm.io/gorm"
)

type polyclinicRepository struct{}

func NewPolyclinicRepository() domainRepo.PolyclinicRepository {
	return &polyclinicRepository{}
}

func (r *polyclinicRepository) FindByHealthAgency(db *gorm.DB, healthAgencyID uint) ([]entity.Polyclinic, error) {
	var polyclinics []entity.Polyclinic
	err := db.Preload("PolyMaster").
		Where("health_agency_id = ?", healthAgencyID).
		Order("id").
		Find(&polyclinics).Error
	if err != nil {
		return nil, err
	}
	return polyclinics, nil
}

// FindByHealthAgencyWithSchedules loads only id and name of each poly master.
func (r *polyclinicRepository) FindByHealthAgencyWithSchedules(db *gorm.DB, healthAgencyID uint) ([]entity.Polyclinic, error) {
	var polyclinics []entity.Polyclinic
	err := db.Preload("PolyMaster", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	}).
		Preload("Schedules").
		Where("health_agency_id = ?", healthAgencyID).
		Order("id").
		Find(&polyclinics).Error
	if err != nil {
		return nil, err
	}
	return polyclinics, nil
}
