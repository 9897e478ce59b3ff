package repository

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PolyclinicRepository interface {
	FindByHealthAgency(db *gorm.DB, healthAgencyID uint) ([]entity.Polyclinic, error)
	FindByHealthAgencyWithSchedules(db *gorm.DB, healthAgencyID uint) ([]entity.Polyclinic, error)
}
