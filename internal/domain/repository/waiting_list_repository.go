package repository

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"

	"gorm.io/gorm"
)

type WaitingListRepository interface {
	FindByHealthAgency(db *gorm.DB, healthAgencyID uint) ([]entity.WaitingListView, error)
}
