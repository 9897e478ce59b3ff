package repository

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	domainRepo "github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"

	"gorm.io/gorm"
)

type waitingListRepository struct{}

func NewWaitingListRepository() domainRepo.WaitingListRepository {
	return &waitingListRepository{}
}

// FindByHealthAgency returns the waiting list of every polyclinic owned by
// healthAgencyID, with the patient's name and email and the poly name.
func (r *waitingListRepository) FindByHealthAgency(db *gorm.DB, healthAgencyID uint) ([]entity.WaitingListView, error) {
	var rows []entity.WaitingListView
	err := db.Table("waiting_lists AS wa").
		Select("wa.*, pm.name AS poly_name, us.name AS user_name, us.email").
		Joins("JOIN users AS us ON us.id = wa.user_id").
		Joins("JOIN schedules AS sc ON sc.id = wa.schedule_id").
		Joins("JOIN polyclinics AS po ON po.id = sc.polyclinic_id").
		Joins("JOIN poly_masters AS pm ON pm.id = po.poly_master_id").
		Where("po.health_agency_id = ?", healthAgencyID).
		Order("wa.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
