package repository

import (
	"errors"
	"strings"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	domainRepo "github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"

	"gorm.io/gorm"
)

type healthAgencyRepository struct{}

func NewHealthAgencyRepository() domainRepo.HealthAgencyRepository {
	return &healthAgencyRepository{}
}

func (r *healthAgencyRepository) Create(db *gorm.DB, agency *entity.HealthAgency) error {
	return db.Create(agency).Error
}

func (r *healthAgencyRepository) FindByID(db *gorm.DB, id uint) (*entity.HealthAgency, error) {
	var agency entity.HealthAgency
	err := db.Where("id = ?", id).First(&agency).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &agency, nil
}

func (r *healthAgencyRepository) FindAll(db *gorm.DB) ([]entity.HealthAgency, error) {
	var agencies []entity.HealthAgency
	if err := db.Order("id").Find(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *healthAgencyRepository) Update(db *gorm.DB, agency *entity.HealthAgency) error {
	return db.Save(agency).Error
}

func (r *healthAgencyRepository) Delete(db *gorm.DB, id uint) (bool, error) {
	result := db.Where("id = ?", id).Delete(&entity.HealthAgency{})
	return result.RowsAffected > 0, result.Error
}

func (r *healthAgencyRepository) ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&entity.HealthAgency{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term literally. Postgres
// uses backslash as the default LIKE escape.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// SearchByName matches agencies whose name contains term, ignoring case.
func (r *healthAgencyRepository) SearchByName(db *gorm.DB, term string) ([]entity.HealthAgency, error) {
	var agencies []entity.HealthAgency
	err := db.Where("name ILIKE ?", containsPattern(term)).
		Order("id").
		Find(&agencies).Error
	if err != nil {
		return nil, err
	}
	return agencies, nil
}

// SearchByPolyMasterName matches agencies offering a polyclinic whose master
// category name contains term. Each agency appears once.
func (r *healthAgencyRepository) SearchByPolyMasterName(db *gorm.DB, term string) ([]entity.HealthAgency, error) {
	var agencies []entity.HealthAgency
	err := db.Distinct("health_agencies.*").
		Joins("JOIN polyclinics ON polyclinics.health_agency_id = health_agencies.id").
		Joins("JOIN poly_masters ON poly_masters.id = polyclinics.poly_master_id").
		Where("poly_masters.name ILIKE ?", containsPattern(term)).
		Order("health_agencies.id").
		Find(&agencies).Error
	if err != nil {
		return nil, err
	}
	return agencies, nil
}
