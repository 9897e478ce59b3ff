package entity

import "time"

// Polyclinic is a PolyMaster offered by one HealthAgency.
type Polyclinic struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	HealthAgencyID uint      `gorm:"not null;index" json:"health_agency_id"`
	PolyMasterID   uint      `gorm:"not null;index" json:"poly_master_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	HealthAgency *HealthAgency `gorm:"foreignKey:HealthAgencyID" json:"health_agency,omitempty"`
	PolyMaster   *PolyMaster   `gorm:"foreignKey:PolyMasterID" json:"poly_master,omitempty"`
	Schedules    []Schedule    `gorm:"foreignKey:PolyclinicID" json:"schedules,omitempty"`
}

func (Polyclinic) TableName() string {
	return "polyclinics"
}
