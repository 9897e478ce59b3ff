package entity

import "time"

// HealthAgency is a clinic or hospital that hosts polyclinics.
type HealthAgency struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Address    string    `gorm:"type:text;not null" json:"address"`
	Image      *string   `gorm:"type:varchar(255)" json:"image"`
	CallCenter string    `gorm:"type:varchar(50);not null" json:"call_center"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Polyclinics []Polyclinic `gorm:"foreignKey:HealthAgencyID" json:"polyclinics,omitempty"`
}

func (HealthAgency) TableName() string {
	return "health_agencies"
}
