package entity

import "time"

type User struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"type:varchar(150);not null" json:"name"`
	Email           string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"type:text;not null" json:"-"`
	Phone           string    `gorm:"type:varchar(13);not null" json:"phone"`
	Role            string    `gorm:"type:varchar(20);not null;index" json:"role"`
	ResidenceNumber *string   `gorm:"type:varchar(16);uniqueIndex" json:"residence_number"`
	HealthAgencyID  *uint     `gorm:"index" json:"health_agency_id"`
	ProfileImg      *string   `gorm:"type:varchar(255)" json:"profile_img"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	HealthAgency *HealthAgency `gorm:"foreignKey:HealthAgencyID" json:"health_agency,omitempty"`
}

func (User) TableName() string {
	return "users"
}
