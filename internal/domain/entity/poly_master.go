package entity

import "time"

// PolyMaster is a polyclinic category such as "Cardiology".
type PolyMaster struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Polyclinics []Polyclinic `gorm:"foreignKey:PolyMasterID" json:"polyclinics,omitempty"`
}

func (PolyMaster) TableName() string {
	return "poly_masters"
}
