package entity

import "time"

type Schedule struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PolyclinicID uint      `gorm:"not null;index" json:"polyclinic_id"`
	Day          string    `gorm:"type:varchar(20)" json:"day"`
	TimeOpen     string    `gorm:"type:varchar(5)" json:"time_open"`
	TimeClose    string    `gorm:"type:varchar(5)" json:"time_close"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Polyclinic   *Polyclinic   `gorm:"foreignKey:PolyclinicID" json:"polyclinic,omitempty"`
	WaitingLists []WaitingList `gorm:"foreignKey:ScheduleID" json:"waiting_lists,omitempty"`
}

func (Schedule) TableName() string {
	return "schedules"
}
