package entity

import "time"

type WaitingList struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	ScheduleID     uint       `gorm:"not null;index" json:"schedule_id"`
	RegisteredDate *time.Time `gorm:"type:date" json:"registered_date"`
	OrderNumber    int        `json:"order_number"`
	Status         string     `gorm:"type:varchar(20)" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedule *Schedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
}

func (WaitingList) TableName() string {
	return "waiting_lists"
}

// WaitingListView is a waiting list row joined with its patient and polyclinic.
type WaitingListView struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	ScheduleID     uint       `json:"schedule_id"`
	RegisteredDate *time.Time `json:"registered_date"`
	OrderNumber    int        `json:"order_number"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PolyName       string     `json:"poly_name"`
	UserName       string     `json:"user_name"`
	Email          string     `json:"email"`
}
