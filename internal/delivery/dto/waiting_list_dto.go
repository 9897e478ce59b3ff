package dto

import "time"

type WaitingListResponse struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	ScheduleID     uint       `json:"schedule_id"`
	RegisteredDate *time.Time `json:"registered_date"`
	OrderNumber    int        `json:"order_number"`
	Status         string     `json:"status"`
	PolyName       string     `json:"poly_name"`
	UserName       string     `json:"user_name"`
	Email          string     `json:"email"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
