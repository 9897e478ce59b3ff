package dto

import (
	"mime/multipart"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"
)

// Request DTOs

type HealthAgencyRequest struct {
	Name       string
	Address    string
	CallCenter string
	Email      string
	Image      *multipart.FileHeader
}

func (r *HealthAgencyRequest) Fields() validator.Fields {
	fields := validator.Fields{
		"name":        r.Name,
		"address":     r.Address,
		"call_center": r.CallCenter,
		"email":       r.Email,
	}
	if r.Image != nil {
		fields["image"] = r.Image
	}
	return fields
}

// Response DTOs

type HealthAgencyResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Image      *string   `json:"image"`
	CallCenter string    `json:"call_center"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
