package dto

import (
	"mime/multipart"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"
)

// Request DTOs

// UserRequest keeps every value as sent so numeric rules can run on the raw text.
type UserRequest struct {
	Name            string
	Email           string
	Password        string
	Phone           string
	Role            string
	ResidenceNumber string
	HealthAgency    string
}

func (r *UserRequest) Fields() validator.Fields {
	return validator.Fields{
		"name":             r.Name,
		"email":            r.Email,
		"password":         r.Password,
		"phone":            r.Phone,
		"role":             r.Role,
		"residence_number": r.ResidenceNumber,
		"health_agency":    r.HealthAgency,
	}
}

type ChangePasswordRequest struct {
	Current string
	New     string
	Confirm string
}

func (r *ChangePasswordRequest) Fields() validator.Fields {
	return validator.Fields{
		"current": r.Current,
		"new":     r.New,
		"confirm": r.Confirm,
	}
}

type ChangeImageRequest struct {
	Image *multipart.FileHeader
}

func (r *ChangeImageRequest) Fields() validator.Fields {
	fields := validator.Fields{}
	if r.Image != nil {
		fields["image"] = r.Image
	}
	return fields
}

// Response DTOs

type UserResponse struct {
	ID              uint                  `json:"id"`
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	Role            string                `json:"role"`
	ResidenceNumber *string               `json:"residence_number"`
	HealthAgencyID  *uint                 `json:"health_agency_id"`
	ProfileImg      *string               `json:"profile_img"`
	HealthAgency    *HealthAgencyResponse `json:"health_agency,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}
