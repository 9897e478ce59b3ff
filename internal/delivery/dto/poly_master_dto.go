package dto

import (
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"
)

type PolyMasterRequest struct {
	Name string `json:"name"`
}

func (r *PolyMasterRequest) Fields() validator.Fields {
	return validator.Fields{"name": r.Name}
}

type PolyMasterResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PolyMasterSummary is the id and name projection used in admin listings.
type PolyMasterSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
