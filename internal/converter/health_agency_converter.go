package converter

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
)

func HealthAgencyToResponse(agency *entity.HealthAgency) *dto.HealthAgencyResponse {
	if agency == nil {
		return nil
	}

	return &dto.HealthAgencyResponse{
		ID:         agency.ID,
		Name:       agency.Name,
		Address:    agency.Address,
		Image:      agency.Image,
		CallCenter: agency.CallCenter,
		Email:      agency.Email,
		CreatedAt:  agency.CreatedAt,
		UpdatedAt:  agency.UpdatedAt,
	}
}

// HealthAgenciesToResponses never returns nil so an empty result encodes as [].
func HealthAgenciesToResponses(agencies []entity.HealthAgency) []dto.HealthAgencyResponse {
	responses := make([]dto.HealthAgencyResponse, len(agencies))
	for i := range agencies {
		responses[i] = *HealthAgencyToResponse(&agencies[i])
	}
	return responses
}
