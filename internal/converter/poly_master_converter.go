package converter

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
)

func PolyMasterToResponse(polyMaster *entity.PolyMaster) *dto.PolyMasterResponse {
	if polyMaster == nil {
		return nil
	}

	return &dto.PolyMasterResponse{
		ID:        polyMaster.ID,
		Name:      polyMaster.Name,
		CreatedAt: polyMaster.CreatedAt,
		UpdatedAt: polyMaster.UpdatedAt,
	}
}

func PolyMastersToResponses(polyMasters []entity.PolyMaster) []dto.PolyMasterResponse {
	responses := make([]dto.PolyMasterResponse, len(polyMasters))
	for i := range polyMasters {
		responses[i] = *PolyMasterToResponse(&polyMasters[i])
	}
	return responses
}
