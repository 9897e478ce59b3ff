package converter

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
)

func PolyclinicsToResponses(polyclinics []entity.Polyclinic) []dto.PolyclinicResponse {
	responses := make([]dto.PolyclinicResponse, len(polyclinics))
	for i, p := range polyclinics {
		responses[i] = dto.PolyclinicResponse{
			ID:             p.ID,
			HealthAgencyID: p.HealthAgencyID,
			PolyMasterID:   p.PolyMasterID,
			PolyMaster:     PolyMasterToResponse(p.PolyMaster),
		}
	}
	return responses
}

func PolyclinicsToAdminResponses(polyclinics []entity.Polyclinic) []dto.PolyclinicAdminResponse {
	responses := make([]dto.PolyclinicAdminResponse, len(polyclinics))
	for i, p := range polyclinics {
		response := dto.PolyclinicAdminResponse{
			ID:             p.ID,
			HealthAgencyID: p.HealthAgencyID,
			PolyMasterID:   p.PolyMasterID,
			Schedules:      make([]dto.ScheduleResponse, len(p.Schedules)),
		}
		if p.PolyMaster != nil {
			response.PolyMaster = &dto.PolyMasterSummary{ID: p.PolyMaster.ID, Name: p.PolyMaster.Name}
		}
		for j, s := range p.Schedules {
			response.Schedules[j] = dto.ScheduleResponse{
				ID:           s.ID,
				PolyclinicID: s.PolyclinicID,
				Day:          s.Day,
				TimeOpen:     s.TimeOpen,
				TimeClose:    s.TimeClose,
			}
		}
		responses[i] = response
	}
	return responses
}
