package converter

import (
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
)

func WaitingListsToResponses(rows []entity.WaitingListView) []dto.WaitingListResponse {
	responses := make([]dto.WaitingListResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.WaitingListResponse{
			ID:             row.ID,
			UserID:         row.UserID,
			ScheduleID:     row.ScheduleID,
			RegisteredDate: row.RegisteredDate,
			OrderNumber:    row.OrderNumber,
			Status:         row.Status,
			PolyName:       row.PolyName,
			UserName:       row.UserName,
			Email:          row.Email,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		}
	}
	return responses
}
