package dto

type ScheduleResponse struct {
	ID           uint   `json:"id"`
	PolyclinicID uint   `json:"polyclinic_id"`
	Day          string `json:"day"`
	TimeOpen     string `json:"time_open"`
	TimeClose    string `json:"time_close"`
}

type PolyclinicResponse struct {
	ID             uint                `json:"id"`
	HealthAgencyID uint                `json:"health_agency_id"`
	PolyMasterID   uint                `json:"poly_master_id"`
	PolyMaster     *PolyMasterResponse `json:"poly_master"`
}

type PolyclinicAdminResponse struct {
	ID             uint               `json:"id"`
	HealthAgencyID uint               `json:"health_agency_id"`
	PolyMasterID   uint               `json:"poly_master_id"`
	PolyMaster     *PolyMasterSummary `json:"poly_master"`
	Schedules      []ScheduleResponse `json:"schedules"`
}
