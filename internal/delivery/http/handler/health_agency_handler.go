package handler

import (
	"net/http"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/usecase"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"
)

const (
	msgHealthAgencySelected = "Data health agency selected"
	msgPolyclinicSelected   = "Data polyclinic selected"
	msgAddSuccess           = "Add data successfully!"
	msgAddFailed            = "Add data failed!"
	msgUpdateSuccess        = "Update data successfully!"
	msgUpdateFailed         = "Update data failed!"
	msgDeleteSuccess        = "Delete data successfully!"
	msgDeleteFailed         = "Delete data failed!"
)

type HealthAgencyHandler struct {
	healthAgencyUsecase usecase.HealthAgencyUsecase
}

func NewHealthAgencyHandler(healthAgencyUsecase usecase.HealthAgencyUsecase) *HealthAgencyHandler {
	return &HealthAgencyHandler{
		healthAgencyUsecase: healthAgencyUsecase,
	}
}

func healthAgencyRequest(f *form) *dto.HealthAgencyRequest {
	return &dto.HealthAgencyRequest{
		Name:       f.Get("name"),
		Address:    f.Get("address"),
		CallCenter: f.Get("call_center"),
		Email:      f.Get("email"),
		Image:      f.File("image"),
	}
}

// Index handles listing health agencies
// @Summary List health agencies
// @Tags Health Agency
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /health-agencies [get]
func (h *HealthAgencyHandler) Index(w http.ResponseWriter, r *http.Request) {
	agencies, err := h.healthAgencyUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get health agencies")
		return
	}

	response.Success(w, http.StatusOK, msgHealthAgencySelected, agencies)
}

// Store handles creating a health agency from a multipart form
// @Summary Create health agency
// @Tags Health Agency
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /health-agencies [post]
func (h *HealthAgencyHandler) Store(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	agency, err := h.healthAgencyUsecase.Create(r.Context(), healthAgencyRequest(f))
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		switch err {
		case usecase.ErrHealthAgencyEmailExists:
			response.Error(w, http.StatusConflict, msgAddFailed, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, msgAddFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgAddSuccess, agency)
}

// Show handles fetching one health agency
// @Summary Get health agency
// @Tags Health Agency
// @Security BearerAuth
// @Produce json
// @Param id path int true "Health agency ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /health-agencies/{id} [get]
func (h *HealthAgencyHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid health agency ID")
		return
	}

	agency, err := h.healthAgencyUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrHealthAgencyNotFound:
			response.NotFound(w, "Health agency not found")
		default:
			response.InternalServerError(w, "Failed to get health agency")
		}
		return
	}

	response.Success(w, http.StatusOK, msgHealthAgencySelected, agency)
}

// Update replaces the fields of a health agency. The stored image is kept
// unless a new one is uploaded.
// @Summary Update health agency
// @Tags Health Agency
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Health agency ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /health-agencies/{id} [put]
func (h *HealthAgencyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid health agency ID")
		return
	}

	f, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	agency, err := h.healthAgencyUsecase.Update(r.Context(), id, healthAgencyRequest(f))
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		switch err {
		case usecase.ErrHealthAgencyNotFound:
			response.NotFound(w, "Health agency not found")
		case usecase.ErrHealthAgencyEmailExists:
			response.Error(w, http.StatusConflict, msgUpdateFailed, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, msgUpdateFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgUpdateSuccess, agency)
}

// Destroy handles deleting a health agency and its image
// @Summary Delete health agency
// @Tags Health Agency
// @Security BearerAuth
// @Produce json
// @Param id path int true "Health agency ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /health-agencies/{id} [delete]
func (h *HealthAgencyHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid health agency ID")
		return
	}

	if err := h.healthAgencyUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrHealthAgencyNotFound:
			response.NotFound(w, "Health agency not found")
		case usecase.ErrHealthAgencyInUse:
			response.Error(w, http.StatusConflict, msgDeleteFailed, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, msgDeleteFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgDeleteSuccess, nil)
}

// Polyclinics lists the polyclinics of an agency with their poly master.
// @Summary List polyclinics of a health agency
// @Tags Health Agency
// @Security BearerAuth
// @Produce json
// @Param id path int true "Health agency ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /health-agencies/{id}/polyclinics [get]
func (h *HealthAgencyHandler) Polyclinics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid health agency ID")
		return
	}

	polyclinics, err := h.healthAgencyUsecase.GetPolyclinics(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrHealthAgencyNotFound:
			response.NotFound(w, "Health agency not found")
		default:
			response.InternalServerError(w, "Failed to get polyclinics")
		}
		return
	}

	response.Success(w, http.StatusOK, msgPolyclinicSelected, polyclinics)
}

// AdminPolyclinics lists polyclinics together with their schedules.
// @Summary List polyclinics with schedules
// @Tags Health Agency
// @Security BearerAuth
// @Produce json
// @Param id path int true "Health agency ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /health-agencies/{id}/polyclinics/admin [get]
func (h *HealthAgencyHandler) AdminPolyclinics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid health agency ID")
		return
	}

	polyclinics, err := h.healthAgencyUsecase.GetPolyclinicsWithSchedules(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrHealthAgencyNotFound:
			response.NotFound(w, "Health agency not found")
		default:
			response.InternalServerError(w, "Failed to get polyclinics")
		}
		return
	}

	response.Success(w, http.StatusOK, msgPolyclinicSelected, polyclinics)
}

// Search matches agencies by their name or by the name of a poly master
// they offer. An empty q yields null data.
// @Summary Search health agencies
// @Tags Health Agency
// @Security BearerAuth
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} response.Response
// @Router /health-agencies/search [get]
func (h *HealthAgencyHandler) Search(w http.ResponseWriter, r *http.Request) {
	agencies, err := h.healthAgencyUsecase.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.InternalServerError(w, "Failed to search health agencies")
		return
	}

	response.Success(w, http.StatusOK, msgHealthAgencySelected, agencies)
}
