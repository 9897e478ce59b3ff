package handler

import (
	"net/http"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/usecase"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"
)

const msgPolyMasterSelected = "Data poly master selected"

type PolyMasterHandler struct {
	polyMasterUsecase usecase.PolyMasterUsecase
}

func NewPolyMasterHandler(polyMasterUsecase usecase.PolyMasterUsecase) *PolyMasterHandler {
	return &PolyMasterHandler{
		polyMasterUsecase: polyMasterUsecase,
	}
}

func (h *PolyMasterHandler) Index(w http.ResponseWriter, r *http.Request) {
	polyMasters, err := h.polyMasterUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get poly masters")
		return
	}

	response.Success(w, http.StatusOK, msgPolyMasterSelected, polyMasters)
}

func (h *PolyMasterHandler) Store(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	polyMaster, err := h.polyMasterUsecase.Create(r.Context(), &dto.PolyMasterRequest{Name: f.Get("name")})
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		response.Error(w, http.StatusInternalServerError, msgAddFailed, nil)
		return
	}

	response.Success(w, http.StatusOK, msgAddSuccess, polyMaster)
}

func (h *PolyMasterHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid poly master ID")
		return
	}

	polyMaster, err := h.polyMasterUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPolyMasterNotFound:
			response.NotFound(w, "Poly master not found")
		default:
			response.InternalServerError(w, "Failed to get poly master")
		}
		return
	}

	response.Success(w, http.StatusOK, msgPolyMasterSelected, polyMaster)
}

func (h *PolyMasterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid poly master ID")
		return
	}

	f, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	polyMaster, err := h.polyMasterUsecase.Update(r.Context(), id, &dto.PolyMasterRequest{Name: f.Get("name")})
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		switch err {
		case usecase.ErrPolyMasterNotFound:
			response.NotFound(w, "Poly master not found")
		default:
			response.Error(w, http.StatusInternalServerError, msgUpdateFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgUpdateSuccess, polyMaster)
}

func (h *PolyMasterHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid poly master ID")
		return
	}

	if err := h.polyMasterUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrPolyMasterNotFound:
			response.NotFound(w, "Poly master not found")
		case usecase.ErrPolyMasterInUse:
			response.Error(w, http.StatusConflict, msgDeleteFailed, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, msgDeleteFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgDeleteSuccess, nil)
}
