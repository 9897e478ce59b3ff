package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http/middleware"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/export"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/usecase"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"
)

const msgWaitingListSelected = "Data waiting list selected"

type WaitingListHandler struct {
	waitingListUsecase usecase.WaitingListUsecase
}

func NewWaitingListHandler(waitingListUsecase usecase.WaitingListUsecase) *WaitingListHandler {
	return &WaitingListHandler{
		waitingListUsecase: waitingListUsecase,
	}
}

// Index lists the waiting list of the caller's health agency.
// @Summary Waiting list of the caller's agency
// @Tags Waiting List
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /waiting-list [get]
func (h *WaitingListHandler) Index(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	rows, err := h.waitingListUsecase.GetByPrincipal(r.Context(), principal)
	if err != nil {
		switch err {
		case usecase.ErrNoHealthAgency:
			response.Forbidden(w, "User is not assigned to a health agency")
		default:
			response.InternalServerError(w, "Failed to get waiting list")
		}
		return
	}

	response.Success(w, http.StatusOK, msgWaitingListSelected, rows)
}

// Export downloads the same list as an xlsx workbook.
func (h *WaitingListHandler) Export(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	rows, err := h.waitingListUsecase.GetByPrincipal(r.Context(), principal)
	if err != nil {
		switch err {
		case usecase.ErrNoHealthAgency:
			response.Forbidden(w, "User is not assigned to a health agency")
		default:
			response.InternalServerError(w, "Failed to get waiting list")
		}
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWaitingList(&buf, rows); err != nil {
		response.InternalServerError(w, "Failed to export waiting list")
		return
	}

	filename := fmt.Sprintf("waiting-list-%d-%s.xlsx", *principal.HealthAgencyID, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", export.XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
