package handler

import (
	"net/http"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http/middleware"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/usecase"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"
)

const (
	msgUserSelected         = "Data user selected"
	msgAdminSelected        = "Data user admin selected"
	msgUserCreated          = "User has successfully created"
	msgUserCreateFailed     = "User can not be created"
	msgUserUpdated          = "User data updated successfully!"
	msgUserUpdateFailed     = "User data can not be updated"
	msgUserDeleted          = "User has successfully deleted"
	msgUserDeleteFailed     = "User can not be deleted"
	msgPasswordUpdated      = "Password data updated successfully!"
	msgPasswordUpdateFailed = "Password data can not be updated"
	msgImageUpdated         = "Profile image has updated successfully!"
	msgImageUpdateFailed    = "Profile image can not be updated"
	msgResidenceNumber      = "Success get the residence number"
	msgNoResidenceNumber    = "User doesn't have residence number"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
}

func NewUserHandler(userUsecase usecase.UserUsecase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

func userRequest(f *form) *dto.UserRequest {
	return &dto.UserRequest{
		Name:            f.Get("name"),
		Email:           f.Get("email"),
		Password:        f.Get("password"),
		Phone:           f.Get("phone"),
		Role:            f.Get("role"),
		ResidenceNumber: f.Get("residence_number"),
		HealthAgency:    f.Get("health_agency"),
	}
}

func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, msgUserSelected, users)
}

// Admins lists users with the Admin role and their health agency.
func (h *UserHandler) Admins(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetAdmins(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get admin users")
		return
	}

	response.Success(w, http.StatusOK, msgAdminSelected, users)
}

func (h *UserHandler) Store(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userUsecase.Create(r.Context(), userRequest(f))
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		switch err {
		case usecase.ErrEmailAlreadyExists, usecase.ErrResidenceNumberExists:
			response.Error(w, http.StatusConflict, msgUserCreateFailed, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, msgUserCreateFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgUserCreated, user)
}

func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user")
		}
		return
	}

	response.Success(w, http.StatusOK, msgUserSelected, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	f, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userUsecase.Update(r.Context(), principal, id, userRequest(f))
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		switch err {
		case usecase.ErrUserForbidden:
			response.Forbidden(w, msgUserUpdateFailed)
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrEmailAlreadyExists, usecase.ErrResidenceNumberExists:
			response.Error(w, http.StatusConflict, msgUserUpdateFailed, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, msgUserUpdateFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgUserUpdated, user)
}

func (h *UserHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.userUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.Error(w, http.StatusInternalServerError, msgUserDeleteFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgUserDeleted, nil)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	f, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req := &dto.ChangePasswordRequest{
		Current: f.Get("current"),
		New:     f.Get("new"),
		Confirm: f.Get("confirm"),
	}
	if err := h.userUsecase.ChangePassword(r.Context(), principal, id, req); err != nil {
		if writeValidationError(w, err) {
			return
		}
		switch err {
		case usecase.ErrUserForbidden:
			response.Forbidden(w, msgPasswordUpdateFailed)
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.Error(w, http.StatusInternalServerError, msgPasswordUpdateFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgPasswordUpdated, nil)
}

func (h *UserHandler) ChangeImage(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	f, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userUsecase.ChangeImage(r.Context(), principal, id, &dto.ChangeImageRequest{Image: f.File("image")})
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		switch err {
		case usecase.ErrUserForbidden:
			response.Forbidden(w, msgImageUpdateFailed)
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.Error(w, http.StatusInternalServerError, msgImageUpdateFailed, nil)
		}
		return
	}

	response.Success(w, http.StatusOK, msgImageUpdated, user)
}

// ResidenceNumber returns the residence number of the caller. Callers
// without one get a 404 envelope whose data is 0.
func (h *UserHandler) ResidenceNumber(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	number, err := h.userUsecase.GetResidenceNumber(r.Context(), principal)
	if err != nil {
		switch err {
		case usecase.ErrNoResidenceNumber:
			response.JSON(w, http.StatusNotFound, response.Response{Success: false, Message: msgNoResidenceNumber, Data: 0})
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get residence number")
		}
		return
	}

	response.Success(w, http.StatusOK, msgResidenceNumber, number)
}
