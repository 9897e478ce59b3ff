package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    json.RawMessage `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

type fakeHealthAgencyUsecase struct {
	createFn func(req *dto.HealthAgencyRequest) (*dto.HealthAgencyResponse, error)
	getFn    func(id uint) (*dto.HealthAgencyResponse, error)
	updateFn func(id uint, req *dto.HealthAgencyRequest) (*dto.HealthAgencyResponse, error)
	deleteFn func(id uint) error
	searchFn func(term string) ([]dto.HealthAgencyResponse, error)
}

func (f *fakeHealthAgencyUsecase) Create(ctx context.Context, req *dto.HealthAgencyRequest) (*dto.HealthAgencyResponse, error) {
	return f.createFn(req)
}

func (f *fakeHealthAgencyUsecase) GetAll(ctx context.Context) ([]dto.HealthAgencyResponse, error) {
	return []dto.HealthAgencyResponse{}, nil
}

func (f *fakeHealthAgencyUsecase) GetByID(ctx context.Context, id uint) (*dto.HealthAgencyResponse, error) {
	return f.getFn(id)
}

func (f *fakeHealthAgencyUsecase) Update(ctx context.Context, id uint, req *dto.HealthAgencyRequest) (*dto.HealthAgencyResponse, error) {
	return f.updateFn(id, req)
}

func (f *fakeHealthAgencyUsecase) Delete(ctx context.Context, id uint) error {
	return f.deleteFn(id)
}

func (f *fakeHealthAgencyUsecase) Search(ctx context.Context, term string) ([]dto.HealthAgencyResponse, error) {
	return f.searchFn(term)
}

func (f *fakeHealthAgencyUsecase) GetPolyclinics(ctx context.Context, id uint) ([]dto.PolyclinicResponse, error) {
	return []dto.PolyclinicResponse{}, nil
}

func (f *fakeHealthAgencyUsecase) GetPolyclinicsWithSchedules(ctx context.Context, id uint) ([]dto.PolyclinicAdminResponse, error) {
	return []dto.PolyclinicAdminResponse{}, nil
}

type fakeUserUsecase struct {
	createFn    func(req *dto.UserRequest) (*dto.UserResponse, error)
	updateFn    func(p entity.Principal, id uint, req *dto.UserRequest) (*dto.UserResponse, error)
	residenceFn func(p entity.Principal) (string, error)
}

func (f *fakeUserUsecase) Create(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error) {
	return f.createFn(req)
}

func (f *fakeUserUsecase) GetAll(ctx context.Context) ([]dto.UserResponse, error) {
	return []dto.UserResponse{}, nil
}

func (f *fakeUserUsecase) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: id}, nil
}

func (f *fakeUserUsecase) GetAdmins(ctx context.Context) ([]dto.UserResponse, error) {
	return []dto.UserResponse{}, nil
}

func (f *fakeUserUsecase) Update(ctx context.Context, p entity.Principal, id uint, req *dto.UserRequest) (*dto.UserResponse, error) {
	return f.updateFn(p, id, req)
}

func (f *fakeUserUsecase) Delete(ctx context.Context, id uint) error {
	return nil
}

func (f *fakeUserUsecase) ChangePassword(ctx context.Context, p entity.Principal, id uint, req *dto.ChangePasswordRequest) error {
	return nil
}

func (f *fakeUserUsecase) ChangeImage(ctx context.Context, p entity.Principal, id uint, req *dto.ChangeImageRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: id}, nil
}

func (f *fakeUserUsecase) GetResidenceNumber(ctx context.Context, p entity.Principal) (string, error) {
	return f.residenceFn(p)
}

type fakeWaitingListUsecase struct {
	rows  []dto.WaitingListResponse
	err   error
	asked []entity.Principal
}

func (f *fakeWaitingListUsecase) GetByPrincipal(ctx context.Context, p entity.Principal) ([]dto.WaitingListResponse, error) {
	f.asked = append(f.asked, p)
	return f.rows, f.err
}

type fakeAuditLogUsecase struct{}

func (f *fakeAuditLogUsecase) GetAll(ctx context.Context, page, limit int) (*dto.AuditLogListResponse, error) {
	return &dto.AuditLogListResponse{Logs: []dto.AuditLogResponse{{ID: 1}}, Page: 2, Limit: 1, Total: 3}, nil
}

func (f *fakeAuditLogUsecase) GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	return &dto.AuditLogResponse{ID: id}, nil
}
