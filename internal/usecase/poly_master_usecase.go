package usecase

import (
	"context"
	"errors"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/converter"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/service"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPolyMasterNotFound = errors.New("poly master not found")
	ErrPolyMasterInUse    = errors.New("poly master is still referenced")
)

type PolyMasterUsecase interface {
	Create(ctx context.Context, req *dto.PolyMasterRequest) (*dto.PolyMasterResponse, error)
	GetAll(ctx context.Context) ([]dto.PolyMasterResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.PolyMasterResponse, error)
	Update(ctx context.Context, id uint, req *dto.PolyMasterRequest) (*dto.PolyMasterResponse, error)
	Delete(ctx context.Context, id uint) error
}

type polyMasterUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	validator      *validator.CustomValidator
	polyMasterRepo repository.PolyMasterRepository
	auditService   service.AuditService
}

func NewPolyMasterUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	polyMasterRepo repository.PolyMasterRepository,
	auditService service.AuditService,
) PolyMasterUsecase {
	return &polyMasterUsecase{
		db:             db,
		log:            log,
		validator:      validator,
		polyMasterRepo: polyMasterRepo,
		auditService:   auditService,
	}
}

var polyMasterRules = validator.Rules{
	"name": {validator.Required(), validator.String()},
}

func (u *polyMasterUsecase) Create(ctx context.Context, req *dto.PolyMasterRequest) (*dto.PolyMasterResponse, error) {
	if err := u.validator.Validate(ctx, req.Fields(), polyMasterRules); err != nil {
		return nil, err
	}

	polyMaster := &entity.PolyMaster{Name: req.Name}
	if err := u.polyMasterRepo.Create(u.db.WithContext(ctx), polyMaster); err != nil {
		u.log.Warnf("Failed to create poly master: %+v", err)
		return nil, err
	}

	response := converter.PolyMasterToResponse(polyMaster)
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), entity.AuditActionPolyMasterCreate, "poly_master", formatID(polyMaster.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

func (u *polyMasterUsecase) GetAll(ctx context.Context) ([]dto.PolyMasterResponse, error) {
	polyMasters, err := u.polyMasterRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all poly masters: %+v", err)
		return nil, err
	}
	return converter.PolyMastersToResponses(polyMasters), nil
}

func (u *polyMasterUsecase) GetByID(ctx context.Context, id uint) (*dto.PolyMasterResponse, error) {
	polyMaster, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PolyMasterToResponse(polyMaster), nil
}

func (u *polyMasterUsecase) find(ctx context.Context, id uint) (*entity.PolyMaster, error) {
	polyMaster, err := u.polyMasterRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find poly master: %+v", err)
		return nil, err
	}
	if polyMaster == nil {
		return nil, ErrPolyMasterNotFound
	}
	return polyMaster, nil
}

func (u *polyMasterUsecase) Update(ctx context.Context, id uint, req *dto.PolyMasterRequest) (*dto.PolyMasterResponse, error) {
	polyMaster, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.validator.Validate(ctx, req.Fields(), polyMasterRules); err != nil {
		return nil, err
	}

	oldValue := converter.PolyMasterToResponse(polyMaster)
	polyMaster.Name = req.Name

	if err := u.polyMasterRepo.Update(u.db.WithContext(ctx), polyMaster); err != nil {
		u.log.Warnf("Failed to update poly master: %+v", err)
		return nil, err
	}

	response := converter.PolyMasterToResponse(polyMaster)
	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), entity.AuditActionPolyMasterUpdate, "poly_master", formatID(id), oldValue, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

func (u *polyMasterUsecase) Delete(ctx context.Context, id uint) error {
	polyMaster, err := u.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := u.polyMasterRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete poly master: %+v", err)
		if isForeignKeyError(err, "poly_master") {
			return ErrPolyMasterInUse
		}
		return err
	}
	if !deleted {
		return ErrPolyMasterNotFound
	}

	if err := u.auditService.LogDelete(ctx, u.db.WithContext(ctx), entity.AuditActionPolyMasterDelete, "poly_master", formatID(id), converter.PolyMasterToResponse(polyMaster)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
