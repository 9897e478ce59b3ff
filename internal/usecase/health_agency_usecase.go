package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/converter"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/service"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/storage"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxAgencyImageKB = 2048

var (
	ErrHealthAgencyNotFound    = errors.New("health agency not found")
	ErrHealthAgencyEmailExists = errors.New("health agency email already exists")
	ErrHealthAgencyInUse       = errors.New("health agency is still referenced")
)

type HealthAgencyUsecase interface {
	Create(ctx context.Context, req *dto.HealthAgencyRequest) (*dto.HealthAgencyResponse, error)
	GetAll(ctx context.Context) ([]dto.HealthAgencyResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.HealthAgencyResponse, error)
	Update(ctx context.Context, id uint, req *dto.HealthAgencyRequest) (*dto.HealthAgencyResponse, error)
	Delete(ctx context.Context, id uint) error
	// Search returns nil when term is empty, otherwise a possibly empty list.
	Search(ctx context.Context, term string) ([]dto.HealthAgencyResponse, error)
	GetPolyclinics(ctx context.Context, id uint) ([]dto.PolyclinicResponse, error)
	GetPolyclinicsWithSchedules(ctx context.Context, id uint) ([]dto.PolyclinicAdminResponse, error)
}

type healthAgencyUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	validator      *validator.CustomValidator
	files          storage.FileStore
	agencyRepo     repository.HealthAgencyRepository
	polyclinicRepo repository.PolyclinicRepository
	auditService   service.AuditService
}

func NewHealthAgencyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	files storage.FileStore,
	agencyRepo repository.HealthAgencyRepository,
	polyclinicRepo repository.PolyclinicRepository,
	auditService service.AuditService,
) HealthAgencyUsecase {
	return &healthAgencyUsecase{
		db:             db,
		log:            log,
		validator:      validator,
		files:          files,
		agencyRepo:     agencyRepo,
		polyclinicRepo: polyclinicRepo,
		auditService:   auditService,
	}
}

func (u *healthAgencyUsecase) rules(excludeID uint) validator.Rules {
	emailTaken := func(ctx context.Context, email string) (bool, error) {
		return u.agencyRepo.ExistsByEmail(u.db.WithContext(ctx), email, excludeID)
	}

	return validator.Rules{
		"name":        {validator.Required(), validator.String()},
		"address":     {validator.Required(), validator.String()},
		"image":       {validator.Nullable(), validator.Image(maxAgencyImageKB, "jpeg", "png", "jpg")},
		"call_center": {validator.Required()},
		"email":       {validator.Required(), validator.Email(), validator.Unique(emailTaken)},
	}
}

func (u *healthAgencyUsecase) Create(ctx context.Context, req *dto.HealthAgencyRequest) (*dto.HealthAgencyResponse, error) {
	if err := u.validator.Validate(ctx, req.Fields(), u.rules(0)); err != nil {
		return nil, err
	}

	agency := &entity.HealthAgency{
		Name:       req.Name,
		Address:    req.Address,
		CallCenter: req.CallCenter,
		Email:      req.Email,
	}

	if req.Image != nil {
		path, err := storeUpload(ctx, u.files, storage.BucketHealthAgencies, req.Image)
		if err != nil {
			u.log.Warnf("Failed to store health agency image: %+v", err)
			return nil, err
		}
		agency.Image = &path
	}

	if err := u.agencyRepo.Create(u.db.WithContext(ctx), agency); err != nil {
		u.log.Warnf("Failed to create health agency: %+v", err)
		removeFile(ctx, u.log, u.files, agency.Image)
		if isDuplicateKeyError(err, "email") {
			return nil, ErrHealthAgencyEmailExists
		}
		return nil, err
	}

	response := converter.HealthAgencyToResponse(agency)
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), entity.AuditActionHealthAgencyCreate, "health_agency", formatID(agency.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

func (u *healthAgencyUsecase) GetAll(ctx context.Context) ([]dto.HealthAgencyResponse, error) {
	agencies, err := u.agencyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all health agencies: %+v", err)
		return nil, err
	}
	return converter.HealthAgenciesToResponses(agencies), nil
}

func (u *healthAgencyUsecase) GetByID(ctx context.Context, id uint) (*dto.HealthAgencyResponse, error) {
	agency, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.HealthAgencyToResponse(agency), nil
}

func (u *healthAgencyUsecase) find(ctx context.Context, id uint) (*entity.HealthAgency, error) {
	agency, err := u.agencyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find health agency: %+v", err)
		return nil, err
	}
	if agency == nil {
		return nil, ErrHealthAgencyNotFound
	}
	return agency, nil
}

// Update replaces the stored image only when a new one is uploaded. The old
// file is removed after the row points at the new one.
func (u *healthAgencyUsecase) Update(ctx context.Context, id uint, req *dto.HealthAgencyRequest) (*dto.HealthAgencyResponse, error) {
	agency, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.validator.Validate(ctx, req.Fields(), u.rules(id)); err != nil {
		return nil, err
	}

	oldValue := converter.HealthAgencyToResponse(agency)
	oldImage := agency.Image

	agency.Name = req.Name
	agency.Address = req.Address
	agency.CallCenter = req.CallCenter
	agency.Email = req.Email

	if req.Image != nil {
		path, err := storeUpload(ctx, u.files, storage.BucketHealthAgencies, req.Image)
		if err != nil {
			u.log.Warnf("Failed to store health agency image: %+v", err)
			return nil, err
		}
		agency.Image = &path
	}

	if err := u.agencyRepo.Update(u.db.WithContext(ctx), agency); err != nil {
		u.log.Warnf("Failed to update health agency: %+v", err)
		if req.Image != nil {
			removeFile(ctx, u.log, u.files, agency.Image)
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrHealthAgencyEmailExists
		}
		return nil, err
	}

	if req.Image != nil {
		removeFile(ctx, u.log, u.files, oldImage)
	}

	response := converter.HealthAgencyToResponse(agency)
	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), entity.AuditActionHealthAgencyUpdate, "health_agency", formatID(id), oldValue, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

// Delete removes the stored image first, then the row. A failed file removal
// is logged and does not stop the row deletion.
func (u *healthAgencyUsecase) Delete(ctx context.Context, id uint) error {
	agency, err := u.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := u.agencyRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete health agency: %+v", err)
		if isForeignKeyError(err, "health_agency") {
			return ErrHealthAgencyInUse
		}
		return err
	}
	if !deleted {
		return ErrHealthAgencyNotFound
	}

	removeFile(ctx, u.log, u.files, agency.Image)

	if err := u.auditService.LogDelete(ctx, u.db.WithContext(ctx), entity.AuditActionHealthAgencyDelete, "health_agency", formatID(id), converter.HealthAgencyToResponse(agency)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *healthAgencyUsecase) Search(ctx context.Context, term string) ([]dto.HealthAgencyResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	db := u.db.WithContext(ctx)

	byName, err := u.agencyRepo.SearchByName(db, term)
	if err != nil {
		u.log.Warnf("Failed to search health agencies by name: %+v", err)
		return nil, err
	}

	byPoly, err := u.agencyRepo.SearchByPolyMasterName(db, term)
	if err != nil {
		u.log.Warnf("Failed to search health agencies by poly master: %+v", err)
		return nil, err
	}

	return converter.HealthAgenciesToResponses(mergeAgencies(byName, byPoly)), nil
}

// mergeAgencies concatenates lists keeping the first occurrence of each id.
func mergeAgencies(lists ...[]entity.HealthAgency) []entity.HealthAgency {
	seen := make(map[uint]struct{})
	merged := make([]entity.HealthAgency, 0)
	for _, list := range lists {
		for _, agency := range list {
			if _, ok := seen[agency.ID]; ok {
				continue
			}
			seen[agency.ID] = struct{}{}
			merged = append(merged, agency)
		}
	}
	return merged
}

func (u *healthAgencyUsecase) GetPolyclinics(ctx context.Context, id uint) ([]dto.PolyclinicResponse, error) {
	if _, err := u.find(ctx, id); err != nil {
		return nil, err
	}

	polyclinics, err := u.polyclinicRepo.FindByHealthAgency(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find polyclinics: %+v", err)
		return nil, err
	}
	return converter.PolyclinicsToResponses(polyclinics), nil
}

func (u *healthAgencyUsecase) GetPolyclinicsWithSchedules(ctx context.Context, id uint) ([]dto.PolyclinicAdminResponse, error) {
	if _, err := u.find(ctx, id); err != nil {
		return nil, err
	}

	polyclinics, err := u.polyclinicRepo.FindByHealthAgencyWithSchedules(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find polyclinics with schedules: %+v", err)
		return nil, err
	}
	return converter.PolyclinicsToAdminResponses(polyclinics), nil
}
