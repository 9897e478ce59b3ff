package usecase

import (
	"context"
	"errors"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/converter"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNoHealthAgency = errors.New("user is not assigned to a health agency")

type WaitingListUsecase interface {
	// GetByPrincipal lists the waiting list of the principal's health agency.
	GetByPrincipal(ctx context.Context, principal entity.Principal) ([]dto.WaitingListResponse, error)
}

type waitingListUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	waitingListRepo repository.WaitingListRepository
}

func NewWaitingListUsecase(db *gorm.DB, log *logrus.Logger, waitingListRepo repository.WaitingListRepository) WaitingListUsecase {
	return &waitingListUsecase{
		db:              db,
		log:             log,
		waitingListRepo: waitingListRepo,
	}
}

func (u *waitingListUsecase) GetByPrincipal(ctx context.Context, principal entity.Principal) ([]dto.WaitingListResponse, error) {
	if principal.HealthAgencyID == nil {
		return nil, ErrNoHealthAgency
	}

	rows, err := u.waitingListRepo.FindByHealthAgency(u.db.WithContext(ctx), *principal.HealthAgencyID)
	if err != nil {
		u.log.Warnf("Failed to find waiting list: %+v", err)
		return nil, err
	}
	return converter.WaitingListsToResponses(rows), nil
}
