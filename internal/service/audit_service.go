package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService records entity changes in audit_logs and forwards them to the
// event publisher. Callers treat failures as non-fatal.
type AuditService interface {
	LogCreate(ctx context.Context, db *gorm.DB, action, entityName, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, db *gorm.DB, action, entityName, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, db *gorm.DB, action, entityName, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
	publisher EventPublisher
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository, publisher EventPublisher) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
		publisher: publisher,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, db *gorm.DB, action, entityName, entityID string, newValue interface{}) error {
	return s.record(ctx, db, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, db *gorm.DB, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return s.record(ctx, db, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, db *gorm.DB, action, entityName, entityID string, oldValue interface{}) error {
	return s.record(ctx, db, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) record(ctx context.Context, db *gorm.DB, action, entityName, entityID string, oldValue, newValue interface{}) error {
	var actorID *uint
	if principal, ok := entity.PrincipalFromContext(ctx); ok {
		id := principal.UserID
		actorID = &id
	}

	metadata, err := json.Marshal(map[string]interface{}{
		"old_value": oldValue,
		"new_value": newValue,
	})
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	auditLog := &entity.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Metadata:   datatypes.JSON(metadata),
	}

	var errs []error
	if err := s.auditRepo.Create(db, auditLog); err != nil {
		errs = append(errs, fmt.Errorf("create audit log: %w", err))
	}

	event := EntityEvent{
		Action:     action,
		Entity:     entityName,
		EntityID:   entityID,
		ActorID:    actorID,
		OldValue:   oldValue,
		NewValue:   newValue,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		errs = append(errs, fmt.Errorf("publish %s: %w", action, err))
	}

	return errors.Join(errs...)
}
