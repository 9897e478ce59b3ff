package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uint          `gorm:"index" json:"user_id,omitempty"`
	Action     string         `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityName string         `gorm:"type:varchar(50);not null" json:"entity"`
	EntityID   string         `gorm:"type:varchar(50);not null" json:"entity_id"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserLogin          = "user.login"
	AuditActionUserLogout         = "user.logout"
	AuditActionUserCreate         = "user.create"
	AuditActionUserUpdate         = "user.update"
	AuditActionUserDelete         = "user.delete"
	AuditActionUserPassword       = "user.password"
	AuditActionUserImage          = "user.image"
	AuditActionHealthAgencyCreate = "health_agency.create"
	AuditActionHealthAgencyUpdate = "health_agency.update"
	AuditActionHealthAgencyDelete = "health_agency.delete"
	AuditActionPolyMasterCreate   = "poly_master.create"
	AuditActionPolyMasterUpdate   = "poly_master.update"
	AuditActionPolyMasterDelete   = "poly_master.delete"
)
