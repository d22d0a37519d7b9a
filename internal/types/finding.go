package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finding keys are structurally fixed: every window carries exactly
// "positive" and "negative".
const (
	FindingKeyPositive = "positive"
	FindingKeyNegative = "negative"
)

type Finding struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	WindowID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_finding_window_key" json:"window_id"`
	Window    *DiagnosticWindow `gorm:"constraint:OnDelete:CASCADE;foreignKey:WindowID;references:ID" json:"window,omitempty"`
	Key       string            `gorm:"not null;uniqueIndex:uq_finding_window_key;column:key" json:"key"`
	Name      string            `gorm:"not null;column:name" json:"name"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`
}

func (Finding) TableName() string { return "finding" }

func (f *Finding) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
