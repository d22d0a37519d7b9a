package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiagnosticWindow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProtocolID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_diagnostic_window_protocol_key" json:"protocol_id"`
	Protocol   *Protocol `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProtocolID;references:ID" json:"protocol,omitempty"`
	Key        string    `gorm:"not null;uniqueIndex:uq_diagnostic_window_protocol_key;column:key" json:"key"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (DiagnosticWindow) TableName() string { return "diagnostic_window" }

func (w *DiagnosticWindow) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
