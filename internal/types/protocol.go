package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Protocol is a named imaging examination type (cardiac, pulmonary, ...).
// It roots both the scoring rubric tree and the diagnostic tree.
type Protocol struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex:uq_protocol_key;not null;column:key" json:"key"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Protocol) TableName() string { return "protocol" }

func (p *Protocol) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
