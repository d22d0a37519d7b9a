package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PossibleDiagnosis struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FindingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_possible_diagnosis_finding_key" json:"finding_id"`
	Finding   *Finding  `gorm:"constraint:OnDelete:CASCADE;foreignKey:FindingID;references:ID" json:"finding,omitempty"`
	Key       string    `gorm:"not null;uniqueIndex:uq_possible_diagnosis_finding_key;column:key" json:"key"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PossibleDiagnosis) TableName() string { return "possible_diagnosis" }

func (d *PossibleDiagnosis) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
