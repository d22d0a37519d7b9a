package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subdiagnosis struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PossibleDiagnosisID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:uq_subdiagnosis_parent_key" json:"possible_diagnosis_id"`
	PossibleDiagnosis   *PossibleDiagnosis `gorm:"constraint:OnDelete:CASCADE;foreignKey:PossibleDiagnosisID;references:ID" json:"possible_diagnosis,omitempty"`
	Key                 string             `gorm:"not null;uniqueIndex:uq_subdiagnosis_parent_key;column:key" json:"key"`
	Name                string             `gorm:"not null;column:name" json:"name"`
	CreatedAt           time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time          `gorm:"not null" json:"updated_at"`
}

func (Subdiagnosis) TableName() string { return "subdiagnosis" }

func (d *Subdiagnosis) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
