package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ThirdOrderDiagnosis struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	SubSubdiagnosisID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_third_order_diagnosis_parent_key" json:"sub_subdiagnosis_id"`
	SubSubdiagnosis   *SubSubdiagnosis `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubSubdiagnosisID;references:ID" json:"sub_subdiagnosis,omitempty"`
	Key               string           `gorm:"not null;uniqueIndex:uq_third_order_diagnosis_parent_key;column:key" json:"key"`
	Name              string           `gorm:"not null;column:name" json:"name"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
}

func (ThirdOrderDiagnosis) TableName() string { return "third_order_diagnosis" }

func (d *ThirdOrderDiagnosis) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
