package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubSubdiagnosis struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	SubdiagnosisID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_sub_subdiagnosis_parent_key" json:"subdiagnosis_id"`
	Subdiagnosis   *Subdiagnosis `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubdiagnosisID;references:ID" json:"subdiagnosis,omitempty"`
	Key            string        `gorm:"not null;uniqueIndex:uq_sub_subdiagnosis_parent_key;column:key" json:"key"`
	Name           string        `gorm:"not null;column:name" json:"name"`
	CreatedAt      time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null" json:"updated_at"`
}

func (SubSubdiagnosis) TableName() string { return "sub_subdiagnosis" }

func (d *SubSubdiagnosis) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
