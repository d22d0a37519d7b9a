package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScoringSection struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProtocolID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_scoring_section_protocol_key" json:"protocol_id"`
	Protocol   *Protocol `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProtocolID;references:ID" json:"protocol,omitempty"`
	Key        string    `gorm:"not null;uniqueIndex:uq_scoring_section_protocol_key;column:key" json:"key"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	SortOrder  int       `gorm:"not null;default:0;column:sort_order" json:"sort_order"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (ScoringSection) TableName() string { return "scoring_section" }

func (s *ScoringSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
