package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScoringItem is the smallest scorable unit of a protocol's rubric.
// Scores submitted against it are clamped to [0, MaxScore].
type ScoringItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_scoring_item_section_key" json:"section_id"`
	Section    *ScoringSection `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`
	Key        string          `gorm:"not null;uniqueIndex:uq_scoring_item_section_key;column:key" json:"key"`
	Label      string          `gorm:"not null;column:label" json:"label"`
	ScoreScale string          `gorm:"not null;default:'';column:score_scale" json:"score_scale"`
	MaxScore   int             `gorm:"not null;default:0;column:max_score" json:"max_score"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

func (ScoringItem) TableName() string { return "scoring_item" }

func (i *ScoringItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
