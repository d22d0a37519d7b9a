package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EvaluationResponse stores one clamped score per rubric item per attempt.
type EvaluationResponse struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:uq_evaluation_response_attempt_item" json:"attempt_id"`
	Attempt   *EvaluationAttempt `gorm:"constraint:OnDelete:CASCADE;foreignKey:AttemptID;references:ID" json:"attempt,omitempty"`
	ItemID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:uq_evaluation_response_attempt_item" json:"item_id"`
	Item      *ScoringItem       `gorm:"foreignKey:ItemID;references:ID" json:"item,omitempty"`
	Score     int                `gorm:"not null;column:score" json:"score"`
	CreatedAt time.Time          `gorm:"not null" json:"created_at"`
}

func (EvaluationResponse) TableName() string { return "evaluation_response" }

func (r *EvaluationResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
