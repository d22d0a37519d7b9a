package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EvaluationAttempt is one reviewer's scored pass over a clip. Multiple
// attempts per clip are allowed; each is an independent review pass.
type EvaluationAttempt struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClipID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"clip_id"`
	ReviewerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	SubmittedAt time.Time      `gorm:"not null;column:submitted_at" json:"submitted_at"`
	Comment     *string        `gorm:"column:comment" json:"comment,omitempty"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (EvaluationAttempt) TableName() string { return "evaluation_attempt" }

func (a *EvaluationAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
