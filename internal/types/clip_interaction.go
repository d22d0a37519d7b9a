package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleLearner  = "learner"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

// ClipInteraction is the single wide row behind the per-role interaction
// ledger. Learner rows populate the diagnostic-path fields and readiness
// flag; reviewer rows populate image-quality/final-diagnosis/comment.
// The unique index on (clip_id, role) enforces at most one submission
// per role per clip.
type ClipInteraction struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClipID                uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_clip_interaction_clip_role" json:"clip_id"`
	UserID                uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Role                  string         `gorm:"not null;uniqueIndex:uq_clip_interaction_clip_role;column:role" json:"role"`
	ProtocolKey           *string        `gorm:"column:protocol_key" json:"protocol_key,omitempty"`
	WindowID              *uuid.UUID     `gorm:"type:uuid;column:window_id" json:"window_id,omitempty"`
	FindingID             *uuid.UUID     `gorm:"type:uuid;column:finding_id" json:"finding_id,omitempty"`
	PossibleDiagnosisID   *uuid.UUID     `gorm:"type:uuid;column:possible_diagnosis_id" json:"possible_diagnosis_id,omitempty"`
	SubdiagnosisID        *uuid.UUID     `gorm:"type:uuid;column:subdiagnosis_id" json:"subdiagnosis_id,omitempty"`
	SubSubdiagnosisID     *uuid.UUID     `gorm:"type:uuid;column:sub_subdiagnosis_id" json:"sub_subdiagnosis_id,omitempty"`
	ThirdOrderDiagnosisID *uuid.UUID     `gorm:"type:uuid;column:third_order_diagnosis_id" json:"third_order_diagnosis_id,omitempty"`
	LearnerComment        *string        `gorm:"column:learner_comment" json:"learner_comment,omitempty"`
	LearnerReady          *bool          `gorm:"column:learner_ready" json:"learner_ready,omitempty"`
	ImageQualityID        *uuid.UUID     `gorm:"type:uuid;column:image_quality_id" json:"image_quality_id,omitempty"`
	FinalDiagnosisID      *uuid.UUID     `gorm:"type:uuid;column:final_diagnosis_id" json:"final_diagnosis_id,omitempty"`
	ReviewerComment       *string        `gorm:"column:reviewer_comment" json:"reviewer_comment,omitempty"`
	Metadata              datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt             time.Time      `gorm:"not null" json:"created_at"`
}

func (ClipInteraction) TableName() string { return "clip_interaction" }

func (ci *ClipInteraction) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
