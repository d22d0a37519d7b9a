package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	apperrors "github.com/Martinrodriguezc/portafolius-backend-sub001/internal/pkg/errors"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/repos"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

// LearnerSubmission is the learner-role variant of a clip interaction:
// a path through the diagnostic tree plus a readiness flag.
type LearnerSubmission struct {
	ProtocolKey           *string    `json:"protocol_key,omitempty"`
	WindowID              *uuid.UUID `json:"window_id,omitempty"`
	FindingID             *uuid.UUID `json:"finding_id,omitempty"`
	PossibleDiagnosisID   *uuid.UUID `json:"possible_diagnosis_id,omitempty"`
	SubdiagnosisID        *uuid.UUID `json:"subdiagnosis_id,omitempty"`
	SubSubdiagnosisID     *uuid.UUID `json:"sub_subdiagnosis_id,omitempty"`
	ThirdOrderDiagnosisID *uuid.UUID `json:"third_order_diagnosis_id,omitempty"`
	Comment               *string    `json:"comment,omitempty"`
	Ready                 *bool      `json:"ready,omitempty"`
}

// ReviewerSubmission is the reviewer-role variant: image quality plus the
// reviewer's final diagnosis call.
type ReviewerSubmission struct {
	ImageQualityID   *uuid.UUID `json:"image_quality_id,omitempty"`
	FinalDiagnosisID *uuid.UUID `json:"final_diagnosis_id,omitempty"`
	Comment          *string    `json:"comment,omitempty"`
}

// DiagnosticNodeView is a tree node joined with its display name.
type DiagnosticNodeView struct {
	ID   uuid.UUID `json:"id"`
	Key  string    `json:"key"`
	Name string    `json:"name"`
}

type LearnerInteractionView struct {
	UserID              uuid.UUID           `json:"user_id"`
	ProtocolKey         *string             `json:"protocol_key,omitempty"`
	Window              *DiagnosticNodeView `json:"window,omitempty"`
	Finding             *DiagnosticNodeView `json:"finding,omitempty"`
	PossibleDiagnosis   *DiagnosticNodeView `json:"possible_diagnosis,omitempty"`
	Subdiagnosis        *DiagnosticNodeView `json:"subdiagnosis,omitempty"`
	SubSubdiagnosis     *DiagnosticNodeView `json:"sub_subdiagnosis,omitempty"`
	ThirdOrderDiagnosis *DiagnosticNodeView `json:"third_order_diagnosis,omitempty"`
	Comment             *string             `json:"comment,omitempty"`
	Ready               *bool               `json:"ready,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
}

type ReviewerInteractionView struct {
	UserID         uuid.UUID           `json:"user_id"`
	ImageQualityID *uuid.UUID          `json:"image_quality_id,omitempty"`
	FinalDiagnosis *DiagnosticNodeView `json:"final_diagnosis,omitempty"`
	Comment        *string             `json:"comment,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ClipInteractions holds both role slots for a clip. An absent role is a
// nil slot, never a zero-valued placeholder.
type ClipInteractions struct {
	Learner  *LearnerInteractionView  `json:"learner,omitempty"`
	Reviewer *ReviewerInteractionView `json:"reviewer,omitempty"`
}

type InteractionService interface {
	// SubmitLearnerInteraction records the single learner read for a
	// clip. A second submission fails with ErrDuplicateSubmission; the
	// first row is never overwritten.
	SubmitLearnerInteraction(ctx context.Context, clipID, userID uuid.UUID, sub LearnerSubmission) error
	SubmitReviewerInteraction(ctx context.Context, clipID, userID uuid.UUID, sub ReviewerSubmission) error
	GetInteractions(ctx context.Context, clipID uuid.UUID) (*ClipInteractions, error)
}

type interactionService struct {
	db              *gorm.DB
	log             *logger.Logger
	interactionRepo repos.ClipInteractionRepo
	taxonomyRepo    repos.TaxonomyRepo
}

func NewInteractionService(db *gorm.DB, log *logger.Logger, interactionRepo repos.ClipInteractionRepo, taxonomyRepo repos.TaxonomyRepo) InteractionService {
	serviceLog := log.With("service", "InteractionService")
	return &interactionService{
		db:              db,
		log:             serviceLog,
		interactionRepo: interactionRepo,
		taxonomyRepo:    taxonomyRepo,
	}
}

func (is *interactionService) SubmitLearnerInteraction(ctx context.Context, clipID, userID uuid.UUID, sub LearnerSubmission) error {
	if clipID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("%w: clip and user are required", apperrors.ErrInvalidInput)
	}
	row := &types.ClipInteraction{
		ClipID:                clipID,
		UserID:                userID,
		Role:                  types.RoleLearner,
		ProtocolKey:           sub.ProtocolKey,
		WindowID:              sub.WindowID,
		FindingID:             sub.FindingID,
		PossibleDiagnosisID:   sub.PossibleDiagnosisID,
		SubdiagnosisID:        sub.SubdiagnosisID,
		SubSubdiagnosisID:     sub.SubSubdiagnosisID,
		ThirdOrderDiagnosisID: sub.ThirdOrderDiagnosisID,
		LearnerComment:        sub.Comment,
		LearnerReady:          sub.Ready,
	}
	return is.create(ctx, row)
}

func (is *interactionService) SubmitReviewerInteraction(ctx context.Context, clipID, userID uuid.UUID, sub ReviewerSubmission) error {
	if clipID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("%w: clip and user are required", apperrors.ErrInvalidInput)
	}
	row := &types.ClipInteraction{
		ClipID:           clipID,
		UserID:           userID,
		Role:             types.RoleReviewer,
		ImageQualityID:   sub.ImageQualityID,
		FinalDiagnosisID: sub.FinalDiagnosisID,
		ReviewerComment:  sub.Comment,
	}
	return is.create(ctx, row)
}

func (is *interactionService) create(ctx context.Context, row *types.ClipInteraction) error {
	if _, err := is.interactionRepo.Create(ctx, nil, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s interaction already recorded for clip", apperrors.ErrDuplicateSubmission, row.Role)
		}
		is.log.Error("Failed to create clip interaction", "clip_id", row.ClipID, "role", row.Role, "error", err)
		return fmt.Errorf("failed to create clip interaction: %w", err)
	}
	return nil
}

func (is *interactionService) GetInteractions(ctx context.Context, clipID uuid.UUID) (*ClipInteractions, error) {
	rows, err := is.interactionRepo.GetByClipID(ctx, nil, clipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clip interactions: %w", err)
	}

	out := &ClipInteractions{}
	for _, row := range rows {
		switch row.Role {
		case types.RoleLearner:
			out.Learner = is.learnerView(ctx, row)
		case types.RoleReviewer:
			out.Reviewer = is.reviewerView(ctx, row)
		default:
			is.log.Warn("Unknown interaction role in store", "clip_id", clipID, "role", row.Role)
		}
	}
	return out, nil
}

func (is *interactionService) learnerView(ctx context.Context, row *types.ClipInteraction) *LearnerInteractionView {
	view := &LearnerInteractionView{
		UserID:      row.UserID,
		ProtocolKey: row.ProtocolKey,
		Comment:     row.LearnerComment,
		Ready:       row.LearnerReady,
		CreatedAt:   row.CreatedAt,
	}
	if row.WindowID != nil {
		if node, err := is.taxonomyRepo.GetWindowByID(ctx, nil, *row.WindowID); err == nil {
			view.Window = &DiagnosticNodeView{ID: node.ID, Key: node.Key, Name: node.Name}
		}
	}
	if row.FindingID != nil {
		if node, err := is.taxonomyRepo.GetFindingByID(ctx, nil, *row.FindingID); err == nil {
			view.Finding = &DiagnosticNodeView{ID: node.ID, Key: node.Key, Name: node.Name}
		}
	}
	if row.PossibleDiagnosisID != nil {
		if node, err := is.taxonomyRepo.GetPossibleDiagnosisByID(ctx, nil, *row.PossibleDiagnosisID); err == nil {
			view.PossibleDiagnosis = &DiagnosticNodeView{ID: node.ID, Key: node.Key, Name: node.Name}
		}
	}
	if row.SubdiagnosisID != nil {
		if node, err := is.taxonomyRepo.GetSubdiagnosisByID(ctx, nil, *row.SubdiagnosisID); err == nil {
			view.Subdiagnosis = &DiagnosticNodeView{ID: node.ID, Key: node.Key, Name: node.Name}
		}
	}
	if row.SubSubdiagnosisID != nil {
		if node, err := is.taxonomyRepo.GetSubSubdiagnosisByID(ctx, nil, *row.SubSubdiagnosisID); err == nil {
			view.SubSubdiagnosis = &DiagnosticNodeView{ID: node.ID, Key: node.Key, Name: node.Name}
		}
	}
	if row.ThirdOrderDiagnosisID != nil {
		if node, err := is.taxonomyRepo.GetThirdOrderDiagnosisByID(ctx, nil, *row.ThirdOrderDiagnosisID); err == nil {
			view.ThirdOrderDiagnosis = &DiagnosticNodeView{ID: node.ID, Key: node.Key, Name: node.Name}
		}
	}
	return view
}

func (is *interactionService) reviewerView(ctx context.Context, row *types.ClipInteraction) *ReviewerInteractionView {
	view := &ReviewerInteractionView{
		UserID:         row.UserID,
		ImageQualityID: row.ImageQualityID,
		Comment:        row.ReviewerComment,
		CreatedAt:      row.CreatedAt,
	}
	if row.FinalDiagnosisID != nil {
		if node, err := is.taxonomyRepo.GetPossibleDiagnosisByID(ctx, nil, *row.FinalDiagnosisID); err == nil {
			view.FinalDiagnosis = &DiagnosticNodeView{ID: node.ID, Key: node.Key, Name: node.Name}
		}
	}
	return view
}
