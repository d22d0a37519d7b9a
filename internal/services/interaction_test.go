package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/Martinrodriguezc/portafolius-backend-sub001/internal/pkg/errors"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/repos"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

func newInteractionFixture(t *testing.T) (*gorm.DB, InteractionService) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger()

	taxonomyRepo := repos.NewTaxonomyRepo(gdb, log)
	seeder := NewTaxonomySeeder(gdb, log, taxonomyRepo)
	seeder.Seed(context.Background(), testDefinition())

	svc := NewInteractionService(gdb, log, repos.NewClipInteractionRepo(gdb, log), taxonomyRepo)
	return gdb, svc
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func TestLearnerSubmissionConflictsOnSecondWrite(t *testing.T) {
	gdb, svc := newInteractionFixture(t)
	ctx := context.Background()
	clipID := uuid.New()

	first := LearnerSubmission{Comment: strPtr("first read"), Ready: boolPtr(true)}
	if err := svc.SubmitLearnerInteraction(ctx, clipID, uuid.New(), first); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	second := LearnerSubmission{Comment: strPtr("second read")}
	err := svc.SubmitLearnerInteraction(ctx, clipID, uuid.New(), second)
	if !errors.Is(err, apperrors.ErrDuplicateSubmission) {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}

	var rows []*types.ClipInteraction
	if err := gdb.Where("clip_id = ?", clipID).Find(&rows).Error; err != nil {
		t.Fatalf("failed to load interactions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one stored row, got %d", len(rows))
	}
	if rows[0].LearnerComment == nil || *rows[0].LearnerComment != "first read" {
		t.Fatalf("expected first submission preserved, got %v", rows[0].LearnerComment)
	}
}

func TestRolesAreIndependentSlots(t *testing.T) {
	_, svc := newInteractionFixture(t)
	ctx := context.Background()
	clipID := uuid.New()

	if err := svc.SubmitLearnerInteraction(ctx, clipID, uuid.New(), LearnerSubmission{}); err != nil {
		t.Fatalf("learner submission failed: %v", err)
	}
	if err := svc.SubmitReviewerInteraction(ctx, clipID, uuid.New(), ReviewerSubmission{Comment: strPtr("good scan")}); err != nil {
		t.Fatalf("reviewer submission failed: %v", err)
	}

	out, err := svc.GetInteractions(ctx, clipID)
	if err != nil {
		t.Fatalf("GetInteractions failed: %v", err)
	}
	if out.Learner == nil || out.Reviewer == nil {
		t.Fatalf("expected both role slots populated, got learner=%v reviewer=%v", out.Learner, out.Reviewer)
	}
}

func TestGetInteractionsOmitsAbsentRole(t *testing.T) {
	_, svc := newInteractionFixture(t)
	ctx := context.Background()
	clipID := uuid.New()

	if err := svc.SubmitReviewerInteraction(ctx, clipID, uuid.New(), ReviewerSubmission{}); err != nil {
		t.Fatalf("reviewer submission failed: %v", err)
	}

	out, err := svc.GetInteractions(ctx, clipID)
	if err != nil {
		t.Fatalf("GetInteractions failed: %v", err)
	}
	if out.Learner != nil {
		t.Fatalf("expected learner slot absent, got %+v", out.Learner)
	}
	if out.Reviewer == nil {
		t.Fatalf("expected reviewer slot present")
	}
}

func TestGetInteractionsResolvesDiagnosticNames(t *testing.T) {
	gdb, svc := newInteractionFixture(t)
	ctx := context.Background()
	clipID := uuid.New()

	var window types.DiagnosticWindow
	if err := gdb.Where("key = ?", "parasternal_long").First(&window).Error; err != nil {
		t.Fatalf("failed to load window: %v", err)
	}
	var finding types.Finding
	if err := gdb.Where("window_id = ? AND key = ?", window.ID, types.FindingKeyPositive).First(&finding).Error; err != nil {
		t.Fatalf("failed to load finding: %v", err)
	}
	var diagnosis types.PossibleDiagnosis
	if err := gdb.Where("finding_id = ? AND key = ?", finding.ID, "effusion").First(&diagnosis).Error; err != nil {
		t.Fatalf("failed to load diagnosis: %v", err)
	}

	sub := LearnerSubmission{
		ProtocolKey:         strPtr("cardiac"),
		WindowID:            uuidPtr(window.ID),
		FindingID:           uuidPtr(finding.ID),
		PossibleDiagnosisID: uuidPtr(diagnosis.ID),
		Ready:               boolPtr(true),
	}
	if err := svc.SubmitLearnerInteraction(ctx, clipID, uuid.New(), sub); err != nil {
		t.Fatalf("learner submission failed: %v", err)
	}
	if err := svc.SubmitReviewerInteraction(ctx, clipID, uuid.New(), ReviewerSubmission{
		FinalDiagnosisID: uuidPtr(diagnosis.ID),
	}); err != nil {
		t.Fatalf("reviewer submission failed: %v", err)
	}

	out, err := svc.GetInteractions(ctx, clipID)
	if err != nil {
		t.Fatalf("GetInteractions failed: %v", err)
	}
	if out.Learner == nil || out.Learner.Window == nil {
		t.Fatalf("expected learner window resolved")
	}
	if out.Learner.Window.Name != "Parasternal long axis" {
		t.Fatalf("expected window name resolved, got %q", out.Learner.Window.Name)
	}
	if out.Learner.Finding == nil || out.Learner.Finding.Key != types.FindingKeyPositive {
		t.Fatalf("expected positive finding resolved")
	}
	if out.Learner.PossibleDiagnosis == nil || out.Learner.PossibleDiagnosis.Name != "Pericardial effusion" {
		t.Fatalf("expected diagnosis name resolved")
	}
	if out.Reviewer == nil || out.Reviewer.FinalDiagnosis == nil || out.Reviewer.FinalDiagnosis.Name != "Pericardial effusion" {
		t.Fatalf("expected reviewer final diagnosis resolved")
	}
}

func TestSubmitRejectsMissingIdentity(t *testing.T) {
	_, svc := newInteractionFixture(t)
	ctx := context.Background()

	err := svc.SubmitLearnerInteraction(ctx, uuid.Nil, uuid.New(), LearnerSubmission{})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil clip, got %v", err)
	}
	err = svc.SubmitReviewerInteraction(ctx, uuid.New(), uuid.Nil, ReviewerSubmission{})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil user, got %v", err)
	}
}
