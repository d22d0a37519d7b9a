package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/Martinrodriguezc/portafolius-backend-sub001/internal/pkg/errors"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/repos"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

func newEvaluationFixture(t *testing.T) (*gorm.DB, EvaluationService) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger()

	seeder := NewTaxonomySeeder(gdb, log, repos.NewTaxonomyRepo(gdb, log))
	seeder.Seed(context.Background(), testDefinition())

	svc := NewEvaluationService(
		gdb,
		log,
		repos.NewEvaluationAttemptRepo(gdb, log),
		repos.NewEvaluationResponseRepo(gdb, log),
		repos.NewScoringItemRepo(gdb, log),
		repos.NewUserRepo(gdb, log),
	)
	return gdb, svc
}

func itemIDByKey(t *testing.T, gdb *gorm.DB, key string) uuid.UUID {
	t.Helper()
	var item types.ScoringItem
	if err := gdb.Where("key = ?", key).First(&item).Error; err != nil {
		t.Fatalf("failed to load item %q: %v", key, err)
	}
	return item.ID
}

func floatPtr(f float64) *float64 { return &f }

func TestCreateAttemptClampsScores(t *testing.T) {
	gdb, svc := newEvaluationFixture(t)
	ctx := context.Background()
	clipID := uuid.New()
	reviewerID := uuid.New()

	receipt, err := svc.CreateAttempt(ctx, clipID, reviewerID, []ResponseInput{
		{ItemKey: "window_selection", Score: floatPtr(150)},
		{ItemKey: "depth_gain", Score: floatPtr(-5)},
		{ItemKey: "image_quality", Score: floatPtr(7)},
	}, nil)
	if err != nil {
		t.Fatalf("CreateAttempt failed: %v", err)
	}

	responses, err := svc.ListResponses(ctx, receipt.AttemptID)
	if err != nil {
		t.Fatalf("ListResponses failed: %v", err)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(responses))
	}

	scores := map[uuid.UUID]int{}
	for _, r := range responses {
		scores[r.ItemID] = r.Score
	}
	if got := scores[itemIDByKey(t, gdb, "window_selection")]; got != 10 {
		t.Fatalf("expected 150 clamped to 10, got %d", got)
	}
	if got := scores[itemIDByKey(t, gdb, "depth_gain")]; got != 0 {
		t.Fatalf("expected -5 clamped to 0, got %d", got)
	}
	if got := scores[itemIDByKey(t, gdb, "image_quality")]; got != 7 {
		t.Fatalf("expected 7 stored as 7, got %d", got)
	}
}

func TestCreateAttemptRejectsMalformedResponses(t *testing.T) {
	gdb, svc := newEvaluationFixture(t)
	ctx := context.Background()

	// Missing responses array.
	_, err := svc.CreateAttempt(ctx, uuid.New(), uuid.New(), nil, nil)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil responses, got %v", err)
	}

	// An element without a numeric score rejects the whole call.
	_, err = svc.CreateAttempt(ctx, uuid.New(), uuid.New(), []ResponseInput{
		{ItemKey: "window_selection", Score: floatPtr(5)},
		{ItemKey: "depth_gain", Score: nil},
	}, nil)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing score, got %v", err)
	}

	if n := countRows(t, gdb, &types.EvaluationAttempt{}); n != 0 {
		t.Fatalf("expected no attempts written, got %d", n)
	}
	if n := countRows(t, gdb, &types.EvaluationResponse{}); n != 0 {
		t.Fatalf("expected no responses written, got %d", n)
	}
}

func TestCreateAttemptSkipsUnknownItemKeys(t *testing.T) {
	_, svc := newEvaluationFixture(t)
	ctx := context.Background()

	receipt, err := svc.CreateAttempt(ctx, uuid.New(), uuid.New(), []ResponseInput{
		{ItemKey: "window_selection", Score: floatPtr(5)},
		{ItemKey: "renamed_item_from_old_client", Score: floatPtr(5)},
	}, nil)
	if err != nil {
		t.Fatalf("CreateAttempt failed: %v", err)
	}

	responses, err := svc.ListResponses(ctx, receipt.AttemptID)
	if err != nil {
		t.Fatalf("ListResponses failed: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected unknown item skipped, got %d responses", len(responses))
	}
}

func TestListAttemptsTotalsAndOrdering(t *testing.T) {
	gdb, svc := newEvaluationFixture(t)
	ctx := context.Background()
	clipID := uuid.New()

	reviewer := &types.User{Email: "reviewer@example.com", FirstName: "Ana", LastName: "Silva", Role: types.RoleReviewer}
	if err := gdb.Create(reviewer).Error; err != nil {
		t.Fatalf("failed to create reviewer: %v", err)
	}

	first, err := svc.CreateAttempt(ctx, clipID, reviewer.ID, []ResponseInput{
		{ItemKey: "window_selection", Score: floatPtr(8)},
		{ItemKey: "depth_gain", Score: floatPtr(9)},
		{ItemKey: "image_quality", Score: floatPtr(7)},
	}, nil)
	if err != nil {
		t.Fatalf("first CreateAttempt failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	second, err := svc.CreateAttempt(ctx, clipID, reviewer.ID, []ResponseInput{}, nil)
	if err != nil {
		t.Fatalf("second CreateAttempt failed: %v", err)
	}

	attempts, err := svc.ListAttempts(ctx, clipID)
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}

	// Newest submission first.
	if attempts[0].ID != second.AttemptID {
		t.Fatalf("expected newest attempt first")
	}
	if attempts[0].TotalScore != 0 {
		t.Fatalf("expected empty attempt total 0, got %d", attempts[0].TotalScore)
	}
	if attempts[1].ID != first.AttemptID {
		t.Fatalf("expected older attempt second")
	}
	if attempts[1].TotalScore != 24 {
		t.Fatalf("expected total 24, got %d", attempts[1].TotalScore)
	}
	if attempts[1].ReviewerName != "Ana Silva" {
		t.Fatalf("expected reviewer name resolved, got %q", attempts[1].ReviewerName)
	}
}

func TestListAttemptsEmptyClip(t *testing.T) {
	_, svc := newEvaluationFixture(t)

	attempts, err := svc.ListAttempts(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(attempts) != 0 {
		t.Fatalf("expected no attempts, got %d", len(attempts))
	}
}
