package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	apperrors "github.com/Martinrodriguezc/portafolius-backend-sub001/internal/pkg/errors"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/repos"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

// ResponseInput is one raw score against a rubric item key. Score is a
// pointer so a missing or non-numeric score is distinguishable from zero
// and rejects the whole call.
type ResponseInput struct {
	ItemKey string   `json:"item_key"`
	Score   *float64 `json:"score"`
}

type AttemptReceipt struct {
	AttemptID   uuid.UUID `json:"attempt_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type AttemptSummary struct {
	ID           uuid.UUID `json:"id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	TotalScore   int       `json:"total_score"`
	ReviewerName string    `json:"reviewer_name"`
	Comment      *string   `json:"comment,omitempty"`
}

type ResponseView struct {
	ItemID uuid.UUID `json:"item_id"`
	Score  int       `json:"score"`
}

type EvaluationService interface {
	// CreateAttempt records one scored pass over a clip. Malformed
	// response shapes reject the whole call before any write; unknown
	// item keys are skipped per response; out-of-range scores are
	// clamped to [0, item.MaxScore], never rejected.
	CreateAttempt(ctx context.Context, clipID, reviewerID uuid.UUID, responses []ResponseInput, comment *string) (*AttemptReceipt, error)
	ListAttempts(ctx context.Context, clipID uuid.UUID) ([]*AttemptSummary, error)
	ListResponses(ctx context.Context, attemptID uuid.UUID) ([]*ResponseView, error)
}

type evaluationService struct {
	db           *gorm.DB
	log          *logger.Logger
	attemptRepo  repos.EvaluationAttemptRepo
	responseRepo repos.EvaluationResponseRepo
	itemRepo     repos.ScoringItemRepo
	userRepo     repos.UserRepo
}

func NewEvaluationService(
	db *gorm.DB,
	log *logger.Logger,
	attemptRepo repos.EvaluationAttemptRepo,
	responseRepo repos.EvaluationResponseRepo,
	itemRepo repos.ScoringItemRepo,
	userRepo repos.UserRepo,
) EvaluationService {
	serviceLog := log.With("service", "EvaluationService")
	return &evaluationService{
		db:           db,
		log:          serviceLog,
		attemptRepo:  attemptRepo,
		responseRepo: responseRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
	}
}

func (es *evaluationService) CreateAttempt(ctx context.Context, clipID, reviewerID uuid.UUID, responses []ResponseInput, comment *string) (*AttemptReceipt, error) {
	if clipID == uuid.Nil || reviewerID == uuid.Nil {
		return nil, fmt.Errorf("%w: clip and reviewer are required", apperrors.ErrInvalidInput)
	}
	if responses == nil {
		return nil, fmt.Errorf("%w: responses must be an array", apperrors.ErrInvalidInput)
	}
	for _, r := range responses {
		if r.Score == nil {
			return nil, fmt.Errorf("%w: every response needs a numeric score", apperrors.ErrInvalidInput)
		}
	}

	attempt := &types.EvaluationAttempt{
		ClipID:      clipID,
		ReviewerID:  reviewerID,
		SubmittedAt: time.Now().UTC(),
		Comment:     comment,
	}

	err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := es.attemptRepo.Create(ctx, tx, attempt); err != nil {
			return fmt.Errorf("failed to create attempt: %w", err)
		}

		rows := make([]*types.EvaluationResponse, 0, len(responses))
		for _, r := range responses {
			item, err := es.itemRepo.GetByKey(ctx, tx, r.ItemKey)
			if err != nil {
				return fmt.Errorf("failed to look up scoring item: %w", err)
			}
			if item == nil {
				// Stale or renamed item keys from older clients are
				// tolerated: drop the response, keep the attempt.
				es.log.Debug("Skipping response for unknown item key", "item_key", r.ItemKey)
				continue
			}
			rows = append(rows, &types.EvaluationResponse{
				AttemptID: attempt.ID,
				ItemID:    item.ID,
				Score:     clampScore(*r.Score, item.MaxScore),
			})
		}

		if _, err := es.responseRepo.Create(ctx, tx, rows); err != nil {
			return fmt.Errorf("failed to create responses: %w", err)
		}
		return nil
	})
	if err != nil {
		es.log.Error("CreateAttempt failed", "clip_id", clipID, "error", err)
		return nil, err
	}

	return &AttemptReceipt{AttemptID: attempt.ID, SubmittedAt: attempt.SubmittedAt}, nil
}

func (es *evaluationService) ListAttempts(ctx context.Context, clipID uuid.UUID) ([]*AttemptSummary, error) {
	attempts, err := es.attemptRepo.GetByClipID(ctx, nil, clipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	if len(attempts) == 0 {
		return []*AttemptSummary{}, nil
	}

	attemptIDs := make([]uuid.UUID, 0, len(attempts))
	reviewerIDs := make([]uuid.UUID, 0, len(attempts))
	for _, a := range attempts {
		attemptIDs = append(attemptIDs, a.ID)
		reviewerIDs = append(reviewerIDs, a.ReviewerID)
	}

	totals, err := es.responseRepo.TotalsByAttemptIDs(ctx, nil, attemptIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to total attempt scores: %w", err)
	}

	reviewers, err := es.userRepo.GetByIDs(ctx, nil, reviewerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reviewer names: %w", err)
	}
	namesByID := make(map[uuid.UUID]string, len(reviewers))
	for _, u := range reviewers {
		namesByID[u.ID] = u.FullName()
	}

	summaries := make([]*AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, &AttemptSummary{
			ID:           a.ID,
			SubmittedAt:  a.SubmittedAt,
			TotalScore:   totals[a.ID],
			ReviewerName: namesByID[a.ReviewerID],
			Comment:      a.Comment,
		})
	}
	return summaries, nil
}

func (es *evaluationService) ListResponses(ctx context.Context, attemptID uuid.UUID) ([]*ResponseView, error) {
	rows, err := es.responseRepo.GetByAttemptID(ctx, nil, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	views := make([]*ResponseView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &ResponseView{ItemID: row.ItemID, Score: row.Score})
	}
	return views, nil
}

func clampScore(raw float64, maxScore int) int {
	return int(math.Max(0, math.Min(float64(maxScore), raw)))
}
