package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

type EvaluationResponseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.EvaluationResponse) ([]*types.EvaluationResponse, error)
	GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.EvaluationResponse, error)
	// TotalsByAttemptIDs sums stored scores per attempt. Attempts with
	// no responses are simply absent from the map.
	TotalsByAttemptIDs(ctx context.Context, tx *gorm.DB, attemptIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type evaluationResponseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvaluationResponseRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationResponseRepo {
	repoLog := baseLog.With("repo", "EvaluationResponseRepo")
	return &evaluationResponseRepo{db: db, log: repoLog}
}

func (r *evaluationResponseRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.EvaluationResponse) ([]*types.EvaluationResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.EvaluationResponse{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *evaluationResponseRepo) GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.EvaluationResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EvaluationResponse
	if attemptID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *evaluationResponseRepo) TotalsByAttemptIDs(ctx context.Context, tx *gorm.DB, attemptIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	totals := make(map[uuid.UUID]int, len(attemptIDs))
	if len(attemptIDs) == 0 {
		return totals, nil
	}

	var rows []struct {
		AttemptID uuid.UUID
		Total     int
	}
	if err := transaction.WithContext(ctx).
		Model(&types.EvaluationResponse{}).
		Select("attempt_id, SUM(score) AS total").
		Where("attempt_id IN ?", attemptIDs).
		Group("attempt_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		totals[row.AttemptID] = row.Total
	}
	return totals, nil
}
