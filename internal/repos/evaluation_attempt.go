package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

type EvaluationAttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.EvaluationAttempt) (*types.EvaluationAttempt, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.EvaluationAttempt, error)
	// GetByClipID returns attempts for a clip, newest submission first.
	GetByClipID(ctx context.Context, tx *gorm.DB, clipID uuid.UUID) ([]*types.EvaluationAttempt, error)
}

type evaluationAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvaluationAttemptRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationAttemptRepo {
	repoLog := baseLog.With("repo", "EvaluationAttemptRepo")
	return &evaluationAttemptRepo{db: db, log: repoLog}
}

func (r *evaluationAttemptRepo) Create(ctx context.Context, tx *gorm.DB, row *types.EvaluationAttempt) (*types.EvaluationAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *evaluationAttemptRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.EvaluationAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EvaluationAttempt
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *evaluationAttemptRepo) GetByClipID(ctx context.Context, tx *gorm.DB, clipID uuid.UUID) ([]*types.EvaluationAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EvaluationAttempt
	if clipID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("clip_id = ?", clipID).
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
