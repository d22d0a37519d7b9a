package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

type ScoringItemRepo interface {
	// GetByKey resolves a rubric item by its caller-facing key.
	// Returns (nil, nil) when no item carries the key; stale keys from
	// older clients are tolerated upstream.
	GetByKey(ctx context.Context, tx *gorm.DB, key string) (*types.ScoringItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ScoringItem, error)
	GetBySectionID(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.ScoringItem, error)
}

type scoringItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoringItemRepo(db *gorm.DB, baseLog *logger.Logger) ScoringItemRepo {
	repoLog := baseLog.With("repo", "ScoringItemRepo")
	return &scoringItemRepo{db: db, log: repoLog}
}

func (r *scoringItemRepo) GetByKey(ctx context.Context, tx *gorm.DB, key string) (*types.ScoringItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.ScoringItem
	if err := transaction.WithContext(ctx).Where("key = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *scoringItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ScoringItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ScoringItem
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

func (r *scoringItemRepo) GetBySectionID(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.ScoringItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ScoringItem
	if sectionID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
