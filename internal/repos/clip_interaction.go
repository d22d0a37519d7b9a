package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

type ClipInteractionRepo interface {
	// Create inserts one interaction row. A second insert for the same
	// (clip_id, role) fails with gorm.ErrDuplicatedKey via the
	// uq_clip_interaction_clip_role index; callers surface that as a
	// conflict, never as an overwrite.
	Create(ctx context.Context, tx *gorm.DB, row *types.ClipInteraction) (*types.ClipInteraction, error)
	// GetByClipID returns the interaction rows for a clip ordered by
	// creation time. At most two rows exist: one per role.
	GetByClipID(ctx context.Context, tx *gorm.DB, clipID uuid.UUID) ([]*types.ClipInteraction, error)
}

type clipInteractionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClipInteractionRepo(db *gorm.DB, baseLog *logger.Logger) ClipInteractionRepo {
	repoLog := baseLog.With("repo", "ClipInteractionRepo")
	return &clipInteractionRepo{db: db, log: repoLog}
}

func (r *clipInteractionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ClipInteraction) (*types.ClipInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *clipInteractionRepo) GetByClipID(ctx context.Context, tx *gorm.DB, clipID uuid.UUID) ([]*types.ClipInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ClipInteraction
	if clipID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("clip_id = ?", clipID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
