package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

// TaxonomyRepo persists the two trees rooted at Protocol. Every Resolve
// method is an idempotent exists-or-insert keyed on (parent, key): the
// passed row either receives the existing row's identity or is inserted.
type TaxonomyRepo interface {
	ResolveProtocol(ctx context.Context, tx *gorm.DB, row *types.Protocol) error
	ResolveSection(ctx context.Context, tx *gorm.DB, row *types.ScoringSection) error
	ResolveItem(ctx context.Context, tx *gorm.DB, row *types.ScoringItem) error
	ResolveWindow(ctx context.Context, tx *gorm.DB, row *types.DiagnosticWindow) error
	ResolveFinding(ctx context.Context, tx *gorm.DB, row *types.Finding) error
	ResolvePossibleDiagnosis(ctx context.Context, tx *gorm.DB, row *types.PossibleDiagnosis) error
	ResolveSubdiagnosis(ctx context.Context, tx *gorm.DB, row *types.Subdiagnosis) error
	ResolveSubSubdiagnosis(ctx context.Context, tx *gorm.DB, row *types.SubSubdiagnosis) error
	ResolveThirdOrderDiagnosis(ctx context.Context, tx *gorm.DB, row *types.ThirdOrderDiagnosis) error

	GetProtocolByKey(ctx context.Context, tx *gorm.DB, key string) (*types.Protocol, error)
	GetWindowByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DiagnosticWindow, error)
	GetFindingByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Finding, error)
	GetPossibleDiagnosisByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PossibleDiagnosis, error)
	GetSubdiagnosisByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Subdiagnosis, error)
	GetSubSubdiagnosisByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubSubdiagnosis, error)
	GetThirdOrderDiagnosisByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ThirdOrderDiagnosis, error)
}

type taxonomyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaxonomyRepo(db *gorm.DB, baseLog *logger.Logger) TaxonomyRepo {
	repoLog := baseLog.With("repo", "TaxonomyRepo")
	return &taxonomyRepo{db: db, log: repoLog}
}

// resolveOrCreate looks the row up by cond, inserts it when absent, and
// re-reads on a duplicate-key race so concurrent seeders converge on the
// same row instead of failing.
func (r *taxonomyRepo) resolveOrCreate(ctx context.Context, tx *gorm.DB, dest interface{}, cond map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	err := transaction.WithContext(ctx).Where(cond).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := transaction.WithContext(ctx).Create(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return transaction.WithContext(ctx).Where(cond).First(dest).Error
		}
		return err
	}
	return nil
}

func (r *taxonomyRepo) ResolveProtocol(ctx context.Context, tx *gorm.DB, row *types.Protocol) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"key": row.Key})
}

func (r *taxonomyRepo) ResolveSection(ctx context.Context, tx *gorm.DB, row *types.ScoringSection) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"protocol_id": row.ProtocolID, "key": row.Key})
}

func (r *taxonomyRepo) ResolveItem(ctx context.Context, tx *gorm.DB, row *types.ScoringItem) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"section_id": row.SectionID, "key": row.Key})
}

func (r *taxonomyRepo) ResolveWindow(ctx context.Context, tx *gorm.DB, row *types.DiagnosticWindow) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"protocol_id": row.ProtocolID, "key": row.Key})
}

func (r *taxonomyRepo) ResolveFinding(ctx context.Context, tx *gorm.DB, row *types.Finding) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"window_id": row.WindowID, "key": row.Key})
}

func (r *taxonomyRepo) ResolvePossibleDiagnosis(ctx context.Context, tx *gorm.DB, row *types.PossibleDiagnosis) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"finding_id": row.FindingID, "key": row.Key})
}

func (r *taxonomyRepo) ResolveSubdiagnosis(ctx context.Context, tx *gorm.DB, row *types.Subdiagnosis) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"possible_diagnosis_id": row.PossibleDiagnosisID, "key": row.Key})
}

func (r *taxonomyRepo) ResolveSubSubdiagnosis(ctx context.Context, tx *gorm.DB, row *types.SubSubdiagnosis) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"subdiagnosis_id": row.SubdiagnosisID, "key": row.Key})
}

func (r *taxonomyRepo) ResolveThirdOrderDiagnosis(ctx context.Context, tx *gorm.DB, row *types.ThirdOrderDiagnosis) error {
	return r.resolveOrCreate(ctx, tx, row, map[string]interface{}{"sub_subdiagnosis_id": row.SubSubdiagnosisID, "key": row.Key})
}

func (r *taxonomyRepo) getByID(ctx context.Context, tx *gorm.DB, dest interface{}, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).First(dest).Error
}

func (r *taxonomyRepo) GetProtocolByKey(ctx context.Context, tx *gorm.DB, key string) (*types.Protocol, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Protocol
	if err := transaction.WithContext(ctx).Where("key = ?", key).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *taxonomyRepo) GetWindowByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DiagnosticWindow, error) {
	var row types.DiagnosticWindow
	if err := r.getByID(ctx, tx, &row, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *taxonomyRepo) GetFindingByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Finding, error) {
	var row types.Finding
	if err := r.getByID(ctx, tx, &row, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *taxonomyRepo) GetPossibleDiagnosisByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PossibleDiagnosis, error) {
	var row types.PossibleDiagnosis
	if err := r.getByID(ctx, tx, &row, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *taxonomyRepo) GetSubdiagnosisByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Subdiagnosis, error) {
	var row types.Subdiagnosis
	if err := r.getByID(ctx, tx, &row, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *taxonomyRepo) GetSubSubdiagnosisByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubSubdiagnosis, error) {
	var row types.SubSubdiagnosis
	if err := r.getByID(ctx, tx, &row, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *taxonomyRepo) GetThirdOrderDiagnosisByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ThirdOrderDiagnosis, error) {
	var row types.ThirdOrderDiagnosis
	if err := r.getByID(ctx, tx, &row, id); err != nil {
		return nil, err
	}
	return &row, nil
}
