package services

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/seed"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

// newTestDB opens a per-test in-memory sqlite database with the full
// schema. TranslateError is on so duplicate-key violations surface as
// gorm.ErrDuplicatedKey, matching the postgres setup.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(
		&types.User{},
		&types.Protocol{},
		&types.ScoringSection{},
		&types.ScoringItem{},
		&types.DiagnosticWindow{},
		&types.Finding{},
		&types.PossibleDiagnosis{},
		&types.Subdiagnosis{},
		&types.SubSubdiagnosis{},
		&types.ThirdOrderDiagnosis{},
		&types.EvaluationAttempt{},
		&types.EvaluationResponse{},
		&types.ClipInteraction{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func countRows(t *testing.T, gdb *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := gdb.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

// testDefinition is a small but complete taxonomy: one protocol with a
// rubric and two windows sharing the effusion diagnosis key.
func testDefinition() *seed.Definition {
	return &seed.Definition{
		Protocols: []seed.ProtocolDef{
			{
				Key:  "cardiac",
				Name: "Cardiac",
				Sections: []seed.SectionDef{
					{
						Key:       "acquisition",
						Name:      "Image Acquisition",
						SortOrder: 1,
						Items: []seed.ItemDef{
							{Key: "window_selection", Label: "Window selection", ScoreScale: "zero_to_ten", MaxScore: 10},
							{Key: "depth_gain", Label: "Depth and gain", ScoreScale: "zero_to_ten", MaxScore: 10},
							{Key: "image_quality", Label: "Image quality", ScoreScale: "zero_to_ten", MaxScore: 10},
						},
					},
				},
				Windows: []seed.WindowDef{
					{
						Key:  "parasternal_long",
						Name: "Parasternal long axis",
						Findings: []seed.FindingDef{
							{
								Key:  "positive",
								Name: "Positive",
								Diagnoses: []seed.DiagnosisDef{
									{
										Key:  "effusion",
										Name: "Pericardial effusion",
										Children: []seed.DiagnosisDef{
											{
												Key:  "large_effusion",
												Name: "Large effusion",
												Children: []seed.DiagnosisDef{
													{
														Key:  "tamponade",
														Name: "Tamponade physiology",
														Children: []seed.DiagnosisDef{
															{Key: "rv_collapse", Name: "RV collapse"},
														},
													},
												},
											},
										},
									},
								},
							},
							{Key: "negative", Name: "Negative"},
						},
					},
					{
						Key:  "subcostal",
						Name: "Subcostal",
						Findings: []seed.FindingDef{
							{
								Key:  "positive",
								Name: "Positive",
								Diagnoses: []seed.DiagnosisDef{
									{
										Key:  "effusion",
										Name: "Pericardial effusion",
										Children: []seed.DiagnosisDef{
											{Key: "large_effusion", Name: "Large effusion"},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
