package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/repos"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/seed"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
)

// TaxonomySeeder materializes a declarative taxonomy definition into the
// store. Safe to run on every process start and under concurrent starts:
// every node resolves to exactly one row regardless of how many times or
// from how many processes it is seeded. A broken branch is logged and
// skipped; seeding never takes the process down.
type TaxonomySeeder interface {
	Seed(ctx context.Context, def *seed.Definition)
}

type taxonomySeeder struct {
	db           *gorm.DB
	log          *logger.Logger
	taxonomyRepo repos.TaxonomyRepo
}

func NewTaxonomySeeder(db *gorm.DB, log *logger.Logger, taxonomyRepo repos.TaxonomyRepo) TaxonomySeeder {
	serviceLog := log.With("service", "TaxonomySeeder")
	return &taxonomySeeder{db: db, log: serviceLog, taxonomyRepo: taxonomyRepo}
}

func (s *taxonomySeeder) Seed(ctx context.Context, def *seed.Definition) {
	if def == nil {
		return
	}
	for i := range def.Protocols {
		protoDef := &def.Protocols[i]
		proto := &types.Protocol{Key: protoDef.Key, Name: protoDef.Name}
		if err := s.taxonomyRepo.ResolveProtocol(ctx, nil, proto); err != nil {
			s.log.Error("Failed to resolve protocol, skipping its taxonomy", "protocol_key", protoDef.Key, "error", err)
			continue
		}
		if err := s.seedRubric(ctx, proto, protoDef.Sections); err != nil {
			s.log.Error("Failed to seed scoring rubric, skipping rest of protocol", "protocol_key", protoDef.Key, "error", err)
			continue
		}
		if err := s.seedDiagnosticTree(ctx, proto, protoDef.Windows); err != nil {
			s.log.Error("Failed to seed diagnostic tree, skipping rest of protocol", "protocol_key", protoDef.Key, "error", err)
			continue
		}
		s.log.Info("Seeded protocol taxonomy", "protocol_key", protoDef.Key)
	}
}

func (s *taxonomySeeder) seedRubric(ctx context.Context, proto *types.Protocol, sections []seed.SectionDef) error {
	for _, sectionDef := range sections {
		section := &types.ScoringSection{
			ProtocolID: proto.ID,
			Key:        sectionDef.Key,
			Name:       sectionDef.Name,
			SortOrder:  sectionDef.SortOrder,
		}
		if err := s.taxonomyRepo.ResolveSection(ctx, nil, section); err != nil {
			return err
		}
		for _, itemDef := range sectionDef.Items {
			maxScore := itemDef.MaxScore
			if maxScore < 0 {
				maxScore = 0
			}
			item := &types.ScoringItem{
				SectionID:  section.ID,
				Key:        itemDef.Key,
				Label:      itemDef.Label,
				ScoreScale: itemDef.ScoreScale,
				MaxScore:   maxScore,
			}
			if err := s.taxonomyRepo.ResolveItem(ctx, nil, item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *taxonomySeeder) seedDiagnosticTree(ctx context.Context, proto *types.Protocol, windows []seed.WindowDef) error {
	// Deep branches are seeded once per distinct possible-diagnosis key
	// within a protocol: the first window/finding pair that introduces a
	// key owns its descendants, later occurrences reuse the branch.
	seededBranches := make(map[string]bool)

	for _, windowDef := range windows {
		window := &types.DiagnosticWindow{
			ProtocolID: proto.ID,
			Key:        windowDef.Key,
			Name:       windowDef.Name,
		}
		if err := s.taxonomyRepo.ResolveWindow(ctx, nil, window); err != nil {
			return err
		}

		// Exactly two findings per window, fixed keys, regardless of
		// what the definition lists.
		for _, findingKey := range []string{types.FindingKeyPositive, types.FindingKeyNegative} {
			findingDef := findingDefByKey(windowDef.Findings, findingKey)
			findingName := defaultFindingName(findingKey)
			if findingDef != nil && findingDef.Name != "" {
				findingName = findingDef.Name
			}
			finding := &types.Finding{
				WindowID: window.ID,
				Key:      findingKey,
				Name:     findingName,
			}
			if err := s.taxonomyRepo.ResolveFinding(ctx, nil, finding); err != nil {
				return err
			}
			if findingDef == nil {
				continue
			}

			for _, diagnosisDef := range findingDef.Diagnoses {
				diagnosis := &types.PossibleDiagnosis{
					FindingID: finding.ID,
					Key:       diagnosisDef.Key,
					Name:      diagnosisDef.Name,
				}
				if err := s.taxonomyRepo.ResolvePossibleDiagnosis(ctx, nil, diagnosis); err != nil {
					return err
				}
				if seededBranches[diagnosisDef.Key] {
					continue
				}
				seededBranches[diagnosisDef.Key] = true
				if err := s.seedSubdiagnoses(ctx, diagnosis, diagnosisDef.Children); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *taxonomySeeder) seedSubdiagnoses(ctx context.Context, parent *types.PossibleDiagnosis, defs []seed.DiagnosisDef) error {
	for _, def := range defs {
		sub := &types.Subdiagnosis{
			PossibleDiagnosisID: parent.ID,
			Key:                 def.Key,
			Name:                def.Name,
		}
		if err := s.taxonomyRepo.ResolveSubdiagnosis(ctx, nil, sub); err != nil {
			return err
		}
		for _, childDef := range def.Children {
			subSub := &types.SubSubdiagnosis{
				SubdiagnosisID: sub.ID,
				Key:            childDef.Key,
				Name:           childDef.Name,
			}
			if err := s.taxonomyRepo.ResolveSubSubdiagnosis(ctx, nil, subSub); err != nil {
				return err
			}
			for _, leafDef := range childDef.Children {
				leaf := &types.ThirdOrderDiagnosis{
					SubSubdiagnosisID: subSub.ID,
					Key:               leafDef.Key,
					Name:              leafDef.Name,
				}
				if err := s.taxonomyRepo.ResolveThirdOrderDiagnosis(ctx, nil, leaf); err != nil {
					return err
				}
				if len(leafDef.Children) > 0 {
					s.log.Warn("Diagnosis nesting deeper than third order is ignored", "key", leafDef.Key)
				}
			}
		}
	}
	return nil
}

func findingDefByKey(defs []seed.FindingDef, key string) *seed.FindingDef {
	for i := range defs {
		if defs[i].Key == key {
			return &defs[i]
		}
	}
	return nil
}

func defaultFindingName(key string) string {
	switch key {
	case types.FindingKeyPositive:
		return "Positive"
	case types.FindingKeyNegative:
		return "Negative"
	default:
		return key
	}
}
