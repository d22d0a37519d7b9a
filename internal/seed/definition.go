// Package seed holds the declarative taxonomy definition consumed by the
// taxonomy seeder at process start. Definitions ship as YAML
// (configs/taxonomy.yaml) so protocol rubrics and diagnostic trees can be
// adjusted without code changes.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Definition struct {
	Protocols []ProtocolDef `yaml:"protocols"`
}

type ProtocolDef struct {
	Key      string       `yaml:"key"`
	Name     string       `yaml:"name"`
	Sections []SectionDef `yaml:"sections"`
	Windows  []WindowDef  `yaml:"windows"`
}

type SectionDef struct {
	Key       string    `yaml:"key"`
	Name      string    `yaml:"name"`
	SortOrder int       `yaml:"sort_order"`
	Items     []ItemDef `yaml:"items"`
}

type ItemDef struct {
	Key        string `yaml:"key"`
	Label      string `yaml:"label"`
	ScoreScale string `yaml:"score_scale"`
	MaxScore   int    `yaml:"max_score"`
}

type WindowDef struct {
	Key      string       `yaml:"key"`
	Name     string       `yaml:"name"`
	Findings []FindingDef `yaml:"findings"`
}

// FindingDef carries the diagnoses reachable under one finding of a
// window. Whatever keys a definition lists, the seeder materializes
// exactly the fixed positive/negative pair per window.
type FindingDef struct {
	Key       string         `yaml:"key"`
	Name      string         `yaml:"name"`
	Diagnoses []DiagnosisDef `yaml:"diagnoses"`
}

// DiagnosisDef is one node of the differential-diagnosis branch. Nesting
// maps to PossibleDiagnosis -> Subdiagnosis -> SubSubdiagnosis ->
// ThirdOrderDiagnosis.
type DiagnosisDef struct {
	Key      string         `yaml:"key"`
	Name     string         `yaml:"name"`
	Children []DiagnosisDef `yaml:"children"`
}

func Load(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy definition: %w", err)
	}
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy definition: %w", err)
	}
	for i, p := range def.Protocols {
		if p.Key == "" {
			return nil, fmt.Errorf("protocol %d is missing a key", i)
		}
	}
	return &def, nil
}
