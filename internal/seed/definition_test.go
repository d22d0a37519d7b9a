package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write definition file: %v", err)
	}
	return path
}

func TestLoadParsesDefinition(t *testing.T) {
	path := writeDefinition(t, `
protocols:
  - key: cardiac
    name: Cardiac
    sections:
      - key: acquisition
        name: Image Acquisition
        sort_order: 1
        items:
          - key: image_quality
            label: Image quality
            score_scale: zero_to_ten
            max_score: 10
    windows:
      - key: parasternal_long
        name: Parasternal long axis
        findings:
          - key: positive
            name: Positive
            diagnoses:
              - key: effusion
                name: Pericardial effusion
                children:
                  - key: large_effusion
                    name: Large effusion
`)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(def.Protocols) != 1 {
		t.Fatalf("expected 1 protocol, got %d", len(def.Protocols))
	}
	p := def.Protocols[0]
	if p.Key != "cardiac" {
		t.Fatalf("expected protocol key cardiac, got %q", p.Key)
	}
	if len(p.Sections) != 1 || p.Sections[0].Items[0].MaxScore != 10 {
		t.Fatalf("unexpected sections: %+v", p.Sections)
	}
	if len(p.Windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(p.Windows))
	}
	diagnoses := p.Windows[0].Findings[0].Diagnoses
	if len(diagnoses) != 1 || len(diagnoses[0].Children) != 1 {
		t.Fatalf("unexpected diagnosis nesting: %+v", diagnoses)
	}
}

func TestLoadRejectsProtocolWithoutKey(t *testing.T) {
	path := writeDefinition(t, `
protocols:
  - name: Nameless
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for protocol without key")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeDefinition(t, "protocols: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
