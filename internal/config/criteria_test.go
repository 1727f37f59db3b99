package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultCriteria(t *testing.T) {
	c := DefaultCriteria()
	if len(c.Keywords) != 8 || len(c.Sections) != 5 {
		t.Fatalf("unexpected default table sizes: %d keywords, %d sections", len(c.Keywords), len(c.Sections))
	}
	if !reflect.DeepEqual(c, c.Normalize()) {
		t.Fatalf("defaults must already be normalized")
	}
}

func TestCriteriaNormalize(t *testing.T) {
	c := Criteria{
		Keywords: []string{" Go ", "go", "", "Machine Learning"},
		Sections: []string{"EXPERIENCE", "  "},
	}.Normalize()

	if want := []string{"go", "machine learning"}; !reflect.DeepEqual(c.Keywords, want) {
		t.Fatalf("expected %v, got %v", want, c.Keywords)
	}
	if want := []string{"experience"}; !reflect.DeepEqual(c.Sections, want) {
		t.Fatalf("expected %v, got %v", want, c.Sections)
	}
}

func TestLoadCriteriaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	content := "keywords:\n  - Go\n  - Kubernetes\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write criteria: %v", err)
	}

	c, err := LoadCriteriaFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"go", "kubernetes"}; !reflect.DeepEqual(c.Keywords, want) {
		t.Fatalf("expected %v, got %v", want, c.Keywords)
	}
	if !reflect.DeepEqual(c.Sections, DefaultCriteria().Sections) {
		t.Fatalf("sections missing from the file must keep defaults, got %v", c.Sections)
	}
}

func TestLoadCriteriaFile_Errors(t *testing.T) {
	if _, err := LoadCriteriaFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("keywords: [unclosed"), 0o644); err != nil {
		t.Fatalf("write criteria: %v", err)
	}
	if _, err := LoadCriteriaFile(path); err == nil {
		t.Fatalf("expected error for invalid yaml")
	}
}

func TestScoringConfigCriteria(t *testing.T) {
	c, err := ScoringConfig{Sections: []string{"Summary"}}.Criteria()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(c.Keywords, DefaultCriteria().Keywords) {
		t.Fatalf("expected default keywords, got %v", c.Keywords)
	}
	if want := []string{"summary"}; !reflect.DeepEqual(c.Sections, want) {
		t.Fatalf("expected %v, got %v", want, c.Sections)
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	base := DefaultCriteria()
	merged := base.Merge(Criteria{})
	merged.Keywords[0] = "cobol"

	if base.Keywords[0] != "python" {
		t.Fatalf("merge aliased the base table")
	}
}
