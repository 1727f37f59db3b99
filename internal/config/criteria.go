package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Criteria holds the tables the score calculator matches against. A loaded
// Criteria is treated as read-only.
type Criteria struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
	Sections []string `yaml:"sections" json:"sections"`
}

// DefaultCriteria returns the tech-job tables the scorer ships with.
func DefaultCriteria() Criteria {
	return Criteria{
		Keywords: []string{
			"python",
			"java",
			"html",
			"css",
			"javascript",
			"machine learning",
			"sql",
			"data analysis",
		},
		Sections: []string{
			"experience",
			"education",
			"skills",
			"projects",
			"certifications",
		},
	}
}

// LoadCriteriaFile reads a YAML file of the form
//
//	keywords: [python, sql]
//	sections: [experience, skills]
//
// A table missing from the file keeps its default.
func LoadCriteriaFile(path string) (Criteria, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Criteria{}, fmt.Errorf("failed to read criteria file: %w", err)
	}

	var fileCriteria Criteria
	if err := yaml.Unmarshal(raw, &fileCriteria); err != nil {
		return Criteria{}, fmt.Errorf("failed to parse criteria file %s: %w", path, err)
	}

	return DefaultCriteria().Merge(fileCriteria).Normalize(), nil
}

// Criteria resolves the tables for this deployment: the criteria file wins,
// then the ATS_KEYWORDS / ATS_SECTIONS lists, then the defaults.
func (s ScoringConfig) Criteria() (Criteria, error) {
	if s.CriteriaFile != "" {
		return LoadCriteriaFile(s.CriteriaFile)
	}

	return DefaultCriteria().Merge(Criteria{
		Keywords: s.Keywords,
		Sections: s.Sections,
	}).Normalize(), nil
}

// Merge returns c with every non-empty table of override applied.
func (c Criteria) Merge(override Criteria) Criteria {
	merged := Criteria{
		Keywords: append([]string(nil), c.Keywords...),
		Sections: append([]string(nil), c.Sections...),
	}
	if len(override.Keywords) > 0 {
		merged.Keywords = append([]string(nil), override.Keywords...)
	}
	if len(override.Sections) > 0 {
		merged.Sections = append([]string(nil), override.Sections...)
	}
	return merged
}

// Normalize lowercases and trims every entry, dropping blanks and duplicates.
// Matching runs against lowercased text, so an uppercase entry could never hit.
func (c Criteria) Normalize() Criteria {
	return Criteria{
		Keywords: normalizeTable(c.Keywords),
		Sections: normalizeTable(c.Sections),
	}
}

func normalizeTable(entries []string) []string {
	lower := cases.Lower(language.Und)
	seen := make(map[string]struct{}, len(entries))
	table := make([]string, 0, len(entries))

	for _, entry := range entries {
		entry = lower.String(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		table = append(table, entry)
	}

	return table
}
