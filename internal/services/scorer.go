package services

import (
	"math"
	"strings"

	"alfredoptarigan/ats-scorer/internal/config"
)

const (
	KeywordWeight      = 40.0
	SectionWeight      = 20.0
	FormattingWeight   = 20.0
	FormattingPenalty  = 10.0
	TabThreshold       = 5
	BulletWeight       = 10.0
	FileTypePreferred  = 10.0
	FileTypeFallback   = 5.0
	preferredExtension = ".docx"
)

// BulletMarkers are the substrings that count as bullet usage: an ASCII
// hyphen, the bullet glyph U+2022, and that glyph's UTF-8 bytes decoded as
// Windows-1252 ("â€¢"), which survives lowercasing unchanged.
var BulletMarkers = []string{"-", "•", "â€¢"}

// ScoreReport is the result of scoring one document. Sub-scores are kept
// unrounded; Total is rounded to two decimals.
type ScoreReport struct {
	Total           float64  `json:"total"`
	KeywordScore    float64  `json:"keyword_score"`
	SectionScore    float64  `json:"section_score"`
	FormattingScore float64  `json:"formatting_score"`
	BulletScore     float64  `json:"bullet_score"`
	FileTypeScore   float64  `json:"file_type_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MatchedSections []string `json:"matched_sections"`
	TabCount        int      `json:"tab_count"`
}

type ScoreOptions struct {
	// FileTypeFromFormat awards the file-type score from the declared format
	// instead of looking for ".docx" in the text.
	FileTypeFromFormat bool
	// ClampTotal bounds the total to [0, 100].
	ClampTotal bool
}

type ScoreCalculator interface {
	CalculateScore(text NormalizedText) ScoreReport
	CalculateScoreForFormat(text NormalizedText, format DocumentFormat) ScoreReport
	Criteria() config.Criteria
	Options() ScoreOptions
}

type scoreCalculator struct {
	keywords []string
	sections []string
	opts     ScoreOptions
}

// NewScoreCalculator copies the criteria tables; later changes to the caller's
// slices do not reach the calculator.
func NewScoreCalculator(criteria config.Criteria, opts ScoreOptions) ScoreCalculator {
	return &scoreCalculator{
		keywords: append([]string(nil), criteria.Keywords...),
		sections: append([]string(nil), criteria.Sections...),
		opts:     opts,
	}
}

// CalculateScore implements ScoreCalculator. The file-type score always comes
// from the text here, since no format is known.
func (s *scoreCalculator) CalculateScore(text NormalizedText) ScoreReport {
	return s.calculate(string(text), fileTypeFromContent(string(text)))
}

// CalculateScoreForFormat implements ScoreCalculator.
func (s *scoreCalculator) CalculateScoreForFormat(text NormalizedText, format DocumentFormat) ScoreReport {
	fileType := fileTypeFromContent(string(text))
	if s.opts.FileTypeFromFormat {
		fileType = FileTypeFallback
		if format == FormatDOCX {
			fileType = FileTypePreferred
		}
	}
	return s.calculate(string(text), fileType)
}

// Criteria implements ScoreCalculator.
func (s *scoreCalculator) Criteria() config.Criteria {
	return config.Criteria{
		Keywords: append([]string(nil), s.keywords...),
		Sections: append([]string(nil), s.sections...),
	}
}

// Options implements ScoreCalculator.
func (s *scoreCalculator) Options() ScoreOptions {
	return s.opts
}

func (s *scoreCalculator) calculate(text string, fileTypeScore float64) ScoreReport {
	matchedKeywords := matchTable(text, s.keywords)
	matchedSections := matchTable(text, s.sections)
	tabCount := strings.Count(text, "\t")

	report := ScoreReport{
		KeywordScore:    ratio(len(matchedKeywords), len(s.keywords)) * KeywordWeight,
		SectionScore:    ratio(len(matchedSections), len(s.sections)) * SectionWeight,
		FormattingScore: formattingScore(tabCount),
		BulletScore:     bulletScore(text),
		FileTypeScore:   fileTypeScore,
		MatchedKeywords: matchedKeywords,
		MatchedSections: matchedSections,
		TabCount:        tabCount,
	}

	total := report.KeywordScore +
		report.SectionScore +
		report.FormattingScore +
		report.BulletScore +
		report.FileTypeScore

	if s.opts.ClampTotal {
		total = math.Max(0, math.Min(100, total))
	}
	report.Total = roundTo2(total)

	return report
}

// matchTable lists the entries occurring anywhere in text. Matching is plain
// substring presence, so "java" also matches inside "javascript".
func matchTable(text string, table []string) []string {
	matched := make([]string, 0, len(table))
	for _, entry := range table {
		if strings.Contains(text, entry) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// ratio is 0 for an empty table.
func ratio(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

func formattingScore(tabCount int) float64 {
	penalty := 0.0
	if tabCount > TabThreshold {
		penalty = FormattingPenalty
	}
	return math.Max(0, FormattingWeight-penalty)
}

func bulletScore(text string) float64 {
	for _, marker := range BulletMarkers {
		if strings.Contains(text, marker) {
			return BulletWeight
		}
	}
	return 0
}

func fileTypeFromContent(text string) float64 {
	if strings.Contains(text, preferredExtension) {
		return FileTypePreferred
	}
	return FileTypeFallback
}

// roundTo2 rounds half away from zero.
func roundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}
