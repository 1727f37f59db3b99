package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ScoreStatus string

const (
	StatusQueued     ScoreStatus = "queued"
	StatusProcessing ScoreStatus = "processing"
	StatusCompleted  ScoreStatus = "completed"
	StatusFailed     ScoreStatus = "failed"
)

// Score is one scoring job for an uploaded document. Result columns stay nil
// until the job completes.
type Score struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"document_id"`
	Status          ScoreStatus `gorm:"not null;default:'queued'" json:"status"`
	Total           *float64    `gorm:"type:decimal(6,2)" json:"total,omitempty"`
	KeywordScore    *float64    `json:"keyword_score,omitempty"`
	SectionScore    *float64    `json:"section_score,omitempty"`
	FormattingScore *float64    `json:"formatting_score,omitempty"`
	BulletScore     *float64    `json:"bullet_score,omitempty"`
	FileTypeScore   *float64    `json:"file_type_score,omitempty"`
	MatchedKeywords *string     `gorm:"type:text" json:"matched_keywords,omitempty"`
	MatchedSections *string     `gorm:"type:text" json:"matched_sections,omitempty"`
	TabCount        *int        `json:"tab_count,omitempty"`
	ErrorMessage    *string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt       time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Score) TableName() string {
	return "scores"
}

// EncodeMatches stores a matched-entry list as a JSON array, so entries may
// contain commas or any other character.
func EncodeMatches(entries []string) string {
	if entries == nil {
		entries = []string{}
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// DecodeMatches reads a list written by EncodeMatches. A missing or unreadable
// value decodes to an empty list.
func DecodeMatches(value *string) []string {
	entries := []string{}
	if value == nil || *value == "" {
		return entries
	}
	if err := json.Unmarshal([]byte(*value), &entries); err != nil || entries == nil {
		return []string{}
	}
	return entries
}
