package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Format       string `json:"format"`
}

type EvaluateRequest struct {
	DocumentID string `json:"document_id" validate:"required,uuid"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string     `json:"id"`
	DocumentID   string     `json:"document_id"`
	Status       string     `json:"status"`
	Result       *ScoreData `json:"result,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
}

type ScoreResponse struct {
	Filename string    `json:"filename"`
	Format   string    `json:"format"`
	Score    ScoreData `json:"score"`
}

type ScoreData struct {
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

type CriteriaResponse struct {
	Keywords           []string           `json:"keywords"`
	Sections           []string           `json:"sections"`
	Weights            map[string]float64 `json:"weights"`
	FileTypeFromFormat bool               `json:"file_type_from_format"`
	ClampTotal         bool               `json:"clamp_total"`
}
