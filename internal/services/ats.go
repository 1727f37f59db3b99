package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/repositories"
)

// ATSService runs the extract-then-score pipeline. Each call is single-shot:
// failures are recorded and returned, never retried.
type ATSService interface {
	ScoreDocument(ctx context.Context, scoreID uuid.UUID) error
	ScoreBytes(ctx context.Context, filename string, data []byte) (*ScoreResult, error)
	ScoreFile(ctx context.Context, path string) (*ScoreResult, error)
}

type ScoreResult struct {
	Format DocumentFormat
	Text   NormalizedText
	Report ScoreReport
}

type atsService struct {
	scoreRepo  repositories.ScoreRepository
	docRepo    repositories.DocumentRepository
	storage    StorageService
	extractor  TextExtractor
	calculator ScoreCalculator
}

func NewATSService(
	scoreRepo repositories.ScoreRepository,
	docRepo repositories.DocumentRepository,
	storage StorageService,
	extractor TextExtractor,
	calculator ScoreCalculator,
) ATSService {
	return &atsService{
		scoreRepo:  scoreRepo,
		docRepo:    docRepo,
		storage:    storage,
		extractor:  extractor,
		calculator: calculator,
	}
}

func (a *atsService) ScoreDocument(ctx context.Context, scoreID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scoring cancelled: %w", err)
	}

	if err := a.scoreRepo.UpdateStatus(scoreID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Info().Str("score_id", scoreID.String()).Msg("🔄 Starting scoring job")

	score, err := a.scoreRepo.FindByID(scoreID)
	if err != nil {
		return a.fail(scoreID, fmt.Errorf("failed to get score job: %w", err))
	}

	doc, err := a.docRepo.FindByID(score.DocumentID)
	if err != nil {
		return a.fail(scoreID, fmt.Errorf("failed to get document: %w", err))
	}

	format, err := ParseFormat(doc.Format)
	if err != nil {
		return a.fail(scoreID, err)
	}

	data, err := a.storage.ReadFile(doc.FilePath)
	if err != nil {
		return a.fail(scoreID, err)
	}

	log.Debug().Str("score_id", scoreID.String()).Str("format", string(format)).Msg("📄 Extracting text")
	text, err := a.extractor.ExtractText(Document{Data: data, Format: format})
	if err != nil {
		return a.fail(scoreID, fmt.Errorf("failed to extract text: %w", err))
	}

	report := a.calculator.CalculateScoreForFormat(text, format)

	updateData := &repositories.ScoreUpdateData{
		Total:           report.Total,
		KeywordScore:    report.KeywordScore,
		SectionScore:    report.SectionScore,
		FormattingScore: report.FormattingScore,
		BulletScore:     report.BulletScore,
		FileTypeScore:   report.FileTypeScore,
		MatchedKeywords: models.EncodeMatches(report.MatchedKeywords),
		MatchedSections: models.EncodeMatches(report.MatchedSections),
		TabCount:        report.TabCount,
	}

	if err := a.scoreRepo.UpdateResult(scoreID, updateData); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Info().Str("score_id", scoreID.String()).Float64("total", report.Total).Msg("✅ Scoring completed")
	return nil
}

func (a *atsService) ScoreBytes(ctx context.Context, filename string, data []byte) (*ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scoring cancelled: %w", err)
	}

	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	text, err := a.extractor.ExtractText(Document{Data: data, Format: format})
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	return &ScoreResult{
		Format: format,
		Text:   text,
		Report: a.calculator.CalculateScoreForFormat(text, format),
	}, nil
}

// ScoreFile scores a document on local disk, detecting its format from the
// path suffix.
func (a *atsService) ScoreFile(ctx context.Context, path string) (*ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scoring cancelled: %w", err)
	}

	text, format, err := a.extractor.ExtractFile(path)
	if err != nil {
		return nil, err
	}

	return &ScoreResult{
		Format: format,
		Text:   text,
		Report: a.calculator.CalculateScoreForFormat(text, format),
	}, nil
}

func (a *atsService) fail(scoreID uuid.UUID, cause error) error {
	if err := a.scoreRepo.UpdateError(scoreID, cause.Error()); err != nil {
		log.Error().Err(err).Str("score_id", scoreID.String()).Msg("❌ Failed to record scoring error")
	}
	return cause
}
