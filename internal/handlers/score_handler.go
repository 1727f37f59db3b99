package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
)

// ScoreHandler scores an upload inline without storing it.
type ScoreHandler struct {
	atsService  services.ATSService
	maxFileSize int64
}

func NewScoreHandler(atsService services.ATSService, maxFileSize int64) *ScoreHandler {
	return &ScoreHandler{
		atsService:  atsService,
		maxFileSize: maxFileSize,
	}
}

// HandleScore handles POST /score
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	file, problem := resumeFile(c)
	if file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": problem,
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	result, err := h.atsService.ScoreBytes(c.UserContext(), file.Filename, data)
	if err != nil {
		return scoreError(c, err)
	}

	return c.JSON(models.ScoreResponse{
		Filename: file.Filename,
		Format:   string(result.Format),
		Score:    toScoreData(result.Report),
	})
}

func scoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file type. Please upload a PDF or DOCX file.",
		})
	case errors.Is(err, services.ErrMalformedDocument):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "The document could not be read as its declared format",
		})
	default:
		log.Error().Err(err).Msg("❌ Scoring failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to score resume",
		})
	}
}

func toScoreData(report services.ScoreReport) models.ScoreData {
	return models.ScoreData{
		Total:           report.Total,
		KeywordScore:    report.KeywordScore,
		SectionScore:    report.SectionScore,
		FormattingScore: report.FormattingScore,
		BulletScore:     report.BulletScore,
		FileTypeScore:   report.FileTypeScore,
		MatchedKeywords: report.MatchedKeywords,
		MatchedSections: report.MatchedSections,
		TabCount:        report.TabCount,
	}
}
