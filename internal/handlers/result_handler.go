package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/repositories"
)

type ResultHandler struct {
	scoreRepo repositories.ScoreRepository
}

func NewResultHandler(scoreRepo repositories.ScoreRepository) *ResultHandler {
	return &ResultHandler{
		scoreRepo: scoreRepo,
	}
}

// HandleGetResult handles GET /result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	scoreID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid score ID format",
		})
	}

	score, err := h.scoreRepo.FindByID(scoreID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Score not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up score",
		})
	}

	response := models.ResultResponse{
		ID:         score.ID.String(),
		DocumentID: score.DocumentID.String(),
		Status:     string(score.Status),
	}

	if score.Status == models.StatusCompleted {
		response.Result = &models.ScoreData{
			Total:           deref(score.Total),
			KeywordScore:    deref(score.KeywordScore),
			SectionScore:    deref(score.SectionScore),
			FormattingScore: deref(score.FormattingScore),
			BulletScore:     deref(score.BulletScore),
			FileTypeScore:   deref(score.FileTypeScore),
			MatchedKeywords: models.DecodeMatches(score.MatchedKeywords),
			MatchedSections: models.DecodeMatches(score.MatchedSections),
			TabCount:        deref(score.TabCount),
		}
	}

	if score.Status == models.StatusFailed && score.ErrorMessage != nil && *score.ErrorMessage != "" {
		response.ErrorMessage = score.ErrorMessage
	}

	return c.JSON(response)
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}
	return *value
}
