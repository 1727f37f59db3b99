package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
)

type CriteriaHandler struct {
	calculator services.ScoreCalculator
}

func NewCriteriaHandler(calculator services.ScoreCalculator) *CriteriaHandler {
	return &CriteriaHandler{calculator: calculator}
}

// HandleGetCriteria handles GET /criteria
func (h *CriteriaHandler) HandleGetCriteria(c *fiber.Ctx) error {
	criteria := h.calculator.Criteria()
	opts := h.calculator.Options()

	return c.JSON(models.CriteriaResponse{
		Keywords: criteria.Keywords,
		Sections: criteria.Sections,
		Weights: map[string]float64{
			"keyword":    services.KeywordWeight,
			"section":    services.SectionWeight,
			"formatting": services.FormattingWeight,
			"bullet":     services.BulletWeight,
			"file_type":  services.FileTypePreferred,
		},
		FileTypeFromFormat: opts.FileTypeFromFormat,
		ClampTotal:         opts.ClampTotal,
	})
}
