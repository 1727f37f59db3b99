package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Upload   *UploadHandler
	Score    *ScoreHandler
	Evaluate *EvaluationHandler
	Result   *ResultHandler
	Criteria *CriteriaHandler
}

// RegisterRoutes mounts the API under /api/v1. Nil handlers are skipped, so
// a database-less deployment can serve only the inline scoring routes.
func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	endpoints := []string{"GET /api/v1/health"}

	if h.Criteria != nil {
		api.Get("/criteria", h.Criteria.HandleGetCriteria)
		endpoints = append(endpoints, "GET /api/v1/criteria")
	}
	if h.Score != nil {
		api.Post("/score", h.Score.HandleScore)
		endpoints = append(endpoints, "POST /api/v1/score")
	}
	if h.Upload != nil {
		api.Post("/upload", h.Upload.HandleUpload)
		endpoints = append(endpoints, "POST /api/v1/upload")
	}
	if h.Evaluate != nil {
		api.Post("/evaluate", h.Evaluate.HandleEvaluate)
		endpoints = append(endpoints, "POST /api/v1/evaluate")
	}
	if h.Result != nil {
		api.Get("/result/:id", h.Result.HandleGetResult)
		endpoints = append(endpoints, "GET /api/v1/result/:id")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "ATS Resume Scorer API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})
}

// ErrorHandler renders errors that escape a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
