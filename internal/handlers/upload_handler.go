package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/repositories"
	"alfredoptarigan/ats-scorer/internal/services"
)

// ResumeField is the multipart field carrying the résumé file.
const ResumeField = "resume"

// resumeFile returns the uploaded résumé, or nil and the reason it is missing.
// A file input submitted without a selection arrives as a part with an empty
// filename, which the multipart reader files under values rather than files.
func resumeFile(c *fiber.Ctx) (*multipart.FileHeader, string) {
	file, err := c.FormFile(ResumeField)
	if err != nil {
		if form, formErr := c.MultipartForm(); formErr == nil {
			if _, ok := form.Value[ResumeField]; ok {
				return nil, "No selected file"
			}
		}
		return nil, "No file part"
	}

	if file.Filename == "" {
		return nil, "No selected file"
	}
	return file, ""
}

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
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

	stored, err := h.storageService.SaveFile(file)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported file type. Please upload a PDF or DOCX file.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         stored.Filename,
		OriginalFileName: file.Filename,
		Format:           string(stored.Format),
		FilePath:         stored.FilePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		if delErr := h.storageService.DeleteFile(stored.Filename); delErr != nil {
			log.Warn().Err(delErr).Str("filename", stored.Filename).Msg("⚠️  Failed to clean up upload")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save resume document record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File uploaded successfully",
		"document": models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			Format:       doc.Format,
		},
	})
}
