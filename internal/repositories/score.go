package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-scorer/internal/models"
)

type ScoreRepository interface {
	Create(score *models.Score) error
	FindByID(id uuid.UUID) (*models.Score, error)
	UpdateStatus(id uuid.UUID, status models.ScoreStatus) error
	UpdateResult(id uuid.UUID, result *ScoreUpdateData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Score, error)
}

type ScoreUpdateData struct {
	Total           float64
	KeywordScore    float64
	SectionScore    float64
	FormattingScore float64
	BulletScore     float64
	FileTypeScore   float64
	MatchedKeywords string
	MatchedSections string
	TabCount        int
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(score *models.Score) error {
	if err := r.db.Create(score).Error; err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}
	return nil
}

func (r *scoreRepository) FindByID(id uuid.UUID) (*models.Score, error) {
	var score models.Score
	if err := r.db.Where("id = ?", id).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("score %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find score: %w", err)
	}
	return &score, nil
}

func (r *scoreRepository) UpdateStatus(id uuid.UUID, status models.ScoreStatus) error {
	return r.update(id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

func (r *scoreRepository) UpdateResult(id uuid.UUID, data *ScoreUpdateData) error {
	return r.update(id, map[string]interface{}{
		"status":           models.StatusCompleted,
		"total":            data.Total,
		"keyword_score":    data.KeywordScore,
		"section_score":    data.SectionScore,
		"formatting_score": data.FormattingScore,
		"bullet_score":     data.BulletScore,
		"file_type_score":  data.FileTypeScore,
		"matched_keywords": data.MatchedKeywords,
		"matched_sections": data.MatchedSections,
		"tab_count":        data.TabCount,
		"error_message":    nil,
		"updated_at":       time.Now(),
	})
}

func (r *scoreRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	})
}

func (r *scoreRepository) FindPendingJobs(limit int) ([]models.Score, error) {
	var scores []models.Score
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&scores).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return scores, nil
}

func (r *scoreRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Score{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update score: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("score %s: %w", id, ErrNotFound)
	}

	return nil
}
