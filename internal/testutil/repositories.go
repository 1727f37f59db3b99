package testutil

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/repositories"
)

// DocumentRepo is an in-memory repositories.DocumentRepository.
type DocumentRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]models.Document
	Err  error
}

func NewDocumentRepo(docs ...models.Document) *DocumentRepo {
	r := &DocumentRepo{docs: make(map[uuid.UUID]models.Document)}
	for _, doc := range docs {
		r.docs[doc.ID] = doc
	}
	return r
}

func (r *DocumentRepo) Create(document *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.docs[document.ID] = *document
	return nil
}

func (r *DocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, repositories.ErrNotFound)
	}
	return &doc, nil
}

// Len reports how many documents are stored.
func (r *DocumentRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

// ScoreRepo is an in-memory repositories.ScoreRepository.
type ScoreRepo struct {
	mu     sync.Mutex
	scores map[uuid.UUID]models.Score
}

func NewScoreRepo(scores ...models.Score) *ScoreRepo {
	r := &ScoreRepo{scores: make(map[uuid.UUID]models.Score)}
	for _, score := range scores {
		r.scores[score.ID] = score
	}
	return r
}

func (r *ScoreRepo) Create(score *models.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[score.ID] = *score
	return nil
}

func (r *ScoreRepo) FindByID(id uuid.UUID) (*models.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score, ok := r.scores[id]
	if !ok {
		return nil, fmt.Errorf("score %s: %w", id, repositories.ErrNotFound)
	}
	return &score, nil
}

func (r *ScoreRepo) UpdateStatus(id uuid.UUID, status models.ScoreStatus) error {
	return r.update(id, func(s *models.Score) {
		s.Status = status
	})
}

func (r *ScoreRepo) UpdateResult(id uuid.UUID, data *repositories.ScoreUpdateData) error {
	return r.update(id, func(s *models.Score) {
		s.Status = models.StatusCompleted
		s.Total = &data.Total
		s.KeywordScore = &data.KeywordScore
		s.SectionScore = &data.SectionScore
		s.FormattingScore = &data.FormattingScore
		s.BulletScore = &data.BulletScore
		s.FileTypeScore = &data.FileTypeScore
		s.MatchedKeywords = &data.MatchedKeywords
		s.MatchedSections = &data.MatchedSections
		s.TabCount = &data.TabCount
		s.ErrorMessage = nil
	})
}

func (r *ScoreRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, func(s *models.Score) {
		s.Status = models.StatusFailed
		s.ErrorMessage = &errorMsg
	})
}

func (r *ScoreRepo) FindPendingJobs(limit int) ([]models.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []models.Score
	for _, score := range r.scores {
		if score.Status == models.StatusQueued {
			pending = append(pending, score)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *ScoreRepo) update(id uuid.UUID, apply func(*models.Score)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	score, ok := r.scores[id]
	if !ok {
		return fmt.Errorf("score %s: %w", id, repositories.ErrNotFound)
	}
	apply(&score)
	r.scores[id] = score
	return nil
}

var (
	_ repositories.DocumentRepository = (*DocumentRepo)(nil)
	_ repositories.ScoreRepository    = (*ScoreRepo)(nil)
)
