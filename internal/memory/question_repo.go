package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Leonard1379/MyDjangoProject/internal/errorz"
	"github.com/Leonard1379/MyDjangoProject/internal/models"
	"github.com/Leonard1379/MyDjangoProject/internal/repository"
)

type QuestionRepo struct {
	mu        sync.RWMutex
	questions []models.Question
	choices   []models.Choice
	nextQID   int64
	nextCID   int64
}

var _ repository.QuestionRepository = (*QuestionRepo)(nil)

func NewQuestionRepo() *QuestionRepo {
	return &QuestionRepo{}
}

func (r *QuestionRepo) Create(_ context.Context, q models.Question) (models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextQID++
	q.ID = r.nextQID
	r.questions = append(r.questions, q)
	return q, nil
}

func (r *QuestionRepo) GetByID(_ context.Context, id int64) (models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return models.Question{}, errorz.ErrNotFound
}

func (r *QuestionRepo) ListPublished(_ context.Context, now time.Time, limit, offset int) ([]models.Question, error) {
	r.mu.RLock()
	published := make([]models.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if q.IsPublished(now) {
			published = append(published, q)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(published, func(i, j int) bool {
		if published[i].PubDate.Equal(published[j].PubDate) {
			return published[i].ID > published[j].ID
		}
		return published[i].PubDate.After(published[j].PubDate)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(published) {
		return []models.Question{}, nil
	}
	end := len(published)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return published[offset:end], nil
}

func (r *QuestionRepo) AddChoice(_ context.Context, questionID int64, text string) (models.Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasQuestion(questionID) {
		return models.Choice{}, errorz.ErrNotFound
	}
	r.nextCID++
	c := models.Choice{ID: r.nextCID, QuestionID: questionID, ChoiceText: text}
	r.choices = append(r.choices, c)
	return c, nil
}

func (r *QuestionRepo) Choices(_ context.Context, questionID int64) ([]models.Choice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Choice, 0)
	for _, c := range r.choices {
		if c.QuestionID == questionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *QuestionRepo) Vote(_ context.Context, questionID, choiceID int64) (models.Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.choices {
		if r.choices[i].ID == choiceID && r.choices[i].QuestionID == questionID {
			r.choices[i].Votes++
			return r.choices[i], nil
		}
	}
	return models.Choice{}, errorz.ErrNotFound
}

func (r *QuestionRepo) Close() error {
	return nil
}

func (r *QuestionRepo) hasQuestion(id int64) bool {
	for _, q := range r.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
