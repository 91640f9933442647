// Package polls applies the publish-date visibility rules on top of a QuestionRepository.
// A question whose pub date lies in the future is treated exactly like a missing one.
package polls

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Leonard1379/MyDjangoProject/internal/errorz"
	"github.com/Leonard1379/MyDjangoProject/internal/models"
	"github.com/Leonard1379/MyDjangoProject/internal/repository"
)

const DefaultPageSize = 5

var (
	ErrInvalidChoice = errors.New("invalid choice")
	ErrInvalidInput  = errors.New("invalid input")
)

type Service struct {
	questions repository.QuestionRepository
	pageSize  int
	now       func() time.Time
}

func New(questions repository.QuestionRepository, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{questions: questions, pageSize: pageSize, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) PageSize() int {
	return s.pageSize
}

// Latest returns one page of published questions, newest first. Pages start at 1.
func (s *Service) Latest(ctx context.Context, page int) ([]models.Question, error) {
	if page < 1 {
		page = 1
	}
	return s.questions.ListPublished(ctx, s.now(), s.pageSize, (page-1)*s.pageSize)
}

// Question returns a published question or errorz.ErrNotFound.
func (s *Service) Question(ctx context.Context, id int64) (models.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return models.Question{}, err
	}
	if !q.IsPublished(s.now()) {
		return models.Question{}, errorz.ErrNotFound
	}
	return q, nil
}

func (s *Service) Choices(ctx context.Context, questionID int64) ([]models.Choice, error) {
	if _, err := s.Question(ctx, questionID); err != nil {
		return nil, err
	}
	return s.questions.Choices(ctx, questionID)
}

func (s *Service) Vote(ctx context.Context, questionID, choiceID int64) (models.Choice, error) {
	if _, err := s.Question(ctx, questionID); err != nil {
		return models.Choice{}, err
	}
	c, err := s.questions.Vote(ctx, questionID, choiceID)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return models.Choice{}, ErrInvalidChoice
		}
		return models.Choice{}, err
	}
	return c, nil
}

// CreateQuestion stores a question regardless of whether its pub date is in the future.
func (s *Service) CreateQuestion(ctx context.Context, text string, pubDate time.Time) (models.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Question{}, ErrInvalidInput
	}
	return s.questions.Create(ctx, models.Question{QuestionText: text, PubDate: pubDate.UTC()})
}

// CreateQuestionInDays publishes a question days from now; negative days are in the past.
func (s *Service) CreateQuestionInDays(ctx context.Context, text string, days int) (models.Question, error) {
	return s.CreateQuestion(ctx, text, models.NewQuestion(text, days, s.now()).PubDate)
}

// AddChoice works on unpublished questions too, so authors can prepare them.
func (s *Service) AddChoice(ctx context.Context, questionID int64, text string) (models.Choice, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Choice{}, ErrInvalidInput
	}
	return s.questions.AddChoice(ctx, questionID, text)
}
