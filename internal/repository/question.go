package repository

import (
	"context"
	"time"

	"github.com/Leonard1379/MyDjangoProject/internal/models"
)

// QuestionRepository is implemented by every storage backend.
// Lookups of missing rows return errorz.ErrNotFound.
type QuestionRepository interface {
	Create(ctx context.Context, q models.Question) (models.Question, error)
	GetByID(ctx context.Context, id int64) (models.Question, error)
	// ListPublished returns questions with PubDate <= now, newest first. limit must be positive.
	// Order among equal pub dates is up to the backend.
	ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]models.Question, error)
	AddChoice(ctx context.Context, questionID int64, text string) (models.Choice, error)
	Choices(ctx context.Context, questionID int64) ([]models.Choice, error)
	// Vote adds one vote to choiceID if it belongs to questionID.
	Vote(ctx context.Context, questionID, choiceID int64) (models.Choice, error)
	Close() error
}

// Migrator is implemented by backends that need a schema.
type Migrator interface {
	Migrate(ctx context.Context) error
}
