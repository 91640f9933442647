package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Leonard1379/MyDjangoProject/internal/errorz"
	"github.com/Leonard1379/MyDjangoProject/internal/models"
	"github.com/Leonard1379/MyDjangoProject/internal/repository"
)

type QuestionRepo struct {
	pool *pgxpool.Pool
}

var (
	_ repository.QuestionRepository = (*QuestionRepo)(nil)
	_ repository.Migrator           = (*QuestionRepo)(nil)
)

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

// Connect opens a pool and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func (r *QuestionRepo) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS polls_question (
			id BIGSERIAL PRIMARY KEY,
			question_text VARCHAR(200) NOT NULL,
			pub_date TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_polls_question_pub_date ON polls_question(pub_date DESC);`,
		`CREATE TABLE IF NOT EXISTS polls_choice (
			id BIGSERIAL PRIMARY KEY,
			question_id BIGINT NOT NULL REFERENCES polls_question(id) ON DELETE CASCADE,
			choice_text VARCHAR(200) NOT NULL,
			votes INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_polls_choice_question ON polls_choice(question_id);`,
	}

	for _, q := range queries {
		if _, err := r.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (r *QuestionRepo) Create(ctx context.Context, q models.Question) (models.Question, error) {
	const query = `
	INSERT INTO polls_question (question_text, pub_date)
	VALUES ($1, $2)
	RETURNING id, question_text, pub_date;
	`
	var out models.Question
	if err := r.pool.QueryRow(ctx, query, q.QuestionText, q.PubDate).Scan(
		&out.ID,
		&out.QuestionText,
		&out.PubDate,
	); err != nil {
		return models.Question{}, err
	}
	return out, nil
}

func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (models.Question, error) {
	const query = `
	SELECT id, question_text, pub_date
	FROM polls_question
	WHERE id = $1;
	`
	var out models.Question
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&out.ID,
		&out.QuestionText,
		&out.PubDate,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Question{}, errorz.ErrNotFound
		}
		return models.Question{}, err
	}
	return out, nil
}

func (r *QuestionRepo) ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]models.Question, error) {
	if offset < 0 {
		offset = 0
	}
	const query = `
	SELECT id, question_text, pub_date
	FROM polls_question
	WHERE pub_date <= $1
	ORDER BY pub_date DESC, id DESC
	LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, now, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Question, 0, limit)
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *QuestionRepo) AddChoice(ctx context.Context, questionID int64, text string) (models.Choice, error) {
	const query = `
	INSERT INTO polls_choice (question_id, choice_text)
	SELECT id, $2 FROM polls_question WHERE id = $1
	RETURNING id, question_id, choice_text, votes;
	`
	var out models.Choice
	if err := r.pool.QueryRow(ctx, query, questionID, text).Scan(
		&out.ID,
		&out.QuestionID,
		&out.ChoiceText,
		&out.Votes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Choice{}, errorz.ErrNotFound
		}
		return models.Choice{}, err
	}
	return out, nil
}

func (r *QuestionRepo) Choices(ctx context.Context, questionID int64) ([]models.Choice, error) {
	const query = `
	SELECT id, question_id, choice_text, votes
	FROM polls_choice
	WHERE question_id = $1
	ORDER BY id;
	`
	rows, err := r.pool.Query(ctx, query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Choice, 0)
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *QuestionRepo) Vote(ctx context.Context, questionID, choiceID int64) (models.Choice, error) {
	const query = `
	UPDATE polls_choice
	SET votes = votes + 1
	WHERE id = $1 AND question_id = $2
	RETURNING id, question_id, choice_text, votes;
	`
	var out models.Choice
	if err := r.pool.QueryRow(ctx, query, choiceID, questionID).Scan(
		&out.ID,
		&out.QuestionID,
		&out.ChoiceText,
		&out.Votes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Choice{}, errorz.ErrNotFound
		}
		return models.Choice{}, err
	}
	return out, nil
}

func (r *QuestionRepo) Close() error {
	r.pool.Close()
	return nil
}
