package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Leonard1379/MyDjangoProject/internal/errorz"
	"github.com/Leonard1379/MyDjangoProject/internal/models"
	"github.com/Leonard1379/MyDjangoProject/internal/repository"
)

// QuestionRepo stores pub dates as INTEGER unix nanoseconds so that
// comparisons and ordering are exact.
type QuestionRepo struct {
	conn *sql.DB
}

var (
	_ repository.QuestionRepository = (*QuestionRepo)(nil)
	_ repository.Migrator           = (*QuestionRepo)(nil)
)

// Open creates the database file (and its directory) if needed.
func Open(dbPath string) (*QuestionRepo, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &QuestionRepo{conn: db}, nil
}

func (r *QuestionRepo) Migrate(ctx context.Context) error {
	_, err := r.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS polls_question (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_text TEXT NOT NULL,
			pub_date INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_polls_question_pub_date ON polls_question(pub_date DESC);

		CREATE TABLE IF NOT EXISTS polls_choice (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id INTEGER NOT NULL REFERENCES polls_question(id) ON DELETE CASCADE,
			choice_text TEXT NOT NULL,
			votes INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_polls_choice_question ON polls_choice(question_id);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (r *QuestionRepo) Create(ctx context.Context, q models.Question) (models.Question, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO polls_question (question_text, pub_date) VALUES (?, ?)",
		q.QuestionText, q.PubDate.UnixNano(),
	)
	if err != nil {
		return models.Question{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Question{}, err
	}
	q.ID = id
	q.PubDate = q.PubDate.UTC()
	return q, nil
}

func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (models.Question, error) {
	var (
		q   models.Question
		pub int64
	)
	err := r.conn.QueryRowContext(ctx,
		"SELECT id, question_text, pub_date FROM polls_question WHERE id = ?",
		id,
	).Scan(&q.ID, &q.QuestionText, &pub)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, errorz.ErrNotFound
	}
	if err != nil {
		return models.Question{}, err
	}
	q.PubDate = time.Unix(0, pub).UTC()
	return q, nil
}

func (r *QuestionRepo) ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]models.Question, error) {
	if offset < 0 {
		offset = 0
	}
	rows, err := r.conn.QueryContext(ctx, `
		SELECT id, question_text, pub_date
		FROM polls_question
		WHERE pub_date <= ?
		ORDER BY pub_date DESC, id DESC
		LIMIT ? OFFSET ?`,
		now.UnixNano(), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Question, 0, limit)
	for rows.Next() {
		var (
			q   models.Question
			pub int64
		)
		if err := rows.Scan(&q.ID, &q.QuestionText, &pub); err != nil {
			return nil, err
		}
		q.PubDate = time.Unix(0, pub).UTC()
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *QuestionRepo) AddChoice(ctx context.Context, questionID int64, text string) (models.Choice, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO polls_choice (question_id, choice_text) SELECT id, ? FROM polls_question WHERE id = ?",
		text, questionID,
	)
	if err != nil {
		return models.Choice{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Choice{}, err
	} else if n == 0 {
		return models.Choice{}, errorz.ErrNotFound
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Choice{}, err
	}
	return models.Choice{ID: id, QuestionID: questionID, ChoiceText: text}, nil
}

func (r *QuestionRepo) Choices(ctx context.Context, questionID int64) ([]models.Choice, error) {
	rows, err := r.conn.QueryContext(ctx,
		"SELECT id, question_id, choice_text, votes FROM polls_choice WHERE question_id = ? ORDER BY id",
		questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Choice, 0)
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *QuestionRepo) Vote(ctx context.Context, questionID, choiceID int64) (models.Choice, error) {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.Choice{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE polls_choice SET votes = votes + 1 WHERE id = ? AND question_id = ?",
		choiceID, questionID,
	)
	if err != nil {
		return models.Choice{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Choice{}, err
	} else if n == 0 {
		return models.Choice{}, errorz.ErrNotFound
	}

	var c models.Choice
	if err := tx.QueryRowContext(ctx,
		"SELECT id, question_id, choice_text, votes FROM polls_choice WHERE id = ?",
		choiceID,
	).Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
		return models.Choice{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Choice{}, err
	}
	return c, nil
}

func (r *QuestionRepo) Close() error {
	return r.conn.Close()
}
