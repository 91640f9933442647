package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/Leonard1379/MyDjangoProject/internal/repository"
	"github.com/Leonard1379/MyDjangoProject/internal/repository/repotest"
)

// Runs against a real database only when POLLS_TEST_POSTGRES_DSN is set.
func TestQuestionRepo(t *testing.T) {
	dsn := os.Getenv("POLLS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POLLS_TEST_POSTGRES_DSN not set")
	}

	repotest.Run(t, func(t *testing.T) repository.QuestionRepository {
		ctx := context.Background()
		pool, err := Connect(ctx, dsn)
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		repo := NewQuestionRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		if _, err := pool.Exec(ctx, `TRUNCATE polls_choice, polls_question RESTART IDENTITY;`); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		t.Cleanup(func() { repo.Close() })
		return repo
	})
}
