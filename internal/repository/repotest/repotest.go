// Package repotest holds the behaviour every QuestionRepository backend must share.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Leonard1379/MyDjangoProject/internal/errorz"
	"github.com/Leonard1379/MyDjangoProject/internal/models"
	"github.com/Leonard1379/MyDjangoProject/internal/repository"
)

// Run exercises a fresh repository per subtest.
func Run(t *testing.T, newRepo func(t *testing.T) repository.QuestionRepository) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, r repository.QuestionRepository)
	}{
		{"CreateAndGet", testCreateAndGet},
		{"GetMissing", testGetMissing},
		{"ListPublishedFiltersFuture", testListPublishedFiltersFuture},
		{"ListPublishedOrder", testListPublishedOrder},
		{"ListPublishedPaging", testListPublishedPaging},
		{"ListPublishedEmpty", testListPublishedEmpty},
		{"ChoicesAndVotes", testChoicesAndVotes},
		{"VoteWrongQuestion", testVoteWrongQuestion},
		{"AddChoiceMissingQuestion", testAddChoiceMissingQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newRepo(t))
		})
	}
}

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func mustCreate(t *testing.T, r repository.QuestionRepository, text string, days int) models.Question {
	t.Helper()
	q, err := r.Create(context.Background(), models.NewQuestion(text, days, now))
	if err != nil {
		t.Fatalf("create %q: %v", text, err)
	}
	return q
}

func texts(qs []models.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.QuestionText
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testCreateAndGet(t *testing.T, r repository.QuestionRepository) {
	created := mustCreate(t, r, "What's new?", -1)
	if created.ID == 0 {
		t.Fatal("expected an id to be assigned")
	}

	got, err := r.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.QuestionText != "What's new?" {
		t.Errorf("unexpected text %q", got.QuestionText)
	}
	if !got.PubDate.Equal(created.PubDate) {
		t.Errorf("PubDate = %v, want %v", got.PubDate, created.PubDate)
	}

	second := mustCreate(t, r, "Another?", -2)
	if second.ID == created.ID {
		t.Error("expected distinct ids")
	}
}

func testGetMissing(t *testing.T, r repository.QuestionRepository) {
	_, err := r.GetByID(context.Background(), 4242)
	if !errors.Is(err, errorz.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testListPublishedFiltersFuture(t *testing.T, r repository.QuestionRepository) {
	mustCreate(t, r, "Past question.", -30)
	mustCreate(t, r, "Future question.", 30)

	got, err := r.ListPublished(context.Background(), now, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []string{"Past question."}; !equal(texts(got), want) {
		t.Errorf("got %v, want %v", texts(got), want)
	}
}

func testListPublishedOrder(t *testing.T, r repository.QuestionRepository) {
	mustCreate(t, r, "Past question 1.", -30)
	mustCreate(t, r, "Past question 2.", -5)
	if _, err := r.Create(context.Background(), models.Question{QuestionText: "Right now.", PubDate: now}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := r.ListPublished(context.Background(), now, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Right now.", "Past question 2.", "Past question 1."}
	if !equal(texts(got), want) {
		t.Errorf("got %v, want %v", texts(got), want)
	}
}

func testListPublishedPaging(t *testing.T, r repository.QuestionRepository) {
	for i := 1; i <= 7; i++ {
		mustCreate(t, r, "q"+string(rune('0'+i)), -i)
	}

	first, err := r.ListPublished(context.Background(), now, 5, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []string{"q1", "q2", "q3", "q4", "q5"}; !equal(texts(first), want) {
		t.Errorf("first page %v, want %v", texts(first), want)
	}

	second, err := r.ListPublished(context.Background(), now, 5, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []string{"q6", "q7"}; !equal(texts(second), want) {
		t.Errorf("second page %v, want %v", texts(second), want)
	}

	beyond, err := r.ListPublished(context.Background(), now, 5, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(beyond) != 0 {
		t.Errorf("expected empty page, got %v", texts(beyond))
	}
}

func testListPublishedEmpty(t *testing.T, r repository.QuestionRepository) {
	got, err := r.ListPublished(context.Background(), now, 5, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no questions, got %v", texts(got))
	}
}

func testChoicesAndVotes(t *testing.T, r repository.QuestionRepository) {
	ctx := context.Background()
	q := mustCreate(t, r, "Favourite colour?", -1)

	red, err := r.AddChoice(ctx, q.ID, "Red")
	if err != nil {
		t.Fatalf("add choice: %v", err)
	}
	blue, err := r.AddChoice(ctx, q.ID, "Blue")
	if err != nil {
		t.Fatalf("add choice: %v", err)
	}
	if red.QuestionID != q.ID || red.Votes != 0 {
		t.Errorf("unexpected choice %+v", red)
	}

	for i := 0; i < 2; i++ {
		if _, err := r.Vote(ctx, q.ID, blue.ID); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	voted, err := r.Vote(ctx, q.ID, red.ID)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if voted.Votes != 1 {
		t.Errorf("expected 1 vote for red, got %d", voted.Votes)
	}

	choices, err := r.Choices(ctx, q.ID)
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	if len(choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(choices))
	}
	if choices[0].ChoiceText != "Red" || choices[1].ChoiceText != "Blue" {
		t.Errorf("choices out of insertion order: %v", choices)
	}
	if choices[0].Votes != 1 || choices[1].Votes != 2 {
		t.Errorf("unexpected vote counts: %+v", choices)
	}
}

func testVoteWrongQuestion(t *testing.T, r repository.QuestionRepository) {
	ctx := context.Background()
	a := mustCreate(t, r, "A?", -1)
	b := mustCreate(t, r, "B?", -1)
	choice, err := r.AddChoice(ctx, a.ID, "Yes")
	if err != nil {
		t.Fatalf("add choice: %v", err)
	}

	if _, err := r.Vote(ctx, b.ID, choice.ID); !errors.Is(err, errorz.ErrNotFound) {
		t.Errorf("expected ErrNotFound voting via another question, got %v", err)
	}
	if _, err := r.Vote(ctx, a.ID, 9999); !errors.Is(err, errorz.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing choice, got %v", err)
	}

	choices, err := r.Choices(ctx, a.ID)
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	if choices[0].Votes != 0 {
		t.Errorf("rejected vote must not be counted, got %d", choices[0].Votes)
	}
}

func testAddChoiceMissingQuestion(t *testing.T, r repository.QuestionRepository) {
	if _, err := r.AddChoice(context.Background(), 777, "Nope"); !errors.Is(err, errorz.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
