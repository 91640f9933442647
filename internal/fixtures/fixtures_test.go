package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Leonard1379/MyDjangoProject/internal/memory"
	"github.com/Leonard1379/MyDjangoProject/internal/polls"
)

const sample = `questions:
  - question_text: "Past question 1."
    days: -30
    choices: ["Yes", "No"]
  - question_text: "Past question 2."
    pub_date: 2024-03-05T12:00:00Z
  - question_text: "Future question."
    days: 30
  - question_text: "Published now."
`

func TestParseAndApply(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s := polls.New(memory.NewQuestionRepo(), 10).WithClock(func() time.Time { return now })

	dir := t.TempDir()
	path := filepath.Join(dir, "polls.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("writing fixtures: %v", err)
	}

	f, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(f.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(f.Questions))
	}
	if f.Questions[1].PubDate == nil || !f.Questions[1].PubDate.Equal(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected pub_date %v", f.Questions[1].PubDate)
	}

	n, err := f.Apply(context.Background(), s)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != 4 {
		t.Errorf("applied %d, want 4", n)
	}

	latest, err := s.Latest(context.Background(), 1)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	want := []string{"Published now.", "Past question 2.", "Past question 1."}
	if len(latest) != len(want) {
		t.Fatalf("got %v, want %v", latest, want)
	}
	for i, q := range latest {
		if q.QuestionText != want[i] {
			t.Errorf("latest[%d] = %q, want %q", i, q.QuestionText, want[i])
		}
	}

	choices, err := s.Choices(context.Background(), latest[2].ID)
	if err != nil {
		t.Fatalf("Choices: %v", err)
	}
	if len(choices) != 2 {
		t.Errorf("expected 2 choices, got %d", len(choices))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing text", "questions:\n  - days: 1\n"},
		{"days and pub_date", "questions:\n  - question_text: x\n    days: 1\n    pub_date: 2024-01-01T00:00:00Z\n"},
		{"bad yaml", "questions: [\n"},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.input)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
