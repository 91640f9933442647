// Package fixtures loads questions and choices from YAML files:
//
//	questions:
//	  - question_text: "What's new?"
//	    days: -1
//	    choices: ["Not much", "The sky"]
//	  - question_text: "Launch date?"
//	    pub_date: 2030-01-01T09:00:00Z
package fixtures

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Leonard1379/MyDjangoProject/internal/polls"
)

type File struct {
	Questions []Question `yaml:"questions"`
}

type Question struct {
	QuestionText string     `yaml:"question_text"`
	Days         *int       `yaml:"days,omitempty"`
	PubDate      *time.Time `yaml:"pub_date,omitempty"`
	Choices      []string   `yaml:"choices,omitempty"`
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing fixtures: %w", err)
	}
	for i, q := range f.Questions {
		if q.QuestionText == "" {
			return File{}, fmt.Errorf("question %d: question_text is required", i)
		}
		if q.Days != nil && q.PubDate != nil {
			return File{}, fmt.Errorf("question %q: set days or pub_date, not both", q.QuestionText)
		}
	}
	return f, nil
}

func Read(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading fixtures: %w", err)
	}
	return Parse(data)
}

// Apply creates every question and its choices. Questions without days or pub_date
// are published now.
func (f File) Apply(ctx context.Context, s *polls.Service) (int, error) {
	for i, fq := range f.Questions {
		pub := s.Now()
		switch {
		case fq.PubDate != nil:
			pub = *fq.PubDate
		case fq.Days != nil:
			pub = pub.Add(time.Duration(*fq.Days) * 24 * time.Hour)
		}

		q, err := s.CreateQuestion(ctx, fq.QuestionText, pub)
		if err != nil {
			return i, fmt.Errorf("question %q: %w", fq.QuestionText, err)
		}
		for _, text := range fq.Choices {
			if _, err := s.AddChoice(ctx, q.ID, text); err != nil {
				return i, fmt.Errorf("question %q choice %q: %w", fq.QuestionText, text, err)
			}
		}
	}
	return len(f.Questions), nil
}
