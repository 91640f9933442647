package models

import "time"

// RecentWindow is how far back a publish date may lie and still count as recent.
const RecentWindow = 24 * time.Hour

type Question struct {
	ID           int64     `json:"id" mapstructure:"id"`
	QuestionText string    `json:"question_text" mapstructure:"question_text"`
	PubDate      time.Time `json:"pub_date" mapstructure:"pub_date"`
}

// NewQuestion builds a question published days from now. Negative days are in the past.
func NewQuestion(text string, days int, now time.Time) Question {
	return Question{
		QuestionText: text,
		PubDate:      now.Add(time.Duration(days) * 24 * time.Hour).UTC(),
	}
}

// IsPublished reports whether the question is visible at now.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently is true iff now-24h < PubDate <= now.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return q.PubDate.After(now.Add(-RecentWindow)) && q.IsPublished(now)
}

func (q Question) String() string {
	return q.QuestionText
}

type Choice struct {
	ID         int64  `json:"id" mapstructure:"id"`
	QuestionID int64  `json:"question_id" mapstructure:"question_id"`
	ChoiceText string `json:"choice_text" mapstructure:"choice_text"`
	Votes      int    `json:"votes" mapstructure:"votes"`
}

func (c Choice) String() string {
	return c.ChoiceText
}
