// Package quiz implements the resumable assessment attempt: a small state
// machine that acquires questions from the generation collaborator, tracks
// answers and flags at question granularity, and folds the finished attempt
// into the learner's exam history.
package quiz

import (
	"time"

	"github.com/ravlabs/ravos/internal/catalog"
)

// Unanswered is the sentinel answer value before the learner's first
// selection for a question. First-answer side effects key off it.
const Unanswered = -1

// Question counts and timer budgets per attempt kind.
const (
	NormalQuestionCount = 30
	MockQuestionCount   = 110

	NormalTimeBudget = 1800 // seconds
	MockTimeBudget   = 7200 // seconds
)

// Question is one generated multiple-choice question.
type Question struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
	Domain             string   `json:"domain"`
}

// ActiveQuiz is the single in-flight assessment attempt. It occupies one
// global persisted slot: starting an attempt for any topic replaces
// whatever attempt was stored before.
type ActiveQuiz struct {
	Topic            catalog.Topic `json:"topic"`
	Questions        []Question    `json:"questions"`
	UserAnswers      []int         `json:"userAnswers"`
	FlaggedQuestions []bool        `json:"flaggedQuestions"`
	CurrentIndex     int           `json:"currentIndex"`
	StartTime        int64         `json:"startTime"`
	IsFullMock       bool          `json:"isFullMock"`
	TimeLeft         int           `json:"timeLeft"`
}

// NewActiveQuiz initializes a fresh all-unanswered attempt with the
// topic-dependent timer budget.
func NewActiveQuiz(topic catalog.Topic, questions []Question, now time.Time) *ActiveQuiz {
	isMock := topic == catalog.TopicFullMock
	budget := NormalTimeBudget
	if isMock {
		budget = MockTimeBudget
	}

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = Unanswered
	}

	return &ActiveQuiz{
		Topic:            topic,
		Questions:        questions,
		UserAnswers:      answers,
		FlaggedQuestions: make([]bool, len(questions)),
		StartTime:        now.UnixMilli(),
		IsFullMock:       isMock,
		TimeLeft:         budget,
	}
}
