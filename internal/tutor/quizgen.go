package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/llm"
	"github.com/ravlabs/ravos/internal/quiz"
)

// quizCacheKey is versioned so prompt or schema changes invalidate
// previously cached question sets.
func quizCacheKey(topic catalog.Topic) string {
	return fmt.Sprintf("quiz_%s_v2", topic)
}

func questionSetSchema() *llm.Schema {
	question := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"correctAnswerIndex": map[string]any{"type": "integer"},
			"explanation":        map[string]any{"type": "string"},
			"domain":             map[string]any{"type": "string"},
		},
		"required": []any{"question", "options", "correctAnswerIndex", "explanation", "domain"},
	}
	return &llm.Schema{
		Name:        "question-set",
		Description: "An array of multiple-choice ultrasound physics exam questions",
		Definition: map[string]any{
			"type":  "array",
			"items": question,
		},
	}
}

// GenerateQuizQuestions produces the question set for an attempt. Topic
// sets are cached durably; the full mock exam is always generated fresh.
// Failure returns an empty slice, which the quiz engine treats as fatal
// for the attempt. Satisfies quiz.Generator.
func (s *Service) GenerateQuizQuestions(ctx context.Context, topic catalog.Topic, count int) []quiz.Question {
	cacheable := topic != catalog.TopicFullMock
	key := quizCacheKey(topic)

	if cacheable {
		if raw, ok := s.cache.GenCache(key); ok {
			var cached []quiz.Question
			if err := json.Unmarshal([]byte(raw), &cached); err == nil && len(cached) > 0 {
				return capQuestions(cached, count)
			}
			s.log.Warn("cached question set corrupt; regenerating", zap.String("key", key))
		}
	}

	prompt := topicQuizPrompt(topic, count)
	resp, err := s.llm.Generate(ctx, llm.Request{
		System:      operatorVoice,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      questionSetSchema(),
		MaxTokens:   8192,
		Temperature: 0.7,
	})
	if err != nil {
		s.log.Warn("question generation failed", zap.String("topic", string(topic)), zap.Error(err))
		return nil
	}

	var questions []quiz.Question
	if err := json.Unmarshal(resp.Content, &questions); err != nil {
		s.log.Warn("question set unmarshal failed", zap.Error(err))
		return nil
	}
	if len(questions) == 0 {
		return nil
	}

	if cacheable {
		s.cache.SaveGenCache(key, string(resp.Content))
	}
	return capQuestions(questions, count)
}

func capQuestions(qs []quiz.Question, count int) []quiz.Question {
	if count > 0 && len(qs) > count {
		return qs[:count]
	}
	return qs
}

func topicQuizPrompt(topic catalog.Topic, count int) string {
	if topic == catalog.TopicFullMock {
		return fmt.Sprintf(
			"Generate %d SPI-style multiple-choice questions spanning all five exam domains (%s). Each question has exactly 4 options, a correctAnswerIndex, a concise explanation, and its domain label verbatim from that list.",
			count, domainList())
	}

	desc := ""
	if meta, ok := catalog.Get(topic); ok {
		desc = meta.Description
	}
	return fmt.Sprintf(
		"Generate %d SPI-style multiple-choice questions on the topic %q (%s). Each question has exactly 4 options, a correctAnswerIndex, a concise explanation, and a domain label chosen verbatim from: %s.",
		count, topic, desc, domainList())
}

func domainList() string {
	out := ""
	for i, d := range catalog.Domains() {
		if i > 0 {
			out += ", "
		}
		out += string(d)
	}
	return out
}
