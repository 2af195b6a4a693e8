package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/llm"
)

// ChatMessage is one turn of a topic chat transcript. The wire shape
// matches what the store persists per topic.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Chat answers the latest learner message in a topic conversation. The
// full history is replayed to the model; persistence of the transcript
// is the caller's concern. Failure returns in-fiction fallback copy.
func (s *Service) Chat(ctx context.Context, topic catalog.Topic, history []ChatMessage) string {
	msgs := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == "assistant" || m.Role == "model" {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}

	resp, err := s.llm.Generate(ctx, llm.Request{
		System:      operatorVoice + topicContext(topic),
		Messages:    msgs,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		s.log.Warn("chat generation failed", zap.String("topic", string(topic)), zap.Error(err))
		return fallbackChat
	}
	return strings.TrimSpace(string(resp.Content))
}

// Mnemonics generates a memorization script for a sub-topic, suitable
// for vaulting as a tactical script.
func (s *Service) Mnemonics(ctx context.Context, topic catalog.Topic, subTopic string) (string, error) {
	prompt := fmt.Sprintf(
		"Compose a short, memorable mnemonic script for the sub-topic %q within %q. Use vivid imagery; keep it under 120 words.",
		subTopic, topic)
	return s.generateText(ctx, prompt, 600, 0.9)
}

// AnalyzeSimState reads a simulation lab's current parameters and
// explains what the learner is seeing in exam terms.
func (s *Service) AnalyzeSimState(ctx context.Context, visualID string, state json.RawMessage) (string, error) {
	prompt := fmt.Sprintf(
		"The Asset is operating the %q simulation lab. Current parameters: %s. Explain in three sentences what these settings produce and which exam concept they demonstrate.",
		visualID, string(state))
	return s.generateText(ctx, prompt, 500, 0.4)
}

func topicContext(topic catalog.Topic) string {
	meta, ok := catalog.Get(topic)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" The current briefing topic is %q: %s", topic, meta.Description)
}
