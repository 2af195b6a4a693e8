package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/llm"
	"github.com/ravlabs/ravos/internal/numerology"
	"github.com/ravlabs/ravos/internal/profile"
)

func archetypeSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "operator-archetype",
		Description: "The Asset's derived operator archetype",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type":      map[string]any{"type": "string"},
				"strategy":  map[string]any{"type": "string"},
				"authority": map[string]any{"type": "string"},
				"signature": map[string]any{"type": "string"},
				"assets": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"vulnerability": map[string]any{"type": "string"},
			},
			"required": []any{"type", "strategy", "authority"},
		},
	}
}

// DecryptIdentity derives the operator archetype from the learner's
// name, date of birth and numerology readout. It runs exactly once per
// profile, during calibration. Any failure returns nil; calibration
// then proceeds with a zero archetype rather than blocking.
func (s *Service) DecryptIdentity(ctx context.Context, name, dob string, num numerology.Data) *profile.Archetype {
	prompt := fmt.Sprintf(
		"Decrypt the identity of Asset %q, born %s. Numerological readout: life path %d, expression %d, soul urge %d, wealth marker %t. Derive their operator archetype: a type name, a one-line strategy, a one-line inner authority, an optional signature phrase, up to three asset traits, and one vulnerability.",
		name, dob, num.LifePath, num.Expression, num.SoulUrge, num.IsWealth)

	resp, err := s.llm.Generate(ctx, llm.Request{
		System:      operatorVoice,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      archetypeSchema(),
		MaxTokens:   800,
		Temperature: 0.8,
	})
	if err != nil {
		s.log.Warn("identity decryption failed", zap.Error(err))
		return nil
	}

	var arch profile.Archetype
	if err := json.Unmarshal(resp.Content, &arch); err != nil {
		s.log.Warn("archetype unmarshal failed", zap.Error(err))
		return nil
	}
	return &arch
}
