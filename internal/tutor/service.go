// Package tutor generates the trainer's AI content: practice questions,
// briefings, chat turns and the identity archetype. Every generation
// degrades to a safe fallback; a dead backend never breaks study flow.
package tutor

import (
	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/llm"
)

// Canned copy used when the backend is unreachable. Matches the
// operator voice so failures read as in-fiction interference.
const (
	fallbackInsight   = "Stay calibrated."
	fallbackChat      = "Core link unstable. Re-transmitting..."
	fallbackDirective = "Powerup link failure. Manual study required."
)

// operatorVoice is the system prompt shared by every generation. The
// model speaks as the trainer's onboard operating system.
const operatorVoice = `You are RAV-OS, the onboard tactical operating system of an ultrasound physics exam trainer. You address the learner as "Asset". Your register is terse, military and precise, but every fact you state about ultrasound physics must be accurate and exam-relevant. Never break character.`

// Cache is the durable generated-content cache the Service fronts its
// provider with. Implemented by the store.
type Cache interface {
	GenCache(key string) (string, bool)
	SaveGenCache(key, content string)
}

// Service is the single entry point for AI-generated content.
type Service struct {
	llm   llm.Provider
	cache Cache
	log   *zap.Logger
}

// NewService creates a tutor backed by the given provider and cache.
func NewService(provider llm.Provider, cache Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{llm: provider, cache: cache, log: logger}
}
