package tutor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/llm"
)

// SpeechSynthesizer turns script text into base64-encoded audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// AudioCache is the bounded in-memory clip cache the Narrator fronts
// its synthesizer with. Implemented by the store.
type AudioCache interface {
	AudioCache(key string) (string, bool)
	SaveAudioCache(key, base64 string)
}

// Narrator synthesizes and caches spoken audio for generated scripts.
type Narrator struct {
	synth SpeechSynthesizer
	audio AudioCache
	log   *zap.Logger
}

// NewNarrator creates a Narrator over a synthesizer and clip cache.
func NewNarrator(synth SpeechSynthesizer, audio AudioCache, logger *zap.Logger) *Narrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Narrator{synth: synth, audio: audio, log: logger}
}

// Narrate returns base64 audio for a script, serving repeats from the
// clip cache. The cache is bounded; old clips are evicted, never
// errored on.
func (n *Narrator) Narrate(ctx context.Context, key, text string) (string, error) {
	if clip, ok := n.audio.AudioCache(key); ok {
		return clip, nil
	}

	clip, err := n.synth.Synthesize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("synthesize %q: %w", key, err)
	}
	n.audio.SaveAudioCache(key, clip)
	return clip, nil
}

// ModuleIntroScript writes the one-time spoken introduction played when
// the learner first opens a study module.
func (s *Service) ModuleIntroScript(ctx context.Context, topic catalog.Topic) (string, error) {
	meta, ok := catalog.Get(topic)
	if !ok {
		return "", fmt.Errorf("tutor: unknown topic %q", topic)
	}
	prompt := fmt.Sprintf(
		"Write the spoken introduction the Asset hears on first entering the %q module (%s). Two sentences, command-briefing cadence.",
		topic, meta.Description)
	return s.generateText(ctx, prompt, 300, 0.8)
}

// NarrationScript writes the spoken study narration for one sub-topic.
func (s *Service) NarrationScript(ctx context.Context, topic catalog.Topic, subTopic string) (string, error) {
	prompt := fmt.Sprintf(
		"Narrate the sub-topic %q of module %q as a spoken study briefing. Cover the exam-critical facts in under 150 words.",
		subTopic, topic)
	return s.generateText(ctx, prompt, 800, 0.6)
}

// llmTextRequest is the shared shape of plain-text generations.
func llmTextRequest(prompt string, maxTokens int, temperature float64) llm.Request {
	return llm.Request{
		System:      operatorVoice,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}
