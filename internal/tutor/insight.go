package tutor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/profile"
)

// DailyInsight returns the motivational line for a calendar day. The
// first request of a day generates and caches it; every later request
// that day serves the cached copy, so the learner sees one stable line
// per day. Failures fall back to canned copy, reported via the second
// return so callers never cache the fallback as the day's insight.
func (s *Service) DailyInsight(ctx context.Context, date string) (string, bool) {
	key := "insight_" + date
	if cached, ok := s.cache.GenCache(key); ok {
		return cached, true
	}

	text, err := s.generateText(ctx,
		"Transmit today's single-sentence motivational directive to the Asset. One sentence, no preamble.", 200, 0.9)
	if err != nil {
		s.log.Warn("daily insight generation failed", zap.Error(err))
		return fallbackInsight, false
	}

	s.cache.SaveGenCache(key, text)
	return text, true
}

// TacticalDirective returns the study directive for an archetype. One
// directive is generated and cached per archetype type; failures fall
// back to canned copy.
func (s *Service) TacticalDirective(ctx context.Context, archetypeType string) string {
	key := "directive_" + archetypeType
	if cached, ok := s.cache.GenCache(key); ok {
		return cached
	}

	prompt := fmt.Sprintf(
		"The Asset's archetype is %q. Issue a two-sentence tactical study directive tailored to that archetype's strengths.",
		archetypeType)
	text, err := s.generateText(ctx, prompt, 300, 0.8)
	if err != nil {
		s.log.Warn("tactical directive generation failed",
			zap.String("archetype", archetypeType), zap.Error(err))
		return fallbackDirective
	}

	s.cache.SaveGenCache(key, text)
	return text
}

// WeaknessReport analyzes recent exam results into a debrief of the
// learner's weakest areas. It is not cached: the caller stores the
// report on the progress record itself.
func (s *Service) WeaknessReport(ctx context.Context, results []profile.ExamResult) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("tutor: no exam results to analyze")
	}

	var b strings.Builder
	b.WriteString("Recent exam telemetry follows. Identify the Asset's weakest domains and issue a focused three-sentence remediation debrief.\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- topic %s: %d/%d", r.Topic, r.Score, r.TotalQuestions)
		for domain, ds := range r.DomainScores {
			fmt.Fprintf(&b, "; %s %d/%d", domain, ds.Correct, ds.Total)
		}
		b.WriteString("\n")
	}

	return s.generateText(ctx, b.String(), 500, 0.5)
}

// generateText runs a plain-text generation with the operator voice.
func (s *Service) generateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := s.llm.Generate(ctx, llmTextRequest(prompt, maxTokens, temperature))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return "", fmt.Errorf("tutor: empty generation")
	}
	return text, nil
}
