package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/profile"
)

// persistInterval throttles timer-driven snapshots. Answer, flag and
// navigation writes persist immediately regardless.
const persistInterval = 10 * time.Second

// ErrNoQuestions is the fatal acquisition failure: the generation
// collaborator returned zero questions, so the attempt cannot start and
// the caller must route away from the quiz flow entirely.
var ErrNoQuestions = errors.New("quiz: no questions available")

// Phase is the state of the quiz session machine.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseActive
	PhaseReview
)

// Generator acquires questions from the generation collaborator.
// An empty slice signals failure; the engine never retries.
type Generator interface {
	GenerateQuizQuestions(ctx context.Context, topic catalog.Topic, count int) []Question
}

// AttemptStore persists the single in-flight attempt slot.
type AttemptStore interface {
	ActiveQuiz() *ActiveQuiz
	SaveActiveQuiz(q *ActiveQuiz) error
	ClearActiveQuiz() error
}

// ResultSink folds a finished attempt into the learner's exam history.
type ResultSink interface {
	AddExamResult(r profile.ExamResult) error
}

// StartInfo reports how an attempt began.
type StartInfo struct {
	// Resumed is true when a persisted attempt for the topic was restored.
	Resumed bool
	// Abandoned names the topic of a previously stored attempt that was
	// discarded because a different topic was started. Callers surface
	// this to the learner before the old attempt is lost.
	Abandoned catalog.Topic
}

// Summary is the outcome of a finished attempt, kept for the review phase.
type Summary struct {
	Result        profile.ExamResult
	Percent       int
	WeakestDomain string
	CorrectStreak int
}

// Engine runs one quiz attempt through LOADING → ACTIVE → REVIEW.
// A background ticker drives Tick while UI callbacks answer and
// navigate, so all state transitions serialize on an internal mutex.
type Engine struct {
	store   AttemptStore
	gen     Generator
	results ResultSink
	log     *zap.Logger

	now func() time.Time

	mu            sync.Mutex
	phase         Phase
	attempt       *ActiveQuiz
	correctStreak int
	lastPersist   time.Time
	summary       *Summary
}

// NewEngine creates an Engine in the LOADING phase.
func NewEngine(store AttemptStore, gen Generator, results ResultSink, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:   store,
		gen:     gen,
		results: results,
		log:     logger,
		now:     time.Now,
		phase:   PhaseLoading,
	}
}

// Phase returns the current machine phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Attempt returns the live attempt, nil outside ACTIVE.
func (e *Engine) Attempt() *ActiveQuiz {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attempt
}

// Summary returns the finished-attempt summary, nil before REVIEW.
func (e *Engine) Summary() *Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary
}

// CorrectStreak returns the run of consecutive first-answer corrects.
func (e *Engine) CorrectStreak() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.correctStreak
}

// Start transitions LOADING → ACTIVE. A persisted attempt matching the
// topic resumes verbatim; otherwise questions are requested from the
// generator and a fresh all-unanswered attempt is initialized. A stored
// attempt for a different topic is replaced, and its topic is reported in
// StartInfo so the caller can warn about the silent discard.
func (e *Engine) Start(ctx context.Context, topic catalog.Topic) (StartInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var info StartInfo

	if saved := e.store.ActiveQuiz(); saved != nil {
		if saved.Topic == topic {
			e.attempt = saved
			e.phase = PhaseActive
			e.lastPersist = e.now()
			info.Resumed = true
			return info, nil
		}
		info.Abandoned = saved.Topic
		e.log.Warn("discarding in-flight attempt for another topic",
			zap.String("abandoned", string(saved.Topic)),
			zap.String("starting", string(topic)))
	}

	count := NormalQuestionCount
	if topic == catalog.TopicFullMock {
		count = MockQuestionCount
	}

	questions := e.gen.GenerateQuizQuestions(ctx, topic, count)
	if len(questions) == 0 {
		return info, ErrNoQuestions
	}

	e.attempt = NewActiveQuiz(topic, questions, e.now())
	e.phase = PhaseActive
	e.lastPersist = e.now()
	if err := e.store.SaveActiveQuiz(e.attempt); err != nil {
		e.log.Warn("persist attempt failed", zap.Error(err))
	}
	return info, nil
}

// SelectOption writes the answer for the current question, overwriting any
// prior answer. Only the first answer for a question affects the
// correctness streak; re-answering never re-triggers first-answer side
// effects. Returns whether this was the first answer and whether it is
// correct.
func (e *Engine) SelectOption(idx int) (first, correct bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseActive {
		return false, false
	}
	q := e.attempt
	first = q.UserAnswers[q.CurrentIndex] == Unanswered
	q.UserAnswers[q.CurrentIndex] = idx
	correct = idx == q.Questions[q.CurrentIndex].CorrectAnswerIndex

	if first {
		if correct {
			e.correctStreak++
		} else {
			e.correctStreak = 0
		}
	}

	e.persist()
	return first, correct
}

// ToggleFlag flips the review flag on the current question.
func (e *Engine) ToggleFlag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseActive {
		return
	}
	q := e.attempt
	q.FlaggedQuestions[q.CurrentIndex] = !q.FlaggedQuestions[q.CurrentIndex]
	e.persist()
}

// Navigate changes the current question index.
func (e *Engine) Navigate(idx int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseActive {
		return
	}
	if idx < 0 || idx >= len(e.attempt.Questions) {
		return
	}
	e.attempt.CurrentIndex = idx
	e.persist()
}

// Tick decrements remaining time by one second. Persistence of the timer
// value is throttled to bound write volume; reaching zero forces the
// transition to REVIEW exactly as a manual submit would.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseActive {
		return
	}
	q := e.attempt
	if q.TimeLeft > 0 {
		q.TimeLeft--
	}
	if q.TimeLeft == 0 {
		if _, err := e.finish(); err != nil {
			e.log.Warn("time-expiry finish failed", zap.Error(err))
		}
		return
	}
	if e.now().Sub(e.lastPersist) >= persistInterval {
		e.persist()
	}
}

// Finish transitions ACTIVE → REVIEW: scores the attempt, tallies the
// per-domain breakdown, identifies the weakest domain, appends an
// ExamResult to the profile, and deletes the persisted attempt.
func (e *Engine) Finish() (*Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finish()
}

// finish does the work of Finish with e.mu already held, so a timer
// expiry inside Tick can submit without re-locking.
func (e *Engine) finish() (*Summary, error) {
	if e.phase != PhaseActive {
		return nil, fmt.Errorf("quiz: finish called in phase %d", e.phase)
	}
	q := e.attempt

	score := 0
	domains := map[string]profile.DomainScore{}
	var domainOrder []string
	for i, question := range q.Questions {
		d := question.Domain
		if d == "" {
			d = "Uncategorized"
		}
		ds, seen := domains[d]
		if !seen {
			domainOrder = append(domainOrder, d)
		}
		ds.Total++
		if q.UserAnswers[i] == question.CorrectAnswerIndex {
			ds.Correct++
			score++
		}
		domains[d] = ds
	}

	// Weakest domain: lowest correct/total ratio, ties keep the first
	// encountered since only a strictly lower percentage replaces it.
	weakest := "N/A"
	minPct := 101.0
	for _, d := range domainOrder {
		ds := domains[d]
		pct := float64(ds.Correct) / float64(ds.Total) * 100
		if pct < minPct {
			minPct = pct
			weakest = d
		}
	}

	result := profile.ExamResult{
		ID:             uuid.NewString(),
		Date:           e.now().UTC().Format(time.RFC3339),
		Topic:          q.Topic,
		Score:          score,
		TotalQuestions: len(q.Questions),
		DomainScores:   domains,
	}

	if err := e.results.AddExamResult(result); err != nil {
		return nil, fmt.Errorf("record exam result: %w", err)
	}
	if err := e.store.ClearActiveQuiz(); err != nil {
		e.log.Warn("clear attempt failed", zap.Error(err))
	}

	percent := 0
	if len(q.Questions) > 0 {
		percent = int(float64(score)/float64(len(q.Questions))*100 + 0.5)
	}

	e.summary = &Summary{
		Result:        result,
		Percent:       percent,
		WeakestDomain: weakest,
		CorrectStreak: e.correctStreak,
	}
	e.attempt = nil
	e.phase = PhaseReview
	return e.summary, nil
}

// persist writes the full attempt snapshot.
func (e *Engine) persist() {
	if err := e.store.SaveActiveQuiz(e.attempt); err != nil {
		e.log.Warn("persist attempt failed", zap.Error(err))
		return
	}
	e.lastPersist = e.now()
}
