// Package app is the composition root: it wires the store, catalog
// resolver, tutor, progress service, cloud mirror and event bus into one
// running application.
package app

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/bus"
	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/cloud"
	"github.com/ravlabs/ravos/internal/llm"
	"github.com/ravlabs/ravos/internal/progress"
	"github.com/ravlabs/ravos/internal/quiz"
	"github.com/ravlabs/ravos/internal/store"
	"github.com/ravlabs/ravos/internal/tutor"
)

// Options carries everything New needs. Store is required; the rest
// have working defaults.
type Options struct {
	Store *store.Store

	// Provider is the generation backend. Nil wires an empty mock, so
	// every AI feature degrades to its fallback instead of crashing.
	Provider llm.Provider

	// SyncURL is the cloud mirror endpoint; empty disables mirroring.
	SyncURL string

	Logger *zap.Logger
}

// App is the wired application.
type App struct {
	Store    *store.Store
	Bus      *bus.Bus
	Resolver *catalog.Resolver
	Tutor    *tutor.Service
	Progress *progress.Service
	Mirror   *cloud.Mirror

	outbox *cloud.Outbox
	log    *zap.Logger
}

// New wires the application. Call Close when done.
func New(opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("app: store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	provider := opts.Provider
	if provider == nil {
		provider = llm.NewMockProvider()
		logger.Warn("no LLM provider configured; AI features degrade to fallbacks")
	}

	b := bus.New()
	opts.Store.OnLabStateChange = func(visualID string, state json.RawMessage) {
		b.Publish(bus.LabStateChanged{VisualID: visualID, State: state})
	}

	mirror := cloud.NewMirror(opts.SyncURL, logger)
	outbox := cloud.NewOutbox(mirror, logger)
	resolver := catalog.NewResolver(opts.Store)
	tut := tutor.NewService(provider, opts.Store, logger)
	prog := progress.NewService(opts.Store, resolver, outbox, b, logger)

	return &App{
		Store:    opts.Store,
		Bus:      b,
		Resolver: resolver,
		Tutor:    tut,
		Progress: prog,
		Mirror:   mirror,
		outbox:   outbox,
		log:      logger,
	}, nil
}

// Close flushes the mirror outbox and releases the store.
func (a *App) Close() error {
	a.outbox.Close()
	return a.Store.Close()
}

// NewQuizEngine builds a quiz engine over the wired store, tutor and
// progress service. Each attempt gets a fresh engine.
func (a *App) NewQuizEngine() *quiz.Engine {
	return quiz.NewEngine(a.Store, a.Tutor, a.Progress, a.log)
}

// DailyBriefing runs the launch ritual: the daily check-in advances the
// sync streak, and the day's insight is served from the session cache or
// generated once and stored under today's date.
func (a *App) DailyBriefing(ctx context.Context) (insight string, streak int, err error) {
	streak, err = a.Progress.HandleDailyCheckIn()
	if err != nil {
		return "", 0, fmt.Errorf("daily check-in: %w", err)
	}

	if cached, ok := a.Progress.CachedDailyInsight(); ok {
		return cached, streak, nil
	}

	today := a.Progress.Session().Progress.LastSyncDate
	insight, generated := a.Tutor.DailyInsight(ctx, today)
	if generated {
		if err := a.Progress.SetDailyInsight(insight); err != nil {
			a.log.Warn("storing daily insight failed", zap.Error(err))
		}
	}
	return insight, streak, nil
}

// RestoreFromMirror adopts the remote snapshot, but only onto a blank
// local session: an existing calibrated profile is never overwritten by
// remote state. Reports whether a restore happened.
func (a *App) RestoreFromMirror(ctx context.Context) bool {
	if a.Progress.Session().Profile != nil {
		return false
	}
	snap := a.Mirror.Pull(ctx)
	if snap == nil || snap.Profile == nil {
		return false
	}

	sess := a.Progress.Session()
	sess.Profile = snap.Profile
	sess.Progress = snap.Progress
	sess.Normalize()
	if err := a.Store.SaveSession(sess); err != nil {
		a.log.Warn("adopting mirror snapshot failed", zap.Error(err))
		return false
	}
	a.log.Info("session restored from mirror", zap.String("lastSync", snap.LastSync))
	return true
}

// Purge wipes every namespace of learner state. Irreversible.
func (a *App) Purge() error {
	return a.Store.ClearAll()
}
