// Package progress mutates the learner's session: every operation loads
// the session, applies one change, persists the whole record, and
// schedules a cloud mirror push. The store is authoritative; the mirror
// and event bus are advisory side channels.
package progress

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/bus"
	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/profile"
)

// SessionStore is the persistence surface the service mutates through.
// Implemented by the store.
type SessionStore interface {
	Session() profile.Session
	SaveSession(sess profile.Session) error
}

// Syncer schedules a session snapshot for cloud upload. Implemented by
// the cloud outbox; nil disables mirroring.
type Syncer interface {
	Enqueue(sess profile.Session)
}

// Publisher fans events out to interested surfaces. Implemented by the
// bus; nil disables publication.
type Publisher interface {
	Publish(ev bus.Event)
}

// Service owns all session mutations.
type Service struct {
	store    SessionStore
	resolver *catalog.Resolver
	sync     Syncer
	events   Publisher
	log      *zap.Logger

	now func() time.Time
}

// NewService creates the progress service. sync and events may be nil.
func NewService(store SessionStore, resolver *catalog.Resolver, sync Syncer, events Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		resolver: resolver,
		sync:     sync,
		events:   events,
		log:      logger,
		now:      time.Now,
	}
}

// Session returns the current session.
func (s *Service) Session() profile.Session {
	return s.store.Session()
}

// Stats derives the XP/level/rank projection from the exam history. A
// session without a profile yields zero stats.
func (s *Service) Stats() profile.Stats {
	sess := s.store.Session()
	if sess.Profile == nil {
		return profile.ComputeStats(nil)
	}
	return profile.ComputeStats(sess.Profile.Results)
}

// mutate runs one load → change → persist → mirror cycle.
func (s *Service) mutate(fn func(sess *profile.Session)) error {
	sess := s.store.Session()
	fn(&sess)
	if err := s.store.SaveSession(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if s.sync != nil {
		s.sync.Enqueue(sess)
	}
	return nil
}

func (s *Service) notify(level bus.NotificationLevel, message string) {
	if s.events != nil {
		s.events.Publish(bus.Notification{Level: level, Message: message})
	}
}

// SetLastView records the view to restore on next launch.
func (s *Service) SetLastView(view profile.AppView) error {
	return s.mutate(func(sess *profile.Session) {
		sess.Progress.LastView = view
	})
}

// SetActiveTopic records which module the learner is working, nil for none.
func (s *Service) SetActiveTopic(topic *catalog.Topic) error {
	return s.mutate(func(sess *profile.Session) {
		sess.Progress.ActiveTopic = topic
	})
}

// SetOnboardingComplete marks the one-time onboarding as seen.
func (s *Service) SetOnboardingComplete() error {
	return s.mutate(func(sess *profile.Session) {
		sess.Progress.OnboardingSeen = true
	})
}

// MarkModuleIntroSeen records that a topic's cinematic intro played.
// Set-once: repeat calls for a seen topic change nothing.
func (s *Service) MarkModuleIntroSeen(topic catalog.Topic) error {
	return s.mutate(func(sess *profile.Session) {
		if sess.Progress.HasSeenModuleIntro(topic) {
			return
		}
		sess.Progress.ModuleIntrosSeen = append(sess.Progress.ModuleIntrosSeen, topic)
	})
}

// UpdateTopicSubState records the learner's position within a module.
// The sub-unit must exist on the resolved (override-aware) metadata;
// unknown positions are dropped with a warning rather than persisted.
func (s *Service) UpdateTopicSubState(topic catalog.Topic, subID string) error {
	meta, ok := s.resolver.Resolve(topic)
	if !ok {
		return fmt.Errorf("unknown topic %q", topic)
	}
	if !meta.HasSubTopic(subID) {
		s.log.Warn("ignoring unknown sub-topic position",
			zap.String("topic", string(topic)), zap.String("sub", subID))
		return nil
	}
	return s.mutate(func(sess *profile.Session) {
		sess.Progress.TopicProgress[topic] = subID
	})
}

// TopicProgress returns the saved position within a module, "" when the
// module was never entered.
func (s *Service) TopicProgress(topic catalog.Topic) string {
	return s.store.Session().Progress.TopicProgress[topic]
}

// CompleteMission records a finished mission exactly once.
func (s *Service) CompleteMission(id string) error {
	return s.mutate(func(sess *profile.Session) {
		for _, done := range sess.Progress.CompletedMissions {
			if done == id {
				return
			}
		}
		sess.Progress.CompletedMissions = append(sess.Progress.CompletedMissions, id)
	})
}
