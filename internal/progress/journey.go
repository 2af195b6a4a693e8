package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ravlabs/ravos/internal/bus"
	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/profile"
)

const dayFormat = "2006-01-02"

// AddSystemLog prepends an entry to the bounded system log. Messages are
// upper-cased on entry; the oldest lines fall off past the cap.
func (s *Service) AddSystemLog(message string, level profile.LogLevel) error {
	return s.mutate(func(sess *profile.Session) {
		sess.Progress.PrependLog(profile.NewLogEntry(message, level, s.now()))
	})
}

// HandleDailyCheckIn advances the daily sync streak. The same day is a
// no-op; a check-in exactly one day after the last extends the streak;
// any longer gap resets it to 1. Returns the streak after the check-in.
func (s *Service) HandleDailyCheckIn() (int, error) {
	streak := 0
	err := s.mutate(func(sess *profile.Session) {
		p := &sess.Progress
		today := s.now().Format(dayFormat)
		if p.LastSyncDate == today {
			streak = p.SyncStreak
			return
		}

		yesterday := s.now().AddDate(0, 0, -1).Format(dayFormat)
		if p.LastSyncDate == yesterday {
			p.SyncStreak++
		} else {
			p.SyncStreak = 1
		}
		p.LastSyncDate = today
		streak = p.SyncStreak

		advanceBounties(p, profile.BountyStreak, 1)
		p.PrependLog(profile.NewLogEntry(
			fmt.Sprintf("sync streak: %d day(s)", p.SyncStreak), profile.LogSuccess, s.now()))
	})
	return streak, err
}

// CachedDailyInsight returns today's stored insight, if one was saved
// under the current calendar day.
func (s *Service) CachedDailyInsight() (string, bool) {
	p := s.store.Session().Progress
	if p.DailyInsightDate == s.now().Format(dayFormat) && p.DailyInsight != "" {
		return p.DailyInsight, true
	}
	return "", false
}

// SetDailyInsight stores the insight under the current calendar day.
func (s *Service) SetDailyInsight(text string) error {
	return s.mutate(func(sess *profile.Session) {
		sess.Progress.DailyInsight = text
		sess.Progress.DailyInsightDate = s.now().Format(dayFormat)
	})
}

// SetWeaknessReport stores the latest weakness debrief.
func (s *Service) SetWeaknessReport(text string) error {
	return s.mutate(func(sess *profile.Session) {
		sess.Progress.LastWeaknessReport = text
	})
}

// AddNote appends a new intel note and returns its id.
func (s *Service) AddNote(title, content string, topic catalog.Topic) (string, error) {
	id := "note_" + uuid.NewString()
	err := s.mutate(func(sess *profile.Session) {
		sess.Progress.Notes = append(sess.Progress.Notes, profile.IntelNote{
			ID:      id,
			Title:   title,
			Content: content,
			Date:    s.now().UTC().Format(time.RFC3339),
			Topic:   topic,
		})
	})
	return id, err
}

// UpdateNote patches a note by id. Nil patch fields leave the note's
// field untouched. An unknown id is a silent no-op.
func (s *Service) UpdateNote(id string, patch profile.NotePatch) error {
	return s.mutate(func(sess *profile.Session) {
		for i := range sess.Progress.Notes {
			if sess.Progress.Notes[i].ID != id {
				continue
			}
			if patch.Title != nil {
				sess.Progress.Notes[i].Title = *patch.Title
			}
			if patch.Content != nil {
				sess.Progress.Notes[i].Content = *patch.Content
			}
			return
		}
	})
}

// DeleteNote removes a note by id. An unknown id is a silent no-op.
func (s *Service) DeleteNote(id string) error {
	return s.mutate(func(sess *profile.Session) {
		notes := sess.Progress.Notes
		for i := range notes {
			if notes[i].ID == id {
				sess.Progress.Notes = append(notes[:i], notes[i+1:]...)
				return
			}
		}
	})
}

// VaultScript stores a generated script artifact and returns its id.
func (s *Service) VaultScript(title, content, topic string, kind profile.ScriptType) (string, error) {
	id := "script_" + uuid.NewString()
	err := s.mutate(func(sess *profile.Session) {
		sess.Progress.VaultedScripts = append(sess.Progress.VaultedScripts, profile.TacticalScript{
			ID:      id,
			Title:   title,
			Content: content,
			Date:    s.now().UTC().Format(time.RFC3339),
			Topic:   topic,
			Type:    kind,
		})
	})
	return id, err
}

// DeleteScript removes a vaulted script by id. Unknown ids are no-ops.
func (s *Service) DeleteScript(id string) error {
	return s.mutate(func(sess *profile.Session) {
		scripts := sess.Progress.VaultedScripts
		for i := range scripts {
			if scripts[i].ID == id {
				sess.Progress.VaultedScripts = append(scripts[:i], scripts[i+1:]...)
				return
			}
		}
	})
}

// ClaimBounty marks a completed bounty as claimed. Claiming requires
// the goal to be reached and the bounty to be unclaimed.
func (s *Service) ClaimBounty(id string) error {
	claimed := false
	err := s.mutate(func(sess *profile.Session) {
		for i := range sess.Progress.Bounties {
			b := &sess.Progress.Bounties[i]
			if b.ID != id || b.IsClaimed || b.Current < b.Goal {
				continue
			}
			b.IsClaimed = true
			claimed = true
			sess.Progress.PrependLog(profile.NewLogEntry(
				"bounty claimed: "+b.Title, profile.LogSuccess, s.now()))
			return
		}
	})
	if err != nil {
		return err
	}
	if !claimed {
		return fmt.Errorf("bounty %q is not claimable", id)
	}
	s.notify(bus.NotifySuccess, "Bounty claimed.")
	return nil
}

// AddExamResult appends a finished assessment to the profile's exam
// history and advances quiz bounties. Without a calibrated profile there
// is no history to write, so the result is dropped with a warning.
// Satisfies the quiz engine's result sink.
func (s *Service) AddExamResult(r profile.ExamResult) error {
	sess := s.store.Session()
	if sess.Profile == nil {
		s.log.Warn("exam result dropped: no calibrated profile")
		return nil
	}
	return s.mutate(func(sess *profile.Session) {
		sess.Profile.Results = append(sess.Profile.Results, r)

		advanceBounties(&sess.Progress, profile.BountyQuiz, 1)
		if r.TotalQuestions > 0 && r.Score == r.TotalQuestions {
			advanceBounties(&sess.Progress, profile.BountyPerfectScore, 1)
		}

		sess.Progress.PrependLog(profile.NewLogEntry(
			fmt.Sprintf("assessment recorded: %s %d/%d", r.Topic, r.Score, r.TotalQuestions),
			profile.LogSuccess, s.now()))
	})
}

// UpdateUserName changes the display name only. The full name, date of
// birth and everything derived from them stay frozen.
func (s *Service) UpdateUserName(name string) error {
	return s.mutate(func(sess *profile.Session) {
		if sess.Profile == nil {
			return
		}
		sess.Profile.Name = name
	})
}

// advanceBounties increments every unclaimed bounty of the given type,
// clamping at its goal.
func advanceBounties(p *profile.UserProgress, kind profile.BountyType, n int) {
	for i := range p.Bounties {
		b := &p.Bounties[i]
		if b.Type != kind || b.IsClaimed || b.Current >= b.Goal {
			continue
		}
		b.Current += n
		if b.Current > b.Goal {
			b.Current = b.Goal
		}
	}
}
