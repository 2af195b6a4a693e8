package store

import (
	"github.com/ravlabs/ravos/internal/profile"
	"github.com/ravlabs/ravos/internal/quiz"
)

// Session reads the single session record. When no session is stored, or
// the stored blob is unreadable, it returns a fresh default; when the blob
// predates newer progress fields, those fields are defaulted in the single
// load-and-migrate step. It never fails and never returns a partially
// populated record.
func (s *Store) Session() profile.Session {
	var sess profile.Session
	if !s.getJSON(nsSession, singletonKey, &sess) {
		sess = profile.Session{Progress: profile.DefaultProgress()}
	}
	sess.Normalize()
	return sess
}

// SaveSession serializes and writes the full session in a single write.
// Callers invoke it after every mutation; there is no implicit auto-save.
func (s *Store) SaveSession(sess profile.Session) error {
	return s.putJSON(nsSession, singletonKey, sess)
}

// ActiveQuiz returns the persisted in-flight attempt, or nil when none is
// stored (or the stored blob is unreadable).
func (s *Store) ActiveQuiz() *quiz.ActiveQuiz {
	var q quiz.ActiveQuiz
	if !s.getJSON(nsQuiz, singletonKey, &q) {
		return nil
	}
	return &q
}

// SaveActiveQuiz persists the full attempt snapshot, replacing any
// previously stored attempt regardless of topic.
func (s *Store) SaveActiveQuiz(q *quiz.ActiveQuiz) error {
	return s.putJSON(nsQuiz, singletonKey, q)
}

// ClearActiveQuiz deletes the persisted attempt. Called on submission.
func (s *Store) ClearActiveQuiz() error {
	return s.del(nsQuiz, singletonKey)
}
