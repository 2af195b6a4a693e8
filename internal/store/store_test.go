package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/quiz"
)

func testNow() time.Time {
	return time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared", nil)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	// Isolate tests sharing the in-memory database.
	if err := s.ClearAll(); err != nil {
		t.Fatalf("clear store: %v", err)
	}
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSessionDefaultWhenAbsent(t *testing.T) {
	s := openTestStore(t)

	sess := s.Session()
	if sess.Profile != nil {
		t.Fatal("expected nil profile for fresh session")
	}
	if sess.Progress.CalibrationComplete {
		t.Error("fresh session must not be calibrated")
	}
	if sess.Progress.TopicProgress == nil {
		t.Error("progress collections must be defaulted")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	sess := s.Session()
	sess.Progress.OnboardingSeen = true
	sess.Progress.TopicProgress[catalog.TopicDoppler] = "dop-shift"
	if err := s.SaveSession(sess); err != nil {
		t.Fatalf("save session: %v", err)
	}

	got := s.Session()
	if !got.Progress.OnboardingSeen {
		t.Error("OnboardingSeen lost in round trip")
	}
	if got.Progress.TopicProgress[catalog.TopicDoppler] != "dop-shift" {
		t.Error("topic progress lost in round trip")
	}
}

func TestSessionOldSchemaDefaulted(t *testing.T) {
	s := openTestStore(t)

	// Simulate a blob written before several progress fields existed.
	old := `{"profile":null,"progress":{"lastView":"HOME","calibrationComplete":true,"topicProgress":{"QA":"qa-phantoms"}}}`
	if err := s.put(nsSession, singletonKey, old); err != nil {
		t.Fatalf("seed old blob: %v", err)
	}

	sess := s.Session()
	p := sess.Progress
	if !p.CalibrationComplete {
		t.Error("existing field lost")
	}
	if p.Notes == nil || p.VaultedScripts == nil || p.Logs == nil || p.Bounties == nil || p.CompletedMissions == nil {
		t.Error("newer fields must be defaulted, not nil")
	}
}

func TestSessionCorruptBlobDegradesToDefault(t *testing.T) {
	s := openTestStore(t)

	if err := s.put(nsSession, singletonKey, "{not json"); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	sess := s.Session()
	if sess.Profile != nil || sess.Progress.CalibrationComplete {
		t.Error("corrupt session must degrade to the default record")
	}
}

func TestActiveQuizSlot(t *testing.T) {
	s := openTestStore(t)

	if q := s.ActiveQuiz(); q != nil {
		t.Fatal("expected no active quiz initially")
	}

	q := quiz.NewActiveQuiz(catalog.TopicDoppler, []quiz.Question{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 1, Domain: string(catalog.DomainDoppler)},
	}, testNow())
	q.UserAnswers[0] = 2
	q.FlaggedQuestions[0] = true
	q.CurrentIndex = 0
	if err := s.SaveActiveQuiz(q); err != nil {
		t.Fatalf("save quiz: %v", err)
	}

	got := s.ActiveQuiz()
	if got == nil {
		t.Fatal("expected persisted quiz")
	}
	if got.Topic != catalog.TopicDoppler || got.UserAnswers[0] != 2 || !got.FlaggedQuestions[0] {
		t.Error("quiz snapshot not restored verbatim")
	}

	if err := s.ClearActiveQuiz(); err != nil {
		t.Fatalf("clear quiz: %v", err)
	}
	if q := s.ActiveQuiz(); q != nil {
		t.Error("quiz must be absent after clear")
	}
}

func TestContentOverrides(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.ContentOverride(catalog.TopicQA); ok {
		t.Fatal("expected no override initially")
	}
	if got := s.ContentOverrides(); len(got) != 0 {
		t.Fatal("expected empty override map")
	}

	desc := "patched"
	if err := s.SaveContentOverride(catalog.TopicQA, catalog.Override{Description: &desc}); err != nil {
		t.Fatalf("save override: %v", err)
	}
	icon := "fa-flask"
	if err := s.SaveContentOverride(catalog.TopicDoppler, catalog.Override{Icon: &icon}); err != nil {
		t.Fatalf("save override: %v", err)
	}

	ov, ok := s.ContentOverride(catalog.TopicQA)
	if !ok || ov.Description == nil || *ov.Description != "patched" {
		t.Error("QA override not stored")
	}

	// Replacing one topic's patch must not touch the other's.
	desc2 := "patched again"
	if err := s.SaveContentOverride(catalog.TopicQA, catalog.Override{Description: &desc2}); err != nil {
		t.Fatalf("replace override: %v", err)
	}
	all := s.ContentOverrides()
	if len(all) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(all))
	}
	if all[catalog.TopicDoppler].Icon == nil {
		t.Error("unrelated override lost")
	}
}

func TestGenCache(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.GenCache("insight_today"); ok {
		t.Fatal("expected cache miss")
	}
	s.SaveGenCache("insight_today", "stay calibrated")
	got, ok := s.GenCache("insight_today")
	if !ok || got != "stay calibrated" {
		t.Errorf("cache hit = %q, %v", got, ok)
	}
}

func TestLabStateObserver(t *testing.T) {
	s := openTestStore(t)

	var gotID string
	var gotState json.RawMessage
	s.OnLabStateChange = func(id string, state json.RawMessage) {
		gotID = id
		gotState = state
	}

	if raw := s.LabState("wave_lab"); raw != nil {
		t.Fatal("expected absent lab state")
	}

	state := json.RawMessage(`{"frequency":5,"amplitude":0.8}`)
	if err := s.SaveLabState("wave_lab", state); err != nil {
		t.Fatalf("save lab state: %v", err)
	}
	if gotID != "wave_lab" || string(gotState) != string(state) {
		t.Error("lab change observer not notified")
	}

	raw := s.LabState("wave_lab")
	if string(raw) != string(state) {
		t.Errorf("lab state = %s", raw)
	}
}

func TestChatHistory(t *testing.T) {
	s := openTestStore(t)

	if raw := s.ChatHistory(catalog.TopicDoppler); raw != nil {
		t.Fatal("expected absent chat history")
	}
	hist := json.RawMessage(`[{"role":"user","text":"what is aliasing?"}]`)
	if err := s.SaveChatHistory(catalog.TopicDoppler, hist); err != nil {
		t.Fatalf("save chat: %v", err)
	}
	if got := s.ChatHistory(catalog.TopicDoppler); string(got) != string(hist) {
		t.Errorf("chat history = %s", got)
	}
}

func TestAudioCache(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.AudioCache("intro_Doppler"); ok {
		t.Fatal("expected audio cache miss")
	}
	s.SaveAudioCache("intro_Doppler", "UklGRg==")
	got, ok := s.AudioCache("intro_Doppler")
	if !ok || got != "UklGRg==" {
		t.Error("audio clip not cached")
	}
}

func TestClearAll(t *testing.T) {
	s := openTestStore(t)

	sess := s.Session()
	sess.Progress.OnboardingSeen = true
	if err := s.SaveSession(sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	s.SaveAudioCache("k", "v")

	if err := s.ClearAll(); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if s.Session().Progress.OnboardingSeen {
		t.Error("session survived purge")
	}
	if _, ok := s.AudioCache("k"); ok {
		t.Error("audio cache survived purge")
	}
}
