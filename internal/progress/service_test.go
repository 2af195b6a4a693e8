package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravlabs/ravos/internal/bus"
	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/profile"
)

// fakeStore keeps one session in memory.
type fakeStore struct {
	sess  profile.Session
	saves int
}

func newFakeStore() *fakeStore {
	return &fakeStore{sess: profile.Session{Progress: profile.DefaultProgress()}}
}

func (f *fakeStore) Session() profile.Session {
	sess := f.sess
	sess.Normalize()
	return sess
}

func (f *fakeStore) SaveSession(sess profile.Session) error {
	f.sess = sess
	f.saves++
	return nil
}

// fakeSyncer records enqueued snapshots.
type fakeSyncer struct {
	enqueued int
}

func (f *fakeSyncer) Enqueue(profile.Session) { f.enqueued++ }

// fakeEvents records published events.
type fakeEvents struct {
	events []bus.Event
}

func (f *fakeEvents) Publish(ev bus.Event) { f.events = append(f.events, ev) }

// mapOverrides is a catalog.OverrideSource over a plain map.
type mapOverrides map[catalog.Topic]catalog.Override

func (m mapOverrides) ContentOverride(id catalog.Topic) (catalog.Override, bool) {
	ov, ok := m[id]
	return ov, ok
}

func newTestService(st *fakeStore) (*Service, *fakeSyncer) {
	sync := &fakeSyncer{}
	s := NewService(st, catalog.NewResolver(nil), sync, &fakeEvents{}, nil)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC) }
	return s, sync
}

func calibrated(t *testing.T, s *Service) *profile.IdentityProfile {
	t.Helper()
	p, err := s.CompleteCalibration(CalibrationInput{
		Name:        "Ada",
		DOB:         "1990-01-01",
		StyleScores: profile.StyleScores{Visual: 3, Auditory: 1},
		Archetype:   &profile.Archetype{Type: "PROJECTOR", Strategy: "Wait", Authority: "Splenic"},
	})
	require.NoError(t, err)
	return p
}

func TestCompleteCalibrationFreezesIdentity(t *testing.T) {
	st := newFakeStore()
	s, sync := newTestService(st)

	p := calibrated(t, s)
	assert.Equal(t, "Ada", p.FullName, "full name defaults to display name")
	assert.Equal(t, 3, p.Numerology.LifePath)
	assert.Equal(t, 6, p.Numerology.Expression)
	assert.Equal(t, 2, p.Numerology.SoulUrge)
	assert.Equal(t, "LP3-EX6-SU2", p.VibrationalSignature)
	assert.Equal(t, profile.StyleVisual, p.LearningStyle)
	assert.Equal(t, profile.TierAsset, p.Tier)

	sess := st.Session()
	require.NotNil(t, sess.Profile)
	assert.True(t, sess.Progress.CalibrationComplete)
	assert.Equal(t, profile.ViewBridge, sess.Progress.LastView)
	assert.Equal(t, "CALIBRATION COMPLETE. WELCOME, ADA", sess.Progress.Logs[0].Message)
	assert.Equal(t, 1, sync.enqueued, "calibration schedules a mirror push")
}

func TestCompleteCalibrationRejectsRepeat(t *testing.T) {
	s, _ := newTestService(newFakeStore())
	calibrated(t, s)

	_, err := s.CompleteCalibration(CalibrationInput{
		Name: "Eve", DOB: "1985-05-05",
		Archetype: &profile.Archetype{Type: "MANIFESTOR", Strategy: "Inform", Authority: "Emotional"},
	})
	assert.Error(t, err)
}

func TestCompleteCalibrationRequiresNameAndDOB(t *testing.T) {
	s, _ := newTestService(newFakeStore())
	_, err := s.CompleteCalibration(CalibrationInput{Name: "Ada"})
	assert.Error(t, err)
}

func TestCompleteCalibrationAbortsWithoutArchetype(t *testing.T) {
	st := newFakeStore()
	s, sync := newTestService(st)

	// A failed identity decryption hands the caller a nil archetype;
	// calibration must abort without creating a partial profile.
	_, err := s.CompleteCalibration(CalibrationInput{Name: "Ada", DOB: "1990-01-01"})
	require.Error(t, err)
	assert.Nil(t, st.Session().Profile)
	assert.False(t, st.Session().Progress.CalibrationComplete)
	assert.Equal(t, 0, sync.enqueued)
}

func TestMarkModuleIntroSeenIsSetOnce(t *testing.T) {
	st := newFakeStore()
	s, _ := newTestService(st)

	require.NoError(t, s.MarkModuleIntroSeen(catalog.TopicDoppler))
	require.NoError(t, s.MarkModuleIntroSeen(catalog.TopicDoppler))

	assert.Equal(t, []catalog.Topic{catalog.TopicDoppler}, st.Session().Progress.ModuleIntrosSeen)
}

func TestUpdateTopicSubStateValidatesAgainstResolvedCatalog(t *testing.T) {
	st := newFakeStore()
	s, _ := newTestService(st)

	require.NoError(t, s.UpdateTopicSubState(catalog.TopicDoppler, "dop-shift"))
	assert.Equal(t, "dop-shift", s.TopicProgress(catalog.TopicDoppler))

	// Unknown sub-unit: dropped, position unchanged.
	require.NoError(t, s.UpdateTopicSubState(catalog.TopicDoppler, "no-such-unit"))
	assert.Equal(t, "dop-shift", s.TopicProgress(catalog.TopicDoppler))

	assert.Error(t, s.UpdateTopicSubState(catalog.Topic("Astrology"), "x"))
}

func TestUpdateTopicSubStateHonorsOverriddenSubTopics(t *testing.T) {
	st := newFakeStore()
	overrides := mapOverrides{
		catalog.TopicDoppler: {SubTopics: []catalog.SubTopic{{ID: "custom-unit", Title: "Custom"}}},
	}
	s := NewService(st, catalog.NewResolver(overrides), nil, nil, nil)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC) }

	// The override replaced the sub-topic list wholesale: the new unit is
	// valid and the original ones no longer are.
	require.NoError(t, s.UpdateTopicSubState(catalog.TopicDoppler, "custom-unit"))
	assert.Equal(t, "custom-unit", s.TopicProgress(catalog.TopicDoppler))

	require.NoError(t, s.UpdateTopicSubState(catalog.TopicDoppler, "dop-shift"))
	assert.Equal(t, "custom-unit", s.TopicProgress(catalog.TopicDoppler))
}

func TestHandleDailyCheckInStreakRules(t *testing.T) {
	st := newFakeStore()
	s, _ := newTestService(st)

	current := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	streak, err := s.HandleDailyCheckIn()
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	// Same day: no-op.
	streak, err = s.HandleDailyCheckIn()
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	// Exactly the next day: extended.
	current = current.AddDate(0, 0, 1)
	streak, err = s.HandleDailyCheckIn()
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	// A missed day: reset to 1.
	current = current.AddDate(0, 0, 2)
	streak, err = s.HandleDailyCheckIn()
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, "2024-01-05", st.Session().Progress.LastSyncDate)
}

func TestDailyInsightKeyedToCalendarDay(t *testing.T) {
	st := newFakeStore()
	s, _ := newTestService(st)

	current := time.Date(2024, 1, 2, 23, 50, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	_, ok := s.CachedDailyInsight()
	assert.False(t, ok)

	require.NoError(t, s.SetDailyInsight("Recalibrate and advance."))
	got, ok := s.CachedDailyInsight()
	require.True(t, ok)
	assert.Equal(t, "Recalibrate and advance.", got)

	// Ten minutes later it is a new calendar day: the insight is stale.
	current = current.Add(10 * time.Minute)
	_, ok = s.CachedDailyInsight()
	assert.False(t, ok)
}

func TestNoteLifecycle(t *testing.T) {
	st := newFakeStore()
	s, _ := newTestService(st)

	id, err := s.AddNote("Aliasing", "occurs past Nyquist", catalog.TopicDoppler)
	require.NoError(t, err)

	newContent := "occurs past the Nyquist limit"
	require.NoError(t, s.UpdateNote(id, profile.NotePatch{Content: &newContent}))

	notes := st.Session().Progress.Notes
	require.Len(t, notes, 1)
	assert.Equal(t, "Aliasing", notes[0].Title, "unpatched field untouched")
	assert.Equal(t, newContent, notes[0].Content)

	// Unknown ids are silent no-ops.
	require.NoError(t, s.UpdateNote("note_missing", profile.NotePatch{Content: &newContent}))
	require.NoError(t, s.DeleteNote("note_missing"))
	require.Len(t, st.Session().Progress.Notes, 1)

	require.NoError(t, s.DeleteNote(id))
	assert.Empty(t, st.Session().Progress.Notes)
}

func TestScriptVault(t *testing.T) {
	st := newFakeStore()
	s, _ := newTestService(st)

	id, err := s.VaultScript("Doppler mnemonic", "big ships shift fast", "Doppler", profile.ScriptNarration)
	require.NoError(t, err)

	scripts := st.Session().Progress.VaultedScripts
	require.Len(t, scripts, 1)
	assert.Equal(t, profile.ScriptNarration, scripts[0].Type)

	require.NoError(t, s.DeleteScript(id))
	assert.Empty(t, st.Session().Progress.VaultedScripts)
}

func TestClaimBounty(t *testing.T) {
	st := newFakeStore()
	st.sess.Progress.Bounties = []profile.TacticalBounty{
		{ID: "b1", Title: "Run 3 quizzes", Goal: 3, Current: 3, Type: profile.BountyQuiz},
		{ID: "b2", Title: "Run 5 quizzes", Goal: 5, Current: 2, Type: profile.BountyQuiz},
	}
	s, _ := newTestService(st)

	require.NoError(t, s.ClaimBounty("b1"))
	assert.True(t, st.Session().Progress.Bounties[0].IsClaimed)

	assert.Error(t, s.ClaimBounty("b2"), "goal not reached")
	assert.Error(t, s.ClaimBounty("b1"), "already claimed")
}

func TestAddExamResultRequiresProfile(t *testing.T) {
	st := newFakeStore()
	s, sync := newTestService(st)

	require.NoError(t, s.AddExamResult(profile.ExamResult{ID: "r1", Score: 3, TotalQuestions: 5}))
	assert.Equal(t, 0, sync.enqueued, "dropped result must not persist or sync")
}

func TestAddExamResultAppendsAndAdvancesBounties(t *testing.T) {
	st := newFakeStore()
	s, _ := newTestService(st)
	calibrated(t, s)

	st.sess.Progress.Bounties = []profile.TacticalBounty{
		{ID: "b1", Title: "Run 2 quizzes", Goal: 2, Type: profile.BountyQuiz},
		{ID: "b2", Title: "Perfect score", Goal: 1, Type: profile.BountyPerfectScore},
	}

	require.NoError(t, s.AddExamResult(profile.ExamResult{
		ID: "r1", Topic: catalog.TopicDoppler, Score: 5, TotalQuestions: 5,
	}))

	sess := st.Session()
	require.Len(t, sess.Profile.Results, 1)
	assert.Equal(t, 1, sess.Progress.Bounties[0].Current)
	assert.Equal(t, 1, sess.Progress.Bounties[1].Current, "perfect score advances its bounty")
	assert.Equal(t, "ASSESSMENT RECORDED: DOPPLER 5/5", sess.Progress.Logs[0].Message)
}

func TestUpdateUserNameKeepsDerivedIdentity(t *testing.T) {
	st := newFakeStore()
	s, _ := newTestService(st)
	p := calibrated(t, s)
	originalSignature := p.VibrationalSignature

	require.NoError(t, s.UpdateUserName("Lady Lovelace"))

	sess := st.Session()
	assert.Equal(t, "Lady Lovelace", sess.Profile.Name)
	assert.Equal(t, "Ada", sess.Profile.FullName)
	assert.Equal(t, originalSignature, sess.Profile.VibrationalSignature)
}

func TestStatsEmptyWithoutProfile(t *testing.T) {
	s, _ := newTestService(newFakeStore())
	stats := s.Stats()
	assert.Equal(t, 0, stats.XP)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, "ASSET", stats.Rank)
}

func TestMutationsScheduleSync(t *testing.T) {
	s, sync := newTestService(newFakeStore())
	require.NoError(t, s.SetOnboardingComplete())
	require.NoError(t, s.SetLastView(profile.ViewHome))
	assert.Equal(t, 2, sync.enqueued)
}
