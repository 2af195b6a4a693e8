package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravlabs/ravos/internal/bus"
	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/llm"
	"github.com/ravlabs/ravos/internal/numerology"
	"github.com/ravlabs/ravos/internal/progress"
	"github.com/ravlabs/ravos/internal/store"
)

func openApp(t *testing.T, provider llm.Provider, syncURL string) *App {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared", nil)
	require.NoError(t, err)
	require.NoError(t, st.ClearAll())

	a, err := New(Options{Store: st, Provider: provider, SyncURL: syncURL})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func questionSet(n, correct int) json.RawMessage {
	qs := make([]map[string]any, n)
	for i := range qs {
		qs[i] = map[string]any{
			"question":           fmt.Sprintf("q%d", i),
			"options":            []string{"a", "b", "c", "d"},
			"correctAnswerIndex": correct,
			"explanation":        "because physics",
			"domain":             string(catalog.DomainPhysics),
		}
	}
	raw, _ := json.Marshal(qs)
	return raw
}

func TestFullJourney(t *testing.T) {
	mock := llm.NewMockProvider(
		// Calibration: identity decryption.
		llm.MockResponse{Content: json.RawMessage(`{"type":"PROJECTOR","strategy":"Wait","authority":"Splenic"}`)},
		// First quiz: question generation.
		llm.MockResponse{Content: questionSet(5, 1)},
	)
	a := openApp(t, mock, "")
	ctx := context.Background()

	// Calibrate.
	arch := a.Tutor.DecryptIdentity(ctx, "Ada", "1990-01-01", numerology.Calculate("Ada", "1990-01-01"))
	require.NotNil(t, arch)
	_, err := a.Progress.CompleteCalibration(progress.CalibrationInput{
		Name: "Ada", DOB: "1990-01-01", Archetype: arch,
	})
	require.NoError(t, err)
	require.NotNil(t, a.Progress.Session().Profile)

	// Run a quiz: 3 of 5 correct.
	engine := a.NewQuizEngine()
	info, err := engine.Start(ctx, catalog.TopicDoppler)
	require.NoError(t, err)
	assert.False(t, info.Resumed)

	answers := []int{1, 1, 1, 0, 0}
	for i, ans := range answers {
		engine.Navigate(i)
		engine.SelectOption(ans)
	}
	summary, err := engine.Finish()
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Result.Score)
	assert.Equal(t, 5, summary.Result.TotalQuestions)

	// The result landed in the exam history and the slot is clear.
	sess := a.Progress.Session()
	require.Len(t, sess.Profile.Results, 1)
	assert.Nil(t, a.Store.ActiveQuiz())

	stats := a.Progress.Stats()
	assert.Equal(t, 30, stats.XP)
	assert.Equal(t, 60, stats.AverageScore)
}

func TestDailyBriefingCachesInsight(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Recalibrate and advance, Asset.")},
	)
	a := openApp(t, mock, "")
	ctx := context.Background()

	insight, streak, err := a.DailyBriefing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, "Recalibrate and advance, Asset.", insight)

	// Same day: no new generation, same insight and streak.
	again, streak, err := a.DailyBriefing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, insight, again)
	assert.Equal(t, 1, mock.CallCount())
}

func TestNilProviderDegradesToFallbacks(t *testing.T) {
	a := openApp(t, nil, "")

	insight, _, err := a.DailyBriefing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stay calibrated.", insight)

	engine := a.NewQuizEngine()
	_, err = engine.Start(context.Background(), catalog.TopicDoppler)
	assert.Error(t, err, "no provider means no questions")
}

func TestLabStateChangesReachTheBus(t *testing.T) {
	a := openApp(t, nil, "")

	events, cancel := a.Bus.Subscribe()
	defer cancel()

	state := json.RawMessage(`{"frequency":7.5}`)
	require.NoError(t, a.Store.SaveLabState("doppler_lab", state))

	ev := <-events
	changed, ok := ev.(bus.LabStateChanged)
	require.True(t, ok)
	assert.Equal(t, "doppler_lab", changed.VisualID)
	assert.JSONEq(t, string(state), string(changed.State))
}

func TestRestoreFromMirror(t *testing.T) {
	remote := map[string]any{
		"profile": map[string]any{
			"name": "Ada", "fullName": "Ada", "dob": "1990-01-01",
			"vibrationalSignature": "LP3-EX6-SU2",
		},
		"progress": map[string]any{"calibrationComplete": true, "syncStreak": 7},
		"lastSync": "2024-01-01T00:00:00Z",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(remote)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := openApp(t, nil, srv.URL)

	require.True(t, a.RestoreFromMirror(context.Background()))
	sess := a.Progress.Session()
	require.NotNil(t, sess.Profile)
	assert.Equal(t, "Ada", sess.Profile.Name)
	assert.Equal(t, 7, sess.Progress.SyncStreak)
	assert.NotNil(t, sess.Progress.Notes, "restored session is normalized")

	// A calibrated local session is never overwritten.
	assert.False(t, a.RestoreFromMirror(context.Background()))
}
