// Package cloud mirrors the local session to a remote sync endpoint.
// The local store stays authoritative: pushes are best-effort and a
// failed or absent remote never degrades local behavior.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/profile"
)

// Snapshot is the wire format of one mirrored session.
type Snapshot struct {
	Profile  *profile.IdentityProfile `json:"profile"`
	Progress profile.UserProgress     `json:"progress"`
	LastSync string                   `json:"lastSync"`
}

// Mirror pushes and pulls session snapshots over HTTP.
type Mirror struct {
	url    string
	client *http.Client
	log    *zap.Logger
	now    func() time.Time
}

// NewMirror creates a Mirror for the given endpoint URL. An empty URL
// yields a disabled mirror whose operations are no-ops.
func NewMirror(url string, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger,
		now:    time.Now,
	}
}

// Enabled reports whether a sync endpoint is configured.
func (m *Mirror) Enabled() bool { return m.url != "" }

// Push uploads the session snapshot. Callers treat errors as advisory.
func (m *Mirror) Push(ctx context.Context, sess profile.Session) error {
	if !m.Enabled() {
		return nil
	}

	snap := Snapshot{
		Profile:  sess.Profile,
		Progress: sess.Progress,
		LastSync: m.now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("push snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push snapshot: remote returned %s", resp.Status)
	}
	return nil
}

// Pull fetches the remote snapshot, or nil when the mirror is disabled,
// unreachable, or holds nothing usable. The caller decides whether to
// adopt it; Pull itself never touches local state.
func (m *Mirror) Pull(ctx context.Context) *Snapshot {
	if !m.Enabled() {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return nil
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.log.Warn("mirror pull failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.log.Warn("mirror pull rejected", zap.String("status", resp.Status))
		return nil
	}

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		m.log.Warn("mirror snapshot corrupt", zap.Error(err))
		return nil
	}
	return &snap
}
