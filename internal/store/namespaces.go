package store

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/catalog"
)

// LabState returns the stored simulation parameters for a visualization,
// or nil when absent. The payload is opaque to the store; callers supply
// their own defaults.
func (s *Store) LabState(visualID string) json.RawMessage {
	raw, ok := s.get(nsLab, visualID)
	if !ok {
		return nil
	}
	return json.RawMessage(raw)
}

// SaveLabState stores the simulation parameters for a visualization and
// notifies the change observer, if any.
func (s *Store) SaveLabState(visualID string, state json.RawMessage) error {
	if err := s.put(nsLab, visualID, string(state)); err != nil {
		return err
	}
	if s.OnLabStateChange != nil {
		s.OnLabStateChange(visualID, state)
	}
	return nil
}

// ChatHistory returns the stored transcript for a topic, or nil when
// absent. Like lab state, the payload is opaque to the store.
func (s *Store) ChatHistory(topic catalog.Topic) json.RawMessage {
	raw, ok := s.get(nsChat, string(topic))
	if !ok {
		return nil
	}
	return json.RawMessage(raw)
}

// SaveChatHistory stores the transcript for a topic.
func (s *Store) SaveChatHistory(topic catalog.Topic, history json.RawMessage) error {
	return s.put(nsChat, string(topic), string(history))
}

// GenCache returns the cached generated content for a key, or ("", false)
// on a miss.
func (s *Store) GenCache(key string) (string, bool) {
	return s.get(nsGenCache, key)
}

// SaveGenCache stores generated content under an arbitrary key. The write
// is fire-and-forget: failures are logged and swallowed so an unavailable
// cache can never surface an error to content generation.
func (s *Store) SaveGenCache(key, content string) {
	if err := s.put(nsGenCache, key, content); err != nil {
		s.log.Warn("gen cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// AudioCache returns a cached base64 audio clip for a key, or ("", false)
// on a miss. The audio cache is session-scoped: it lives in process memory
// and is gone on restart.
func (s *Store) AudioCache(key string) (string, bool) {
	return s.audio.Get(key)
}

// SaveAudioCache stores a base64 audio clip. The bounded LRU evicts old
// clips instead of failing when full.
func (s *Store) SaveAudioCache(key, base64 string) {
	s.audio.Add(key, base64)
}

// ContentOverride returns the stored patch for one topic. Absence is
// (Override{}, false); resolution then uses static metadata alone.
// Implements catalog.OverrideSource.
func (s *Store) ContentOverride(id catalog.Topic) (catalog.Override, bool) {
	var ov catalog.Override
	if !s.getJSON(nsOverride, string(id), &ov) {
		return catalog.Override{}, false
	}
	return ov, true
}

// ContentOverrides returns every stored patch keyed by topic. An empty map
// is returned when none exist or the namespace is unreadable.
func (s *Store) ContentOverrides() map[catalog.Topic]catalog.Override {
	out := map[catalog.Topic]catalog.Override{}
	rows, err := s.db.Query("SELECT key, value FROM kv WHERE namespace = ?", nsOverride)
	if err != nil {
		s.log.Warn("override scan failed", zap.Error(err))
		return out
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			continue
		}
		var ov catalog.Override
		if err := json.Unmarshal([]byte(value), &ov); err != nil {
			s.log.Warn("override blob corrupt; skipped", zap.String("topic", key), zap.Error(err))
			continue
		}
		out[catalog.Topic(key)] = ov
	}
	return out
}

// SaveContentOverride replaces the patch for a single topic wholesale,
// without touching patches stored for other topics.
func (s *Store) SaveContentOverride(id catalog.Topic, ov catalog.Override) error {
	return s.putJSON(nsOverride, string(id), ov)
}
