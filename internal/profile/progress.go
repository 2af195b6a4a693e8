package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ravlabs/ravos/internal/catalog"
)

// MaxLogEntries bounds the system log ring buffer.
const MaxLogEntries = 50

// LogLevel is the severity of a system log entry.
type LogLevel string

const (
	LogInfo     LogLevel = "INFO"
	LogSuccess  LogLevel = "SUCCESS"
	LogWarning  LogLevel = "WARNING"
	LogCritical LogLevel = "CRITICAL"
)

// LogEntry is one line of the bounded system log, most recent first.
type LogEntry struct {
	ID        string   `json:"id"`
	Message   string   `json:"message"`
	Level     LogLevel `json:"type"`
	Timestamp int64    `json:"timestamp"`
}

// Achievement is an unlocked badge.
type Achievement struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// IntelNote is a free-form learner note.
type IntelNote struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Date    string        `json:"date"`
	Topic   catalog.Topic `json:"topic"`
}

// NotePatch carries the fields of a note update; nil fields are untouched.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// ScriptType tags the origin of a vaulted script.
type ScriptType string

const (
	ScriptNarration ScriptType = "NARRATION"
	ScriptIntro     ScriptType = "INTRO"
	ScriptInsight   ScriptType = "INSIGHT"
)

// TacticalScript is an AI-generated mnemonic artifact vaulted by the learner.
type TacticalScript struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Date    string     `json:"date"`
	Topic   string     `json:"topic"`
	Type    ScriptType `json:"type"`
}

// BountyType tags what activity advances a bounty.
type BountyType string

const (
	BountyQuiz         BountyType = "QUIZ"
	BountyLesson       BountyType = "LESSON"
	BountyStreak       BountyType = "STREAK"
	BountyPerfectScore BountyType = "PERFECT_SCORE"
)

// TacticalBounty is a goal/current/reward challenge.
type TacticalBounty struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Goal        int        `json:"goal"`
	Current     int        `json:"current"`
	RewardXP    int        `json:"rewardXp"`
	Type        BountyType `json:"type"`
	IsClaimed   bool       `json:"isClaimed"`
}

// UserProgress is the mutable operational state of the learner's journey.
// Every field must survive a load of a blob written by an older release,
// which is what normalize guarantees.
type UserProgress struct {
	LastView            AppView                  `json:"lastView"`
	CalibrationComplete bool                     `json:"calibrationComplete"`
	OnboardingSeen      bool                     `json:"onboardingSeen"`
	TopicProgress       map[catalog.Topic]string `json:"topicProgress"`
	Achievements        []Achievement            `json:"achievements"`
	ModuleIntrosSeen    []catalog.Topic          `json:"moduleIntrosSeen"`
	Notes               []IntelNote              `json:"notes"`
	VaultedScripts      []TacticalScript         `json:"vaultedScripts"`
	SyncStreak          int                      `json:"syncStreak"`
	LastSyncDate        string                   `json:"lastSyncDate,omitempty"`
	Bounties            []TacticalBounty         `json:"bounties"`
	ActiveTopic         *catalog.Topic           `json:"activeTopic"`
	Logs                []LogEntry               `json:"logs"`
	CompletedMissions   []string                 `json:"completedMissions"`

	// Single-slot caches for AI-generated enrichments. DailyInsightDate
	// keys the insight to a calendar day.
	DailyInsight       string `json:"dailyInsight,omitempty"`
	DailyInsightDate   string `json:"dailyInsightDate,omitempty"`
	LastWeaknessReport string `json:"lastWeaknessReport,omitempty"`
}

// DefaultProgress returns the record used when no session has been stored,
// seeded with the establishment log line.
func DefaultProgress() UserProgress {
	p := UserProgress{
		LastView: ViewCalibration,
		Logs: []LogEntry{{
			ID:        "init",
			Message:   "SYSTEM_ESTABLISHED",
			Level:     LogInfo,
			Timestamp: time.Now().UnixMilli(),
		}},
	}
	p.normalize()
	return p
}

// normalize fills nil collections and zero-valued fields added after a
// session was first persisted.
func (p *UserProgress) normalize() {
	if p.LastView == "" {
		p.LastView = ViewCalibration
	}
	if p.TopicProgress == nil {
		p.TopicProgress = map[catalog.Topic]string{}
	}
	if p.Achievements == nil {
		p.Achievements = []Achievement{}
	}
	if p.ModuleIntrosSeen == nil {
		p.ModuleIntrosSeen = []catalog.Topic{}
	}
	if p.Notes == nil {
		p.Notes = []IntelNote{}
	}
	if p.VaultedScripts == nil {
		p.VaultedScripts = []TacticalScript{}
	}
	if p.Bounties == nil {
		p.Bounties = []TacticalBounty{}
	}
	if p.Logs == nil {
		p.Logs = []LogEntry{}
	}
	if p.CompletedMissions == nil {
		p.CompletedMissions = []string{}
	}
}

// HasSeenModuleIntro reports whether the topic's cinematic intro was shown.
func (p *UserProgress) HasSeenModuleIntro(t catalog.Topic) bool {
	for _, seen := range p.ModuleIntrosSeen {
		if seen == t {
			return true
		}
	}
	return false
}

// PrependLog inserts an entry at the front of the log ring and evicts the
// oldest entries beyond MaxLogEntries. Eviction is strictly by recency.
func (p *UserProgress) PrependLog(entry LogEntry) {
	logs := make([]LogEntry, 0, len(p.Logs)+1)
	logs = append(logs, entry)
	logs = append(logs, p.Logs...)
	if len(logs) > MaxLogEntries {
		logs = logs[:MaxLogEntries]
	}
	p.Logs = logs
}

// NewLogEntry builds a log entry with a fresh id, upper-cased message and
// the given timestamp.
func NewLogEntry(message string, level LogLevel, now time.Time) LogEntry {
	return LogEntry{
		ID:        "log_" + uuid.NewString(),
		Message:   strings.ToUpper(message),
		Level:     level,
		Timestamp: now.UnixMilli(),
	}
}
