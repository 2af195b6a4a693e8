// Package profile defines the durable learner aggregate: the identity
// profile created once at calibration and the mutable progress record that
// tracks the journey. Types here carry no storage or service logic; the
// persistent store serializes them and the progress service mutates them.
package profile

import (
	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/numerology"
)

// AppView identifies a view the learner can return to on next launch.
type AppView string

const (
	ViewCalibration AppView = "CALIBRATION"
	ViewBridge      AppView = "BRIDGE"
	ViewHome        AppView = "HOME"
	ViewQuiz        AppView = "QUIZ"
	ViewTopic       AppView = "TOPIC"
	ViewCurriculum  AppView = "CURRICULUM"
	ViewProfile     AppView = "PROFILE"
	ViewMissions    AppView = "MISSIONS"
	ViewIntel       AppView = "INTEL"
	ViewVault       AppView = "VAULT"
	ViewAdmin       AppView = "ADMIN"
)

// ClearanceTier is the learner's clearance ranking.
type ClearanceTier string

const (
	TierAsset     ClearanceTier = "ASSET"
	TierExecutive ClearanceTier = "EXECUTIVE"
	TierDirector  ClearanceTier = "DIRECTOR"
)

// LearningStyle classifies how the learner absorbs material.
type LearningStyle string

const (
	StyleVisual      LearningStyle = "Visual"
	StyleAuditory    LearningStyle = "Auditory"
	StyleReading     LearningStyle = "Reading"
	StyleKinesthetic LearningStyle = "Kinesthetic"
)

// StyleScores is the raw per-style tally behind the classification.
type StyleScores struct {
	Visual      int `json:"visual"`
	Auditory    int `json:"auditory"`
	Reading     int `json:"reading"`
	Kinesthetic int `json:"kinesthetic"`
}

// Archetype is the AI-derived persona classification. It is produced once
// by the identity-decryption collaborator and frozen on the profile.
type Archetype struct {
	Type          string   `json:"type"`
	Strategy      string   `json:"strategy"`
	Authority     string   `json:"authority"`
	Signature     string   `json:"signature,omitempty"`
	Assets        []string `json:"assets,omitempty"`
	Vulnerability string   `json:"vulnerability,omitempty"`
}

// DomainScore is the correct/total tally for one exam domain.
type DomainScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// ExamResult records one completed assessment. Once appended to a profile
// it is never mutated.
type ExamResult struct {
	ID             string                 `json:"id"`
	Date           string                 `json:"date"`
	Topic          catalog.Topic          `json:"topic"`
	Score          int                    `json:"score"`
	TotalQuestions int                    `json:"totalQuestions"`
	DomainScores   map[string]DomainScore `json:"domainScores,omitempty"`
}

// IdentityProfile is the learner's derived persona and lifetime exam
// history. Numerology and archetype fields are immutable post-creation;
// Results is append-only.
type IdentityProfile struct {
	Name                 string          `json:"name"`
	FullName             string          `json:"fullName"`
	DOB                  string          `json:"dob"`
	BirthTime            string          `json:"birthTime,omitempty"`
	VibrationalSignature string          `json:"vibrationalSignature"`
	Numerology           numerology.Data `json:"numerology"`
	Archetype            Archetype       `json:"archetype"`
	Tier                 ClearanceTier   `json:"tier"`
	LearningStyle        LearningStyle   `json:"learningStyle"`
	StyleScores          StyleScores     `json:"styleScores"`
	Results              []ExamResult    `json:"results"`
}

// Session is the aggregate root of durable client state.
// Profile is nil until calibration completes; Progress always exists.
type Session struct {
	Profile  *IdentityProfile `json:"profile"`
	Progress UserProgress     `json:"progress"`
}

// Normalize fills schema-drift gaps so callers never see a partially
// populated session, regardless of how old the stored blob is.
func (s *Session) Normalize() {
	s.Progress.normalize()
	if s.Profile != nil && s.Profile.Results == nil {
		s.Profile.Results = []ExamResult{}
	}
}
