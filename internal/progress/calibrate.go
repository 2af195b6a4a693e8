package progress

import (
	"fmt"

	"github.com/ravlabs/ravos/internal/numerology"
	"github.com/ravlabs/ravos/internal/profile"
)

// CalibrationInput is everything gathered during the calibration flow.
type CalibrationInput struct {
	Name        string
	FullName    string
	DOB         string // YYYY-MM-DD
	BirthTime   string // optional HH:MM
	StyleScores profile.StyleScores

	// Archetype comes from the identity-decryption collaborator. Nil
	// (decryption failed) aborts calibration; no partial profile is
	// ever created.
	Archetype *profile.Archetype
}

// CompleteCalibration creates the identity profile and unlocks the rest
// of the app. The numerology readout, signature and archetype computed
// here are frozen for the life of the profile; only the display name can
// change later. Calibrating over an existing profile is rejected.
func (s *Service) CompleteCalibration(in CalibrationInput) (*profile.IdentityProfile, error) {
	if in.Name == "" || in.DOB == "" {
		return nil, fmt.Errorf("calibration requires a name and date of birth")
	}
	if in.Archetype == nil {
		return nil, fmt.Errorf("calibration requires a decrypted archetype")
	}
	if s.store.Session().Profile != nil {
		return nil, fmt.Errorf("calibration already complete")
	}

	fullName := in.FullName
	if fullName == "" {
		fullName = in.Name
	}
	num := numerology.Calculate(fullName, in.DOB)

	p := &profile.IdentityProfile{
		Name:                 in.Name,
		FullName:             fullName,
		DOB:                  in.DOB,
		BirthTime:            in.BirthTime,
		VibrationalSignature: vibrationalSignature(num),
		Numerology:           num,
		Tier:                 profile.TierAsset,
		Archetype:            *in.Archetype,
		LearningStyle:        dominantStyle(in.StyleScores),
		StyleScores:          in.StyleScores,
		Results:              []profile.ExamResult{},
	}

	err := s.mutate(func(sess *profile.Session) {
		sess.Profile = p
		sess.Progress.CalibrationComplete = true
		sess.Progress.LastView = profile.ViewBridge
		sess.Progress.PrependLog(profile.NewLogEntry(
			"calibration complete. welcome, "+in.Name, profile.LogSuccess, s.now()))
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// vibrationalSignature renders the numerology readout as the profile's
// display signature.
func vibrationalSignature(num numerology.Data) string {
	return fmt.Sprintf("LP%d-EX%d-SU%d", num.LifePath, num.Expression, num.SoulUrge)
}

// dominantStyle picks the learning style with the highest score, with
// the questionnaire's V→A→R→K ordering breaking ties.
func dominantStyle(scores profile.StyleScores) profile.LearningStyle {
	best := profile.StyleVisual
	max := scores.Visual
	if scores.Auditory > max {
		best, max = profile.StyleAuditory, scores.Auditory
	}
	if scores.Reading > max {
		best, max = profile.StyleReading, scores.Reading
	}
	if scores.Kinesthetic > max {
		best = profile.StyleKinesthetic
	}
	return best
}
