package profile

import (
	"math"

	"github.com/ravlabs/ravos/internal/catalog"
)

// masterRankThreshold is the XP above which the learner outranks ASSET.
const masterRankThreshold = 5000

// Stats is the derived, non-persisted projection over a profile's results.
type Stats struct {
	XP           int
	AverageScore int
	Level        int
	Rank         string
	DomainMatrix map[catalog.Domain]DomainScore
}

// ComputeStats derives XP, level, rank, average score, and the five-domain
// accuracy matrix from the exam history. Domain labels outside the official
// five are dropped rather than added as new rows.
func ComputeStats(results []ExamResult) Stats {
	xp := 0
	for _, r := range results {
		xp += r.Score * 10
	}

	avg := 0
	if len(results) > 0 {
		sum := 0.0
		for _, r := range results {
			if r.TotalQuestions > 0 {
				sum += float64(r.Score) / float64(r.TotalQuestions) * 100
			}
		}
		avg = int(math.Round(sum / float64(len(results))))
	}

	matrix := make(map[catalog.Domain]DomainScore, 5)
	for _, d := range catalog.Domains() {
		matrix[d] = DomainScore{}
	}
	for _, r := range results {
		for label, ds := range r.DomainScores {
			d := catalog.Domain(label)
			cell, known := matrix[d]
			if !known {
				continue
			}
			cell.Correct += ds.Correct
			cell.Total += ds.Total
			matrix[d] = cell
		}
	}

	rank := "ASSET"
	if xp > masterRankThreshold {
		rank = "SPI_MASTER"
	}

	return Stats{
		XP:           xp,
		AverageScore: avg,
		Level:        xp/1000 + 1,
		Rank:         rank,
		DomainMatrix: matrix,
	}
}
