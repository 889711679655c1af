// Package analytics computes pool-level summary statistics over scored
// candidates, the numbers a screening run reports alongside the ranking.
package analytics

import (
	"math"
	"sort"

	"github.com/screenware/resume-screener/internal/types"
)

// topSkillsLimit caps how many of the most common skills the summary
// reports.
const topSkillsLimit = 10

// Experience level labels, ordered from least to most experienced.
const (
	LevelEntry  = "Entry (0-2 years)"
	LevelJunior = "Junior (2-5 years)"
	LevelMid    = "Mid (5-8 years)"
	LevelSenior = "Senior (8-12 years)"
	LevelExpert = "Expert (12+ years)"
)

// LevelCount pairs an experience level with how many candidates fall in
// it.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// Summary aggregates a scored candidate pool.
type Summary struct {
	TotalCandidates   int          `json:"total_candidates"`
	AverageScore      float64      `json:"average_score"`
	MedianScore       float64      `json:"median_score"`
	MaxScore          float64      `json:"max_score"`
	MinScore          float64      `json:"min_score"`
	AverageExperience float64      `json:"average_experience"`
	TotalUniqueSkills int          `json:"total_unique_skills"`
	MostCommonSkills  []string     `json:"most_common_skills"`
	ExperienceLevels  []LevelCount `json:"experience_levels"`
}

// ExperienceLevel maps years of experience onto its level label. Bucket
// upper bounds are inclusive, so exactly two years is still entry level.
func ExperienceLevel(years float64) string {
	switch {
	case years <= 2:
		return LevelEntry
	case years <= 5:
		return LevelJunior
	case years <= 8:
		return LevelMid
	case years <= 12:
		return LevelSenior
	default:
		return LevelExpert
	}
}

// Summarize computes summary statistics for a scored pool. An empty pool
// yields the zero Summary.
func Summarize(candidates []types.ScoredCandidate) Summary {
	if len(candidates) == 0 {
		return Summary{}
	}

	scores := make([]float64, 0, len(candidates))
	var scoreSum, experienceSum float64
	skillCounts := make(map[string]int)
	levelCounts := make(map[string]int)

	for _, c := range candidates {
		scores = append(scores, c.TotalScore)
		scoreSum += c.TotalScore
		experienceSum += c.YearsOfExperience
		levelCounts[ExperienceLevel(c.YearsOfExperience)]++
		for _, skill := range c.Skills {
			skillCounts[skill]++
		}
	}

	sort.Float64s(scores)

	return Summary{
		TotalCandidates:   len(candidates),
		AverageScore:      round2(scoreSum / float64(len(candidates))),
		MedianScore:       round2(median(scores)),
		MaxScore:          round2(scores[len(scores)-1]),
		MinScore:          round2(scores[0]),
		AverageExperience: round2(experienceSum / float64(len(candidates))),
		TotalUniqueSkills: len(skillCounts),
		MostCommonSkills:  mostCommon(skillCounts, topSkillsLimit),
		ExperienceLevels:  levelDistribution(levelCounts),
	}
}

// median expects a sorted slice and averages the two middle values for
// even lengths.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// mostCommon returns up to limit skills ordered by frequency, breaking
// ties alphabetically so the output is stable across runs.
func mostCommon(counts map[string]int, limit int) []string {
	skills := make([]string, 0, len(counts))
	for skill := range counts {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool {
		if counts[skills[i]] != counts[skills[j]] {
			return counts[skills[i]] > counts[skills[j]]
		}
		return skills[i] < skills[j]
	})
	if len(skills) > limit {
		skills = skills[:limit]
	}
	return skills
}

// levelDistribution orders bucket counts from entry to expert, keeping
// empty buckets so the distribution shape is always visible.
func levelDistribution(counts map[string]int) []LevelCount {
	levels := []string{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelExpert}
	out := make([]LevelCount, 0, len(levels))
	for _, level := range levels {
		out = append(out, LevelCount{Level: level, Count: counts[level]})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
