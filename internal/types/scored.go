// Package types provides type definitions for structured data used throughout the resume-screener system.
package types

import (
	"strconv"
	"strings"
)

// ScoreBreakdown holds the per-dimension and total scores for one candidate.
// All values are in [0,100], rounded to two decimals.
type ScoreBreakdown struct {
	SkillsScore         float64 `json:"skills_score"`
	ExperienceScore     float64 `json:"experience_score"`
	EducationScore      float64 `json:"education_score"`
	CertificationsScore float64 `json:"certifications_score"`
	TotalScore          float64 `json:"total_score"`
}

// ScoredCandidate pairs a candidate profile with its scores and rank.
// Rank is 1-based and contiguous within a ranked batch.
type ScoredCandidate struct {
	CandidateProfile
	ScoreBreakdown
	Rank int `json:"rank"`
}

// Flat returns the flat field mapping used by downstream sinks (CSV export,
// console rendering). List fields are comma-joined; scores are formatted
// with two decimals.
func (s *ScoredCandidate) Flat() map[string]string {
	return map[string]string{
		"rank":                 strconv.Itoa(s.Rank),
		"name":                 s.Name,
		"email":                s.Email,
		"phone":                s.Phone,
		"total_score":          formatScore(s.TotalScore),
		"skills_score":         formatScore(s.SkillsScore),
		"experience_score":     formatScore(s.ExperienceScore),
		"education_score":      formatScore(s.EducationScore),
		"certifications_score": formatScore(s.CertificationsScore),
		"years_of_experience":  strconv.FormatFloat(s.YearsOfExperience, 'f', -1, 64),
		"skills":               strings.Join(s.Skills, ", "),
		"certifications":       strings.Join(s.Certifications, ", "),
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
