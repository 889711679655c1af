// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// DegreeTier identifies the highest-education band a degree line falls into.
// Tiers are ordered; compare with Level.
type DegreeTier string

// Degree tiers from highest to lowest.
const (
	TierDoctorate  DegreeTier = "phd"
	TierMasters    DegreeTier = "masters"
	TierBachelors  DegreeTier = "bachelors"
	TierAssociate  DegreeTier = "associate"
	TierDiploma    DegreeTier = "diploma"
	TierHighSchool DegreeTier = "high_school"
	TierNone       DegreeTier = ""
)

// Level returns the ordering rank of a tier (higher is more advanced).
func (t DegreeTier) Level() int {
	switch t {
	case TierDoctorate:
		return 6
	case TierMasters:
		return 5
	case TierBachelors:
		return 4
	case TierAssociate:
		return 3
	case TierDiploma:
		return 2
	case TierHighSchool:
		return 1
	default:
		return 0
	}
}

// EducationEntry represents one education line captured from a resume.
type EducationEntry struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	Year        string     `json:"year"`
	Tier        DegreeTier `json:"tier,omitempty"`
}

// ExperienceEntry represents one employer captured from a resume.
type ExperienceEntry struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Duration string `json:"duration"`
}

// CandidateProfile is the structured result of extracting one resume.
// Contact and text-derived fields are set once during extraction and are
// not mutated afterwards; scores live on ScoredCandidate.
type CandidateProfile struct {
	ID                string            `json:"id"`
	SourceFile        string            `json:"source_file,omitempty"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Skills            []string          `json:"skills"`
	Education         []EducationEntry  `json:"education"`
	Experience        []ExperienceEntry `json:"experience"`
	Certifications    []string          `json:"certifications"`
	YearsOfExperience float64           `json:"years_of_experience"`
	ParsedAt          time.Time         `json:"parsed_at,omitempty"`
}

// HighestTier returns the maximum degree tier across all education entries.
func (p *CandidateProfile) HighestTier() DegreeTier {
	best := TierNone
	for _, e := range p.Education {
		if e.Tier.Level() > best.Level() {
			best = e.Tier
		}
	}
	return best
}
