// Package scoring implements the weighted multi-dimensional scoring model
// that grades a candidate profile against a job requirement. Each dimension
// produces a 0-100 score and the total is their weighted sum.
package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/screenware/resume-screener/internal/types"
)

const (
	// weightSumTolerance bounds floating point drift when checking that
	// weights sum to 1.0.
	weightSumTolerance = 1e-9

	// exactMatchBonus is the maximum bonus granted for literal matches
	// against the job's required skills.
	exactMatchBonus = 20.0

	// certBaseScore is granted for holding any certification at all;
	// relevance to the job description fills the remaining half.
	certBaseScore = 50.0

	// minRelevantTokenLen is the shortest certification token considered
	// when checking relevance, so acronyms like AWS still count.
	minRelevantTokenLen = 3

	// defaultMaxExperience substitutes for jobs that do not state an
	// upper experience bound.
	defaultMaxExperience = 15.0

	// overqualifiedPenaltyRate and overqualifiedPenaltyCap shape the
	// gentle decline applied beyond the preferred experience range.
	overqualifiedPenaltyRate = 2.0
	overqualifiedPenaltyCap  = 15.0
)

// educationTiers maps degree bands to scores. Ordered highest first; the
// first band matching a degree line wins for that entry.
var educationTiers = []struct {
	re    *regexp.Regexp
	score float64
}{
	{regexp.MustCompile(`(?i)ph\.?d|doctorate|doctoral`), 100},
	{regexp.MustCompile(`(?i)master|m\.s|m\.sc|mba|m\.tech|m\.eng`), 85},
	{regexp.MustCompile(`(?i)bachelor|b\.s|b\.sc|b\.tech|b\.eng|b\.a`), 70},
	{regexp.MustCompile(`(?i)associate|a\.s|a\.a`), 50},
	{regexp.MustCompile(`(?i)diploma`), 40},
	{regexp.MustCompile(`(?i)high\s*school`), 20},
}

// Weights distributes the total score across the four dimensions. A valid
// set of weights sums to 1.0.
type Weights struct {
	Skills         float64 `json:"skills"`
	Experience     float64 `json:"experience"`
	Education      float64 `json:"education"`
	Certifications float64 `json:"certifications"`
}

// DefaultWeights returns the standard screening profile, favoring skills
// over tenure and credentials.
func DefaultWeights() Weights {
	return Weights{
		Skills:         0.40,
		Experience:     0.25,
		Education:      0.20,
		Certifications: 0.15,
	}
}

// WeightsFromMap builds a Weights from the per-job override map carried by
// a JobRequirement. Unknown dimension names are rejected; missing ones
// default to zero.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	var w Weights
	for name, value := range m {
		switch name {
		case "skills":
			w.Skills = value
		case "experience":
			w.Experience = value
		case "education":
			w.Education = value
		case "certifications":
			w.Certifications = value
		default:
			return Weights{}, fmt.Errorf("unknown scoring dimension %q", name)
		}
	}
	return w, w.Validate()
}

// Validate checks that every weight is non-negative and that the set sums
// to 1.0 within tolerance.
func (w Weights) Validate() error {
	for name, value := range map[string]float64{
		"skills":         w.Skills,
		"experience":     w.Experience,
		"education":      w.Education,
		"certifications": w.Certifications,
	} {
		if value < 0 {
			return fmt.Errorf("scoring weight %q must not be negative, got %v", name, value)
		}
	}
	sum := w.Skills + w.Experience + w.Education + w.Certifications
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Engine scores candidate profiles against job requirements. It is safe
// for concurrent use.
type Engine struct {
	weights Weights
}

// NewEngine builds an engine with the given weights, rejecting invalid
// distributions up front so a misconfigured run fails before any
// candidate is scored.
func NewEngine(weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights}, nil
}

// Weights reports the engine's active weight distribution.
func (e *Engine) Weights() Weights {
	return e.weights
}

// WithWeights returns a new engine using the given weights. The receiver
// is left unchanged.
func (e *Engine) WithWeights(weights Weights) (*Engine, error) {
	return NewEngine(weights)
}

// Score grades a candidate profile against a job requirement. Missing
// profile sections score zero on their dimension and never abort the
// rest of the breakdown.
func (e *Engine) Score(profile *types.CandidateProfile, job *types.JobRequirement) types.ScoreBreakdown {
	if profile == nil || job == nil {
		return types.ScoreBreakdown{}
	}

	breakdown := types.ScoreBreakdown{
		SkillsScore:         e.scoreSkills(profile.Skills, job),
		ExperienceScore:     e.scoreExperience(profile.YearsOfExperience, float64(job.MinExperienceYears), float64(job.MaxExperienceYears)),
		EducationScore:      e.scoreEducation(profile.Education),
		CertificationsScore: e.scoreCertifications(profile.Certifications, job.Description),
	}
	breakdown.TotalScore = round2(breakdown.SkillsScore*e.weights.Skills +
		breakdown.ExperienceScore*e.weights.Experience +
		breakdown.EducationScore*e.weights.Education +
		breakdown.CertificationsScore*e.weights.Certifications)
	return breakdown
}

// scoreSkills measures textual similarity between the candidate's skills
// and the job text, plus a bonus for literal required-skill matches.
func (e *Engine) scoreSkills(skills []string, job *types.JobRequirement) float64 {
	if len(skills) == 0 {
		return 0
	}

	jobText := job.Description
	if len(job.RequiredSkills) > 0 {
		jobText = strings.Join(job.RequiredSkills, " ") + " " + job.Description
	}

	jobTF := termFrequencies(tokenize(jobText))
	candidateTF := termFrequencies(tokenize(strings.Join(skills, " ")))
	score := cosineSimilarity(jobTF, candidateTF) * 100

	if len(job.RequiredSkills) > 0 {
		have := make(map[string]bool, len(skills))
		for _, s := range skills {
			have[strings.ToLower(s)] = true
		}
		matched := 0
		for _, required := range job.RequiredSkills {
			if have[strings.ToLower(required)] {
				matched++
			}
		}
		score += float64(matched) / float64(len(job.RequiredSkills)) * exactMatchBonus
		score = math.Min(100, score)
	}
	return round2(score)
}

// scoreExperience maps years of experience onto a piecewise curve around
// the job's preferred range: rising to 70 below the minimum, 70 to 100
// inside the range, and gently declining beyond the maximum.
func (e *Engine) scoreExperience(years, minYears, maxYears float64) float64 {
	if years <= 0 {
		return 0
	}
	if maxYears <= 0 {
		maxYears = defaultMaxExperience
	}
	if maxYears < minYears {
		maxYears = minYears
	}

	var score float64
	switch {
	case years < minYears:
		score = years / minYears * 70
	case years <= maxYears:
		if maxYears == minYears {
			score = 100
		} else {
			score = 70 + (years-minYears)/(maxYears-minYears)*30
		}
	default:
		score = 100 - math.Min((years-maxYears)*overqualifiedPenaltyRate, overqualifiedPenaltyCap)
	}
	return round2(math.Min(100, math.Max(0, score)))
}

// scoreEducation takes the best band across all education entries.
func (e *Engine) scoreEducation(entries []types.EducationEntry) float64 {
	var best float64
	for _, entry := range entries {
		for _, tier := range educationTiers {
			if tier.re.MatchString(entry.Degree) {
				if tier.score > best {
					best = tier.score
				}
				break
			}
		}
	}
	return best
}

// scoreCertifications grants a base score for holding any certification
// and scales the rest by how many certifications mention the job.
func (e *Engine) scoreCertifications(certifications []string, description string) float64 {
	if len(certifications) == 0 {
		return 0
	}

	jobLower := strings.ToLower(description)
	relevant := 0
	for _, cert := range certifications {
		for _, word := range strings.Fields(strings.ToLower(cert)) {
			if utf8.RuneCountInString(word) >= minRelevantTokenLen && strings.Contains(jobLower, word) {
				relevant++
				break
			}
		}
	}

	score := certBaseScore + float64(relevant)/float64(len(certifications))*(100-certBaseScore)
	return round2(math.Min(100, score))
}

// round2 rounds to two decimal places, the resolution all reported
// scores use.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
