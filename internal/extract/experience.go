package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/screenware/resume-screener/internal/ner"
	"github.com/screenware/resume-screener/internal/types"
)

// MaxYears caps the estimated years of experience.
const MaxYears = 50

// maxCompanies bounds how many employers are kept from recognized spans.
const maxCompanies = 5

var (
	yearRe      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	yearRangeRe = regexp.MustCompile(`\b((?:19|20)\d{2})\s*[-–—]\s*((?:19|20)\d{2})\b`)
)

// ExperienceMode selects the years-of-experience algorithm.
type ExperienceMode string

// Supported estimation modes. Range aggregation is the default: it sums
// explicit year ranges and falls back to the year spread when none exist.
const (
	ModeRange  ExperienceMode = "range"
	ModeSimple ExperienceMode = "simple"
)

// ExperienceEstimator estimates total years of experience from the year
// tokens in resume text.
type ExperienceEstimator struct {
	mode ExperienceMode
}

// NewExperienceEstimator builds an estimator. An empty mode means ModeRange.
func NewExperienceEstimator(mode ExperienceMode) *ExperienceEstimator {
	if mode == "" {
		mode = ModeRange
	}
	return &ExperienceEstimator{mode: mode}
}

// Years estimates total years of experience. The result is always in
// [0, MaxYears].
func (e *ExperienceEstimator) Years(text string) float64 {
	if e.mode == ModeSimple {
		return clampYears(simpleYears(text))
	}
	return clampYears(rangeYears(text))
}

// simpleYears is the spread between the earliest and latest distinct year
// mentioned; fewer than two distinct years means no estimate.
func simpleYears(text string) float64 {
	distinct := make(map[int]bool)
	minYear, maxYear := 0, 0

	for _, token := range yearRe.FindAllString(text, -1) {
		year, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		distinct[year] = true
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	if len(distinct) < 2 {
		return 0
	}
	return float64(maxYear - minYear)
}

// rangeYears sums the durations of explicit "YYYY-YYYY" ranges. When the
// ranges contribute nothing it falls back to the simple spread.
func rangeYears(text string) float64 {
	total := 0
	for _, m := range yearRangeRe.FindAllStringSubmatch(text, -1) {
		start, err1 := strconv.Atoi(m[1])
		end, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		total += end - start
	}

	if total <= 0 {
		return simpleYears(text)
	}
	return float64(total)
}

func clampYears(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxYears {
		return MaxYears
	}
	return v
}

// CompaniesFromSpans derives experience entries from recognized ORG spans:
// deduplicated in document order, capped at maxCompanies. Without
// recognition there are no entries; the estimator still works from years.
func CompaniesFromSpans(spans []ner.Span) []types.ExperienceEntry {
	seen := make(map[string]bool)
	var entries []types.ExperienceEntry

	for _, span := range ner.ByLabel(spans, ner.LabelOrg) {
		name := strings.TrimSpace(span.Text)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		entries = append(entries, types.ExperienceEntry{
			Company:  name,
			Position: "Not specified",
			Duration: "",
		})
		if len(entries) == maxCompanies {
			break
		}
	}
	return entries
}
