package extract

import (
	"regexp"
	"strings"

	"github.com/screenware/resume-screener/internal/types"
	"github.com/screenware/resume-screener/internal/vocab"
)

// tierPatterns classify a degree line into a tier. Ordered highest first;
// the first matching tier wins.
var tierPatterns = []struct {
	tier types.DegreeTier
	re   *regexp.Regexp
}{
	{types.TierDoctorate, regexp.MustCompile(`(?i)ph\.?d|doctorate|doctoral`)},
	{types.TierMasters, regexp.MustCompile(`(?i)master|m\.s|m\.sc|mba|m\.tech|m\.eng`)},
	{types.TierBachelors, regexp.MustCompile(`(?i)bachelor|b\.s|b\.sc|b\.tech|b\.eng|b\.a`)},
	{types.TierAssociate, regexp.MustCompile(`(?i)associate|a\.s|a\.a`)},
	{types.TierDiploma, regexp.MustCompile(`(?i)diploma`)},
	{types.TierHighSchool, regexp.MustCompile(`(?i)high\s*school`)},
}

// EducationClassifier captures education entries from resume text. A line
// containing any education keyword becomes an entry: the line itself as the
// degree text, the next non-empty line as the institution, and the first
// year token on the line as the year.
type EducationClassifier struct {
	keywords []string
}

// NewEducationClassifier builds a classifier over the vocabulary's
// education keywords.
func NewEducationClassifier(v *vocab.Vocabulary) *EducationClassifier {
	return &EducationClassifier{keywords: lowerAll(v.EducationKeywords)}
}

// Classify scans text line by line and returns the captured entries in
// document order.
func (c *EducationClassifier) Classify(text string) []types.EducationEntry {
	lines := strings.Split(text, "\n")
	var entries []types.EducationEntry

	for i, line := range lines {
		lower := strings.ToLower(line)
		if !containsAny(lower, c.keywords) {
			continue
		}

		entries = append(entries, types.EducationEntry{
			Degree:      strings.TrimSpace(line),
			Institution: nextNonEmpty(lines, i+1),
			Year:        yearRe.FindString(line),
			Tier:        ClassifyTier(line),
		})
	}
	return entries
}

// ClassifyTier returns the degree tier for one degree line, or TierNone.
func ClassifyTier(line string) types.DegreeTier {
	for _, p := range tierPatterns {
		if p.re.MatchString(line) {
			return p.tier
		}
	}
	return types.TierNone
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func nextNonEmpty(lines []string, from int) string {
	for i := from; i < len(lines); i++ {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
