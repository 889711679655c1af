package extract

import (
	"sort"
	"strings"

	"github.com/screenware/resume-screener/internal/vocab"
)

// CertificationDetector captures certification lines from resume text. For
// each keyword, in the vocabulary's order, the first line containing it is
// captured; lines are deduplicated and reported sorted.
type CertificationDetector struct {
	keywords []string
}

// NewCertificationDetector builds a detector over the vocabulary's
// certification keywords.
func NewCertificationDetector(v *vocab.Vocabulary) *CertificationDetector {
	return &CertificationDetector{keywords: lowerAll(v.CertificationKeywords)}
}

// Detect returns the captured certification lines.
func (d *CertificationDetector) Detect(text string) []string {
	lines := strings.Split(text, "\n")

	seen := make(map[string]bool)
	var found []string

	for _, keyword := range d.keywords {
		for _, line := range lines {
			if !strings.Contains(strings.ToLower(line), keyword) {
				continue
			}
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && !seen[trimmed] {
				seen[trimmed] = true
				found = append(found, trimmed)
			}
			break
		}
	}

	sort.Strings(found)
	return found
}
