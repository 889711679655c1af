package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/screenware/resume-screener/internal/vocab"
)

// SkillMatcher finds known skill phrases in resume text with a single
// compiled alternation. Alternatives are ordered longest-first, which
// mitigates (but cannot guarantee) longest-match-at-position when phrases
// overlap.
type SkillMatcher struct {
	re *regexp.Regexp
}

// NewSkillMatcher compiles the matcher for the vocabulary's flattened
// skill list.
func NewSkillMatcher(v *vocab.Vocabulary) *SkillMatcher {
	phrases := v.AllSkills()
	sort.SliceStable(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})

	alts := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		alts = append(alts, anchorPhrase(strings.ToLower(phrase)))
	}
	if len(alts) == 0 {
		return &SkillMatcher{}
	}

	return &SkillMatcher{
		re: regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`),
	}
}

// Match returns the canonical title-cased forms of every skill phrase found
// in text, deduplicated case-insensitively and sorted.
func (m *SkillMatcher) Match(text string) []string {
	if m.re == nil {
		return nil
	}

	seen := make(map[string]bool)
	var found []string

	for _, match := range m.re.FindAllString(text, -1) {
		key := strings.ToLower(match)
		if seen[key] {
			continue
		}
		seen[key] = true
		found = append(found, titleCase(key))
	}

	sort.Strings(found)
	return found
}

// anchorPhrase quotes a phrase and applies \b anchors only on edges that
// are word characters. A trailing \b after "c++" would demand a following
// word character and the phrase could never match at end of input.
func anchorPhrase(phrase string) string {
	quoted := regexp.QuoteMeta(phrase)

	runes := []rune(phrase)
	if isWordRune(runes[0]) {
		quoted = `\b` + quoted
	}
	if isWordRune(runes[len(runes)-1]) {
		quoted += `\b`
	}
	return quoted
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// titleCase capitalizes the first letter of every letter run, so "node.js"
// becomes "Node.Js" and "rest api" becomes "Rest Api". This is the
// canonical form skills are reported in.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
