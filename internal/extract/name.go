package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/screenware/resume-screener/internal/ner"
	"github.com/screenware/resume-screener/internal/vocab"
)

// UnknownName is the terminal fallback when no strategy resolves a name.
const UnknownName = "Unknown Candidate"

const (
	maxNameLength = 50
	minNameWords  = 2
	maxNameWords  = 4

	// Person spans are only trusted near the top of the document.
	nameWindow = 1000

	// Lines considered by the header scan.
	headerLines = 5
)

var emailSplitRe = regexp.MustCompile(`[._\-\d]+`)

// NameResolver resolves a candidate's name from resume text. It prefers
// recognized person spans, then scans the header lines, then synthesizes a
// name from an email address. Every candidate goes through the same
// cleanup, repair, and validation before it is accepted.
type NameResolver struct {
	titleDeny  []string
	techDeny   []string
	connectors map[string]bool
	repairs    map[string]string
}

// NewNameResolver builds a resolver from the vocabulary denylists and the
// surname repair table.
func NewNameResolver(v *vocab.Vocabulary) *NameResolver {
	connectors := make(map[string]bool, len(v.ConnectorWords))
	for _, w := range v.ConnectorWords {
		connectors[strings.ToLower(w)] = true
	}

	repairs := make(map[string]string, len(v.SurnameRepairs))
	for truncated, full := range v.SurnameRepairs {
		repairs[strings.ToLower(truncated)] = full
	}

	return &NameResolver{
		titleDeny:  lowerAll(v.JobTitleDenylist),
		techDeny:   lowerAll(v.TechTermDenylist),
		connectors: connectors,
		repairs:    repairs,
	}
}

// Resolve runs the strategy chain and always returns a non-empty name.
// people are the recognized PERSON spans for the text; pass nil when
// recognition is unavailable. email is the candidate's known address, used
// both to repair OCR-damaged words and as a fallback source.
func (r *NameResolver) Resolve(text, email string, people []ner.Span) string {
	strategies := []func() (string, bool){
		func() (string, bool) { return r.fromSpans(email, people) },
		func() (string, bool) { return r.fromHeaderLines(text, email) },
		func() (string, bool) { return nameFromEmail(email) },
		func() (string, bool) { return nameFromEmail(Email(text)) },
	}

	for _, strategy := range strategies {
		if name, ok := strategy(); ok {
			return name
		}
	}
	return UnknownName
}

// fromSpans picks the best-scoring valid person span. Earlier spans score
// higher, spans with a plausible name-like word count higher still; ties go
// to the earliest offset.
func (r *NameResolver) fromSpans(email string, people []ner.Span) (string, bool) {
	bestName := ""
	bestScore := -1.0
	bestStart := 0

	for _, span := range people {
		if span.Start >= nameWindow {
			continue
		}

		candidate := r.normalize(span.Text, email)
		if !r.isValidName(candidate) {
			continue
		}

		positionScore := 1.0 - float64(span.Start)/float64(nameWindow)
		wordScore := 0.5
		if wc := len(strings.Fields(candidate)); wc >= minNameWords && wc <= maxNameWords {
			wordScore = 1.0
		}

		score := positionScore + wordScore
		if score > bestScore || (score == bestScore && span.Start < bestStart) {
			bestName = candidate
			bestScore = score
			bestStart = span.Start
		}
	}

	return bestName, bestName != ""
}

// fromHeaderLines scans the first non-empty lines for a name-like line.
func (r *NameResolver) fromHeaderLines(text, email string) (string, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}

	for _, line := range lines {
		if utf8.RuneCountInString(line) > maxNameLength ||
			strings.Contains(line, "@") ||
			strings.Contains(strings.ToLower(line), "http") {
			continue
		}

		candidate := r.normalize(line, email)
		if r.isValidName(candidate) && strings.Contains(candidate, " ") {
			return candidate, true
		}
	}
	return "", false
}

// normalize applies initial merging, OCR surname repair, and email
// cross-reference repair to a raw candidate string.
func (r *NameResolver) normalize(raw, email string) string {
	words := mergeInitials(strings.Fields(strings.TrimSpace(raw)))

	for i, word := range words {
		if full, ok := r.repairs[strings.ToLower(word)]; ok {
			words[i] = full
		}
	}

	words = repairFromEmail(words, email)
	return strings.Join(words, " ")
}

// isValidName is the acceptance predicate every candidate must pass.
func (r *NameResolver) isValidName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return false
	}

	lower := strings.ToLower(name)
	for _, title := range r.titleDeny {
		if strings.Contains(lower, title) {
			return false
		}
	}
	for _, term := range r.techDeny {
		if strings.Contains(lower, term) {
			return false
		}
	}

	words := strings.Fields(name)
	if len(words) < minNameWords || len(words) > maxNameWords {
		return false
	}

	nameChars := 0
	total := 0
	for _, c := range name {
		total++
		if unicode.IsLetter(c) || c == ' ' || c == '-' || c == '\'' || c == '.' {
			nameChars++
		}
	}
	if float64(nameChars) < 0.8*float64(total) {
		return false
	}

	for _, word := range words {
		if r.connectors[strings.ToLower(word)] {
			return false
		}
	}
	return true
}

// mergeInitials collapses runs of two or more single-letter tokens into one
// token, so "S K Sharma" becomes "SK Sharma". A lone initial stays as is.
func mergeInitials(words []string) []string {
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if utf8.RuneCountInString(words[i]) != 1 {
			out = append(out, words[i])
			i++
			continue
		}

		j := i
		var run strings.Builder
		for j < len(words) && utf8.RuneCountInString(words[j]) == 1 {
			run.WriteString(words[j])
			j++
		}
		if j-i >= 2 {
			out = append(out, run.String())
		} else {
			out = append(out, words[i])
		}
		i = j
	}
	return out
}

// repairFromEmail repairs words missing one or two leading characters by
// cross-referencing email fragments: when a word occurs inside a fragment
// at offset 1 or 2, the fragment is the undamaged form.
func repairFromEmail(words []string, email string) []string {
	fragments := emailFragments(email)
	if len(fragments) == 0 {
		return words
	}

	for i, word := range words {
		lw := strings.ToLower(word)
		if lw == "" {
			continue
		}
		for _, fragment := range fragments {
			idx := strings.Index(strings.ToLower(fragment), lw)
			if idx == 1 || idx == 2 {
				words[i] = fragment
				break
			}
		}
	}
	return words
}

// emailFragments splits an email local part on separators and digits and
// returns the first two capitalized fragments longer than one character.
func emailFragments(email string) []string {
	if email == "" {
		return nil
	}

	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	var fragments []string
	for _, part := range emailSplitRe.Split(local, -1) {
		if utf8.RuneCountInString(part) > 1 {
			fragments = append(fragments, capitalize(part))
		}
	}
	if len(fragments) > 2 {
		fragments = fragments[:2]
	}
	return fragments
}

// nameFromEmail synthesizes a display name from an email address.
func nameFromEmail(email string) (string, bool) {
	if email == "" {
		return "", false
	}

	if fragments := emailFragments(email); len(fragments) > 0 {
		return strings.Join(fragments, " "), true
	}

	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	if local == "" {
		return "", false
	}
	return capitalize(local), true
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
