package extract

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// Email returns the first email address found in text, or "".
func Email(text string) string {
	return emailRe.FindString(text)
}

// Phone returns the first phone-shaped number found in text, or "".
func Phone(text string) string {
	return strings.TrimSpace(phoneRe.FindString(text))
}
