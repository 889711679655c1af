// Package ner defines the entity recognition boundary used during
// extraction. Recognition is optional: callers must treat a failing or
// absent recognizer as "no entities" and fall back to heuristics.
package ner

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Label classifies a recognized span.
type Label string

// Labels the extraction pipeline understands. Anything else is dropped
// during sanitization.
const (
	LabelPerson Label = "PERSON"
	LabelOrg    Label = "ORG"
	LabelGPE    Label = "GPE"
	LabelLoc    Label = "LOC"
	LabelDate   Label = "DATE"
)

// Known reports whether the label is one the pipeline understands.
func (l Label) Known() bool {
	switch l {
	case LabelPerson, LabelOrg, LabelGPE, LabelLoc, LabelDate:
		return true
	}
	return false
}

// Span is one recognized entity with character offsets into the analyzed
// text. End is exclusive.
type Span struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Recognizer finds entity spans in text. Implementations must bound their
// own latency; callers treat any error as absence of entities.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Span, error)
}

// ErrUnavailable signals that no recognition backend is configured.
var ErrUnavailable = errors.New("entity recognition unavailable")

// Disabled is the recognizer used when recognition is turned off.
type Disabled struct{}

// Recognize always fails with ErrUnavailable.
func (Disabled) Recognize(_ context.Context, _ string) ([]Span, error) {
	return nil, ErrUnavailable
}

// ByLabel returns the spans carrying the given label, preserving order.
func ByLabel(spans []Span, label Label) []Span {
	var out []Span
	for _, s := range spans {
		if s.Label == label {
			out = append(out, s)
		}
	}
	return out
}

// Sanitize drops spans with unknown labels or empty text and repairs
// offsets against the analyzed text: a span whose offsets do not line up
// with its text is re-anchored at the first occurrence of that text, and
// dropped when the text cannot be found at all. The result is sorted by
// start offset.
func Sanitize(spans []Span, text string) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" || !s.Label.Known() {
			continue
		}
		if !anchored(s, text) {
			idx := strings.Index(text, s.Text)
			if idx < 0 {
				continue
			}
			s.Start = idx
			s.End = idx + len(s.Text)
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func anchored(s Span, text string) bool {
	if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
		return false
	}
	return text[s.Start:s.End] == s.Text
}
