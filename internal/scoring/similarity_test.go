package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "The Node.js and C++ APIs",
			want: []string{"node", "js", "apis"},
		},
		{
			name: "drops stopwords",
			text: "looking for an expert in python",
			want: []string{"looking", "expert", "python"},
		},
		{
			name: "drops single character tokens",
			text: "a b c go",
			want: []string{"go"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.text))
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		a := termFrequencies([]string{"python", "java"})
		b := termFrequencies([]string{"python", "java"})
		assert.InDelta(t, 1.0, cosineSimilarity(a, b), 1e-12)
	})

	t.Run("disjoint vectors", func(t *testing.T) {
		a := termFrequencies([]string{"python"})
		b := termFrequencies([]string{"java"})
		assert.Zero(t, cosineSimilarity(a, b))
	})

	t.Run("empty vector", func(t *testing.T) {
		a := termFrequencies(nil)
		b := termFrequencies([]string{"python"})
		assert.Zero(t, cosineSimilarity(a, b))
		assert.Zero(t, cosineSimilarity(b, a))
	})

	t.Run("partial overlap", func(t *testing.T) {
		// a = {python:2, java:2, developers:1}, b = {python:1}.
		a := termFrequencies([]string{"python", "java", "python", "java", "developers"})
		b := termFrequencies([]string{"python"})
		assert.InDelta(t, 2.0/3.0, cosineSimilarity(a, b), 1e-12)
	})
}
