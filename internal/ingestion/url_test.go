package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJobPosting_InvalidURL(t *testing.T) {
	tests := []struct {
		name   string
		urlStr string
	}{
		{"empty URL", ""},
		{"malformed URL", "not-a-url"},
		{"no scheme", "example.com"},
		{"no host", "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FetchJobPosting(context.Background(), tt.urlStr, false, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrHTTPRequestFailed)
		})
	}
}

func TestFetchJobPosting_Success(t *testing.T) {
	// Create mock HTTP server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		html := `<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Job Title</h1>
<p>Job description</p>
</main>
<footer>Footer</footer>
</body>
</html>`
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	}))
	defer server.Close()

	cleanedText, metadata, err := FetchJobPosting(context.Background(), server.URL, false, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, cleanedText)
	assert.NotNil(t, metadata)
	assert.Equal(t, server.URL, metadata.URL)
	assert.Contains(t, cleanedText, "Job Title")
	assert.Contains(t, cleanedText, "Job description")
	// Should not contain nav/footer
	assert.NotContains(t, cleanedText, "Nav")
	assert.NotContains(t, cleanedText, "Footer")
}

func TestFetchJobPosting_MetadataFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><main>Backend role at Acme</main></body></html>"))
	}))
	defer server.Close()

	_, metadata, err := FetchJobPosting(context.Background(), server.URL, false, nil)
	require.NoError(t, err)

	// httptest hosts are not recognized job boards.
	assert.Equal(t, "unknown", metadata.Platform)
	assert.Len(t, metadata.Hash, 64)
	assert.NotEmpty(t, metadata.Timestamp)
}

func TestFetchJobPosting_HTTPError(t *testing.T) {
	// Create mock server that returns 404
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, _, err := FetchJobPosting(context.Background(), server.URL, false, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestFetchJobPosting_NetworkError(t *testing.T) {
	// Use invalid URL that will fail to connect
	_, _, err := FetchJobPosting(context.Background(), "http://localhost:99999/nonexistent", false, nil)
	assert.Error(t, err)
}

func TestFetchJobPosting_CleansExtractedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		html := `<!DOCTYPE html>
<html>
<body>
<main>
<h1>Senior Software Engineer</h1>
<h2>About the Role</h2>
<p>We are   looking   for a Senior Software Engineer.</p>
<h2>Requirements</h2>
<ul>
<li>5 years of Go</li>
<li>PostgreSQL experience</li>
</ul>
<script>alert('test');</script>
</main>
</body>
</html>`
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	}))
	defer server.Close()

	cleanedText, metadata, err := FetchJobPosting(context.Background(), server.URL, false, nil)
	require.NoError(t, err)

	assert.NotNil(t, metadata)
	assert.Contains(t, cleanedText, "Senior Software Engineer")
	assert.Contains(t, cleanedText, "About the Role")
	assert.Contains(t, cleanedText, "Requirements")
	assert.Contains(t, cleanedText, "We are looking for a Senior Software Engineer.")
	assert.NotContains(t, cleanedText, "alert")
}
