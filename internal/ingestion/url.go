package ingestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/screenware/resume-screener/internal/fetch"
	"github.com/screenware/resume-screener/internal/logger"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// FetchJobPosting retrieves a job posting from a URL, extracts the text,
// cleans it, and returns the cleaned text with metadata. Platform detection
// selects board-specific content and noise selectors. If useBrowser is true
// and the HTTP fetch yields too little text, it falls back to headless
// browser rendering for JavaScript-heavy pages.
func FetchJobPosting(ctx context.Context, urlStr string, useBrowser bool, log *zap.Logger) (string, *Metadata, error) {
	log = logger.Or(log)

	platform := fetch.DetectPlatform(urlStr)
	log.Debug("detected job board platform",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug("fetched job posting HTML", zap.Int("bytes", len(result.HTML)))

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	log.Debug("extracted posting text", zap.Int("chars", len(textContent)))

	// SPA pages often serve an empty shell over HTTP; re-render in a
	// headless browser when the extracted text is suspiciously short.
	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		log.Debug("content too short, falling back to browser rendering",
			zap.Int("chars", len(textContent)),
			zap.Int("min_chars", fetch.MinContentLength))

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, log)
		if browserErr != nil {
			// Continue with HTTP content if browser fails
			log.Warn("browser rendering failed, using HTTP content", zap.Error(browserErr))
		} else {
			rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
			if extractErr != nil {
				log.Warn("browser content extraction failed", zap.Error(extractErr))
			} else {
				textContent = rendered
				log.Debug("extracted browser-rendered text", zap.Int("chars", len(textContent)))
			}
		}
	}

	cleanedText := CleanText(textContent)

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)

	return cleanedText, metadata, nil
}
