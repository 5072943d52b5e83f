package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Project Gutenberg wraps its plain-text books in license boilerplate;
// everything outside these markers is stripped.
const (
	gutenbergStart = "*** START OF THE PROJECT GUTENBERG EBOOK"
	gutenbergEnd   = "*** END OF THE PROJECT GUTENBERG EBOOK"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// defaultClient bounds source downloads; corpus sources are small text
// files, so a flat timeout is enough.
var defaultClient = &http.Client{Timeout: 2 * time.Minute}

// Download fetches a plain-text corpus source over HTTP and cleans it:
// Gutenberg header and footer are removed and whitespace is collapsed to
// single spaces.
func Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := defaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading source: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return []byte(Clean(string(body))), nil
}

// Clean strips Project Gutenberg boilerplate and normalizes whitespace.
func Clean(text string) string {
	if i := strings.Index(text, gutenbergStart); i != -1 {
		text = text[i+len(gutenbergStart):]
		// Skip the rest of the marker line.
		if nl := strings.IndexByte(text, '\n'); nl != -1 {
			text = text[nl+1:]
		}
	}
	if i := strings.Index(text, gutenbergEnd); i != -1 {
		text = text[:i]
	}
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}
