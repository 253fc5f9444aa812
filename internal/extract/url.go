package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mockmate/internal/errors"

	"golang.org/x/net/html"
)

// userAgent matches what job boards expect from a browser; several of
// them reject requests with a default client UA.
const userAgent = "Mozilla/5.0"

// maxJobPostingBytes bounds how much of a job posting page is read.
const maxJobPostingBytes = 4 << 20

// JobDescriptionFromURL fetches a job posting page and reduces it to
// plain text: script and style content is dropped, and the remaining
// text is collapsed to non-empty trimmed lines.
func (e *Extractor) JobDescriptionFromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Invalid job description URL", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", errors.NewNetworkError(errors.ErrCodeNetworkTimeout,
			"Failed to fetch job description URL", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && e.logger != nil {
			e.logger.Warn("Failed to close response body", "url", url, "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Job description URL returned status %d", resp.StatusCode), nil)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxJobPostingBytes))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Failed to parse job description page", err)
	}

	text := CleanHTMLText(doc)
	if text == "" {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Job description page contains no extractable text", nil)
	}
	return text, nil
}

// CleanHTMLText walks a parsed HTML document, skipping script and style
// subtrees, and joins the remaining text as non-empty trimmed lines.
func CleanHTMLText(doc *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString("\n")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
