// Package extract turns uploaded resumes and job posting URLs into
// plain text for the interview and evaluation flows.
package extract

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"mockmate/internal/errors"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF")

// Extractor is the document/text extraction gateway.
type Extractor struct {
	httpClient *http.Client
	logger     *errors.Logger
}

// NewExtractor creates an extractor with a traced HTTP client for URL
// fetches.
func NewExtractor(logger *errors.Logger) *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// ResumeText extracts plain text from an uploaded resume. PDF content
// is detected by its header; anything else is treated as UTF-8 text.
func (e *Extractor) ResumeText(data []byte) (string, error) {
	return e.documentText(data, "Resume")
}

// JobDescriptionText extracts plain text from a job description document,
// with the same PDF-or-text handling as resumes.
func (e *Extractor) JobDescriptionText(data []byte) (string, error) {
	return e.documentText(data, "Job description")
}

func (e *Extractor) documentText(data []byte, label string) (string, error) {
	if len(data) == 0 {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			label+" content is empty", nil)
	}

	if bytes.HasPrefix(data, pdfMagic) {
		text, err := pdfToText(data)
		if err != nil {
			if e.logger != nil {
				e.logger.LogError(err, "PDF extraction failed", "document", label, "size", len(data))
			}
			return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
				"Failed to extract text from "+strings.ToLower(label)+" PDF", err)
		}
		return text, nil
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			label+" contains no extractable text", nil)
	}
	return text, nil
}
