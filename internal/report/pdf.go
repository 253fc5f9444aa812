package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mockmate/internal/errors"
	"mockmate/internal/types"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// RenderDocument lays a report out as a paginated PDF: the title, a bold
// "Transcript:" header with the transcript body, and, when feedback is
// present, a bold "AI Feedback:" header with the feedback body.
func RenderDocument(r types.InterviewReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 10, sanitizeText(r.Title), "", "L", false)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "Transcript:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 10, sanitizeText(r.Transcript), "", "L", false)

	if r.Feedback != "" {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 10, "AI Feedback:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 10, sanitizeText(r.Feedback), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeInvalidFormat,
			"Failed to render report PDF", err)
	}
	return buf.Bytes(), nil
}

// RenderEvaluation lays a resume evaluation out as a PDF using the same
// document layout as interview reports: the match score and resume text
// form the body, with the AI feedback section after it.
func RenderEvaluation(resumeText string, result types.MatchResult) ([]byte, error) {
	return RenderDocument(types.InterviewReport{
		Title:      "Resume Evaluation Report",
		Transcript: fmt.Sprintf("Match: %.2f%%\n\n%s", result.Score, resumeText),
		Feedback:   result.Feedback,
	})
}

// SaveDocument writes a rendered report under dir with a unique
// filename and returns the path.
func SaveDocument(dir string, data []byte) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to create report directory", err)
	}

	name := fmt.Sprintf("report_%s.pdf", strings.ReplaceAll(uuid.New().String(), "-", ""))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to write report PDF", err)
	}
	return path, nil
}

// sanitizeText reduces text to the character subset the built-in PDF
// fonts can render: compatibility-decomposed, with everything outside
// printable ASCII (and newlines) dropped.
func sanitizeText(text string) string {
	decomposed := norm.NFKD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r == '\n' || (r >= 0x20 && r < 0x7f) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
