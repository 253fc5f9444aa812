package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mockmate/internal/types"
)

func TestRenderDocument(t *testing.T) {
	report := types.InterviewReport{
		Title:         "Interview Assessment - 2 Qs",
		QuestionCount: 2,
		Transcript:    "AI Interviewer: Q1\n\nCandidate: A1\n\n",
		Feedback:      "Good depth on concurrency.",
	}

	data, err := RenderDocument(report)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestRenderDocumentWithoutFeedback(t *testing.T) {
	report := types.InterviewReport{
		Title:      "Interview Transcript Only",
		Transcript: "AI Interviewer: Q1\n\n",
	}

	data, err := RenderDocument(report)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestRenderEvaluation(t *testing.T) {
	data, err := RenderEvaluation("Five years of Go", types.MatchResult{
		Score:    66.67,
		Feedback: "Strong on Go, missing Kubernetes.",
	})
	if err != nil {
		t.Fatalf("RenderEvaluation() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestSaveDocument(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveDocument(dir, []byte("%PDF-1.4 test"))
	if err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("path = %q, want file under %q", path, dir)
	}
	if !strings.HasPrefix(filepath.Base(path), "report_") || !strings.HasSuffix(path, ".pdf") {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved report: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Errorf("saved content = %q", data)
	}

	// A second save must not collide with the first.
	other, err := SaveDocument(dir, []byte("x"))
	if err != nil {
		t.Fatalf("second SaveDocument() error = %v", err)
	}
	if other == path {
		t.Error("second save reused the first filename")
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "plain ascii passes through", text: "Hello, world!", want: "Hello, world!"},
		{name: "newlines are kept", text: "a\nb", want: "a\nb"},
		{name: "accents decompose to their base letter", text: "résumé", want: "resume"},
		{name: "unrenderable symbols are dropped", text: "go → fast", want: "go  fast"},
		{name: "smart quotes are dropped", text: "“hi”", want: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeText(tt.text); got != tt.want {
				t.Errorf("sanitizeText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
