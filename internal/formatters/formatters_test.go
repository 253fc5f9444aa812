package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"mockmate/internal/types"
)

func TestRegistryFormatMatchResult(t *testing.T) {
	registry := NewFormatterRegistry()
	result := types.MatchResult{
		Score:    66.67,
		Feedback: "Strong on Go, missing Kubernetes.",
	}

	t.Run("text", func(t *testing.T) {
		out, err := registry.Format(result, "text")
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.Contains(out, "Resume Match Score: 66.67%") {
			t.Errorf("output missing score: %q", out)
		}
		if !strings.Contains(out, "Strong on Go, missing Kubernetes.") {
			t.Errorf("output missing feedback: %q", out)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := registry.Format(result, "markdown")
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.Contains(out, "# Resume Evaluation") {
			t.Errorf("output missing heading: %q", out)
		}
		if !strings.Contains(out, "**Resume Match Score:** 66.67%") {
			t.Errorf("output missing score: %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := registry.Format(result, "json")
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		var decoded types.MatchResult
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Score != 66.67 {
			t.Errorf("decoded score = %v, want 66.67", decoded.Score)
		}
	})
}

func TestRegistryFormatInterviewReport(t *testing.T) {
	registry := NewFormatterRegistry()
	report := types.InterviewReport{
		Title:         "Interview Assessment - 3 Qs",
		QuestionCount: 3,
		Transcript:    "AI Interviewer: Q1\n\nCandidate: A1\n\n",
		Feedback:      "Recommend advancing to onsite.",
	}

	t.Run("text", func(t *testing.T) {
		out, err := registry.Format(report, "text")
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.Contains(out, "INTERVIEW ASSESSMENT - 3 QS") {
			t.Errorf("output missing upper-cased title: %q", out)
		}
		if !strings.Contains(out, "Questions Asked: 3") {
			t.Errorf("output missing question count: %q", out)
		}
		if !strings.Contains(out, "AI Feedback:") {
			t.Errorf("output missing feedback section: %q", out)
		}
	})

	t.Run("markdown without feedback", func(t *testing.T) {
		transcriptOnly := report
		transcriptOnly.Feedback = ""

		out, err := registry.Format(transcriptOnly, "markdown")
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if strings.Contains(out, "## AI Feedback") {
			t.Errorf("output has a feedback section for a transcript-only report: %q", out)
		}
		if !strings.Contains(out, "## Transcript") {
			t.Errorf("output missing transcript section: %q", out)
		}
	})
}

func TestRegistryUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	if _, err := registry.Format(types.MatchResult{}, "xml"); err == nil {
		t.Error("Format() error = nil for an unregistered format")
	}
}

func TestRegistryGenericFallback(t *testing.T) {
	registry := NewFormatterRegistry()

	// An unknown type falls back to the generic JSON formatter.
	out, err := registry.Format(map[string]string{"k": "v"}, "json")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(out, `"k": "v"`) {
		t.Errorf("output = %q", out)
	}

	// Text has no generic formatter, so an unknown type fails.
	if _, err := registry.Format(map[string]string{"k": "v"}, "text"); err == nil {
		t.Error("Format() error = nil for an unknown type in text format")
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := NewFormatterRegistry().GetSupportedFormats()

	want := map[string]bool{"json": false, "text": false, "markdown": false}
	for _, f := range formats {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for f, seen := range want {
		if !seen {
			t.Errorf("GetSupportedFormats() missing %q (got %v)", f, formats)
		}
	}
}
