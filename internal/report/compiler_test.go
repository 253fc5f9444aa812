package report

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"mockmate/internal/errors"
	"mockmate/internal/session"
)

type fakeGenerator struct {
	response string
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, args ...any) string {
	f.calls++
	return f.response
}

func testLogger() *errors.Logger {
	return errors.NewLogger(slog.LevelError)
}

func completedSession() *session.Session {
	s := session.New("Backend engineer role", "Five years of Go")
	s.AskQuestion("Q1")
	s.AppendAnswer("A1")
	s.AskQuestion("Q2")
	s.AppendAnswer("A2")
	s.AppendClosing("Thank you. The interview is now complete.")
	s.Phase = session.PhaseCompleted
	return s
}

func TestCompileFeedbackRequiresCompletion(t *testing.T) {
	gen := &fakeGenerator{response: "feedback"}
	c := NewCompiler(gen, testLogger())

	s := session.New("role", "resume")
	if _, err := c.CompileFeedback(context.Background(), s); err == nil {
		t.Error("CompileFeedback() on unstarted session error = nil, want error")
	}

	s.Phase = session.PhaseActive
	if _, err := c.CompileFeedback(context.Background(), s); err == nil {
		t.Error("CompileFeedback() on active session error = nil, want error")
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestCompileFeedbackIdempotent(t *testing.T) {
	gen := &fakeGenerator{response: "Solid answers throughout."}
	c := NewCompiler(gen, testLogger())
	s := completedSession()

	first, err := c.CompileFeedback(context.Background(), s)
	if err != nil {
		t.Fatalf("CompileFeedback() error = %v", err)
	}
	if first != "Solid answers throughout." {
		t.Errorf("feedback = %q", first)
	}

	// Repeated calls reuse the cached feedback without regenerating.
	second, err := c.CompileFeedback(context.Background(), s)
	if err != nil {
		t.Fatalf("second CompileFeedback() error = %v", err)
	}
	if second != first {
		t.Errorf("second feedback = %q, want %q", second, first)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestBuildReport(t *testing.T) {
	gen := &fakeGenerator{response: "Good technical depth."}
	c := NewCompiler(gen, testLogger())
	s := completedSession()

	report, err := c.BuildReport(context.Background(), s)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if report.QuestionCount != 2 {
		t.Errorf("QuestionCount = %d, want 2 (closing line excluded)", report.QuestionCount)
	}
	if report.Title != "Interview Assessment - 2 Qs" {
		t.Errorf("Title = %q", report.Title)
	}
	if report.Feedback != "Good technical depth." {
		t.Errorf("Feedback = %q", report.Feedback)
	}
	if !strings.Contains(report.Transcript, "AI Interviewer: Q1") {
		t.Errorf("Transcript missing question: %q", report.Transcript)
	}
	if !strings.Contains(report.Transcript, "Candidate: A2") {
		t.Errorf("Transcript missing answer: %q", report.Transcript)
	}
}

func TestBuildReportNotCompleted(t *testing.T) {
	c := NewCompiler(&fakeGenerator{}, testLogger())
	s := session.New("role", "resume")
	s.Phase = session.PhaseActive

	if _, err := c.BuildReport(context.Background(), s); err == nil {
		t.Error("BuildReport() on active session error = nil, want error")
	}
}

func TestBuildTranscriptReport(t *testing.T) {
	// A nil generator is fine: transcript-only reports never generate.
	c := NewCompiler(nil, testLogger())
	s := completedSession()

	report := c.BuildTranscriptReport(s)

	if report.Title != "Interview Transcript Only" {
		t.Errorf("Title = %q", report.Title)
	}
	if report.Feedback != "" {
		t.Errorf("Feedback = %q, want empty", report.Feedback)
	}
	if report.QuestionCount != 2 {
		t.Errorf("QuestionCount = %d, want 2", report.QuestionCount)
	}
	if !strings.Contains(report.Transcript, "Candidate: A1") {
		t.Errorf("Transcript = %q", report.Transcript)
	}
}

func TestBuildTranscriptReportMidInterview(t *testing.T) {
	c := NewCompiler(nil, testLogger())
	s := session.New("role", "resume")
	s.AskQuestion("Q1")
	s.Phase = session.PhaseActive

	report := c.BuildTranscriptReport(s)
	if report.QuestionCount != 1 {
		t.Errorf("QuestionCount = %d, want 1", report.QuestionCount)
	}
}
