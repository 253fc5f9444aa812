package session

import (
	"strings"
	"testing"
)

func TestAskQuestion(t *testing.T) {
	s := New("role", "resume")

	s.AskQuestion("Q1")
	s.AppendAnswer("A1")
	s.AskQuestion("Q2")

	if s.CurrentQuestion != "Q2" {
		t.Errorf("CurrentQuestion = %q, want %q", s.CurrentQuestion, "Q2")
	}
	if s.QuestionCount != 2 {
		t.Errorf("QuestionCount = %d, want 2", s.QuestionCount)
	}
	if len(s.Transcript) != 3 {
		t.Fatalf("Transcript length = %d, want 3", len(s.Transcript))
	}
	if s.Transcript[1].Speaker != SpeakerCandidate || s.Transcript[1].Text != "A1" {
		t.Errorf("Transcript[1] = %+v, want candidate answer", s.Transcript[1])
	}
}

func TestAppendClosingDoesNotCount(t *testing.T) {
	s := New("role", "resume")
	s.AskQuestion("Q1")
	s.AppendAnswer("A1")
	s.AppendClosing("Thanks, we are done.")

	if s.QuestionCount != 1 {
		t.Errorf("QuestionCount = %d, want 1", s.QuestionCount)
	}
	if s.CurrentQuestion != "Q1" {
		t.Errorf("CurrentQuestion = %q, want %q", s.CurrentQuestion, "Q1")
	}
}

func TestQuestionTurns(t *testing.T) {
	s := New("role", "resume")
	s.AskQuestion("Q1")
	s.AppendAnswer("A1")
	s.AskQuestion("Q2")
	s.AppendAnswer("A2")

	if got := s.QuestionTurns(); got != 2 {
		t.Errorf("QuestionTurns() = %d, want 2", got)
	}

	// A trailing closing line on a completed session is not a question.
	s.AppendClosing("Thanks, we are done.")
	s.Phase = PhaseCompleted
	if got := s.QuestionTurns(); got != 2 {
		t.Errorf("QuestionTurns() after closing = %d, want 2", got)
	}
}

func TestTranscriptText(t *testing.T) {
	s := New("role", "resume")
	s.AskQuestion("Q1")
	s.AppendAnswer("A1")

	want := "AI Interviewer: Q1\n\nCandidate: A1\n\n"
	if got := s.TranscriptText(); got != want {
		t.Errorf("TranscriptText() = %q, want %q", got, want)
	}
}

func TestRecentTranscript(t *testing.T) {
	s := New("role", "resume")
	s.AskQuestion(strings.Repeat("x", 100))
	s.AppendAnswer(strings.Repeat("y", 100))
	full := s.TranscriptText()

	t.Run("non-positive limit returns everything", func(t *testing.T) {
		if got := s.RecentTranscript(0); got != full {
			t.Errorf("RecentTranscript(0) = %q, want full transcript", got)
		}
	})

	t.Run("limit larger than transcript returns everything", func(t *testing.T) {
		if got := s.RecentTranscript(len(full) + 10); got != full {
			t.Errorf("RecentTranscript(big) = %q, want full transcript", got)
		}
	})

	t.Run("window keeps the tail", func(t *testing.T) {
		got := s.RecentTranscript(50)
		if len(got) > 50 {
			t.Errorf("window length = %d, want <= 50", len(got))
		}
		if !strings.HasSuffix(full, got) {
			t.Errorf("window %q is not a suffix of the transcript", got)
		}
	})

	t.Run("window does not split a rune", func(t *testing.T) {
		multi := New("role", "resume")
		multi.AskQuestion(strings.Repeat("é", 40))
		got := multi.RecentTranscript(5)
		if !strings.HasSuffix(got, "\n\n") {
			t.Fatalf("unexpected window %q", got)
		}
		for _, r := range got {
			if r == '�' {
				t.Errorf("window %q contains a split rune", got)
			}
		}
	})
}

func TestReset(t *testing.T) {
	s := New("role", "resume")
	s.AskQuestion("Q1")
	s.AppendAnswer("A1")
	s.Phase = PhaseCompleted
	s.FinalFeedback = "good"

	s.Reset()

	if s.JobDescription != "" || s.ResumeText != "" {
		t.Error("Reset() kept source documents")
	}
	if s.Transcript != nil || s.CurrentQuestion != "" || s.QuestionCount != 0 {
		t.Error("Reset() kept transcript state")
	}
	if s.Phase != PhaseNotStarted || s.FinalFeedback != "" {
		t.Error("Reset() kept lifecycle state")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseNotStarted, "not_started"},
		{PhaseActive, "active"},
		{PhaseCompleted, "completed"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
