package match

import (
	"context"
	"log/slog"
	"testing"

	"mockmate/internal/errors"
	"mockmate/internal/types"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		jdText     string
		resumeText string
		want       float64
	}{
		{
			name:       "two of three words overlap",
			jdText:     "python backend engineer",
			resumeText: "python backend developer",
			want:       66.67,
		},
		{
			name:       "full overlap",
			jdText:     "go docker",
			resumeText: "docker go",
			want:       100,
		},
		{
			name:       "no overlap",
			jdText:     "go docker",
			resumeText: "java maven",
			want:       0,
		},
		{
			name:       "empty job description",
			jdText:     "",
			resumeText: "go docker",
			want:       0,
		},
		{
			name:       "whitespace-only job description",
			jdText:     "   \n\t",
			resumeText: "go docker",
			want:       0,
		},
		{
			name:       "empty resume",
			jdText:     "go docker",
			resumeText: "",
			want:       0,
		},
		{
			name:       "matching is case-insensitive",
			jdText:     "Go Docker",
			resumeText: "gO dOcKeR",
			want:       100,
		},
		{
			name:       "repeated words count once",
			jdText:     "go go go docker",
			resumeText: "go",
			want:       50,
		},
		{
			name:       "score is per distinct jd word",
			jdText:     "a b c d e f g h",
			resumeText: "a",
			want:       12.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.jdText, tt.resumeText); got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.jdText, tt.resumeText, got, tt.want)
			}
		})
	}
}

type fakeGenerator struct {
	response string
	calls    [][]any
}

func (f *fakeGenerator) Generate(_ context.Context, args ...any) string {
	f.calls = append(f.calls, args)
	return f.response
}

func TestScorerEvaluate(t *testing.T) {
	gen := &fakeGenerator{response: "Strong match on backend skills."}
	scorer := NewScorer(gen, errors.NewLogger(slog.LevelError))

	result := scorer.Evaluate(context.Background(), types.MatchInput{
		JobDescription: "go docker kubernetes",
		ResumeText:     "go docker python",
	})

	if result.Score != 66.67 {
		t.Errorf("Score = %v, want 66.67", result.Score)
	}
	if result.Feedback != "Strong match on backend skills." {
		t.Errorf("Feedback = %q", result.Feedback)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("feedback generator called %d times, want 1", len(gen.calls))
	}
	// Feedback generation sees the full texts, not truncated prefixes.
	if gen.calls[0][0] != "go docker kubernetes" || gen.calls[0][1] != "go docker python" {
		t.Errorf("feedback generator args = %v", gen.calls[0])
	}
}

func TestScorerEvaluateFeedbackFailure(t *testing.T) {
	gen := &fakeGenerator{response: "AI response unavailable."}
	scorer := NewScorer(gen, errors.NewLogger(slog.LevelError))

	result := scorer.Evaluate(context.Background(), types.MatchInput{
		JobDescription: "go",
		ResumeText:     "go",
	})

	// The score is computed locally and survives a feedback failure.
	if result.Score != 100 {
		t.Errorf("Score = %v, want 100", result.Score)
	}
	if result.Feedback != "AI response unavailable." {
		t.Errorf("Feedback = %q, want the failure sentinel passed through", result.Feedback)
	}
}
