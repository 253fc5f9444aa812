package interview

import "testing"

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantContinue  bool
		wantFocusArea string
	}{
		{
			name:         "literal end",
			text:         "END",
			wantContinue: false,
		},
		{
			name:          "continue with focus area",
			text:          "CONTINUE:algorithms",
			wantContinue:  true,
			wantFocusArea: "algorithms",
		},
		{
			name:          "continue without focus area",
			text:          "CONTINUE",
			wantContinue:  true,
			wantFocusArea: "general",
		},
		{
			name:          "continue with empty focus area",
			text:          "CONTINUE:",
			wantContinue:  true,
			wantFocusArea: "general",
		},
		{
			name:          "continue with whitespace-only focus area",
			text:          "CONTINUE:   ",
			wantContinue:  true,
			wantFocusArea: "general",
		},
		{
			name:          "focus area is trimmed",
			text:          "CONTINUE: system design ",
			wantContinue:  true,
			wantFocusArea: "system design",
		},
		{
			name:          "surrounding whitespace is trimmed",
			text:          "  CONTINUE:testing\n",
			wantContinue:  true,
			wantFocusArea: "testing",
		},
		{
			name:          "focus area keeps interior colons",
			text:          "CONTINUE:ci:cd pipelines",
			wantContinue:  true,
			wantFocusArea: "ci:cd pipelines",
		},
		{
			name:         "lowercase continue is not a continuation",
			text:         "continue:algorithms",
			wantContinue: false,
		},
		{
			name:         "prose around the token is not a continuation",
			text:         "I think we should CONTINUE:algorithms",
			wantContinue: false,
		},
		{
			name:         "generation failure sentinel ends the interview",
			text:         "Error: context deadline exceeded",
			wantContinue: false,
		},
		{
			name:         "empty decision ends the interview",
			text:         "",
			wantContinue: false,
		},
		{
			name:         "whitespace-only decision ends the interview",
			text:         "   \n\t",
			wantContinue: false,
		},
		{
			name:         "arbitrary prose ends the interview",
			text:         "The candidate did well, let's wrap up.",
			wantContinue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecision(tt.text)
			if got.Continue != tt.wantContinue {
				t.Errorf("ParseDecision(%q).Continue = %v, want %v", tt.text, got.Continue, tt.wantContinue)
			}
			if got.Continue && got.FocusArea != tt.wantFocusArea {
				t.Errorf("ParseDecision(%q).FocusArea = %q, want %q", tt.text, got.FocusArea, tt.wantFocusArea)
			}
		})
	}
}
