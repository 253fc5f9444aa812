package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"mockmate/internal/config"
	"mockmate/internal/errors"
)

// fakeProvider records the last prompt it saw and returns scripted
// output.
type fakeProvider struct {
	text string
	err  error

	lastOperation    string
	lastUserPrompt   string
	lastSystemPrompt string
	closed           bool
}

func (f *fakeProvider) GenerateText(_ context.Context, operation, userPrompt, systemPrompt string) (string, *TokenUsage, error) {
	f.lastOperation = operation
	f.lastUserPrompt = userPrompt
	f.lastSystemPrompt = systemPrompt
	if f.err != nil {
		return "", nil, f.err
	}
	return f.text, &TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, nil
}

func (f *fakeProvider) GetModelInfo(_ context.Context) *ModelInfo {
	return &ModelInfo{Name: "fake-model", Available: true}
}

func (f *fakeProvider) Close() error {
	f.closed = true
	return nil
}

func newTestService(provider AIProvider, op Operation, cfg *config.OperationAIConfig) *Service {
	if cfg == nil {
		cfg = &config.OperationAIConfig{}
	}
	return &Service{
		Provider:  provider,
		config:    cfg,
		operation: op,
		logger:    errors.NewLogger(slog.LevelError),
	}
}

func TestServiceGenerate(t *testing.T) {
	tests := []struct {
		name         string
		providerText string
		providerErr  error
		want         string
	}{
		{
			name:         "successful output is trimmed",
			providerText: "  CONTINUE:algorithms \n",
			want:         "CONTINUE:algorithms",
		},
		{
			name:        "provider error becomes a tagged string",
			providerErr: fmt.Errorf("deadline exceeded"),
			want:        "Error: deadline exceeded",
		},
		{
			name:         "empty output becomes the unavailable sentinel",
			providerText: "",
			want:         FailureUnavailable,
		},
		{
			name:         "whitespace-only output becomes the unavailable sentinel",
			providerText: "   \n\t",
			want:         FailureUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{text: tt.providerText, err: tt.providerErr}
			svc := newTestService(provider, OperationDecision, nil)

			got := svc.Generate(context.Background(), "jd", "resume", "transcript")
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServiceGeneratePromptAssembly(t *testing.T) {
	provider := &fakeProvider{text: "END"}
	cfg := &config.OperationAIConfig{
		CustomPrompts: config.PromptConfig{
			UserPrompts: config.UserPrompts{
				Decision: "JD=%s RESUME=%s CONV=%s",
			},
			SystemPrompts: config.SystemPrompts{
				Decision: "custom pacing instructions",
			},
		},
	}
	svc := newTestService(provider, OperationDecision, cfg)

	svc.Generate(context.Background(), "backend role", "go resume", "transcript tail")

	if provider.lastOperation != "decision" {
		t.Errorf("operation = %q, want %q", provider.lastOperation, "decision")
	}
	want := "JD=backend role RESUME=go resume CONV=transcript tail"
	if provider.lastUserPrompt != want {
		t.Errorf("user prompt = %q, want %q", provider.lastUserPrompt, want)
	}
	if provider.lastSystemPrompt != "custom pacing instructions" {
		t.Errorf("system prompt = %q", provider.lastSystemPrompt)
	}
}

func TestServiceGenerateDefaultPrompts(t *testing.T) {
	provider := &fakeProvider{text: "ok"}
	svc := newTestService(provider, OperationMatchFeedback, nil)

	svc.Generate(context.Background(), "jd text", "resume text")

	if !strings.Contains(provider.lastUserPrompt, "jd text") ||
		!strings.Contains(provider.lastUserPrompt, "resume text") {
		t.Errorf("user prompt = %q, want both inputs substituted", provider.lastUserPrompt)
	}
	if provider.lastSystemPrompt != DefaultSystemPrompts.Feedback {
		t.Errorf("system prompt = %q, want the feedback default", provider.lastSystemPrompt)
	}
}

func TestIsFailure(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "unavailable sentinel", text: FailureUnavailable, want: true},
		{name: "tagged error", text: "Error: something broke", want: true},
		{name: "bare prefix", text: "Error: ", want: true},
		{name: "normal output", text: "Tell me about your last project.", want: false},
		{name: "error mentioned mid-sentence", text: "Describe an Error: handling strategy.", want: false},
		{name: "empty string", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFailure(tt.text); got != tt.want {
				t.Errorf("IsFailure(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestOperationConfigOperation(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OperationAnalyze, "analyze"},
		{OperationOpeningQuestion, "question"},
		{OperationNextQuestion, "question"},
		{OperationDecision, "decision"},
		{OperationFeedback, "feedback"},
		{OperationMatchFeedback, "feedback"},
	}

	for _, tt := range tests {
		if got := tt.op.configOperation(); got != tt.want {
			t.Errorf("%s.configOperation() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestServiceCircuitBreakerStatsWithoutGemini(t *testing.T) {
	svc := newTestService(&fakeProvider{}, OperationDecision, nil)

	stats := svc.GetCircuitBreakerStats()
	if enabled, ok := stats["enabled"].(bool); !ok || enabled {
		t.Errorf("stats = %v, want enabled=false for a non-Gemini provider", stats)
	}
}

func TestServiceClose(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider, OperationDecision, nil)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !provider.closed {
		t.Error("Close() did not reach the provider")
	}
}
