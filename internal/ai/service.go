package ai

import (
	"context"
	"fmt"
	"strings"

	"mockmate/internal/config"
	"mockmate/internal/errors"
)

// Failure sentinels returned by Service.Generate instead of an error.
// Downstream text that has to flow into a transcript no matter what
// checks these with IsFailure.
const (
	FailurePrefix      = "Error: "
	FailureUnavailable = "AI response unavailable."
)

// Service generates one kind of interview text (questions, decisions,
// feedback) through a configured provider
type Service struct {
	Provider  AIProvider // Exported for access from server package
	config    *config.OperationAIConfig
	operation Operation
	logger    *errors.Logger
}

// NewService creates a new AI service instance for a specific operation
func NewService(cfg *config.OperationAIConfig, operation Operation, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation", string(operation),
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operation.configOperation(), logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider:  provider,
		config:    cfg,
		operation: operation,
		logger:    logger,
	}, nil
}

// Generate produces text for the service's operation. It is total: any
// provider failure is folded into the returned string so the caller can
// record it in a transcript instead of aborting the interview.
func (s *Service) Generate(ctx context.Context, args ...any) string {
	systemPrompt := systemPromptFor(s.operation, s.config)
	userPrompt := fmt.Sprintf(userTemplateFor(s.operation, s.config), args...)

	text, tokenUsage, err := s.Provider.GenerateText(ctx, string(s.operation), userPrompt, systemPrompt)
	if err != nil {
		s.logger.LogError(err, "Text generation failed",
			"operation", string(s.operation))
		return FailurePrefix + err.Error()
	}

	if tokenUsage != nil {
		s.logger.Debug("Text generation completed",
			"operation", string(s.operation),
			"input_tokens", tokenUsage.InputTokens,
			"output_tokens", tokenUsage.OutputTokens,
			"total_tokens", tokenUsage.TotalTokens)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return FailureUnavailable
	}
	return trimmed
}

// IsFailure reports whether a Generate result is a failure sentinel
// rather than usable model output
func IsFailure(text string) bool {
	return text == FailureUnavailable || strings.HasPrefix(text, FailurePrefix)
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

// GetCircuitBreakerStats returns breaker statistics when the provider exposes them
func (s *Service) GetCircuitBreakerStats() map[string]any {
	if g, ok := s.Provider.(*GeminiProvider); ok {
		return g.GetCircuitBreakerStats()
	}
	return map[string]any{"enabled": false}
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.Provider.Close()
}
