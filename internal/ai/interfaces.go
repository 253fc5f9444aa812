package ai

import (
	"context"
)

// AIProvider interface for different AI implementations
// GenerateText returns token usage information - callers can ignore it if not needed
type AIProvider interface {
	GenerateText(ctx context.Context, operation, userPrompt, systemPrompt string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
