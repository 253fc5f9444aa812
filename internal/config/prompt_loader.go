package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// maxPromptFileSize is the upper bound for a custom prompt file.
const maxPromptFileSize = 256 * 1024

// GetLoadedPrompts returns the loaded prompt content in a thread-safe way
func GetLoadedPrompts() *AllLoadedPrompts {
	return &loadedPrompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	opPrompts := []struct {
		name   string
		source *PromptConfig
		target *OperationLoadedPrompts
	}{
		{"analyze", &c.AI.Analyze.CustomPrompts, &loadedPrompts.Analyze},
		{"question", &c.AI.Question.CustomPrompts, &loadedPrompts.Question},
		{"decision", &c.AI.Decision.CustomPrompts, &loadedPrompts.Decision},
		{"feedback", &c.AI.Feedback.CustomPrompts, &loadedPrompts.Feedback},
	}
	for _, op := range opPrompts {
		if err := c.loadSystemPromptsFromFiles(&op.source.SystemPrompts, &op.target.SystemPrompts); err != nil {
			return fmt.Errorf("failed to load %s system prompts: %w", op.name, err)
		}
		if err := c.loadUserPromptsFromFiles(&op.source.UserPrompts, &op.target.UserPrompts); err != nil {
			return fmt.Errorf("failed to load %s user prompts: %w", op.name, err)
		}
	}

	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	fields := []struct {
		file      string
		operation string
		dest      *string
	}{
		{prompts.AnalyzeFile, "analyze", &target.Analyze},
		{prompts.QuestionFile, "question", &target.Question},
		{prompts.DecisionFile, "decision", &target.Decision},
		{prompts.FeedbackFile, "feedback", &target.Feedback},
	}
	for _, f := range fields {
		if f.file == "" {
			continue
		}
		content, err := c.loadPromptFromFile(f.file, "system", f.operation)
		if err != nil {
			return err
		}
		*f.dest = content
	}
	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	fields := []struct {
		file      string
		operation string
		dest      *string
	}{
		{prompts.AnalyzeFile, "analyze", &target.Analyze},
		{prompts.OpeningQuestionFile, "openingQuestion", &target.OpeningQuestion},
		{prompts.NextQuestionFile, "nextQuestion", &target.NextQuestion},
		{prompts.DecisionFile, "decision", &target.Decision},
		{prompts.FeedbackFile, "feedback", &target.Feedback},
		{prompts.MatchFeedbackFile, "matchFeedback", &target.MatchFeedback},
	}
	for _, f := range fields {
		if f.file == "" {
			continue
		}
		content, err := c.loadPromptFromFile(f.file, "user", f.operation)
		if err != nil {
			return err
		}
		*f.dest = content
	}
	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}
	if err == nil && info.Size() > maxPromptFileSize {
		return "", fmt.Errorf("%s %s prompt file '%s' exceeds %d bytes", promptType, operation, absPath, maxPromptFileSize)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	validatePromptConfig := func(prefix string, p *PromptConfig) {
		validateFile(p.SystemPrompts.AnalyzeFile, prefix+" system", "analyze")
		validateFile(p.SystemPrompts.QuestionFile, prefix+" system", "question")
		validateFile(p.SystemPrompts.DecisionFile, prefix+" system", "decision")
		validateFile(p.SystemPrompts.FeedbackFile, prefix+" system", "feedback")
		validateFile(p.UserPrompts.AnalyzeFile, prefix+" user", "analyze")
		validateFile(p.UserPrompts.OpeningQuestionFile, prefix+" user", "openingQuestion")
		validateFile(p.UserPrompts.NextQuestionFile, prefix+" user", "nextQuestion")
		validateFile(p.UserPrompts.DecisionFile, prefix+" user", "decision")
		validateFile(p.UserPrompts.FeedbackFile, prefix+" user", "feedback")
		validateFile(p.UserPrompts.MatchFeedbackFile, prefix+" user", "matchFeedback")
	}

	validatePromptConfig("global", &c.AI.CustomPrompts)
	validatePromptConfig("analyze", &c.AI.Analyze.CustomPrompts)
	validatePromptConfig("question", &c.AI.Question.CustomPrompts)
	validatePromptConfig("decision", &c.AI.Decision.CustomPrompts)
	validatePromptConfig("feedback", &c.AI.Feedback.CustomPrompts)

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	count := 0
	for _, content := range []string{
		loadedPrompts.Global.SystemPrompts.Analyze,
		loadedPrompts.Global.SystemPrompts.Question,
		loadedPrompts.Global.SystemPrompts.Decision,
		loadedPrompts.Global.SystemPrompts.Feedback,
		loadedPrompts.Global.UserPrompts.Analyze,
		loadedPrompts.Global.UserPrompts.OpeningQuestion,
		loadedPrompts.Global.UserPrompts.NextQuestion,
		loadedPrompts.Global.UserPrompts.Decision,
		loadedPrompts.Global.UserPrompts.Feedback,
		loadedPrompts.Global.UserPrompts.MatchFeedback,
		loadedPrompts.Analyze.SystemPrompts.Analyze,
		loadedPrompts.Analyze.UserPrompts.Analyze,
		loadedPrompts.Question.SystemPrompts.Question,
		loadedPrompts.Question.UserPrompts.OpeningQuestion,
		loadedPrompts.Question.UserPrompts.NextQuestion,
		loadedPrompts.Decision.SystemPrompts.Decision,
		loadedPrompts.Decision.UserPrompts.Decision,
		loadedPrompts.Feedback.SystemPrompts.Feedback,
		loadedPrompts.Feedback.UserPrompts.Feedback,
		loadedPrompts.Feedback.UserPrompts.MatchFeedback,
	} {
		if content != "" {
			count++
		}
	}

	if count == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", count)
	}
}
