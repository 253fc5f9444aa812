package config

import "time"

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// OperationAIConfig holds AI configuration for specific operations
type OperationAIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          *time.Duration       `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       *int                 `mapstructure:"maxRetries"`
	Temperature      *float32             `mapstructure:"temperature"`
	UseSystemPrompts *bool                `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `mapstructure:"systemPrompts"`
	UserPrompts   UserPrompts   `mapstructure:"userPrompts"`
}

// SystemPrompts contains system-level instructions
type SystemPrompts struct {
	Analyze      string `mapstructure:"analyze"`
	AnalyzeFile  string `mapstructure:"analyzeFile"`
	Question     string `mapstructure:"question"`
	QuestionFile string `mapstructure:"questionFile"`
	Decision     string `mapstructure:"decision"`
	DecisionFile string `mapstructure:"decisionFile"`
	Feedback     string `mapstructure:"feedback"`
	FeedbackFile string `mapstructure:"feedbackFile"`
}

// UserPrompts contains user-level prompt templates
type UserPrompts struct {
	Analyze             string `mapstructure:"analyze"`
	AnalyzeFile         string `mapstructure:"analyzeFile"`
	OpeningQuestion     string `mapstructure:"openingQuestion"`
	OpeningQuestionFile string `mapstructure:"openingQuestionFile"`
	NextQuestion        string `mapstructure:"nextQuestion"`
	NextQuestionFile    string `mapstructure:"nextQuestionFile"`
	Decision            string `mapstructure:"decision"`
	DecisionFile        string `mapstructure:"decisionFile"`
	Feedback            string `mapstructure:"feedback"`
	FeedbackFile        string `mapstructure:"feedbackFile"`
	MatchFeedback       string `mapstructure:"matchFeedback"`
	MatchFeedbackFile   string `mapstructure:"matchFeedbackFile"`
}

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetAnalyzeConfig returns the AI configuration for the candidate-context
// analysis operation with fallback to global config
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Analyze == "" {
		config.CustomPrompts.SystemPrompts.Analyze = c.AI.CustomPrompts.SystemPrompts.Analyze
	}
	if config.CustomPrompts.UserPrompts.Analyze == "" {
		config.CustomPrompts.UserPrompts.Analyze = c.AI.CustomPrompts.UserPrompts.Analyze
	}
	if config.CustomPrompts.SystemPrompts.AnalyzeFile == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeFile = c.AI.CustomPrompts.SystemPrompts.AnalyzeFile
	}
	if config.CustomPrompts.UserPrompts.AnalyzeFile == "" {
		config.CustomPrompts.UserPrompts.AnalyzeFile = c.AI.CustomPrompts.UserPrompts.AnalyzeFile
	}

	return config
}

// GetQuestionConfig returns the AI configuration for question generation
// (opening and follow-up questions share it) with fallback to global config
func (c *Config) GetQuestionConfig() OperationAIConfig {
	config := c.AI.Question
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Question == "" {
		config.CustomPrompts.SystemPrompts.Question = c.AI.CustomPrompts.SystemPrompts.Question
	}
	if config.CustomPrompts.UserPrompts.OpeningQuestion == "" {
		config.CustomPrompts.UserPrompts.OpeningQuestion = c.AI.CustomPrompts.UserPrompts.OpeningQuestion
	}
	if config.CustomPrompts.UserPrompts.NextQuestion == "" {
		config.CustomPrompts.UserPrompts.NextQuestion = c.AI.CustomPrompts.UserPrompts.NextQuestion
	}
	if config.CustomPrompts.SystemPrompts.QuestionFile == "" {
		config.CustomPrompts.SystemPrompts.QuestionFile = c.AI.CustomPrompts.SystemPrompts.QuestionFile
	}
	if config.CustomPrompts.UserPrompts.OpeningQuestionFile == "" {
		config.CustomPrompts.UserPrompts.OpeningQuestionFile = c.AI.CustomPrompts.UserPrompts.OpeningQuestionFile
	}
	if config.CustomPrompts.UserPrompts.NextQuestionFile == "" {
		config.CustomPrompts.UserPrompts.NextQuestionFile = c.AI.CustomPrompts.UserPrompts.NextQuestionFile
	}

	return config
}

// GetDecisionConfig returns the AI configuration for the continuation
// decision operation with fallback to global config
func (c *Config) GetDecisionConfig() OperationAIConfig {
	config := c.AI.Decision
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Decision == "" {
		config.CustomPrompts.SystemPrompts.Decision = c.AI.CustomPrompts.SystemPrompts.Decision
	}
	if config.CustomPrompts.UserPrompts.Decision == "" {
		config.CustomPrompts.UserPrompts.Decision = c.AI.CustomPrompts.UserPrompts.Decision
	}
	if config.CustomPrompts.SystemPrompts.DecisionFile == "" {
		config.CustomPrompts.SystemPrompts.DecisionFile = c.AI.CustomPrompts.SystemPrompts.DecisionFile
	}
	if config.CustomPrompts.UserPrompts.DecisionFile == "" {
		config.CustomPrompts.UserPrompts.DecisionFile = c.AI.CustomPrompts.UserPrompts.DecisionFile
	}

	return config
}

// GetFeedbackConfig returns the AI configuration for feedback generation
// (interview assessment and resume match narrative) with fallback to
// global config
func (c *Config) GetFeedbackConfig() OperationAIConfig {
	config := c.AI.Feedback
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Feedback == "" {
		config.CustomPrompts.SystemPrompts.Feedback = c.AI.CustomPrompts.SystemPrompts.Feedback
	}
	if config.CustomPrompts.UserPrompts.Feedback == "" {
		config.CustomPrompts.UserPrompts.Feedback = c.AI.CustomPrompts.UserPrompts.Feedback
	}
	if config.CustomPrompts.UserPrompts.MatchFeedback == "" {
		config.CustomPrompts.UserPrompts.MatchFeedback = c.AI.CustomPrompts.UserPrompts.MatchFeedback
	}
	if config.CustomPrompts.SystemPrompts.FeedbackFile == "" {
		config.CustomPrompts.SystemPrompts.FeedbackFile = c.AI.CustomPrompts.SystemPrompts.FeedbackFile
	}
	if config.CustomPrompts.UserPrompts.FeedbackFile == "" {
		config.CustomPrompts.UserPrompts.FeedbackFile = c.AI.CustomPrompts.UserPrompts.FeedbackFile
	}
	if config.CustomPrompts.UserPrompts.MatchFeedbackFile == "" {
		config.CustomPrompts.UserPrompts.MatchFeedbackFile = c.AI.CustomPrompts.UserPrompts.MatchFeedbackFile
	}

	return config
}
