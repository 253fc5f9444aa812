package ai

import (
	"mockmate/internal/config"
)

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	Analyze  string
	Question string
	Decision string
	Feedback string
}

// UserPrompts contains user-level prompt templates with placeholders for dynamic content
type UserPrompts struct {
	Analyze         string
	OpeningQuestion string
	NextQuestion    string
	Decision        string
	Feedback        string
	MatchFeedback   string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	Analyze: `You are an experienced technical recruiter preparing for a live interview. Your role is to:

- Build an accurate picture of a candidate from their resume and the job description
- Surface concrete skills, projects, and gaps worth probing
- Stay factual: never invent experience that is not in the source material`,

	Question: `You are a warm, professional AI interviewer conducting a spoken interview. Your questions should:

- Sound natural when read aloud
- Build on what the candidate has already said
- Probe for specifics: projects, decisions, outcomes
- Stay concise; one question at a time`,

	Decision: `You are the pacing controller of a live interview. You decide, based on the conversation so far, whether enough signal has been gathered. Respond in the exact machine-readable format you are asked for, with no extra commentary.`,

	Feedback: `You are a senior hiring panel member writing a post-interview assessment. Your feedback should be:

- Professional and constructive
- Grounded in what the candidate actually said
- Actionable: concrete strengths, gaps, and next steps`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	Analyze: `Analyze resume/JD to understand candidate for adaptive interview. Identify: skills, projects, gaps, behavioral aspects, cultural fit, role alignment. Resume: %s JD: %s`,

	OpeningQuestion: `You are starting a natural interview. Greet and ask one opening question tailored to candidate's background. Background Analysis: %s JD: %s Resume: %s`,

	NextQuestion: `Generate next conversational interview question. Build on last response. Explore skills, projects, examples. Avoid generic questions. Focus area: %s. Resume: %s JD: %s Recent Conv: %s`,

	Decision: `Decide whether to CONTINUE or END interview. CONTINUE if more to explore (skills, projects, gaps, behavioral). END if sufficient info gathered. Respond: CONTINUE:focus_area or END. JD: %s Resume: %s Conv: %s`,

	Feedback: `Provide COMPREHENSIVE professional interview feedback. Include: Overall Score, Communication, Technical Competency, Behavioral Assessment, Experience Evaluation, Cultural Fit, Response Quality, Key Strengths, Development Areas, Highlights, Hiring Recommendation, Negotiation Position, Next Steps. JD: %s Transcript: %s`,

	MatchFeedback: `Analyze resume against JD. Provide: Strengths, Missing skills, Suggestions, Summary, Professional feedback. JD: %s Resume: %s`,
}

// Operation identifies which kind of text the service generates
type Operation string

const (
	OperationAnalyze         Operation = "analyze"
	OperationOpeningQuestion Operation = "opening_question"
	OperationNextQuestion    Operation = "next_question"
	OperationDecision        Operation = "decision"
	OperationFeedback        Operation = "feedback"
	OperationMatchFeedback   Operation = "match_feedback"
)

// configOperation maps an operation to the config key used for
// operation-specific prompt and AI settings
func (op Operation) configOperation() string {
	switch op {
	case OperationAnalyze:
		return "analyze"
	case OperationOpeningQuestion, OperationNextQuestion:
		return "question"
	case OperationDecision:
		return "decision"
	case OperationFeedback, OperationMatchFeedback:
		return "feedback"
	default:
		return ""
	}
}

// systemPromptFor returns the system prompt for an operation, preferring
// file-loaded content, then config content, then the built-in default
func systemPromptFor(op Operation, cfg *config.OperationAIConfig) string {
	loaded := config.GetPromptsForOperation(op.configOperation())
	configPrompts := &cfg.CustomPrompts.SystemPrompts

	switch op {
	case OperationAnalyze:
		return resolvePrompt(loaded.SystemPrompts.Analyze, configPrompts.Analyze, DefaultSystemPrompts.Analyze)
	case OperationOpeningQuestion, OperationNextQuestion:
		return resolvePrompt(loaded.SystemPrompts.Question, configPrompts.Question, DefaultSystemPrompts.Question)
	case OperationDecision:
		return resolvePrompt(loaded.SystemPrompts.Decision, configPrompts.Decision, DefaultSystemPrompts.Decision)
	case OperationFeedback, OperationMatchFeedback:
		return resolvePrompt(loaded.SystemPrompts.Feedback, configPrompts.Feedback, DefaultSystemPrompts.Feedback)
	default:
		return ""
	}
}

// userTemplateFor returns the user prompt template for an operation
func userTemplateFor(op Operation, cfg *config.OperationAIConfig) string {
	loaded := config.GetPromptsForOperation(op.configOperation())
	configPrompts := &cfg.CustomPrompts.UserPrompts

	switch op {
	case OperationAnalyze:
		return resolvePrompt(loaded.UserPrompts.Analyze, configPrompts.Analyze, DefaultUserPrompts.Analyze)
	case OperationOpeningQuestion:
		return resolvePrompt(loaded.UserPrompts.OpeningQuestion, configPrompts.OpeningQuestion, DefaultUserPrompts.OpeningQuestion)
	case OperationNextQuestion:
		return resolvePrompt(loaded.UserPrompts.NextQuestion, configPrompts.NextQuestion, DefaultUserPrompts.NextQuestion)
	case OperationDecision:
		return resolvePrompt(loaded.UserPrompts.Decision, configPrompts.Decision, DefaultUserPrompts.Decision)
	case OperationFeedback:
		return resolvePrompt(loaded.UserPrompts.Feedback, configPrompts.Feedback, DefaultUserPrompts.Feedback)
	case OperationMatchFeedback:
		return resolvePrompt(loaded.UserPrompts.MatchFeedback, configPrompts.MatchFeedback, DefaultUserPrompts.MatchFeedback)
	default:
		return ""
	}
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
