package types

// MatchInput represents the input for the resume evaluation flow
type MatchInput struct {
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
}

// MatchResult represents the outcome of a resume evaluation: a lexical
// overlap score plus an AI feedback narrative
type MatchResult struct {
	Score    float64 `json:"score"`    // 0-100, two decimals
	Feedback string  `json:"feedback"` // strengths, missing skills, suggestions, summary
}

// InterviewReport represents the assembled report for a completed interview
type InterviewReport struct {
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
	Transcript    string `json:"transcript"`
	Feedback      string `json:"feedback,omitempty"`
}
