// Package session holds the mutable record of a single mock interview.
//
// A Session is owned by its caller and passed explicitly into every
// controller operation; there is no process-wide session singleton.
// Exactly one goroutine mutates a Session at a time.
package session

import (
	"strings"
	"unicode/utf8"
)

// Speaker identifies who authored a transcript turn.
type Speaker string

const (
	SpeakerInterviewer Speaker = "AI Interviewer"
	SpeakerCandidate   Speaker = "Candidate"
)

// Phase is the interview lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseActive
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Turn is a single utterance in the transcript. Insertion order is
// meaningful and turns are never modified once appended.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session is the full mutable state of one interview from start to
// completion. JobDescription and ResumeText are immutable once set.
type Session struct {
	JobDescription  string `json:"jobDescription"`
	ResumeText      string `json:"resumeText"`
	Transcript      []Turn `json:"transcript"`
	CurrentQuestion string `json:"currentQuestion"`
	QuestionCount   int    `json:"questionCount"`
	Phase           Phase  `json:"phase"`
	FinalFeedback   string `json:"finalFeedback,omitempty"`
}

// New creates a session for the given job description and resume text.
// The session starts in PhaseNotStarted; the controller validates the
// inputs when starting the interview.
func New(jobDescription, resumeText string) *Session {
	return &Session{
		JobDescription: jobDescription,
		ResumeText:     resumeText,
	}
}

// AskQuestion records an interviewer question: it is appended to the
// transcript, becomes the current question and increments QuestionCount.
func (s *Session) AskQuestion(text string) {
	s.Transcript = append(s.Transcript, Turn{Speaker: SpeakerInterviewer, Text: text})
	s.CurrentQuestion = text
	s.QuestionCount++
}

// AppendAnswer records a candidate utterance (or a placeholder substituted
// for a failed capture).
func (s *Session) AppendAnswer(text string) {
	s.Transcript = append(s.Transcript, Turn{Speaker: SpeakerCandidate, Text: text})
}

// AppendClosing records the interviewer's closing line. Unlike
// AskQuestion it does not change the current question or the question
// count: the closing line is not a question the candidate answers.
func (s *Session) AppendClosing(text string) {
	s.Transcript = append(s.Transcript, Turn{Speaker: SpeakerInterviewer, Text: text})
}

// QuestionTurns returns the number of interviewer question turns in the
// transcript (closing lines excluded).
func (s *Session) QuestionTurns() int {
	n := 0
	for i, turn := range s.Transcript {
		if turn.Speaker != SpeakerInterviewer {
			continue
		}
		// The closing line is the only interviewer turn that can follow
		// completion; it sits at the end of the transcript.
		if s.Phase == PhaseCompleted && i == len(s.Transcript)-1 && turn.Text != s.CurrentQuestion {
			continue
		}
		n++
	}
	return n
}

// TranscriptText renders the transcript in the conversational form the
// generation prompts and reports consume.
func (s *Session) TranscriptText() string {
	var b strings.Builder
	for _, turn := range s.Transcript {
		b.WriteString(string(turn.Speaker))
		b.WriteString(": ")
		b.WriteString(turn.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// RecentTranscript returns at most maxBytes of the tail of the rendered
// transcript. Recent context dominates relevance for the next turn, so
// per-turn generation prompts only see this window. A non-positive limit
// returns the full rendering.
func (s *Session) RecentTranscript(maxBytes int) string {
	text := s.TranscriptText()
	if maxBytes <= 0 || len(text) <= maxBytes {
		return text
	}
	cut := len(text) - maxBytes
	// Do not split a multi-byte rune at the window boundary.
	for cut < len(text) && !utf8.RuneStart(text[cut]) {
		cut++
	}
	return text[cut:]
}

// Reset restores the session to its initial state, discarding the
// transcript, counters, feedback and source documents.
func (s *Session) Reset() {
	s.JobDescription = ""
	s.ResumeText = ""
	s.Transcript = nil
	s.CurrentQuestion = ""
	s.QuestionCount = 0
	s.Phase = PhaseNotStarted
	s.FinalFeedback = ""
}
