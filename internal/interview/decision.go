package interview

import (
	"strings"
)

// DefaultFocusArea is used when a continuation decision names no focus.
const DefaultFocusArea = "general"

// Decision is the parsed form of the generator's continuation decision.
// Parsing happens once, at the gateway boundary; the controller never
// inspects the raw decision text.
type Decision struct {
	Continue  bool
	FocusArea string
}

// ParseDecision classifies a raw decision string. The contract with the
// generator is a literal CONTINUE prefix, optionally followed by a colon
// and a focus-area label, or the literal token END. Anything else,
// including error tags and empty output, is treated as "not CONTINUE"
// and ends the interview. Ending on ambiguity is the fail-safe that
// keeps a drifting generator from producing an unbounded interview.
func ParseDecision(text string) Decision {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "CONTINUE") {
		return Decision{Continue: false}
	}

	focus := DefaultFocusArea
	if _, after, found := strings.Cut(trimmed, ":"); found {
		if label := strings.TrimSpace(after); label != "" {
			focus = label
		}
	}
	return Decision{Continue: true, FocusArea: focus}
}
