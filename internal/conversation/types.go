// Package conversation holds the per-conversation state, the process
// store that owns it, and the bounded dialogue memory.
package conversation

import "github.com/ziadkadry99/docchat/internal/extractor"

// Strategy tags how the last answer was produced.
type Strategy string

const (
	StrategyOutOfContext Strategy = "out_of_context"
	StrategyDocument     Strategy = "document"
	StrategyWeb          Strategy = "web"
	StrategyWebNoResults Strategy = "web_no_results"
	StrategyCombined     Strategy = "combined"
	StrategyError        Strategy = "error"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance in the dialogue history. Immutable once appended.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// WebResult is a scored web search hit from the most recent lookup.
type WebResult struct {
	Text      string  `json:"text"`
	URL       string  `json:"url"`
	Relevance float64 `json:"relevance"`
}

// DocumentRecord is the ingested document: full text, ordered named
// sections, and opaque source metadata. Never mutated after ingestion.
type DocumentRecord struct {
	Content  string
	Sections []extractor.Section
	Metadata map[string]string
}

// SectionBodies returns the section texts in document order.
func (d *DocumentRecord) SectionBodies() []string {
	bodies := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		bodies[i] = s.Body
	}
	return bodies
}

// State is the mutable conversation state, updated once per question.
type State struct {
	ID       string
	Document *DocumentRecord

	// History is ordered oldest first and bounded by Memory.Update.
	History []Turn

	// PendingQuestion is the question currently being processed.
	PendingQuestion string
	// ForceWebSearch marks an explicit caller request for a web lookup.
	ForceWebSearch bool

	// WebResults holds the hits of the most recent web lookup; cleared
	// at the start of each question cycle.
	WebResults []WebResult

	Strategy Strategy
	Answer   string
	Error    string
}
