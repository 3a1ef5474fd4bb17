package conversation

import (
	"context"
	"sort"
	"strings"

	"github.com/ziadkadry99/docchat/internal/similarity"
)

// DefaultMaxHistoryTurns is the number of question/answer pairs kept in
// history; twice this many turns are retained.
const DefaultMaxHistoryTurns = 5

const (
	relevantHistoryLimit = 4
	summaryWindow        = 6
)

// Memory maintains the bounded dialogue history of a conversation and
// ranks it by relevance to the current question.
type Memory struct {
	scorer   *similarity.Scorer
	maxTurns int
}

// NewMemory creates a Memory ranking with the given scorer. maxTurns is
// the retained pair count; zero or negative selects the default of 5.
func NewMemory(scorer *similarity.Scorer, maxTurns int) *Memory {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxHistoryTurns
	}
	return &Memory{scorer: scorer, maxTurns: maxTurns}
}

// Update appends the pending question as a user turn, then the previous
// answer (if any) as an assistant turn, and trims the history to the
// most recent 2×maxTurns entries, dropping oldest first.
func (m *Memory) Update(state *State) {
	state.History = append(state.History, Turn{
		Role:    RoleUser,
		Content: state.PendingQuestion,
	})
	if state.Answer != "" {
		state.History = append(state.History, Turn{
			Role:    RoleAssistant,
			Content: state.Answer,
		})
	}

	if max := m.maxTurns * 2; len(state.History) > max {
		state.History = state.History[len(state.History)-max:]
	}
}

// RelevantHistory returns the up-to-4 turns most similar to question,
// most similar first. The sort is stable, so turns with equal scores
// keep their original order. Without a scorer it falls back to the most
// recent 4 turns unranked.
func (m *Memory) RelevantHistory(ctx context.Context, state *State, question string) []Turn {
	history := state.History
	if len(history) == 0 {
		return nil
	}

	if m.scorer == nil {
		if len(history) > relevantHistoryLimit {
			history = history[len(history)-relevantHistoryLimit:]
		}
		return append([]Turn(nil), history...)
	}

	type scored struct {
		turn  Turn
		score float64
	}
	ranked := make([]scored, len(history))
	for i, turn := range history {
		ranked[i] = scored{
			turn:  turn,
			score: m.scorer.Score(ctx, question, turn.Content).Value,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := len(ranked)
	if n > relevantHistoryLimit {
		n = relevantHistoryLimit
	}
	out := make([]Turn, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[i].turn
	}
	return out
}

// Summary renders the most recent exchanges as "Q: …\nA: …" blocks
// separated by blank lines. Only the last 6 turns are considered, and a
// trailing question without an answer is dropped.
func (m *Memory) Summary(state *State) string {
	history := state.History
	if len(history) == 0 {
		return ""
	}
	if len(history) > summaryWindow {
		history = history[len(history)-summaryWindow:]
	}

	var blocks []string
	for i := 0; i+1 < len(history); i += 2 {
		blocks = append(blocks, "Q: "+history[i].Content+"\nA: "+history[i+1].Content)
	}
	return strings.Join(blocks, "\n\n")
}

// Clear drops the conversation history.
func (m *Memory) Clear(state *State) {
	state.History = nil
}
