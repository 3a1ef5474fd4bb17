// Package agent contains the answering agents and the orchestrator
// that routes each question to the document, the web, or both.
package agent

import (
	"context"
	"strings"

	"github.com/ziadkadry99/docchat/internal/conversation"
)

// Routing thresholds. Fixed by design, not runtime-tunable.
const (
	// outOfContextCutoff is the minimum best-agent confidence below
	// which a question is refused outright.
	outOfContextCutoff = 0.2
	// executeThreshold is the per-agent confidence needed to run it.
	executeThreshold = 0.3
	// relevanceThreshold filters web results by question similarity.
	relevanceThreshold = 0.3
)

// NotFoundToken is the sentinel the generation service emits verbatim
// when the supplied context cannot answer the question.
const NotFoundToken = "NAO_ENCONTRADO"

// GenerationFailedAnswer is the fixed user-facing reply when the
// generation call itself fails.
const GenerationFailedAnswer = "Erro ao processar sua solicitação."

// IsNotFound reports whether an answer carries the sentinel. This is a
// substring check on purpose: partial answers that embed the token are
// treated as not-found too, matching the established contract.
func IsNotFound(answer string) bool {
	return strings.Contains(answer, NotFoundToken)
}

// Agent is one answering variant. Confidence is a [0,1] routing score;
// Execute mutates the state with its answer and strategy. Agents
// recover their collaborator failures internally; a returned error
// means the agent itself broke.
type Agent interface {
	Name() string
	// Priority orders agents for execution; lower runs first.
	Priority() int
	CanHandle(ctx context.Context, state *conversation.State) float64
	Execute(ctx context.Context, state *conversation.State) error
}
