package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ziadkadry99/docchat/internal/conversation"
)

// RefusalAnswer is the fixed reply for questions unrelated to any
// available context.
const RefusalAnswer = "Esta pergunta parece não ter relação com o contexto fornecido. " +
	"Por favor, reformule ou faça uma pergunta relacionada ao documento."

// Orchestrator routes each question across the registered agents in
// priority order, fuses partial answers, and writes the final state.
// It never raises past its boundary: failures land in state.Error and
// the conversation stays usable for the next question.
type Orchestrator struct {
	agents []Agent
	memory *conversation.Memory
}

// NewOrchestrator creates an orchestrator over the given agents. Agents
// are consulted in ascending Priority order regardless of registration
// order; the registered set is fixed afterwards.
func NewOrchestrator(memory *conversation.Memory, agents ...Agent) *Orchestrator {
	sorted := append([]Agent(nil), agents...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Orchestrator{agents: sorted, memory: memory}
}

// Process answers state.PendingQuestion and updates the state in place.
func (o *Orchestrator) Process(ctx context.Context, state *conversation.State) {
	defer func() {
		if r := recover(); r != nil {
			state.Error = fmt.Sprintf("erro no orchestrator: %v", r)
		}
	}()

	// Per-cycle fields reset. The answer itself deliberately carries
	// over: agents inspect it to detect an already-answered state.
	state.WebResults = nil
	state.Error = ""

	o.memory.Update(state)

	confidences := make([]float64, len(o.agents))
	maxConfidence := 0.0
	for i, ag := range o.agents {
		confidences[i] = ag.CanHandle(ctx, state)
		if confidences[i] > maxConfidence {
			maxConfidence = confidences[i]
		}
	}

	if maxConfidence < outOfContextCutoff {
		state.Answer = RefusalAnswer
		state.Strategy = conversation.StrategyOutOfContext
		return
	}

	// partial tracks only answers produced in this cycle; a stale answer
	// from the previous question must never be fused.
	executed := false
	var partial string
	var partialStrategy conversation.Strategy
	for _, ag := range o.agents {
		// Confidence is recomputed right before each attempt: an earlier
		// agent's answer changes what the next one reports.
		if ag.CanHandle(ctx, state) <= executeThreshold {
			continue
		}

		if err := ag.Execute(ctx, state); err != nil {
			state.Error = fmt.Sprintf("erro no orchestrator: agente %s: %v", ag.Name(), err)
			return
		}
		executed = true

		if state.Answer != "" && !IsNotFound(state.Answer) {
			// A usable answer is terminal. The one exception is an explicit
			// ForceWebSearch, which carries on so the web lookup can
			// complement the document answer.
			if !state.ForceWebSearch {
				return
			}
			if partial != "" && !IsNotFound(partial) {
				fused := CombineAnswers(partial, state.Answer)
				if fused == partial {
					// The web side contributed nothing; keep the earlier
					// answer and its strategy.
					state.Strategy = partialStrategy
				} else {
					state.Strategy = conversation.StrategyCombined
				}
				state.Answer = fused
				return
			}
		}
		partial, partialStrategy = state.Answer, state.Strategy
	}

	if executed {
		return
	}

	// Every confidence sits in the (cutoff, threshold] band: no agent
	// ran, but the question is not out of context either. Fall back to
	// the best-scoring agent's literal response rather than returning
	// an empty answer.
	best := 0
	for i := range confidences {
		if confidences[i] > confidences[best] {
			best = i
		}
	}
	if err := o.agents[best].Execute(ctx, state); err != nil {
		state.Error = fmt.Sprintf("erro no orchestrator: agente %s: %v", o.agents[best].Name(), err)
	}
}

// CombineAnswers fuses a document answer with a complementary web
// answer. A side carrying the sentinel is dropped, as is a web side
// that only reports no results; when both remain, they are
// concatenated with their origins labeled.
func CombineAnswers(docAnswer, webAnswer string) string {
	if IsNotFound(docAnswer) {
		return webAnswer
	}
	if IsNotFound(webAnswer) || webAnswer == NoResultsAnswer {
		return docAnswer
	}
	return strings.TrimSpace(fmt.Sprintf("Do documento: %s\n\nInformações complementares: %s", docAnswer, webAnswer))
}
