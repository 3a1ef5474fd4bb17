package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ziadkadry99/docchat/internal/conversation"
	"github.com/ziadkadry99/docchat/internal/llm"
	"github.com/ziadkadry99/docchat/internal/similarity"
	"github.com/ziadkadry99/docchat/internal/websearch"
)

const (
	webAgentPrio  = 2
	webMaxResults = 2

	// Confidence levels for the web lookup decision.
	webTriggerConfidence  = 1.0
	webFallbackConfidence = 0.8
	webDefaultConfidence  = 0.3
	lowDocSimilarity      = 0.2
)

// NoResultsAnswer is the fixed reply when no relevant web result survives.
const NoResultsAnswer = "Não encontrei informações relevantes sobre isso."

// triggerPhrases request a web lookup explicitly; matched as
// case-insensitive substrings of the question.
var triggerPhrases = []string{"busque na web", "pesquise na internet"}

// WebAgent answers from web search results when the document cannot.
type WebAgent struct {
	scorer   *similarity.Scorer
	searcher websearch.Searcher
	client   *llm.Client
}

// NewWebAgent creates a web agent.
func NewWebAgent(scorer *similarity.Scorer, searcher websearch.Searcher, client *llm.Client) *WebAgent {
	return &WebAgent{scorer: scorer, searcher: searcher, client: client}
}

func (a *WebAgent) Name() string { return "web" }

func (a *WebAgent) Priority() int { return webAgentPrio }

// CanHandle decides when a web lookup is warranted: an explicit trigger
// (phrase or force flag) wins outright, an existing usable answer rules
// it out, and a question far from the document content makes the web
// the likely source.
func (a *WebAgent) CanHandle(ctx context.Context, state *conversation.State) float64 {
	if state.ForceWebSearch {
		return webTriggerConfidence
	}
	question := strings.ToLower(state.PendingQuestion)
	for _, phrase := range triggerPhrases {
		if strings.Contains(question, phrase) {
			return webTriggerConfidence
		}
	}

	if state.Answer != "" && !IsNotFound(state.Answer) {
		return 0.0
	}

	docSimilarity := a.scorer.Score(ctx, state.PendingQuestion, state.Document.Content).Value
	if docSimilarity < lowDocSimilarity {
		return webFallbackConfidence
	}
	return webDefaultConfidence
}

func (a *WebAgent) Execute(ctx context.Context, state *conversation.State) error {
	results, err := a.searcher.Search(ctx, state.PendingQuestion)
	if err != nil {
		// Search failure degrades to an empty result list.
		log.Printf("agent/web: search failed: %v", err)
		results = nil
	}
	if len(results) > webMaxResults {
		results = results[:webMaxResults]
	}

	var relevant []conversation.WebResult
	for _, r := range results {
		relevance := a.scorer.Score(ctx, state.PendingQuestion, r.Text).Value
		if relevance > relevanceThreshold {
			relevant = append(relevant, conversation.WebResult{
				Text:      r.Text,
				URL:       r.URL,
				Relevance: relevance,
			})
		}
	}

	if len(relevant) == 0 {
		state.Answer = NoResultsAnswer
		state.Strategy = conversation.StrategyWebNoResults
		state.WebResults = nil
		return nil
	}

	texts := make([]string, len(relevant))
	for i, r := range relevant {
		texts[i] = r.Text
	}

	answer, err := a.client.Answer(ctx, buildWebPrompt(strings.Join(texts, "\n"), state.PendingQuestion))
	if err != nil {
		log.Printf("agent/web: generation failed: %v", err)
		answer = GenerationFailedAnswer
	}

	// Single citation: only the first surviving result is linked.
	answer = fmt.Sprintf("%s\n\nFonte: [%s]", answer, relevant[0].URL)

	state.Answer = answer
	state.WebResults = relevant
	state.Strategy = conversation.StrategyWeb
	return nil
}

func buildWebPrompt(webContext, question string) string {
	return fmt.Sprintf(`Com base nas informações encontradas na web, responda à pergunta de forma clara e direta.
Use no máximo 3 linhas.

Informações:
%s

Pergunta: %s`, webContext, question)
}
