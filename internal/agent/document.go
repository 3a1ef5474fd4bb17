package agent

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/ziadkadry99/docchat/internal/conversation"
	"github.com/ziadkadry99/docchat/internal/embeddings"
	"github.com/ziadkadry99/docchat/internal/llm"
	"github.com/ziadkadry99/docchat/internal/similarity"
	"github.com/ziadkadry99/docchat/internal/vectordb"
)

const (
	documentTopK      = 2
	historyCarryDepth = 3
	documentAgentPrio = 1
)

// DocumentAgent answers from the ingested document only. Per question
// it builds a throwaway similarity index over the full content and the
// named sections, retrieves the two best passages, and asks the model
// to answer strictly from them.
type DocumentAgent struct {
	scorer   *similarity.Scorer
	embedder embeddings.Embedder
	client   *llm.Client
}

// NewDocumentAgent creates a document agent.
func NewDocumentAgent(scorer *similarity.Scorer, embedder embeddings.Embedder, client *llm.Client) *DocumentAgent {
	return &DocumentAgent{scorer: scorer, embedder: embedder, client: client}
}

func (a *DocumentAgent) Name() string { return "document" }

func (a *DocumentAgent) Priority() int { return documentAgentPrio }

// CanHandle scores the question against the document content, and
// against the most recent history turns so follow-up questions keep
// their context. The best of the two similarities wins.
func (a *DocumentAgent) CanHandle(ctx context.Context, state *conversation.State) float64 {
	confidence := a.scorer.Score(ctx, state.PendingQuestion, state.Document.Content).Value

	history := state.History
	if len(history) > historyCarryDepth {
		history = history[len(history)-historyCarryDepth:]
	}
	for _, turn := range history {
		if s := a.scorer.Score(ctx, state.PendingQuestion, turn.Content).Value; s > confidence {
			confidence = s
		}
	}

	return confidence
}

func (a *DocumentAgent) Execute(ctx context.Context, state *conversation.State) error {
	passages := a.passages(state.Document)

	relevant := a.retrieve(ctx, state.PendingQuestion, passages)
	prompt := buildDocumentPrompt(strings.Join(relevant, " "), state.PendingQuestion)

	answer, err := a.client.Answer(ctx, prompt)
	if err != nil {
		log.Printf("agent/document: generation failed: %v", err)
		answer = GenerationFailedAnswer
	}

	state.Answer = answer
	state.Strategy = conversation.StrategyDocument
	return nil
}

func (a *DocumentAgent) passages(doc *conversation.DocumentRecord) []vectordb.Passage {
	passages := []vectordb.Passage{{Title: "documento", Content: doc.Content}}
	for _, s := range doc.Sections {
		passages = append(passages, vectordb.Passage{Title: s.Title, Content: s.Body})
	}
	return passages
}

// retrieve returns the top passages for the question. The primary path
// is the embedding index; if building or querying it fails, passages
// are ranked directly with the similarity scorer, which cannot fail.
func (a *DocumentAgent) retrieve(ctx context.Context, question string, passages []vectordb.Passage) []string {
	idx, err := vectordb.NewIndex(ctx, a.embedder, passages)
	if err == nil {
		matches, qerr := idx.Query(ctx, question, documentTopK)
		if qerr == nil && len(matches) > 0 {
			texts := make([]string, len(matches))
			for i, m := range matches {
				texts[i] = m.Passage.Content
			}
			return texts
		}
		err = qerr
	}
	log.Printf("agent/document: passage index degraded to lexical ranking: %v", err)

	type scored struct {
		text  string
		score float64
	}
	ranked := make([]scored, 0, len(passages))
	for _, p := range passages {
		if p.Content == "" {
			continue
		}
		ranked = append(ranked, scored{
			text:  p.Content,
			score: a.scorer.Score(ctx, question, p.Content).Value,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	n := len(ranked)
	if n > documentTopK {
		n = documentTopK
	}
	texts := make([]string, n)
	for i := 0; i < n; i++ {
		texts[i] = ranked[i].text
	}
	return texts
}

func buildDocumentPrompt(docContext, question string) string {
	return fmt.Sprintf(`Com base no seguinte contexto do documento, responda à pergunta.
Se a informação não estiver disponível no contexto, responda exatamente: %s

Contexto:
%s

Pergunta: %s

Lembre-se:
- Use apenas informações do contexto
- Seja direto e objetivo
- Responda em até 3 linhas`, NotFoundToken, docContext, question)
}
