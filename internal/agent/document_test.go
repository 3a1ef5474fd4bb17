package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ziadkadry99/docchat/internal/conversation"
	"github.com/ziadkadry99/docchat/internal/extractor"
	"github.com/ziadkadry99/docchat/internal/llm"
	"github.com/ziadkadry99/docchat/internal/similarity"
)

// mockCompleter is a scriptable llm.Provider recording prompts.
type mockCompleter struct {
	mu      sync.Mutex
	content string
	err     error
	calls   []llm.CompletionRequest
}

func (m *mockCompleter) Name() string { return "mock" }

func (m *mockCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{Content: m.content}, nil
}

func (m *mockCompleter) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ""
	}
	msgs := m.calls[len(m.calls)-1].Messages
	return msgs[len(msgs)-1].Content
}

// failingEmbedder forces the lexical degradation path everywhere.
type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedding service down")
}

func (failingEmbedder) Name() string { return "failing" }

func docAgentState() *conversation.State {
	return &conversation.State{
		ID: "test",
		Document: &conversation.DocumentRecord{
			Content: "A capital da França é Paris. O contrato vence em dezembro.",
			Sections: []extractor.Section{
				{Title: "CAPITAIS", Body: "A capital da França é Paris."},
				{Title: "PRAZOS", Body: "O contrato vence em dezembro."},
			},
		},
		PendingQuestion: "qual a capital da França",
	}
}

func TestDocumentAgentCanHandleMatchesContent(t *testing.T) {
	scorer := similarity.NewScorer(nil)
	a := NewDocumentAgent(scorer, failingEmbedder{}, llm.NewClient(&mockCompleter{}, "m"))

	state := docAgentState()
	confidence := a.CanHandle(context.Background(), state)
	if confidence <= 0 {
		t.Errorf("overlapping question should score above zero, got %f", confidence)
	}

	state.PendingQuestion = "xyzzy plugh"
	if c := a.CanHandle(context.Background(), state); c != 0 {
		t.Errorf("unrelated question should score zero, got %f", c)
	}
}

func TestDocumentAgentCanHandleUsesRecentHistory(t *testing.T) {
	scorer := similarity.NewScorer(nil)
	a := NewDocumentAgent(scorer, failingEmbedder{}, llm.NewClient(&mockCompleter{}, "m"))

	state := docAgentState()
	state.Document = &conversation.DocumentRecord{Content: "wwww qqqq"}
	state.PendingQuestion = "detalhe sobre aquele assunto"
	state.History = []conversation.Turn{
		{Role: conversation.RoleUser, Content: "detalhe sobre aquele assunto exato"},
	}

	confidence := a.CanHandle(context.Background(), state)
	if confidence <= 0.5 {
		t.Errorf("a near-identical history turn should lift confidence, got %f", confidence)
	}
}

func TestDocumentAgentExecuteAnswersFromPassages(t *testing.T) {
	provider := &mockCompleter{content: "Paris."}
	scorer := similarity.NewScorer(nil)
	a := NewDocumentAgent(scorer, failingEmbedder{}, llm.NewClient(provider, "m"))

	state := docAgentState()
	if err := a.Execute(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Answer != "Paris." {
		t.Errorf("unexpected answer: %q", state.Answer)
	}
	if state.Strategy != conversation.StrategyDocument {
		t.Errorf("expected document strategy, got %q", state.Strategy)
	}

	prompt := provider.lastPrompt()
	if !strings.Contains(prompt, NotFoundToken) {
		t.Error("prompt should instruct the sentinel for missing context")
	}
	if !strings.Contains(prompt, "capital da França") {
		t.Errorf("prompt should carry the retrieved context, got %q", prompt)
	}
	if !strings.Contains(prompt, state.PendingQuestion) {
		t.Error("prompt should carry the question")
	}
}

func TestDocumentAgentExecuteGenerationFailure(t *testing.T) {
	provider := &mockCompleter{err: errors.New("model down")}
	scorer := similarity.NewScorer(nil)
	a := NewDocumentAgent(scorer, failingEmbedder{}, llm.NewClient(provider, "m"))

	state := docAgentState()
	if err := a.Execute(context.Background(), state); err != nil {
		t.Fatalf("generation failure must not surface as an agent error: %v", err)
	}
	if state.Answer != GenerationFailedAnswer {
		t.Errorf("expected the fixed failure answer, got %q", state.Answer)
	}
	if state.Strategy != conversation.StrategyDocument {
		t.Errorf("expected document strategy, got %q", state.Strategy)
	}
}

func TestDocumentAgentLexicalRetrievalRanksPassages(t *testing.T) {
	scorer := similarity.NewScorer(nil)
	a := NewDocumentAgent(scorer, failingEmbedder{}, llm.NewClient(&mockCompleter{}, "m"))

	passages := a.passages(docAgentState().Document)
	texts := a.retrieve(context.Background(), "quando vence o contrato", passages)

	if len(texts) != documentTopK {
		t.Fatalf("expected %d passages, got %d", documentTopK, len(texts))
	}
	found := false
	for _, text := range texts {
		if strings.Contains(text, "vence em dezembro") {
			found = true
		}
	}
	if !found {
		t.Errorf("the matching section should be retrieved, got %v", texts)
	}
}
