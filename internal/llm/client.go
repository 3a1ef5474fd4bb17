package llm

import (
	"context"
	"regexp"
	"strings"
)

// systemPrompt keeps answers short and grounded in the supplied context.
const systemPrompt = "Você é um assistente objetivo que analisa documentos " +
	"e responde perguntas usando apenas as informações fornecidas. " +
	"Mantenha as respostas curtas e diretas."

const (
	defaultMaxTokens   = 150
	defaultTemperature = 0.1
	maxAnswerWords     = 50
)

// EmptyAnswer is returned when the model produces no usable text.
const EmptyAnswer = "Não foi possível gerar uma resposta adequada."

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	answerPrefixRe = regexp.MustCompile(`^(Resposta:|R:|Assistant:|A:)`)
)

// Client wraps a Provider with the answer conventions used across the
// agents: a fixed system prompt, low temperature, and response cleanup.
type Client struct {
	provider Provider
	model    string
}

// NewClient creates a generation client on top of the given provider.
func NewClient(provider Provider, model string) *Client {
	return &Client{provider: provider, model: model}
}

// Answer sends a single-prompt completion and returns the cleaned text.
func (c *Client) Answer(ctx context.Context, prompt string) (string, error) {
	resp, err := c.provider.Complete(ctx, CompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: prompt},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", err
	}

	cleaned := CleanResponse(resp.Content)
	if cleaned == "" {
		return EmptyAnswer, nil
	}
	return cleaned, nil
}

// SectionSummary produces a two-line summary of a document section.
func (c *Client) SectionSummary(ctx context.Context, sectionText string) (string, error) {
	prompt := "Faça um resumo conciso desta seção do documento em até 2 linhas.\n" +
		"Mantenha apenas as informações mais importantes.\n\n" +
		"Seção:\n" + sectionText
	return c.Answer(ctx, prompt)
}

// CleanResponse normalizes model output: collapses whitespace, strips
// quotes and backticks, drops common answer prefixes, and caps the
// answer at 50 words.
func CleanResponse(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, "`", "")
	text = answerPrefixRe.ReplaceAllString(strings.TrimSpace(text), "")
	text = strings.TrimSpace(text)

	words := strings.Fields(text)
	if len(words) > maxAnswerWords {
		text = strings.Join(words[:maxAnswerWords], " ") + "..."
	}
	return text
}
