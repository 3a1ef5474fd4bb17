package ingest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ziadkadry99/docchat/internal/conversation"
	"github.com/ziadkadry99/docchat/internal/extractor"
)

func TestIngestPlainTextCreatesConversation(t *testing.T) {
	store := conversation.NewStore()
	p := NewPipeline(store)

	result, err := p.Ingest(context.Background(), []byte("RESUMO\ncorpo do resumo\nDETALHES\ncorpo dos detalhes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ConversationID == "" {
		t.Fatal("expected a conversation id")
	}
	if result.Pages != 1 {
		t.Errorf("plain text counts as one page, got %d", result.Pages)
	}
	if len(result.SectionTitles) != 2 {
		t.Errorf("expected 2 section titles, got %v", result.SectionTitles)
	}
	if result.Analysis.Metrics.NumWords == 0 {
		t.Error("analysis should count words")
	}

	err = store.Do(result.ConversationID, func(state *conversation.State) error {
		if state.Document == nil || len(state.Document.Sections) != 2 {
			t.Errorf("document record should carry the sections, got %+v", state.Document)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("conversation lookup failed: %v", err)
	}
}

func TestIngestRejectsOversizedInput(t *testing.T) {
	store := conversation.NewStore()
	p := NewPipeline(store)

	data := bytes.Repeat([]byte("a"), extractor.MaxFileSize+1)
	_, err := p.Ingest(context.Background(), data)
	if !errors.Is(err, extractor.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("no conversation should be created on failure, got %d", store.Len())
	}
}

func TestIngestRejectsBrokenPDF(t *testing.T) {
	store := conversation.NewStore()
	p := NewPipeline(store)

	_, err := p.Ingest(context.Background(), []byte("%PDF-1.4 not really a pdf"))
	if !errors.Is(err, extractor.ErrUnparseable) {
		t.Errorf("expected ErrUnparseable, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("no conversation should be created on failure, got %d", store.Len())
	}
}
