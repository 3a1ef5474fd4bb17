// Package ingest runs the document ingestion pipeline: size check,
// extraction, segmentation, analysis, and conversation creation.
package ingest

import (
	"context"
	"log"
	"time"

	"github.com/ziadkadry99/docchat/internal/conversation"
	"github.com/ziadkadry99/docchat/internal/extractor"
)

// ingestBudget is the expected upper bound for one ingestion; overruns
// are logged in addition to the caller's hard deadline.
const ingestBudget = 60 * time.Second

// Result describes a successfully ingested document.
type Result struct {
	ConversationID string
	Pages          int
	SectionTitles  []string
	Analysis       extractor.Analysis
}

// Pipeline ingests uploaded documents into new conversations.
type Pipeline struct {
	store *conversation.Store
}

// NewPipeline creates an ingestion pipeline writing into the store.
func NewPipeline(store *conversation.Store) *Pipeline {
	return &Pipeline{store: store}
}

// Ingest processes raw document bytes and creates a conversation around
// the result. Oversized input is rejected before any parsing; on any
// error no conversation is created.
func (p *Pipeline) Ingest(ctx context.Context, data []byte) (*Result, error) {
	start := time.Now()

	if len(data) > extractor.MaxFileSize {
		return nil, extractor.ErrTooLarge
	}

	extraction, err := extractor.ForData(data).Extract(ctx, data)
	if err != nil {
		return nil, err
	}

	doc := extractor.Segment(extraction.Text)
	analysis := extractor.Analyze(extraction.Text)

	record := &conversation.DocumentRecord{
		Content:  extraction.Text,
		Sections: doc.Sections(),
		Metadata: extraction.Metadata,
	}
	id := p.store.Create(record)

	if elapsed := time.Since(start); elapsed > ingestBudget {
		log.Printf("ingest: processing took %.2fs, over the %s budget", elapsed.Seconds(), ingestBudget)
	}

	return &Result{
		ConversationID: id,
		Pages:          extraction.Pages,
		SectionTitles:  doc.Titles(),
		Analysis:       analysis,
	}, nil
}
