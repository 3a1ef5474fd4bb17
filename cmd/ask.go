package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docchat/internal/conversation"
	"github.com/ziadkadry99/docchat/internal/ingest"
)

var askForceWeb bool

var askCmd = &cobra.Command{
	Use:   "ask <document> <question>",
	Short: "Ask a single question about a document",
	Long:  `Ingests the given PDF or plain-text document and answers one question about it, falling back to web search when the document does not cover the topic.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath, question := args[0], args[1]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		orchestrator, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(docPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", docPath, err)
		}

		store := conversation.NewStore()
		pipeline := ingest.NewPipeline(store)

		ingestCtx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Timeouts.IngestSeconds)*time.Second)
		defer cancel()
		result, err := pipeline.Ingest(ingestCtx, data)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", docPath, err)
		}

		fmt.Fprintf(os.Stderr, "Ingested %s: %d pages, sections: %v\n", docPath, result.Pages, result.SectionTitles)

		answerCtx, cancelAnswer := context.WithTimeout(cmd.Context(), time.Duration(cfg.Timeouts.AnswerSeconds)*time.Second)
		defer cancelAnswer()

		return store.Do(result.ConversationID, func(state *conversation.State) error {
			state.PendingQuestion = question
			state.ForceWebSearch = askForceWeb
			orchestrator.Process(answerCtx, state)

			if state.Error != "" {
				return fmt.Errorf("answering failed: %s", state.Error)
			}

			fmt.Println(state.Answer)
			if len(state.WebResults) > 0 {
				fmt.Println()
				for _, wr := range state.WebResults {
					fmt.Printf("  [%s]\n", wr.URL)
				}
			}
			fmt.Fprintf(os.Stderr, "\n(strategy: %s)\n", state.Strategy)
			return nil
		})
	},
}

func init() {
	askCmd.Flags().BoolVar(&askForceWeb, "web", false, "force web search for this question")
	rootCmd.AddCommand(askCmd)
}
