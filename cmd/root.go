package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your documents, with web search fallback",
	Long: `Docchat ingests PDF or plain-text documents, segments them into
sections, and answers questions about them through an LLM. Questions
the document cannot answer are routed to web search, and the two
sources can be combined into a single answer.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort; .env is optional.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docchat.yml", "config file path")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
