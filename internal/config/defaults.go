package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		MaxHistoryTurns:   5,
		Server: ServerConfig{
			Port:     8000,
			AllowAll: true,
		},
		Timeouts: TimeoutConfig{
			IngestSeconds: 60,
			AnswerSeconds: 5,
		},
	}
}
