package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// TimeoutConfig holds the hard processing deadlines, in seconds.
type TimeoutConfig struct {
	IngestSeconds int `yaml:"ingest_seconds" koanf:"ingest_seconds"`
	AnswerSeconds int `yaml:"answer_seconds" koanf:"answer_seconds"`
}

// Config is the top-level docchat configuration, corresponding to
// .docchat.yml.
type Config struct {
	Provider          ProviderType  `yaml:"provider" koanf:"provider"`
	Model             string        `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType  `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string        `yaml:"embedding_model" koanf:"embedding_model"`
	SearchBaseURL     string        `yaml:"search_base_url" koanf:"search_base_url"`
	MaxHistoryTurns   int           `yaml:"max_history_turns" koanf:"max_history_turns"`
	Server            ServerConfig  `yaml:"server" koanf:"server"`
	Timeouts          TimeoutConfig `yaml:"timeouts" koanf:"timeouts"`
}
