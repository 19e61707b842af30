package config

// Defaults returns the builtin configuration. Every field can be overridden
// from draftshield.yaml; the generation API key always comes from the
// environment variable named by api_key_env.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: "10s",
		},
		Generation: GenerationConfig{
			Model:          "gpt-4o-mini",
			APIKeyEnv:      "GENERATION_API_KEY",
			MaxTokens:      4096,
			Temperature:    0.7,
			RequestTimeout: "60s",
		},
		Redaction: RedactionConfig{
			OutputLeakPolicy: OutputLeakLog,
		},
		Ingest: IngestConfig{
			MaxDocumentBytes: 1 << 20, // 1 MiB of extracted text
		},
	}
}
