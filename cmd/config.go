package cmd

import "time"

// Config carries everything the composition root needs, read from the
// environment by cmd/app.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AnthropicAPIKey string
	AnthropicModel  string

	ContextTTL        time.Duration
	GenerationTimeout time.Duration
	KnowledgeLimit    int
}
