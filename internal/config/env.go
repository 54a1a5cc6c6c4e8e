package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AssistantConfig holds the chat assistant's endpoint settings.
type AssistantConfig struct {
	APIKey  string `envconfig:"GROQ_API_KEY"`
	BaseURL string `envconfig:"FORENZY_ASSISTANT_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model   string `envconfig:"FORENZY_ASSISTANT_MODEL" default:"llama-3.3-70b-versatile"`
}

// HasKey reports whether an API key is configured.
func (c AssistantConfig) HasKey() bool {
	return c.APIKey != ""
}

// LoadAssistant reads the assistant settings from the environment.
// envFile is loaded first when it exists; variables already set win.
// An empty envFile means ".env".
func LoadAssistant(envFile string) (AssistantConfig, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AssistantConfig{}, fmt.Errorf("config: cannot load %s: %w", envFile, err)
	}

	var cfg AssistantConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("config: assistant environment: %w", err)
	}
	return cfg, nil
}
