package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/forenzy/internal/assistant"
	"github.com/vovakirdan/forenzy/internal/config"
	"github.com/vovakirdan/forenzy/internal/core"
	"github.com/vovakirdan/forenzy/internal/platform/tui"
)

// loadEnv reads the lab content, the question bank and the assistant
// settings shared by play and serve.
func loadEnv(logger *log.Logger, rt core.RuntimeConfig) (tui.Env, error) {
	labs, err := config.LoadLabs(flagConfig)
	if err != nil {
		return tui.Env{}, fmt.Errorf("cannot load lab content: %w", err)
	}

	questions, err := config.LoadQuestions(flagQuestions)
	if err != nil {
		return tui.Env{}, fmt.Errorf("cannot load exam questions: %w", err)
	}

	completer, err := newCompleter(logger)
	if err != nil {
		return tui.Env{}, err
	}

	return tui.Env{
		Labs:      labs,
		Questions: questions,
		Completer: completer,
		Logger:    logger,
		Runtime:   rt,
		ThemeName: flagTheme,
	}, nil
}

// newCompleter returns the OpenAI-compatible backend, or nil without a key.
func newCompleter(logger *log.Logger) (assistant.Completer, error) {
	cfg, err := config.LoadAssistant(flagEnvFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load assistant settings: %w", err)
	}
	if !cfg.HasKey() {
		logger.Warn("GROQ_API_KEY is not set; the lab assistant will answer with its fallback")
		return nil, nil
	}

	c := assistant.NewOpenAICompleter(assistant.OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	logger.Debug("assistant backend ready", "base_url", cfg.BaseURL, "model", c.Model())
	return c, nil
}
