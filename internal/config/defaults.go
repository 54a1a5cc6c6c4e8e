package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/forenzy/internal/exam"
)

//go:embed defaults/labs.yaml
var defaultLabsYAML []byte

//go:embed defaults/questions.csv
var defaultQuestionsCSV []byte

// DefaultLabs returns the embedded lab content.
func DefaultLabs() (LabsConfig, error) {
	var cfg LabsConfig
	if err := yaml.Unmarshal(defaultLabsYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("config: embedded labs.yaml: %w", err)
	}
	return cfg, nil
}

// DefaultQuestions returns the embedded exam question bank.
func DefaultQuestions() ([]exam.Question, error) {
	return exam.ParseQuestions(defaultQuestionsCSV)
}

// GetDefaultFile returns an embedded default by file name, or nil.
func GetDefaultFile(name string) []byte {
	switch name {
	case LabsFile:
		return defaultLabsYAML
	case QuestionsFile:
		return defaultQuestionsCSV
	default:
		return nil
	}
}
