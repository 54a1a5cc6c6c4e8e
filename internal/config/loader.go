package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/forenzy/internal/exam"
)

// File names looked up in the config directories.
const (
	LabsFile      = "labs.yaml"
	QuestionsFile = "questions.csv"
)

// LoadLabs loads lab content.
// Search order: customPath -> ~/.forenzy/configs/labs.yaml -> ./configs/labs.yaml -> embedded default
func LoadLabs(customPath string) (LabsConfig, error) {
	var cfg LabsConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user and local config directories; broken files fall through.
	for _, path := range searchPaths(LabsFile) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var candidate LabsConfig
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		if candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	return DefaultLabs()
}

// LoadQuestions loads the exam question bank.
// Search order: customPath -> ~/.forenzy/configs/questions.csv -> ./configs/questions.csv -> embedded default
func LoadQuestions(customPath string) ([]exam.Question, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read questions %s: %w", customPath, err)
		}
		qs, err := exam.ParseQuestions(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse questions %s: %w", customPath, err)
		}
		return qs, nil
	}

	for _, path := range searchPaths(QuestionsFile) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if qs, err := exam.ParseQuestions(data); err == nil {
			return qs, nil
		}
	}

	return DefaultQuestions()
}

// searchPaths lists the non-custom locations for filename, in priority order.
func searchPaths(filename string) []string {
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".forenzy", "configs", filename)
}
