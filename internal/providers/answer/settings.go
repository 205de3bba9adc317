package answer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults match what the product shipped with.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7

	// DefaultSystemPrompt frames every completion request.
	DefaultSystemPrompt = "You are an expert assistant. Use the following video transcription " +
		"to answer the user's question as clearly and accurately as possible."
)

// Settings is the static generation configuration for the answer provider. It
// is fixed at construction time and not runtime-tunable.
type Settings struct {
	Model        string  `yaml:"model"`
	MaxTokens    int64   `yaml:"max_tokens"`
	Temperature  float64 `yaml:"temperature"`
	SystemPrompt string  `yaml:"system_prompt"`
}

// DefaultSettings returns the built-in generation settings.
func DefaultSettings() Settings {
	return Settings{
		Model:        DefaultModel,
		MaxTokens:    DefaultMaxTokens,
		Temperature:  DefaultTemperature,
		SystemPrompt: DefaultSystemPrompt,
	}
}

// LoadSettings reads generation settings from a YAML file, filling any unset
// field from the defaults. An empty path returns the defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read answer settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return settings, fmt.Errorf("failed to parse answer settings: %w", err)
	}

	if loaded.Model != "" {
		settings.Model = loaded.Model
	}
	if loaded.MaxTokens > 0 {
		settings.MaxTokens = loaded.MaxTokens
	}
	if loaded.Temperature > 0 {
		settings.Temperature = loaded.Temperature
	}
	if loaded.SystemPrompt != "" {
		settings.SystemPrompt = loaded.SystemPrompt
	}

	return settings, nil
}
