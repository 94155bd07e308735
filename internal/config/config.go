package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application settings. Values come from an optional YAML
// file with environment variables taking precedence, so deployments can run
// with no file at all.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`

	// CasesDir is the directory scanned for JSON case files.
	CasesDir string `yaml:"cases_dir"`

	// FeedbackFile is the CSV file feedback rows are appended to.
	FeedbackFile string `yaml:"feedback_file"`

	// LogMode selects the logger encoder: "dev" or "prod".
	LogMode string `yaml:"log_mode"`

	OpenAI OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig configures the completion API client.
type OpenAIConfig struct {
	// APIKey is normally left empty here and supplied via OPENAI_API_KEY.
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:         "8080",
		CasesDir:     "cases",
		FeedbackFile: "feedback.csv",
		LogMode:      "dev",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// Load reads the YAML file at path if it exists, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the config. Empty variables
// leave the existing value untouched.
func (c *Config) applyEnv() {
	setIfPresent(&c.Port, "PORT")
	setIfPresent(&c.CasesDir, "CASES_DIR")
	setIfPresent(&c.FeedbackFile, "FEEDBACK_FILE")
	setIfPresent(&c.LogMode, "LOG_MODE")
	setIfPresent(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setIfPresent(&c.OpenAI.Model, "OPENAI_MODEL_CHAT")
}

func setIfPresent(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}
