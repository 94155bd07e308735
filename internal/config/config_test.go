package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "cases", cfg.CasesDir)
	assert.Equal(t, "feedback.csv", cfg.FeedbackFile)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
cases_dir: /srv/cases
openai:
  model: gpt-4o
`), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/srv/cases", cfg.CasesDir)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	// untouched fields keep their defaults
	assert.Equal(t, "feedback.csv", cfg.FeedbackFile)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\n"), 0o644))
	t.Setenv("PORT", "7777")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL_CHAT", "gpt-4o")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.Port)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}
