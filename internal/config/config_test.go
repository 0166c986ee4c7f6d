package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "RootType", cfg.RootName)
	assert.Equal(t, "main", cfg.Package)

	assert.Equal(t, 1000, cfg.Mock.MaxRecords)
	assert.Equal(t, int64(10000), cfg.Mock.IntMax)
	assert.Equal(t, int64(150), cfg.Mock.AgeLikeMax)
	assert.Equal(t, int64(120), cfg.Mock.AgeLikeBound)
	assert.Equal(t, 1, cfg.Mock.EmptyArrayMin)
	assert.Equal(t, 5, cfg.Mock.EmptyArrayMax)

	assert.Equal(t, "https://api.groq.com/openai/v1/chat/completions", cfg.AI.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.AI.Model)
	assert.Equal(t, 0.3, cfg.AI.Temperature)
	assert.Equal(t, 3, cfg.AI.FreeUses)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.TimeoutSeconds)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jsonspect.yml")
	yaml := `
root_name: Payload
mock:
  max_records: 50
  int_max: 500
ai:
  free_uses: 10
server:
  addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Payload", cfg.RootName)
	assert.Equal(t, 50, cfg.Mock.MaxRecords)
	assert.Equal(t, int64(500), cfg.Mock.IntMax)
	assert.Equal(t, 10, cfg.AI.FreeUses)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	// Untouched settings keep their defaults.
	assert.Equal(t, "main", cfg.Package)
	assert.Equal(t, int64(120), cfg.Mock.AgeLikeBound)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.AI.Model)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not yaml"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadWithExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsonspect.yml")
	require.NoError(t, os.WriteFile(path, []byte("root_name: Custom\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Custom", cfg.RootName)
}
