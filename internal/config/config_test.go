package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"port": 9090,
		"data_dir": "/tmp/textpipe",
		"api_key": "test-key",
		"concurrency": 8
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/textpipe", cfg.DataDir)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoad_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EmptyPathIsEmptyConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Config{}, *cfg)
}

func TestApplyEnv_FillsEmptyFields(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("TEXTPIPE_DATA_DIR", "/tmp/env-data")
	t.Setenv("TEXTPIPE_PORT", "7070")

	cfg := &Config{}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "/tmp/env-data", cfg.DataDir)
	assert.Equal(t, 7070, cfg.Port)
}

func TestApplyEnv_FileValuesWin(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("TEXTPIPE_PORT", "7070")

	cfg := &Config{APIKey: "file-key", Port: 9090}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	t.Setenv("TEXTPIPE_PORT", "not-a-port")

	cfg := &Config{}
	err := cfg.ApplyEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid TEXTPIPE_PORT")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "'port'")
}

func TestValidate_NegativeConcurrency(t *testing.T) {
	cfg := &Config{Concurrency: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "'concurrency'")
}

func TestValidate_DataDirMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	cfg := &Config{DataDir: file}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestValidate_ZeroValueIsValid(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
}
