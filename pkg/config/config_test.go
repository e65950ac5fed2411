package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrCreate_Defaults(t *testing.T) {
	dir := t.TempDir()

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, defaultGenAIModel, c.GenAIModel)
	assert.Equal(t, defaultGenAIEndpoint, c.GenAIEndpoint)

	// default file was created
	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.NoError(t, err)
}

func TestReadOrCreate_EnvOverride(t *testing.T) {
	dir := t.TempDir()

	t.Setenv(GenAIKeyEnvVar, "test-key")
	t.Setenv(genAIModelEnvVar, "other-model")
	t.Setenv(logLevelEnvVar, "debug")

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)

	assert.Equal(t, "test-key", c.GenAIKey)
	assert.Equal(t, "other-model", c.GenAIModel)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestReadOrCreate_EmptyDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
}

func TestSaveAndRead_Roundtrip(t *testing.T) {
	dir := t.TempDir()

	in := &Config{
		GenAIModel:    "custom",
		GenAIEndpoint: "https://example.com/chat",
		LogLevel:      "info",
	}
	require.NoError(t, Save(dir, in))

	out, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, "custom", out.GenAIModel)
	assert.Equal(t, "https://example.com/chat", out.GenAIEndpoint)
}

func TestSave_Invalid(t *testing.T) {
	assert.Error(t, Save("", &Config{}))
	assert.Error(t, Save(t.TempDir(), nil))
}

func TestGetOrCreateHomeDir_EmptyName(t *testing.T) {
	_, _, err := GetOrCreateHomeDir("")
	assert.Error(t, err)
}
