package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOCSCAN_VISION_API_KEY", "env-key")

	var c Config
	c.LoadDefaults()

	assert.NotEmpty(t, c.StorageDir)
	assert.Equal(t, c.StorageBackend, "file")
	assert.Equal(t, c.DatabaseDSN, "")
	assert.Equal(t, c.ImageBackend, "file")
	assert.Equal(t, c.S3Bucket, "docscan")
	assert.Equal(t, c.S3Region, "us-east-1")
	assert.Equal(t, c.VisionEndpoint, "https://api.openai.com/v1/chat/completions")
	assert.Equal(t, c.VisionModel, "gpt-4o")
	assert.Equal(t, c.VisionAPIKey, "env-key")
	assert.Equal(t, c.VisionTimeout, 60*time.Second)
	assert.Equal(t, c.LogBackend, "slog")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.StorageBackend, "file")
	assert.Equal(t, c.ImageBackend, "file")
	assert.Equal(t, c.VisionModel, "gpt-4o")
	assert.Equal(t, c.VisionTimeout, 60*time.Second)
	assert.Equal(t, c.LogBackend, "slog")
}
