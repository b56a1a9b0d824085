// Package config handles configuration for the scanner CLI, including
// defaults, JSON overlay, environment overrides, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the scanner.
//
// Fields:
//   - StorageDir: base directory for file-backed storage and images.
//   - StorageBackend: "file", "sqlite" or "postgres".
//   - DatabaseDSN: DSN used by the sqlite and postgres backends.
//   - ImageBackend: "file" or "s3".
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     object storage settings for the s3 image backend.
//   - VisionEndpoint: OpenAI-compatible chat completions URL.
//   - VisionModel: model name sent with classification requests.
//   - VisionAPIKey: bearer token; defaults from DOCSCAN_VISION_API_KEY.
//   - VisionTimeout: per-request classification timeout.
//   - LogBackend: "slog" or "zap".
type Config struct {
	StorageDir     string
	StorageBackend string
	DatabaseDSN    string
	ImageBackend   string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	VisionEndpoint string
	VisionModel    string
	VisionAPIKey   string
	VisionTimeout  time.Duration
	LogBackend     string
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.StorageDir = defaultStorageDir()
	c.StorageBackend = "file"
	c.DatabaseDSN = ""
	c.ImageBackend = "file"
	c.S3Bucket = "docscan"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.VisionEndpoint = "https://api.openai.com/v1/chat/completions"
	c.VisionModel = "gpt-4o"
	c.VisionAPIKey = os.Getenv("DOCSCAN_VISION_API_KEY")
	c.VisionTimeout = 60 * time.Second
	c.LogBackend = "slog"
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docscan"
	}
	return home + string(os.PathSeparator) + ".docscan"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
