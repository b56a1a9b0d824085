package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/docscan/internal/flagx"
	"github.com/dmitrijs2005/docscan/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify timeouts either as
// strings like "60s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	StorageDir     string         `json:"storage_dir"`
	StorageBackend string         `json:"storage_backend"`
	DatabaseDSN    string         `json:"database_dsn"`
	ImageBackend   string         `json:"image_backend"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	VisionEndpoint string         `json:"vision_endpoint"`
	VisionModel    string         `json:"vision_model"`
	VisionAPIKey   string         `json:"vision_api_key"`
	VisionTimeout  timex.Duration `json:"vision_timeout"`
	LogBackend     string         `json:"log_backend"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present in the JSON override the current values; absent
// fields keep their defaults. Panics on read or unmarshal errors.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.StorageDir, jc.StorageDir)
	overlay(&cfg.StorageBackend, jc.StorageBackend)
	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.ImageBackend, jc.ImageBackend)
	overlay(&cfg.S3Bucket, jc.S3Bucket)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	overlay(&cfg.VisionEndpoint, jc.VisionEndpoint)
	overlay(&cfg.VisionModel, jc.VisionModel)
	overlay(&cfg.VisionAPIKey, jc.VisionAPIKey)
	overlay(&cfg.LogBackend, jc.LogBackend)
	if jc.VisionTimeout.Duration != 0 {
		cfg.VisionTimeout = time.Duration(jc.VisionTimeout.Duration)
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
