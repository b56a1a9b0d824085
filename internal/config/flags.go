package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docscan/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   base storage directory
//	-s string   storage backend: file, sqlite or postgres
//	-dsn string database DSN for the sqlite/postgres backends
//	-i string   image backend: file or s3
//	-e string   vision endpoint URL
//	-m string   vision model name
//	-t int      vision request timeout in seconds
//	-l string   log backend: slog or zap
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-dsn", "-i", "-e", "-m", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDir, "d", cfg.StorageDir, "base storage directory")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend (file|sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.ImageBackend, "i", cfg.ImageBackend, "image backend (file|s3)")
	fs.StringVar(&cfg.VisionEndpoint, "e", cfg.VisionEndpoint, "vision endpoint URL")
	fs.StringVar(&cfg.VisionModel, "m", cfg.VisionModel, "vision model name")
	visionTimeout := fs.Int("t", int(cfg.VisionTimeout.Seconds()), "vision request timeout (in seconds)")
	fs.StringVar(&cfg.LogBackend, "l", cfg.LogBackend, "log backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.VisionTimeout = time.Duration(*visionTimeout) * time.Second
}
