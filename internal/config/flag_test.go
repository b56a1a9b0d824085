package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK",
			args:        []string{"cmd", "-d", "/var/docscan", "-s", "sqlite", "-dsn", "file.db", "-i", "s3", "-m", "gpt-4o-mini", "-t", "30", "-l", "zap"},
			expectPanic: false,
			expected: &Config{
				StorageDir:     "/var/docscan",
				StorageBackend: "sqlite",
				DatabaseDSN:    "file.db",
				ImageBackend:   "s3",
				VisionModel:    "gpt-4o-mini",
				VisionTimeout:  30 * time.Second,
				LogBackend:     "zap",
			}},
		{name: "Test2 incorrect timeout",
			args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
