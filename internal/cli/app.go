// Package cli implements the interactive scanner console: a small REPL over
// the capture, repository and protection services.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/docscan/internal/batch"
	"github.com/dmitrijs2005/docscan/internal/config"
	"github.com/dmitrijs2005/docscan/internal/documents"
	"github.com/dmitrijs2005/docscan/internal/filex"
	"github.com/dmitrijs2005/docscan/internal/imagestore"
	"github.com/dmitrijs2005/docscan/internal/kvstore"
	"github.com/dmitrijs2005/docscan/internal/logging"
	"github.com/dmitrijs2005/docscan/internal/protection"
	"github.com/dmitrijs2005/docscan/internal/scan"
	"github.com/dmitrijs2005/docscan/internal/vision"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   kvstore.Store
	repo    *documents.Repository
	guard   *protection.Guard
	scanner *scan.Service
	batch   *batch.Coordinator
	reader  *bufio.Reader
}

func newLogger(backend string) logging.Logger {
	if backend == "zap" {
		return logging.NewDefaultZapLogger()
	}
	return logging.NewDefaultSlogLogger()
}

func newStore(ctx context.Context, c *config.Config) (kvstore.Store, error) {
	switch c.StorageBackend {
	case "sqlite":
		dsn := c.DatabaseDSN
		if dsn == "" {
			dir, err := filex.EnsureDir(c.StorageDir)
			if err != nil {
				return nil, err
			}
			dsn = filepath.Join(dir, "docscan.db")
		}
		return kvstore.OpenSQLite(ctx, dsn)
	case "postgres":
		return kvstore.OpenPostgres(ctx, c.DatabaseDSN)
	case "file":
		dir, err := filex.EnsureSubDir(c.StorageDir, "data")
		if err != nil {
			return nil, err
		}
		return kvstore.NewFileStore(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", c.StorageBackend)
	}
}

func newImageStore(ctx context.Context, c *config.Config, log logging.Logger) (imagestore.Store, error) {
	switch c.ImageBackend {
	case "s3":
		return imagestore.NewS3Store(ctx, imagestore.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		}, log)
	case "file":
		dir, err := filex.EnsureSubDir(c.StorageDir, "images")
		if err != nil {
			return nil, err
		}
		return imagestore.NewFileStore(dir, log)
	default:
		return nil, fmt.Errorf("unknown image backend: %s", c.ImageBackend)
	}
}

// NewApp wires the configured backends together into a runnable console.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := newLogger(c.LogBackend)

	store, err := newStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	images, err := newImageStore(ctx, c, log)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("initializing image storage: %w", err)
	}

	repo := documents.NewRepository(store, images, log)
	classifier := vision.NewOpenAIClassifier(c.VisionEndpoint, c.VisionAPIKey, c.VisionModel, c.VisionTimeout, log)
	scanner := scan.NewService(classifier, repo, log)

	return &App{
		config:  c,
		log:     log,
		store:   store,
		repo:    repo,
		guard:   protection.NewGuard(store, log),
		scanner: scanner,
		batch:   batch.NewCoordinator(scanner, log),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Root(ctx)
}
