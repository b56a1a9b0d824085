// Package batch runs multi-capture imports. Items are processed one at a
// time in the order given; a failed item is counted and skipped, never
// aborting the rest of the batch.
package batch

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docscan/internal/logging"
	"github.com/dmitrijs2005/docscan/internal/models"
	"github.com/dmitrijs2005/docscan/internal/scan"
)

// Item is one capture queued for import.
type Item struct {
	SourceURI string
	Label     string
}

// Progress reports the item about to be processed. Index is zero-based.
type Progress struct {
	Index int
	Total int
	Label string
}

// Summary tallies a finished batch.
type Summary struct {
	Succeeded int
	Failed    int
	Records   []*models.DocumentRecord
}

// ProgressFunc is invoked before each item starts. May be nil.
type ProgressFunc func(Progress)

// Coordinator imports batches of captures sequentially.
type Coordinator struct {
	scanner *scan.Service
	log     logging.Logger
}

func NewCoordinator(scanner *scan.Service, log logging.Logger) *Coordinator {
	return &Coordinator{scanner: scanner, log: log}
}

// Import processes items strictly in order. Each item is classified and
// saved; when classification or saving fails the item is counted as failed,
// no record is stored for it, and the batch moves on. Cancellation is
// honored between items: already-imported documents stay saved and the
// context error is returned alongside the partial summary.
func (c *Coordinator) Import(ctx context.Context, items []Item, langHint string, onProgress ProgressFunc) (Summary, error) {
	summary := Summary{}
	total := len(items)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			c.log.Warn(ctx, "batch import cancelled", "done", i, "total", total)
			return summary, fmt.Errorf("import cancelled: %w", err)
		}

		if onProgress != nil {
			onProgress(Progress{Index: i, Total: total, Label: item.Label})
		}

		rec, err := c.scanner.ImportOne(ctx, item.SourceURI, langHint)
		if err != nil {
			summary.Failed++
			c.log.Warn(ctx, "batch item failed", "index", i, "label", item.Label, "error", err)
			continue
		}

		summary.Succeeded++
		summary.Records = append(summary.Records, rec)
	}

	c.log.Info(ctx, "batch import finished",
		"total", total, "succeeded", summary.Succeeded, "failed", summary.Failed)
	return summary, nil
}
