package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/docscan/internal/batch"
)

// Scan captures a single document: the user provides the image path, the
// capture is classified and stored.
func (a *App) Scan(ctx context.Context) error {
	source, err := GetSimpleText(a.reader, "Enter image path or data URI", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	lang, err := GetSimpleText(a.reader, "Response language (empty for auto)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	rec, err := a.scanner.ScanAndSave(ctx, source, lang)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Saved %s (%s, type %s)\n", rec.ID, rec.Name, rec.Analysis.DocumentType)
	if !rec.Analysis.Success {
		fmt.Println("Classification failed; saved as unknown. See warnings with 'show'.")
	}
	return nil
}

// Import collects capture paths one per line and runs them as a batch.
func (a *App) Import(ctx context.Context) error {
	fmt.Println("Enter image paths, one per line (empty line to start import)")

	var items []batch.Item
	for {
		line, err := GetSimpleText(a.reader, "", os.Stdout)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
		if line == "" {
			break
		}
		items = append(items, batch.Item{SourceURI: line, Label: line})
	}
	if len(items) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	lang, err := GetSimpleText(a.reader, "Response language (empty for auto)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	summary, err := a.batch.Import(ctx, items, lang, func(p batch.Progress) {
		fmt.Printf("[%d/%d] %s\n", p.Index+1, p.Total, p.Label)
	})
	if err != nil {
		log.Printf("error: %v", err)
	}
	fmt.Printf("Imported %d, failed %d\n", summary.Succeeded, summary.Failed)
	return err
}
