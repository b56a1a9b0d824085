package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/docscan/internal/documents"
	"github.com/dmitrijs2005/docscan/internal/models"
)

func printMeta(m models.DocumentMeta) {
	fmt.Printf("%s  %-30s  %-10s  %-14s  %s\n", m.ID, m.Name, m.Kind, m.Date, m.Size)
}

// List prints all documents, newest first.
func (a *App) List(ctx context.Context) error {
	metas, err := a.repo.ListMetadata(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(metas) == 0 {
		fmt.Println("No documents yet. Try 'scan'.")
		return nil
	}
	for _, m := range metas {
		printMeta(m)
	}
	return nil
}

// Find searches document names.
func (a *App) Find(ctx context.Context, query string) error {
	metas, err := a.repo.Search(ctx, query)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(metas) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, m := range metas {
		printMeta(m)
	}
	return nil
}

// requirePin verifies access to a protected document, prompting for the PIN
// when one is set. Unprotected documents pass through without a prompt.
func (a *App) requirePin(ctx context.Context, id string) error {
	protected, err := a.guard.IsProtected(ctx, id)
	if err != nil {
		return err
	}
	if !protected {
		return nil
	}
	pin, err := GetPin("Enter PIN", os.Stdout)
	if err != nil {
		return err
	}
	return a.guard.VerifyPin(ctx, id, pin)
}

// Show prints one document in full. Protected documents ask for the PIN first.
func (a *App) Show(ctx context.Context, id string) error {
	if err := a.requirePin(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	rec, err := a.repo.Get(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Name:    %s\n", rec.Name)
	fmt.Printf("Kind:    %s, %d page(s)\n", rec.Kind, rec.Pages)
	fmt.Printf("Created: %s\n", documents.FormatRelativeDate(rec.CreatedAt, time.Now()))
	fmt.Printf("Size:    %s\n", documents.FormatSize(rec.Size))
	fmt.Printf("Image:   %s\n", rec.ImageURI)
	if rec.Analysis != nil {
		fmt.Printf("Type:    %s (confidence %.2f)\n", rec.Analysis.DocumentType, rec.Analysis.Confidence)
		if rec.Analysis.Language.Code != "" {
			fmt.Printf("Lang:    %s\n", rec.Analysis.Language.Name)
		}
		for k, v := range rec.Analysis.Data {
			fmt.Printf("  %s: %v\n", k, v)
		}
		for _, w := range rec.Analysis.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}
	if rec.EditedData != nil {
		fmt.Printf("Edited:  %s (%d section(s))\n", rec.EditedData.Title, len(rec.EditedData.Sections))
	}
	return nil
}

// Rename prompts for a new name and applies it.
func (a *App) Rename(ctx context.Context, id string) error {
	name, err := GetSimpleText(a.reader, "Enter new name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if name == "" {
		fmt.Println("Name unchanged.")
		return nil
	}

	rec, err := a.repo.Update(ctx, id, models.DocumentUpdate{Name: &name})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Renamed to %s\n", rec.Name)
	return nil
}

// Delete removes a document and its stored image. Protected documents ask
// for the PIN first.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requirePin(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.repo.Delete(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if err := a.guard.ForceRemovePin(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// Stats prints storage totals.
func (a *App) Stats(ctx context.Context) error {
	count, total, err := a.repo.Stats(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Documents: %d\n", count)
	fmt.Printf("Total size: %s\n", documents.FormatSize(total))
	return nil
}
