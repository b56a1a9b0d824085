package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/docscan/internal/common"
)

// getNewPin prompts for a PIN twice and checks both entries match.
func getNewPin() (string, error) {
	pin, err := GetPin("Enter new PIN", os.Stdout)
	if err != nil {
		return "", err
	}
	confirm, err := GetPin("Repeat new PIN", os.Stdout)
	if err != nil {
		return "", err
	}
	if pin != confirm {
		return "", errors.New("PINs do not match")
	}
	return pin, nil
}

// Protect sets a PIN on a document. An existing PIN is replaced.
func (a *App) Protect(ctx context.Context, id string) error {
	if _, err := a.repo.Get(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	pin, err := getNewPin()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.guard.SetPin(ctx, id, pin); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Document protected.")
	return nil
}

// Unprotect removes the PIN after verifying the current one.
func (a *App) Unprotect(ctx context.Context, id string) error {
	protected, err := a.guard.IsProtected(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !protected {
		fmt.Println("Document is not protected.")
		return nil
	}

	pin, err := GetPin("Enter current PIN", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.guard.RemovePin(ctx, id, pin); err != nil {
		if errors.Is(err, common.ErrInvalidPin) {
			fmt.Println("Wrong PIN.")
		}
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Protection removed.")
	return nil
}

// ForceUnprotect removes the PIN without verification.
func (a *App) ForceUnprotect(ctx context.Context, id string) error {
	if err := a.guard.ForceRemovePin(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Protection removed.")
	return nil
}

// ChangePin verifies the current PIN and replaces it with a new one.
func (a *App) ChangePin(ctx context.Context, id string) error {
	oldPin, err := GetPin("Enter current PIN", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	newPin, err := getNewPin()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.guard.ChangePin(ctx, id, oldPin, newPin); err != nil {
		if errors.Is(err, common.ErrInvalidPin) {
			fmt.Println("Wrong PIN.")
		}
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("PIN changed.")
	return nil
}
