package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Scan(ctx context.Context) error
	Import(ctx context.Context) error
	List(ctx context.Context) error
	Find(ctx context.Context, query string) error
	Show(ctx context.Context, id string) error
	Rename(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Protect(ctx context.Context, id string) error
	Unprotect(ctx context.Context, id string) error
	ForceUnprotect(ctx context.Context, id string) error
	ChangePin(ctx context.Context, id string) error
	Stats(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the scanner console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	help                — show available commands
//	scan                — capture and classify a single document
//	import              — import several captures in one batch
//	l | list            — list documents, newest first
//	find <text>         — search document names
//	show <id>           — show one document (PIN-protected ones ask first)
//	rename <id>         — rename a document
//	del <id>            — delete a document
//	protect <id>        — set a PIN on a document
//	unprotect <id>      — remove the PIN (asks for the current PIN)
//	forceunprotect <id> — remove the PIN without verification
//	pin <id>            — change the PIN
//	stats               — storage totals
//	exit | quit         — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("docscan> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		needsID := func() (string, bool) {
			if len(args) == 0 {
				printlnFn("Usage:", cmd, "<id>")
				return "", false
			}
			return args[0], true
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: scan, import, (l)ist, find, show, rename, del, protect, unprotect, forceunprotect, pin, stats, exit")

		case "scan":
			_ = a.Scan(ctx)

		case "import":
			_ = a.Import(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "find":
			if len(args) == 0 {
				printlnFn("Usage: find <text>")
				continue
			}
			_ = a.Find(ctx, strings.Join(args, " "))

		case "show":
			if id, ok := needsID(); ok {
				_ = a.Show(ctx, id)
			}

		case "rename":
			if id, ok := needsID(); ok {
				_ = a.Rename(ctx, id)
			}

		case "del":
			if id, ok := needsID(); ok {
				_ = a.Delete(ctx, id)
			}

		case "protect":
			if id, ok := needsID(); ok {
				_ = a.Protect(ctx, id)
			}

		case "unprotect":
			if id, ok := needsID(); ok {
				_ = a.Unprotect(ctx, id)
			}

		case "forceunprotect":
			if id, ok := needsID(); ok {
				_ = a.ForceUnprotect(ctx, id)
			}

		case "pin":
			if id, ok := needsID(); ok {
				_ = a.ChangePin(ctx, id)
			}

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
