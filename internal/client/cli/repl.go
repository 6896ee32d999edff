package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Screen() Screen
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Expiring(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the MedKeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' according to the current screen. Unknown
// commands are reported back to the user. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Prompts inside commands read from the same reader, so a command and its
// answers can be piped in together.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mk (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) > 0 && !dispatch(ctx, a, parts[0], parts[1:]) {
			return
		}
		if err != nil {
			return
		}
	}
}

// dispatch runs one command and reports whether the loop should continue.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch cmd {
	case "help":
		printlnFn(helpText(a.Screen()))
		return true
	case "exit", "quit":
		printlnFn("Bye!")
		return false
	}

	if a.Screen() != ScreenInventory {
		switch cmd {
		case "login":
			_ = a.Login(ctx)
		case "signup":
			_ = a.Signup(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
		return true
	}

	switch cmd {
	case "l", "list":
		_ = a.List(ctx)

	case "search":
		if len(args) == 0 {
			printlnFn("Usage: search <term>")
			break
		}
		_ = a.Search(ctx, strings.Join(args, " "))

	case "expiring":
		_ = a.Expiring(ctx)

	case "add":
		_ = a.Add(ctx)

	case "edit":
		if len(args) == 0 {
			printlnFn("Usage: edit <id>")
			break
		}
		_ = a.Edit(ctx, args[0])

	case "delete":
		if len(args) == 0 {
			printlnFn("Usage: delete <id>")
			break
		}
		_ = a.Delete(ctx, args[0])

	case "logout":
		_ = a.Logout(ctx)

	default:
		printlnFn("Unknown command:", cmd)
	}
	return true
}

func helpText(s Screen) string {
	if s == ScreenInventory {
		return "Available commands: (l)ist, search <term>, expiring, add, edit <id>, delete <id>, logout, exit"
	}
	return "Available commands: login, signup, exit"
}
