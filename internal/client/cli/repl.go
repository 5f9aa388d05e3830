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
	isRegistered() bool
	Register(ctx context.Context) error
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Create(ctx context.Context) error
}

const (
	helpGuest      = "Available commands: register, (l)ist, dashboard, create, refresh, exit"
	helpRegistered = "Available commands: (l)ist, dashboard, create, refresh, exit"
)

// runREPL starts a simple read–eval–print loop for the quizzer CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands:
//
//	help                  show available commands
//	register              create an account
//	list | l | dashboard  show the study-sets dashboard
//	create                create a study set
//	refresh               refetch the study sets
//	exit | quit           leave the program
//
// Errors returned by command handlers are reported and otherwise ignored;
// the loop keeps running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(prompt(statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isRegistered() {
				printlnFn(helpRegistered)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			report(a.Register(ctx))

		case "l", "list", "dashboard":
			report(a.List(ctx))

		case "create":
			report(a.Create(ctx))

		case "refresh":
			report(a.Refresh(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func prompt(status string) string {
	if status == "" {
		return "quizzer> "
	}
	return fmt.Sprintf("quizzer %s> ", status)
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
