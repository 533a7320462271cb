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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Plan(ctx context.Context) error
	Plans(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Progress(ctx context.Context, args []string) error
	Resources(ctx context.Context, args []string) error
	Motivate(ctx context.Context, args []string) error
	Summarize(ctx context.Context, args []string) error
	Analyze(ctx context.Context) error
}

const (
	guestHelp = "Available commands: register, login, help, exit"
	userHelp  = "Available commands: me, plan, plans, show <id>, delete <id>, progress <id> [hours], " +
		"resources <topic> [type=..] [level=..] [limit=..], motivate [plan-id], " +
		"summarize <file> [question], analyze, logout, help, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// Command errors are printed and the loop continues. The loop exits on EOF
// or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("planner (%s)> ", statusFn()))

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "me":
			err = a.Me(ctx)
		case "plan":
			err = a.Plan(ctx)
		case "plans":
			err = a.Plans(ctx)
		case "show":
			err = a.Show(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "progress":
			err = a.Progress(ctx, args)
		case "resources":
			err = a.Resources(ctx, args)
		case "motivate":
			err = a.Motivate(ctx, args)
		case "summarize":
			err = a.Summarize(ctx, args)
		case "analyze":
			err = a.Analyze(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
		if readErr != nil {
			return
		}
	}
}
