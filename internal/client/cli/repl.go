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

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	signedIn() bool
	SignIn(ctx context.Context, args []string) error
	SignOut(ctx context.Context) error
	Master(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Reveal(ctx context.Context, args []string) error
	Hide(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	Strength(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: signin <user> [name] [email], generate [length], strength, exit"
	helpSignedIn  = "Available commands: master, add <password|card|note>, edit <id>, delete <id>, (l)ist, " +
		"show <id>, reveal <id>, hide <id>, copy <id> <field>, generate [length], strength, signout, exit"
)

var errSignInFirst = errors.New("please sign in first")

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop ends on EOF, on "exit" or "quit", or when ctx is cancelled.
// Handler errors are printed and the session continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("safetrace %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		report(dispatch(ctx, a, cmd, args))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.signedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpSignedOut)
		}
		return nil
	case "signin":
		return a.SignIn(ctx, args)
	case "generate", "gen":
		return a.Generate(ctx, args)
	case "strength":
		return a.Strength(ctx)
	}

	if !a.signedIn() {
		switch cmd {
		case "master", "add", "edit", "delete", "l", "list", "show", "reveal", "hide", "copy", "signout":
			return errSignInFirst
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "master":
		return a.Master(ctx)
	case "add":
		return a.Add(ctx, args)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "l", "list":
		return a.List(ctx)
	case "show":
		return a.Show(ctx, args)
	case "reveal":
		return a.Reveal(ctx, args)
	case "hide":
		return a.Hide(ctx, args)
	case "copy":
		return a.Copy(ctx, args)
	case "signout":
		return a.SignOut(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

func report(err error) {
	if err != nil {
		printlnFn(errorText.Sprint(err.Error()))
	}
}
