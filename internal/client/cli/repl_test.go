package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	failOn   string
}

func (f *fakeExec) signedIn() bool { return f.loggedIn }

func (f *fakeExec) call(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) SignIn(ctx context.Context, args []string) error {
	f.loggedIn = true
	return f.call("signin", args...)
}
func (f *fakeExec) SignOut(ctx context.Context) error {
	f.loggedIn = false
	return f.call("signout")
}
func (f *fakeExec) Master(ctx context.Context) error { return f.call("master") }
func (f *fakeExec) Add(ctx context.Context, args []string) error {
	return f.call("add", args...)
}
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.call("edit", args...)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.call("delete", args...)
}
func (f *fakeExec) List(ctx context.Context) error { return f.call("list") }
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.call("show", args...)
}
func (f *fakeExec) Reveal(ctx context.Context, args []string) error {
	return f.call("reveal", args...)
}
func (f *fakeExec) Hide(ctx context.Context, args []string) error {
	return f.call("hide", args...)
}
func (f *fakeExec) Copy(ctx context.Context, args []string) error {
	return f.call("copy", args...)
}
func (f *fakeExec) Generate(ctx context.Context, args []string) error {
	return f.call("generate", args...)
}
func (f *fakeExec) Strength(ctx context.Context) error { return f.call("strength") }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_SignInFlowAndCommands(t *testing.T) {
	out := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"list",
		"generate 20",
		"signin alice",
		"help",
		"master",
		"add password",
		"l",
		"show 1",
		"reveal 1",
		"hide 1",
		"copy 1 password",
		"edit 1",
		"delete 1",
		"strength",
		"",
		"foobar",
		"signout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	assert.Equal(t, []string{
		"generate 20",
		"signin alice",
		"master",
		"add password",
		"list",
		"show 1",
		"reveal 1",
		"hide 1",
		"copy 1 password",
		"edit 1",
		"delete 1",
		"strength",
		"signout",
	}, exec.calls)

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, helpSignedOut)
	assert.Contains(t, joined, helpSignedIn)
	assert.Contains(t, joined, errSignInFirst.Error())
	assert.Contains(t, joined, "Unknown command:foobar")
	assert.Contains(t, joined, "Bye!")
	assert.Contains(t, joined, "safetrace status> ")
}

func TestRunREPL_ErrorsDoNotEndSession(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, failOn: "add"}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("add note\nlist\n"))

	assert.Equal(t, []string{"add note", "list"}, exec.calls)
	assert.Contains(t, strings.Join(*out, "\n"), "add failed")
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list"))
	assert.Equal(t, []string{"list"}, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, rdr("list\n"))
	assert.Empty(t, exec.calls)
}
