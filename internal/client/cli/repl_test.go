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
	calls []string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return f.err
}

func (f *fakeExec) Maps(_ context.Context, a []string) error     { return f.record("maps", a) }
func (f *fakeExec) Course(_ context.Context, a []string) error   { return f.record("course", a) }
func (f *fakeExec) Start(_ context.Context, a []string) error    { return f.record("start", a) }
func (f *fakeExec) Complete(_ context.Context, a []string) error { return f.record("complete", a) }
func (f *fakeExec) Progress(_ context.Context, a []string) error { return f.record("progress", a) }
func (f *fakeExec) Nonce(_ context.Context, a []string) error    { return f.record("nonce", a) }
func (f *fakeExec) Link(_ context.Context, a []string) error     { return f.record("link", a) }
func (f *fakeExec) Wallets(_ context.Context, a []string) error  { return f.record("wallets", a) }
func (f *fakeExec) Verify(_ context.Context, a []string) error   { return f.record("verify", a) }
func (f *fakeExec) Voucher(_ context.Context, a []string) error  { return f.record("voucher", a) }
func (f *fakeExec) Mint(_ context.Context, a []string) error     { return f.record("mint", a) }
func (f *fakeExec) Token(_ context.Context, a []string) error    { return f.record("token", a) }
func (f *fakeExec) Stats(_ context.Context, a []string) error    { return f.record("stats", a) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"maps",
		"",
		"course c1",
		"complete c1 s1 answer=2",
		"progress",
		"link GABC",
		"mint c1 s9",
		"token",
		"foobar",
		"exit",
		"maps",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(online)" }, rdr(input))

	assert.Equal(t, []string{"maps", "course c1", "complete c1 s1 answer=2", "progress", "link GABC", "mint c1 s9", "token"}, exec.calls)

	out := strings.Join(*lines, "")
	assert.Contains(t, out, "learnkit (online)> ")
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("maps\nwallets"))

	assert.Equal(t, []string{"maps", "wallets"}, exec.calls)
	assert.Contains(t, strings.Join(*lines, ""), "Error: boom")
}

func TestDispatch_OneShot(t *testing.T) {
	capturePrintln(t)
	exec := &fakeExec{}

	assert.NoError(t, dispatch(context.Background(), exec, []string{"voucher", "c1", "s1"}))
	assert.NoError(t, dispatch(context.Background(), exec, []string{"stats"}))
	assert.Error(t, dispatch(context.Background(), exec, []string{"nope"}))
	assert.Equal(t, []string{"voucher c1 s1", "stats"}, exec.calls)
}
