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

var errUsage = errors.New("usage")

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	Maps(ctx context.Context, args []string) error
	Course(ctx context.Context, args []string) error
	Start(ctx context.Context, args []string) error
	Complete(ctx context.Context, args []string) error
	Progress(ctx context.Context, args []string) error
	Nonce(ctx context.Context, args []string) error
	Link(ctx context.Context, args []string) error
	Wallets(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Voucher(ctx context.Context, args []string) error
	Mint(ctx context.Context, args []string) error
	Token(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  maps                                   list course maps
  course <courseId>                      show a course
  start <courseId>                       start a course
  complete <courseId> <stepId> [answer=<n>] [tx=<hash>]
  progress [courseId]                    show progress
  nonce <address>                        fetch a wallet nonce
  link <address>                         link a wallet (asks for the signature)
  wallets                                show linked wallets
  verify <courseId> <stepId>             run the step checkers
  voucher <courseId> <stepId>            show the NFT voucher
  mint <courseId> <stepId>               mint the NFT (asks for the tx hash)
  token                                  show credential state
  stats                                  show HTTP counters
  exit | quit                            leave the program`

// dispatch runs one command. It returns errUsage wrapped with the expected
// syntax when the arguments do not fit.
func dispatch(ctx context.Context, a execIface, parts []string) error {
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		printlnFn(helpText)
		return nil
	case "maps":
		return a.Maps(ctx, args)
	case "course":
		return a.Course(ctx, args)
	case "start":
		return a.Start(ctx, args)
	case "complete":
		return a.Complete(ctx, args)
	case "progress":
		return a.Progress(ctx, args)
	case "nonce":
		return a.Nonce(ctx, args)
	case "link":
		return a.Link(ctx, args)
	case "wallets":
		return a.Wallets(ctx, args)
	case "verify":
		return a.Verify(ctx, args)
	case "voucher":
		return a.Voucher(ctx, args)
	case "mint":
		return a.Mint(ctx, args)
	case "token":
		return a.Token(ctx, args)
	case "stats":
		return a.Stats(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help')", cmd)
	}
}

// runREPL reads commands line by line from reader and dispatches them until
// EOF or "exit"/"quit". Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("learnkit %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if parts[0] == "exit" || parts[0] == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, parts); err != nil {
			printlnFn(DescribeError(err))
		}
	}
}
