// ====================================
// File: cmd/pumpfun/main.go
// ====================================
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
)

type command struct {
	summary string
	run     func(ctx context.Context, args []string, out io.Writer) error
}

var commands = map[string]command{
	"curve":      {"show the bonding curve of a token", runCurve},
	"quote-buy":  {"price a buy without sending it", runQuoteBuy},
	"quote-sell": {"price a sell without sending it", runQuoteSell},
	"buy":        {"buy tokens with SOL", runBuy},
	"sell":       {"sell tokens for SOL", runSell},
	"create":     {"launch a new token", runCreate},
	"balance":    {"show wallet SOL and token balances", runBalance},
	"watch":      {"follow a bonding curve until it completes", runWatch},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, style.Error.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return flag.ErrHelp
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd.run(ctx, args[1:], out)
}

func usage(out io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: pumpfun <command> [flags]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-11s %s\n", name, commands[name].summary)
	}
	b.WriteString("\nRun pumpfun <command> -h for the flags of a command.\n")
	fmt.Fprint(out, b.String())
}
