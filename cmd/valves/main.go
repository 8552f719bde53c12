// Command valves reads a valve network and prints the best pressure that can
// be released within the turn budget.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/katalvlaran/valvesearch/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Main(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
