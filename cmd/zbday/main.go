package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zbday/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zbday"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	err := run(ctx, os.Args[1:], cli.IO{Out: os.Stdout, Err: os.Stderr})
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		slog.Error("zbday", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdio cli.IO) error {
	if len(args) == 0 {
		return cli.CmdGenerate(ctx, nil, stdio)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(stdio.Out, "zbday %s\n", version)
		return nil
	case "generate":
		return cli.CmdGenerate(ctx, rest, stdio)
	case "preview":
		return cli.CmdPreview(ctx, rest, stdio)
	case "check":
		return cli.CmdCheck(ctx, rest, stdio)
	case "import":
		return cli.CmdImport(ctx, rest, stdio)
	default:
		if len(cmd) > 0 && cmd[0] == '-' {
			// bare flags mean generate
			return cli.CmdGenerate(ctx, args, stdio)
		}
		return fmt.Errorf("unknown command %q", cmd)
	}
}
