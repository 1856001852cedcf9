// Package cli implements zbday's command-line subcommands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zbday/internal/check"
	"github.com/zarlcorp/zbday/internal/config"
	"github.com/zarlcorp/zbday/internal/dataset"
	"github.com/zarlcorp/zbday/internal/person"
)

// ErrCheckFailed is returned when a checked file has issues.
var ErrCheckFailed = errors.New("check failed")

// defaultPreviewRows is how many rows preview shows without -rows.
const defaultPreviewRows = 12

// IO bundles the streams a command writes to.
type IO struct {
	Out io.Writer
	Err io.Writer
}

// OutputFS returns a filesystem rooted at the directory of path and the file
// name inside it.
func OutputFS(path string) (zfilesystem.ReadWriteFileFS, string) {
	return zfilesystem.NewOSFileSystem(filepath.Dir(path)), filepath.Base(path)
}

// NewGenerator returns a seeded generator when cfg asks for one and a
// crypto-seeded one otherwise.
func NewGenerator(cfg config.Config) (*person.Generator, error) {
	if cfg.Seeded() {
		return person.NewSeeded(cfg.Seed), nil
	}
	return person.NewRandom()
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// setupLogging installs a default logger at the configured level so every
// log line, including errors reported by main, honours it.
func setupLogging(cfg config.Config, w io.Writer) {
	slog.SetDefault(newLogger(cfg, w))
}

// CmdGenerate builds a dataset and writes it to the configured output file.
func CmdGenerate(ctx context.Context, args []string, stdio IO) error {
	cfg, _, err := config.Load("generate", args, stdio.Err)
	if err != nil {
		return err
	}
	setupLogging(cfg, stdio.Err)
	fsys, name := OutputFS(cfg.Output)
	return Generate(ctx, cfg, fsys, name, stdio)
}

// Generate runs one generation pass and writes the result as name in fsys.
// It prints a start line before generating and a done line after the write.
// Debug details go to the default logger.
func Generate(ctx context.Context, cfg config.Config, fsys zfilesystem.ReadWriteFileFS, name string, stdio IO) error {
	p := newPrinter(stdio.Out)

	p.muted("generating birthday data...")

	g, err := NewGenerator(cfg)
	if err != nil {
		return err
	}

	d := dataset.Build(g, cfg.PerMonth)
	slog.Debug("dataset built", "rows", d.Len(), "per_month", cfg.PerMonth, "seed", cfg.Seed)

	data, err := d.Encode(cfg.Format)
	if err != nil {
		return err
	}

	if err := dataset.Write(ctx, fsys, name, data); err != nil {
		return err
	}
	slog.Debug("dataset written", "path", cfg.Output, "bytes", len(data), "format", cfg.Format)

	p.ok(fmt.Sprintf("%s created (%d records)", cfg.Output, d.Len()))
	return nil
}

// CmdPreview renders a freshly generated dataset as a table without writing
// any file.
func CmdPreview(_ context.Context, args []string, stdio IO) error {
	rows := defaultPreviewRows
	cfg, _, err := config.Load("preview", args, stdio.Err, func(fs *flag.FlagSet) {
		fs.IntVar(&rows, "rows", rows, "rows to show (0 for all)")
	})
	if err != nil {
		return err
	}
	setupLogging(cfg, stdio.Err)

	g, err := NewGenerator(cfg)
	if err != nil {
		return err
	}

	d := dataset.Build(g, cfg.PerMonth)
	slog.Debug("preview built", "rows", d.Len(), "shown", shown(rows, d.Len()), "seed", cfg.Seed)
	fmt.Fprintln(stdio.Out, renderPeople(d.People, rows))
	newPrinter(stdio.Out).muted(fmt.Sprintf("%d of %d records shown", shown(rows, d.Len()), d.Len()))
	return nil
}

// CmdCheck verifies a generated csv file. The path defaults to the configured
// output.
func CmdCheck(_ context.Context, args []string, stdio IO) error {
	cfg, rest, err := config.Load("check", args, stdio.Err)
	if err != nil {
		return err
	}
	setupLogging(cfg, stdio.Err)

	path := cfg.Output
	if len(rest) > 0 {
		path = rest[0]
	}

	data, err := readFile(path)
	if err != nil {
		return err
	}

	r := check.Check(data, cfg.PerMonth)
	slog.Debug("file checked", "path", path, "lines", r.Lines, "issues", len(r.Issues))
	p := newPrinter(stdio.Out)
	for _, iss := range r.Issues {
		p.warn(iss.String())
	}
	if !r.OK() {
		return fmt.Errorf("%s: %w: %d issues", path, ErrCheckFailed, len(r.Issues))
	}

	p.ok(fmt.Sprintf("%s ok (%d lines)", path, r.Lines))
	return nil
}

// CmdImport reads a birthday csv with the app importer's rules and prints the
// rows it would accept.
func CmdImport(_ context.Context, args []string, stdio IO) error {
	cfg, rest, err := config.Load("import", args, stdio.Err)
	if err != nil {
		return err
	}
	setupLogging(cfg, stdio.Err)

	if len(rest) == 0 {
		return errors.New("usage: zbday import <file>")
	}
	path := rest[0]

	data, err := readFile(path)
	if err != nil {
		return err
	}

	rows, issues := check.Import(data)
	slog.Debug("file imported", "path", path, "accepted", len(rows), "skipped", len(issues))
	p := newPrinter(stdio.Out)

	if len(rows) > 0 {
		fmt.Fprintln(stdio.Out, renderRows(rows))
	}
	for _, iss := range issues {
		p.warn(iss.String())
	}
	p.ok(fmt.Sprintf("%d accepted, %d skipped", len(rows), len(issues)))
	return nil
}

func readFile(path string) ([]byte, error) {
	fsys, name := OutputFS(path)
	data, err := fsys.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// shown returns how many of n rows a limit of rows displays.
func shown(rows, n int) int {
	if rows <= 0 || rows > n {
		return n
	}
	return rows
}
