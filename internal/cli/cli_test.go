package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zbday/internal/check"
	"github.com/zarlcorp/zbday/internal/config"
	"github.com/zarlcorp/zbday/internal/dataset"
)

func testIO(t *testing.T) (IO, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var out, errb bytes.Buffer
	return IO{Out: &out, Err: &errb}, &out, &errb
}

func TestGenerate(t *testing.T) {
	fs := zfilesystem.NewMemFS()
	stdio, out, _ := testIO(t)

	cfg := config.Default()
	if err := Generate(context.Background(), cfg, fs, "sample_birthdays.csv", stdio); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := fs.ReadFile("sample_birthdays.csv")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if r := check.Check(data, cfg.PerMonth); !r.OK() {
		t.Errorf("generated file has issues: %v", r.Issues)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("stdout lines = %q, want start and done", lines)
	}
	if !strings.Contains(lines[1], "sample_birthdays.csv") {
		t.Errorf("done line %q should name the file", lines[1])
	}
}

func TestGenerateSeeded(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 1234

	var files [2][]byte
	for i := range files {
		fs := zfilesystem.NewMemFS()
		stdio, _, _ := testIO(t)
		if err := Generate(context.Background(), cfg, fs, "out.csv", stdio); err != nil {
			t.Fatalf("generate: %v", err)
		}
		data, err := fs.ReadFile("out.csv")
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		files[i] = data
	}

	if !bytes.Equal(files[0], files[1]) {
		t.Error("same seed produced different files")
	}
}

func TestGenerateJSON(t *testing.T) {
	fs := zfilesystem.NewMemFS()
	stdio, _, _ := testIO(t)

	cfg := config.Default()
	cfg.Format = dataset.FormatJSON
	cfg.PerMonth = 2
	if err := Generate(context.Background(), cfg, fs, "out.json", stdio); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := fs.ReadFile("out.json")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var recs []map[string]string
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 24 {
		t.Errorf("records = %d, want 24", len(recs))
	}
}

type failFS struct {
	*zfilesystem.MemFS
}

func (failFS) WriteFile(string, []byte, fs.FileMode) error {
	return fs.ErrPermission
}

func TestGenerateWriteError(t *testing.T) {
	stdio, out, _ := testIO(t)

	err := Generate(context.Background(), config.Default(), failFS{zfilesystem.NewMemFS()}, "out.csv", stdio)
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("err = %v, want permission error", err)
	}
	if strings.Count(out.String(), "\n") != 1 {
		t.Errorf("only the start line should print on failure, got %q", out.String())
	}
}

func TestCmdGenerateDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	stdio, _, _ := testIO(t)

	if err := CmdGenerate(context.Background(), nil, stdio); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sample_birthdays.csv"))
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) != 121 {
		t.Fatalf("lines = %d, want 121", len(lines))
	}
	if lines[0] != "nome,data,telefone,email,foto" {
		t.Errorf("header = %q", lines[0])
	}
	for i, l := range lines[1:] {
		if n := len(strings.Split(l, ",")); n != 5 {
			t.Errorf("line %d has %d fields", i+2, n)
		}
	}
	if r := check.Check(data, 10); !r.OK() {
		t.Errorf("issues: %v", r.Issues)
	}
}

func TestCmdGenerateShapeAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var runs [2][]string
	for i := range runs {
		stdio, _, _ := testIO(t)
		out := filepath.Join(dir, "run"+string(rune('a'+i))+".csv")
		if err := CmdGenerate(context.Background(), []string{"-out", out}, stdio); err != nil {
			t.Fatalf("generate: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		runs[i] = strings.Split(string(data), "\n")
	}

	if len(runs[0]) != len(runs[1]) || runs[0][0] != runs[1][0] {
		t.Fatal("runs differ in structure")
	}
	if strings.Join(runs[0], "\n") == strings.Join(runs[1], "\n") {
		t.Error("unseeded runs produced identical values")
	}
}

func TestCmdGenerateOverwrites(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "out.csv")

	if err := os.WriteFile(out, bytes.Repeat([]byte("x"), 1<<16), 0o644); err != nil {
		t.Fatal(err)
	}

	stdio, _, _ := testIO(t)
	if err := CmdGenerate(context.Background(), []string{"-out", out, "-per-month", "1"}, stdio); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if r := check.Check(data, 1); !r.OK() {
		t.Errorf("overwritten file has issues: %v", r.Issues)
	}
}

func TestCmdGenerateUnwritable(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// a regular file cannot act as a parent directory
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdio, _, _ := testIO(t)
	err := CmdGenerate(context.Background(), []string{"-out", filepath.Join(blocker, "out.csv")}, stdio)
	if err == nil {
		t.Fatal("expected write error")
	}
	if !strings.Contains(err.Error(), "out.csv") {
		t.Errorf("error %q should name the file", err)
	}
}

func TestCmdGenerateInvalidFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	stdio, _, _ := testIO(t)

	if err := CmdGenerate(context.Background(), []string{"-per-month", "-3"}, stdio); err == nil {
		t.Error("expected validation error")
	}
}

func TestCmdPreview(t *testing.T) {
	t.Chdir(t.TempDir())
	stdio, out, _ := testIO(t)

	if err := CmdPreview(context.Background(), []string{"-seed", "3", "-rows", "5"}, stdio); err != nil {
		t.Fatalf("preview: %v", err)
	}

	s := out.String()
	for _, col := range dataset.Columns {
		if !strings.Contains(s, col) {
			t.Errorf("preview missing column %q", col)
		}
	}
	if got := strings.Count(s, "@exemplo.com"); got != 5 {
		t.Errorf("rows shown = %d, want 5", got)
	}
	if !strings.Contains(s, "5 of 120 records shown") {
		t.Errorf("missing summary line in %q", s)
	}
	if _, err := os.Stat("sample_birthdays.csv"); err == nil {
		t.Error("preview must not write a file")
	}
}

func TestCmdCheck(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	stdio, _, _ := testIO(t)

	if err := CmdGenerate(context.Background(), nil, stdio); err != nil {
		t.Fatalf("generate: %v", err)
	}

	stdio, out, _ := testIO(t)
	if err := CmdCheck(context.Background(), nil, stdio); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out.String(), "121 lines") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestCmdCheckFails(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(path, []byte("nome,data\nAna Silva,1990-01-01"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdio, out, _ := testIO(t)
	err := CmdCheck(context.Background(), []string{path}, stdio)
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("err = %v, want ErrCheckFailed", err)
	}
	if !strings.Contains(out.String(), "line 1") {
		t.Errorf("issues not printed: %q", out.String())
	}
}

func TestCmdCheckMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	stdio, _, _ := testIO(t)

	err := CmdCheck(context.Background(), []string{"nope.csv"}, stdio)
	if err == nil || errors.Is(err, ErrCheckFailed) {
		t.Fatalf("err = %v, want read error", err)
	}
}

func TestCmdImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	data := "nome,data,telefone,email\nJoão Silva,1990-12-31,11999999999,joao@email.com\nMaria Souza,20/05/1985,21988888888,maria@email.com\nSem Data,,,"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	stdio, out, _ := testIO(t)
	if err := CmdImport(context.Background(), []string{path}, stdio); err != nil {
		t.Fatalf("import: %v", err)
	}

	s := out.String()
	for _, want := range []string{"1985-05-20", "(11) 99999-9999", "2 accepted, 1 skipped"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestCmdImportUsage(t *testing.T) {
	stdio, _, _ := testIO(t)
	if err := CmdImport(context.Background(), nil, stdio); err == nil {
		t.Error("expected usage error")
	}
}

func TestShown(t *testing.T) {
	tests := []struct {
		rows, n, want int
	}{
		{5, 120, 5},
		{0, 120, 120},
		{-1, 120, 120},
		{200, 120, 120},
	}
	for _, tt := range tests {
		if got := shown(tt.rows, tt.n); got != tt.want {
			t.Errorf("shown(%d, %d) = %d, want %d", tt.rows, tt.n, got, tt.want)
		}
	}
}

func TestOutputFS(t *testing.T) {
	_, name := OutputFS(filepath.Join("some", "dir", "file.csv"))
	if name != "file.csv" {
		t.Errorf("name = %s, want file.csv", name)
	}
}

func TestCmdGenerateJSONDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvOutput, "")
	stdio, _, _ := testIO(t)

	if err := CmdGenerate(context.Background(), []string{"-json", "-per-month", "1"}, stdio); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sample_birthdays.json"))
	if err != nil {
		t.Fatalf("json output missing: %v", err)
	}
	var recs []map[string]string
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sample_birthdays.csv")); err == nil {
		t.Error("json run must not write the csv default")
	}
}

func TestCommandsHonourLogLevel(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvLogLevel, "debug")

	stdio, _, _ := testIO(t)
	if err := CmdGenerate(context.Background(), nil, stdio); err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name string
		run  func(IO) error
		msg  string
	}{
		{"preview", func(s IO) error { return CmdPreview(context.Background(), []string{"-rows", "1"}, s) }, "preview built"},
		{"check", func(s IO) error { return CmdCheck(context.Background(), nil, s) }, "file checked"},
		{"import", func(s IO) error { return CmdImport(context.Background(), []string{"sample_birthdays.csv"}, s) }, "file imported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdio, _, errb := testIO(t)
			if err := tt.run(stdio); err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			if !strings.Contains(errb.String(), tt.msg) {
				t.Errorf("debug line %q missing from %q", tt.msg, errb.String())
			}
			if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
				t.Error("default logger should be at debug level")
			}
		})
	}
}

func TestDefaultLoggerQuietAtInfo(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvLogLevel, "")

	stdio, _, errb := testIO(t)
	if err := CmdPreview(context.Background(), []string{"-rows", "1"}, stdio); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if errb.Len() != 0 {
		t.Errorf("unexpected log output at info level: %q", errb.String())
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("default logger should not be at debug level")
	}
}
