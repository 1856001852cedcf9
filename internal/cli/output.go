package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbday/internal/check"
	"github.com/zarlcorp/zbday/internal/person"
	"golang.org/x/term"
)

// printer writes status lines, styled only when w is a terminal.
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(w io.Writer) printer {
	return printer{w: w, styled: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p printer) line(style lipgloss.Style, msg string) {
	if p.styled {
		msg = style.Render(msg)
	}
	fmt.Fprintln(p.w, msg)
}

func (p printer) ok(msg string)    { p.line(zstyle.StatusOK, msg) }
func (p printer) warn(msg string)  { p.line(zstyle.StatusWarn, msg) }
func (p printer) muted(msg string) { p.line(zstyle.MutedText, msg) }

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(zstyle.MutedText).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// renderPeople lays out the first limit people as a table. A limit of 0 or
// less shows everyone.
func renderPeople(people []person.Person, limit int) string {
	t := newTable("nome", "data", "telefone", "email", "foto")
	for _, p := range people[:shown(limit, len(people))] {
		t.Row(p.Name(), p.Date(), person.FormatPhone(p.Phone), p.Email, p.PhotoURL)
	}
	return t.String()
}

func renderRows(rows []check.Row) string {
	t := newTable("linha", "nome", "data", "telefone", "email")
	for _, r := range rows {
		t.Row(fmt.Sprint(r.Line), r.Name, r.Date, person.FormatPhone(r.Phone), r.Email)
	}
	return t.String()
}
