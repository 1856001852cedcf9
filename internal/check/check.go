// Package check verifies generated birthday files and reads them the way the
// reminder app's bulk importer does.
package check

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zarlcorp/zbday/internal/dataset"
	"github.com/zarlcorp/zbday/internal/person"
)

var (
	dateRe  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	phoneRe = regexp.MustCompile(`^119\d{8}$`)
	photoRe = regexp.MustCompile(`^https://randomuser\.me/api/portraits/(women|men)/(\d{1,2})\.jpg$`)
)

// Issue is one problem found on a line. Line is 1-based; Field is empty for
// problems with the whole line or file.
type Issue struct {
	Line  int
	Field string
	Msg   string
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("line %d: %s", i.Line, i.Msg)
	}
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Field, i.Msg)
}

// Report is the result of checking a generated file.
type Report struct {
	Lines  int
	Issues []Issue
}

// OK reports whether no issues were found.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) add(line int, field, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Line: line, Field: field, Msg: fmt.Sprintf(format, args...)})
}

// Check verifies that data has the exact shape of a generated file with
// perMonth records per month. perMonth below 1 means the default.
func Check(data []byte, perMonth int) Report {
	if perMonth < 1 {
		perMonth = dataset.DefaultPerMonth
	}

	lines := strings.Split(string(data), "\n")
	r := Report{Lines: len(lines)}

	if want := 1 + dataset.Months*perMonth; len(lines) != want {
		r.add(0, "", "got %d lines, want %d", len(lines), want)
	}
	if lines[0] != dataset.Header {
		r.add(1, "", "header %q, want %q", lines[0], dataset.Header)
	}

	for i, line := range lines[1:] {
		checkLine(&r, i+2, line, i/perMonth+1)
	}
	return r
}

func checkLine(r *Report, n int, line string, month int) {
	fields := strings.Split(line, ",")
	if len(fields) != len(dataset.Columns) {
		r.add(n, "", "got %d fields, want %d", len(fields), len(dataset.Columns))
		return
	}
	name, date, phone, email, photo := fields[0], fields[1], fields[2], fields[3], fields[4]

	first, last, ok := strings.Cut(name, " ")
	if !ok || first == "" || last == "" || strings.Contains(last, " ") {
		r.add(n, "nome", "%q is not two tokens", name)
	} else if want := person.Email(first, last); email != want {
		r.add(n, "email", "%q, want %q", email, want)
	}

	checkDate(r, n, date, month)

	if !phoneRe.MatchString(phone) {
		r.add(n, "telefone", "%q does not match 119XXXXXXXX", phone)
	}

	m := photoRe.FindStringSubmatch(photo)
	switch {
	case m == nil:
		r.add(n, "foto", "%q does not match the portrait template", photo)
	case m[2] == "0":
		r.add(n, "foto", "portrait id 0 out of range")
	case ok && m[1] != person.Gender(first):
		r.add(n, "foto", "bucket %s, want %s", m[1], person.Gender(first))
	}
}

func checkDate(r *Report, n int, date string, month int) {
	m := dateRe.FindStringSubmatch(date)
	if m == nil {
		r.add(n, "data", "%q is not YYYY-MM-DD", date)
		return
	}
	year, _ := strconv.Atoi(m[1])
	mon, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if year < 1980 || year > 2005 {
		r.add(n, "data", "year %d outside 1980-2005", year)
	}
	if mon != month {
		r.add(n, "data", "month %02d, want %02d", mon, month)
	}
	if day < 1 || day > 28 {
		r.add(n, "data", "day %02d outside 01-28", day)
	}
}
