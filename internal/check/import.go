package check

import (
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strings"
)

var brDateRe = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// header aliases accepted by the importer, in lookup order
var (
	nameKeys  = []string{"nome", "name"}
	dateKeys  = []string{"data", "date", "aniversario", "nascimento"}
	phoneKeys = []string{"telefone", "celular", "phone"}
	emailKeys = []string{"email", "e-mail"}
)

// Row is one importable birthday.
type Row struct {
	Line  int
	Name  string
	Date  string // YYYY-MM-DD
	Phone string
	Email string
}

// Import reads a birthday CSV the way the app's bulk importer does. Fields
// may be quoted. Header names are matched case-insensitively against a few
// aliases. Rows without a name or date are skipped. Dates may be YYYY-MM-DD
// or DD/MM/YYYY; the latter is converted.
func Import(data []byte) ([]Row, []Issue) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff")))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows []Row
	var issues []Issue

	header, err := r.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			issues = append(issues, Issue{Line: 1, Msg: "unreadable header: " + err.Error()})
		}
		return nil, issues
	}

	cols := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				issues = append(issues, Issue{Line: perr.StartLine, Msg: "skipped: " + perr.Err.Error()})
				continue
			}
			issues = append(issues, Issue{Msg: err.Error()})
			break
		}
		n, _ := r.FieldPos(0)

		get := func(keys []string) string {
			for _, k := range keys {
				if idx, ok := cols[k]; ok && idx < len(fields) {
					if v := strings.TrimSpace(fields[idx]); v != "" {
						return v
					}
				}
			}
			return ""
		}

		name, date := get(nameKeys), get(dateKeys)
		if name == "" || date == "" {
			issues = append(issues, Issue{Line: n, Msg: "skipped: missing name or date"})
			continue
		}

		if !dateRe.MatchString(date) {
			m := brDateRe.FindStringSubmatch(date)
			if m == nil {
				issues = append(issues, Issue{Line: n, Field: "data", Msg: "invalid date " + date + " (use YYYY-MM-DD)"})
				continue
			}
			date = m[3] + "-" + m[2] + "-" + m[1]
		}

		rows = append(rows, Row{
			Line:  n,
			Name:  name,
			Date:  date,
			Phone: get(phoneKeys),
			Email: get(emailKeys),
		})
	}
	return rows, issues
}
