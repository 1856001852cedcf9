// Package dataset assembles generated people into the birthday sample file.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zbday/internal/person"
)

// Header is the first line of every generated file.
const Header = "nome,data,telefone,email,foto"

// Months is the number of month blocks in a dataset.
const Months = 12

// DefaultPerMonth is the number of records generated per month.
const DefaultPerMonth = 10

// Columns lists the header fields in output order.
var Columns = strings.Split(Header, ",")

// ErrUnknownFormat is returned by Encode for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// output formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Dataset is an ordered list of generated people, grouped by birth month.
type Dataset struct {
	PerMonth int
	People   []person.Person
}

// Build generates perMonth people for each month from January to December.
func Build(g *person.Generator, perMonth int) Dataset {
	people := make([]person.Person, 0, Months*perMonth)
	for m := time.January; m <= time.December; m++ {
		for range perMonth {
			people = append(people, g.Generate(m))
		}
	}
	return Dataset{PerMonth: perMonth, People: people}
}

// Len returns the number of data rows.
func (d Dataset) Len() int {
	return len(d.People)
}

// Lines returns the header followed by one comma-joined line per person.
func (d Dataset) Lines() []string {
	lines := make([]string, 0, len(d.People)+1)
	lines = append(lines, Header)
	for _, p := range d.People {
		lines = append(lines, strings.Join(p.Fields(), ","))
	}
	return lines
}

// CSV returns the file contents: lines joined by "\n", no trailing newline.
// Fields are never quoted since generated values contain no commas.
func (d Dataset) CSV() []byte {
	return []byte(strings.Join(d.Lines(), "\n"))
}

// birthday is the record shape the reminder app imports.
type birthday struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"`
}

// JSON returns the dataset as an indented array of app birthday records,
// each with a fresh random id.
func (d Dataset) JSON() ([]byte, error) {
	out := make([]birthday, 0, len(d.People))
	for _, p := range d.People {
		out = append(out, birthday{
			ID:       uuid.NewString(),
			Name:     p.Name(),
			Date:     p.Date(),
			Phone:    p.Phone,
			Email:    p.Email,
			PhotoURL: p.PhotoURL,
		})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return b, nil
}

// Encode renders the dataset in the named format.
func (d Dataset) Encode(format string) ([]byte, error) {
	switch format {
	case FormatCSV, "":
		return d.CSV(), nil
	case FormatJSON:
		return d.JSON()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Write creates or overwrites name in fsys with data in a single write.
func Write(ctx context.Context, fsys zfilesystem.ReadWriteFileFS, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := fsys.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
