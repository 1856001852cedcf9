// Package person generates fictitious people for birthday sample data.
// Every draw goes through an explicit *rand.Rand so runs can be seeded.
package person

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the ISO date form written for birthdates.
const DateLayout = "2006-01-02"

// gender buckets used in portrait URLs
const (
	Women = "women"
	Men   = "men"
)

// Person holds one generated record.
type Person struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Birthdate time.Time `json:"birthdate"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	PhotoURL  string    `json:"photo_url"`
}

// Name returns "first last".
func (p Person) Name() string {
	return p.FirstName + " " + p.LastName
}

// Date returns the birthdate as YYYY-MM-DD.
func (p Person) Date() string {
	return p.Birthdate.Format(DateLayout)
}

// Fields returns the record in output column order.
func (p Person) Fields() []string {
	return []string{p.Name(), p.Date(), p.Phone, p.Email, p.PhotoURL}
}

// Email derives the address for a name: first.last@exemplo.com, each part
// lower-cased on its own.
func Email(first, last string) string {
	lower := cases.Lower(language.Und)
	return lower.String(first) + "." + lower.String(last) + "@" + emailDomain
}

// Gender picks the portrait bucket from the first name. Names ending in a
// lower-case "a" go to women, everything else to men.
func Gender(first string) string {
	if strings.HasSuffix(first, "a") {
		return Women
	}
	return Men
}
