package person

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/zarlcorp/core/pkg/zcrypto"
)

// Generator produces people from an explicit random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator drawing from r.
func New(r *rand.Rand) *Generator {
	return &Generator{rng: r}
}

// NewSeeded creates a generator whose output is fully determined by seed.
func NewSeeded(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewRandom creates a generator seeded from crypto/rand.
func NewRandom() (*Generator, error) {
	b, err := zcrypto.RandBytes(16)
	if err != nil {
		return nil, fmt.Errorf("seed generator: %w", err)
	}
	s1 := binary.LittleEndian.Uint64(b[:8])
	s2 := binary.LittleEndian.Uint64(b[8:])
	return New(rand.New(rand.NewPCG(s1, s2))), nil
}

// Generate produces a complete person born in the given month.
func (g *Generator) Generate(month time.Month) Person {
	first, last := g.Name()
	return Person{
		FirstName: first,
		LastName:  last,
		Birthdate: g.Birthdate(month),
		Phone:     g.Phone(),
		Email:     Email(first, last),
		PhotoURL:  g.PhotoURL(first),
	}
}

// Name draws a first/last name pair, each independently with replacement.
func (g *Generator) Name() (first, last string) {
	return g.pick(firstNames), g.pick(lastNames)
}

// Birthdate draws a year in 1980-2005 and a day in 1-28 for month.
func (g *Generator) Birthdate(month time.Month) time.Time {
	year := g.between(minYear, maxYear)
	day := g.between(minDay, maxDay)
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Phone returns "119" followed by exactly eight random digits.
func (g *Generator) Phone() string {
	return fmt.Sprintf("%s%d", phonePrefix, g.between(minPhone, maxPhone))
}

// PhotoURL returns a randomuser.me portrait for the first name's bucket.
func (g *Generator) PhotoURL(first string) string {
	return fmt.Sprintf(photoURLFormat, Gender(first), g.between(minPhoto, maxPhoto))
}

// pick returns a random element from a string slice.
func (g *Generator) pick(s []string) string {
	return s[g.rng.IntN(len(s))]
}

// between returns a random int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
