// Package employeeid derives the human readable login code assigned to every account.
package employeeid

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const (
	Prefix    = "OI"
	Length    = 14
	minSerial = 1000
	maxSerial = 9999
)

var pattern = regexp.MustCompile(`^OI[A-Z]{4}\d{8}$`)

// Generate builds OI + initials + year + serial. serial must be in [1000, 9999].
func Generate(name string, year, serial int) string {
	return fmt.Sprintf("%s%s%04d%04d", Prefix, Initials(name), year, serial)
}

// Initials returns the four letter block for name, padded with X.
func Initials(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || r == ' ' {
			b.WriteRune(r)
		}
	}

	var tokens []string
	for _, token := range strings.Split(b.String(), " ") {
		if token != "" {
			tokens = append(tokens, token)
		}
	}

	var initials string
	switch {
	case len(tokens) >= 2:
		initials = head(tokens[0], 2) + head(tokens[len(tokens)-1], 2)
	case len(tokens) == 1:
		initials = head(tokens[0], 4)
	}
	return initials + strings.Repeat("X", 4-len(initials))
}

func head(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// Valid reports whether id has the OI + initials + year + serial shape,
// e.g. OIJODO20231234.
func Valid(id string) bool {
	return pattern.MatchString(id)
}

// Generator draws the year from its clock and the serial from its random source.
type Generator struct {
	Now    func() time.Time
	Serial func() int
}

// NewGenerator uses the wall clock and a uniform serial in [1000, 9999].
func NewGenerator() *Generator {
	return &Generator{
		Now: time.Now,
		Serial: func() int {
			return minSerial + rand.Intn(maxSerial-minSerial+1)
		},
	}
}

func (g *Generator) New(name string) string {
	return Generate(name, g.Now().Year(), g.Serial())
}
