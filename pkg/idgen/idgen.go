// Package idgen generates entity identifiers of the form PREFIX-XXXXXX,
// where XXXXXX is an unpredictable 6-character token. Tokens are drawn from
// uuid entropy over an unambiguous alphabet (no I, L, O or U), and
// generation retries until the id is collision-free against the live
// collection.
package idgen

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

const (
	alphabet    = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	tokenLength = 6
	maxAttempts = 100
)

// Well-known prefixes of the internship management system.
const (
	PrefixOpportunity = "ITP"
	PrefixApplication = "APP"
	PrefixWithdrawal  = "WDR"
)

// ErrExhausted is returned when no collision-free id could be generated.
var ErrExhausted = errors.New("idgen: exhausted attempts without a collision-free id")

var idPattern = regexp.MustCompile(`^[A-Z]{3}-[0-9A-Z]{6}$`)

// Generator produces ids for one prefix.
type Generator struct {
	prefix string
}

// New creates a Generator for the given three-letter prefix.
func New(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Next returns a fresh id that the exists probe reports as unused.
func (g *Generator) Next(exists func(id string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id := g.prefix + "-" + token()
		taken, err := exists(id)
		if err != nil {
			return "", fmt.Errorf("idgen: exists probe: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}

// IsWellFormed reports whether the id matches the PREFIX-XXXXXX shape.
func IsWellFormed(id string) bool {
	return idPattern.MatchString(id)
}

// token draws tokenLength characters from fresh uuid bytes.
func token() string {
	raw := uuid.New()
	out := make([]byte, tokenLength)
	for i := 0; i < tokenLength; i++ {
		out[i] = alphabet[int(raw[i])%len(alphabet)]
	}
	return string(out)
}
