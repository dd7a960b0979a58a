package id

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// MaxLength bounds ids accepted from callers.
const MaxLength = 128

const defaultRandomBytes = 15

var lowerBase32 = base32.NewEncoding("0123456789abcdefghjkmnpqrstvwxyz").WithPadding(base32.NoPadding)

// Generator creates opaque ids for request correlation.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces crockford-style base32 ids, optionally prefixed.
type RandomGenerator struct {
	prefix string
	size   int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: defaultRandomBytes}
}

// NewPrefixedGenerator returns ids shaped like "<prefix>_<random>".
func NewPrefixedGenerator(prefix string) *RandomGenerator {
	g := NewRandomGenerator()
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		g.prefix = prefix + "_"
	}
	return g
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = defaultRandomBytes
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return g.prefix + lowerBase32.EncodeToString(buf), nil
}

// Acceptable reports whether raw is safe to echo and log: non-empty, at most
// MaxLength bytes, and limited to letters, digits and "-_.:".
func Acceptable(raw string) bool {
	if raw == "" || len(raw) > MaxLength {
		return false
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}
