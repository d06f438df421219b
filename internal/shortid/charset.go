// Package shortid converts store ids to short URL-safe identifiers and back.
//
// A Charset fixes the numeral alphabet, a Codec performs base-N conversion over
// it, and an optional Obfuscator scrambles the alphabet with a passphrase so
// consecutive ids do not produce visibly consecutive identifiers. All three
// are immutable once built and safe for concurrent use.
package shortid

import (
	"errors"
	"strings"
)

const (
	digits    = "0123456789"
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	special   = "~_-."
)

var (
	// ErrEmptyCharset is returned when no symbol class is selected.
	ErrEmptyCharset = errors.New("at least one charset class must be enabled")

	// ErrInvalidSymbol is returned when input contains a symbol outside the charset.
	ErrInvalidSymbol = errors.New("symbol not in charset")
)

// Flags selects which symbol classes make up a Charset.
type Flags struct {
	Numeric   bool
	Lowercase bool
	Uppercase bool
	Special   bool
}

// Charset is an ordered alphabet of unique URL-safe symbols.
// The position of a symbol is its digit value.
type Charset struct {
	symbols string
	index   [128]int8
}

// NewCharset builds the alphabet from flags in canonical order:
// digits, lowercase, uppercase, then "~_-.".
func NewCharset(f Flags) (*Charset, error) {
	var b strings.Builder
	if f.Numeric {
		b.WriteString(digits)
	}
	if f.Lowercase {
		b.WriteString(lowercase)
	}
	if f.Uppercase {
		b.WriteString(uppercase)
	}
	if f.Special {
		b.WriteString(special)
	}
	if b.Len() == 0 {
		return nil, ErrEmptyCharset
	}
	return newCharset(b.String()), nil
}

// newCharset indexes an alphabet already known to be unique ASCII.
func newCharset(symbols string) *Charset {
	cs := &Charset{symbols: symbols}
	for i := range cs.index {
		cs.index[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		cs.index[symbols[i]] = int8(i)
	}
	return cs
}

// Len returns the number of symbols, which is the numeral base.
func (c *Charset) Len() int { return len(c.symbols) }

// At returns the symbol with digit value i.
func (c *Charset) At(i int) byte { return c.symbols[i] }

// IndexOf returns the digit value of r, or -1 if r is not in the charset.
func (c *Charset) IndexOf(r rune) int {
	if r < 0 || r >= rune(len(c.index)) {
		return -1
	}
	return int(c.index[r])
}

// Validate reports whether every character of s belongs to the charset.
// The empty string is valid.
func (c *Charset) Validate(s string) bool {
	for _, r := range s {
		if c.IndexOf(r) < 0 {
			return false
		}
	}
	return true
}

// String returns the symbols in order.
func (c *Charset) String() string { return c.symbols }
