package shortid

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrOverflow is returned when an identifier decodes past the uint64 range.
var ErrOverflow = errors.New("identifier exceeds the representable id range")

// Codec converts between non-negative integers and strings over a Charset.
type Codec struct {
	charset *Charset
}

// NewCodec returns a Codec using cs as its digit alphabet.
func NewCodec(cs *Charset) *Codec {
	return &Codec{charset: cs}
}

// Charset returns the alphabet the codec encodes with.
func (c *Codec) Charset() *Charset { return c.charset }

// Base is the numeral base, the size of the charset.
func (c *Codec) Base() int { return c.charset.Len() }

// Encode returns the minimal-length representation of n.
// Zero encodes to the first symbol of the charset.
func (c *Codec) Encode(n uint64) string {
	if n == 0 {
		return string(c.charset.At(0))
	}

	base := uint64(c.Base())
	// 64 digits is enough for any uint64 in base 2.
	var buf [64]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = c.charset.At(int(n % base))
		n /= base
	}
	return string(buf[i:])
}

// Decode evaluates s as a base-N numeral, most significant symbol first.
// The empty string decodes to 0.
func (c *Codec) Decode(s string) (uint64, error) {
	base := uint64(c.Base())

	var n uint64
	for pos, r := range s {
		d := c.charset.IndexOf(r)
		if d < 0 {
			return 0, fmt.Errorf("%w: %q at position %d", ErrInvalidSymbol, r, pos)
		}
		hi, lo := bits.Mul64(n, base)
		if hi != 0 {
			return 0, ErrOverflow
		}
		var carry uint64
		n, carry = bits.Add64(lo, uint64(d), 0)
		if carry != 0 {
			return 0, ErrOverflow
		}
	}
	return n, nil
}
