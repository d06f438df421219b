package shortid

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
)

// Obfuscator is a keyed substitution over a Charset. The passphrase seeds a
// shuffle of the alphabet and a fixed rotation applied on top of it, so the
// same passphrase always yields the same mapping across restarts.
//
// It hides the sequential nature of ids from casual inspection. It is not
// encryption.
type Obfuscator struct {
	permuted *Charset
	shift    int
}

// NewObfuscator derives the substitution for passphrase. Every symbol of the
// passphrase must belong to cs.
func NewObfuscator(cs *Charset, passphrase string) (*Obfuscator, error) {
	if !cs.Validate(passphrase) {
		return nil, fmt.Errorf("passphrase: %w", ErrInvalidSymbol)
	}

	symbols := []byte(cs.String())
	seed := sha256.Sum256([]byte(passphrase))
	rng := rand.New(rand.NewChaCha8(seed))
	rng.Shuffle(len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})
	permuted := newCharset(string(symbols))

	shift := 0
	for _, r := range passphrase {
		shift += permuted.IndexOf(r)
	}

	return &Obfuscator{
		permuted: permuted,
		shift:    shift % permuted.Len(),
	}, nil
}

// Transform scrambles s. The empty string is returned unchanged.
func (o *Obfuscator) Transform(s string) (string, error) {
	return o.translate(s, o.shift)
}

// Restore reverses Transform.
func (o *Obfuscator) Restore(s string) (string, error) {
	return o.translate(s, -o.shift)
}

func (o *Obfuscator) translate(s string, shift int) (string, error) {
	base := o.permuted.Len()
	out := make([]byte, 0, len(s))
	for pos, r := range s {
		i := o.permuted.IndexOf(r)
		if i < 0 {
			return "", fmt.Errorf("%w: %q at position %d", ErrInvalidSymbol, r, pos)
		}
		// Go's % keeps the sign of the dividend; add base to wrap negatives.
		out = append(out, o.permuted.At(((i+shift)%base+base)%base))
	}
	return string(out), nil
}
