package shortid

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func base62(t *testing.T) *Charset {
	t.Helper()
	cs, err := NewCharset(Flags{Numeric: true, Lowercase: true, Uppercase: true})
	if err != nil {
		t.Fatalf("NewCharset: %v", err)
	}
	return cs
}

func full(t *testing.T) *Charset {
	t.Helper()
	cs, err := NewCharset(Flags{Numeric: true, Lowercase: true, Uppercase: true, Special: true})
	if err != nil {
		t.Fatalf("NewCharset: %v", err)
	}
	return cs
}

func snippy(t *testing.T) *Obfuscator {
	t.Helper()
	o, err := NewObfuscator(full(t), "snippy")
	if err != nil {
		t.Fatalf("NewObfuscator: %v", err)
	}
	return o
}

func TestNewCharset(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  string
	}{
		{"numeric only", Flags{Numeric: true}, digits},
		{"lower and upper", Flags{Lowercase: true, Uppercase: true}, lowercase + uppercase},
		{"special only", Flags{Special: true}, "~_-."},
		{"all", Flags{true, true, true, true}, digits + lowercase + uppercase + special},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := NewCharset(tt.flags)
			if err != nil {
				t.Fatalf("NewCharset: %v", err)
			}
			if cs.String() != tt.want {
				t.Errorf("String() = %q, want %q", cs.String(), tt.want)
			}
			if cs.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", cs.Len(), len(tt.want))
			}
		})
	}
}

func TestNewCharset_Empty(t *testing.T) {
	cs, err := NewCharset(Flags{})
	if cs != nil {
		t.Errorf("expected nil charset, got %q", cs.String())
	}
	if !errors.Is(err, ErrEmptyCharset) {
		t.Errorf("err = %v, want ErrEmptyCharset", err)
	}
}

func TestCharset_Lookup(t *testing.T) {
	cs := full(t)

	if got := cs.At(0); got != '0' {
		t.Errorf("At(0) = %q", got)
	}
	if got := cs.At(cs.Len() - 1); got != '.' {
		t.Errorf("At(last) = %q", got)
	}
	for r, want := range map[rune]int{'a': 10, 'A': 36, '$': -1, 'é': -1} {
		if got := cs.IndexOf(r); got != want {
			t.Errorf("IndexOf(%q) = %d, want %d", r, got, want)
		}
	}

	for s, want := range map[string]bool{"": true, "aZ9~_-.": true, "abc$": false} {
		if got := cs.Validate(s); got != want {
			t.Errorf("Validate(%q) = %v, want %v", s, got, want)
		}
	}
	if base62(t).Validate("a-b") {
		t.Error("base62 accepted a special symbol")
	}
}

func TestCodec_KnownValues(t *testing.T) {
	c := NewCodec(base62(t))

	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{9, "9"},
		{10, "a"},
		{61, "Z"},
		{62, "10"},
		{12345, "3d7"},
	}
	for _, tt := range tests {
		if got := c.Encode(tt.n); got != tt.want {
			t.Errorf("Encode(%d) = %q, want %q", tt.n, got, tt.want)
		}
		got, err := c.Decode(tt.want)
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.want, err)
		}
		if got != tt.n {
			t.Errorf("Decode(%q) = %d, want %d", tt.want, got, tt.n)
		}
	}
}

func TestCodec_ZeroIsFirstSymbol(t *testing.T) {
	for _, cs := range []*Charset{base62(t), full(t)} {
		c := NewCodec(cs)
		first := string(cs.At(0))
		if got := c.Encode(0); got != first {
			t.Errorf("Encode(0) = %q, want %q", got, first)
		}
		n, err := c.Decode(first)
		if err != nil || n != 0 {
			t.Errorf("Decode(%q) = %d, %v; want 0", first, n, err)
		}
	}

	lower, err := NewCharset(Flags{Lowercase: true})
	if err != nil {
		t.Fatalf("NewCharset: %v", err)
	}
	if got := NewCodec(lower).Encode(0); got != "a" {
		t.Errorf("lowercase Encode(0) = %q, want %q", got, "a")
	}
}

func TestCodec_EmptyDecodesToZero(t *testing.T) {
	n, err := NewCodec(base62(t)).Decode("")
	if err != nil || n != 0 {
		t.Errorf("Decode(\"\") = %d, %v; want 0", n, err)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec(full(t))
	check := func(n uint64) {
		t.Helper()
		got, err := c.Decode(c.Encode(n))
		if err != nil {
			t.Fatalf("Decode(Encode(%d)): %v", n, err)
		}
		if got != n {
			t.Fatalf("Decode(Encode(%d)) = %d", n, got)
		}
	}

	for n := uint64(0); n < 10000; n++ {
		check(n)
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for range 5000 {
		check(uint64(rng.Int64N(math.MaxInt64)))
	}
	check(math.MaxUint64)
}

func TestCodec_NoLeadingZeros(t *testing.T) {
	c := NewCodec(base62(t))
	for _, n := range []uint64{1, 62, 3844, 1 << 40} {
		if s := c.Encode(n); s[0] == '0' {
			t.Errorf("Encode(%d) = %q has a leading zero", n, s)
		}
	}
}

func TestCodec_DecodeInvalidSymbol(t *testing.T) {
	c := NewCodec(base62(t))

	for _, s := range []string{"$", "abc!", "a b", "~"} {
		if _, err := c.Decode(s); !errors.Is(err, ErrInvalidSymbol) {
			t.Errorf("Decode(%q) err = %v, want ErrInvalidSymbol", s, err)
		}
	}
}

func TestCodec_DecodeOverflow(t *testing.T) {
	c := NewCodec(base62(t))

	for _, s := range []string{c.Encode(math.MaxUint64) + "0", "zzzzzzzzzzzz"} {
		if _, err := c.Decode(s); !errors.Is(err, ErrOverflow) {
			t.Errorf("Decode(%q) err = %v, want ErrOverflow", s, err)
		}
	}
}

func TestNewObfuscator_InvalidPassphrase(t *testing.T) {
	o, err := NewObfuscator(full(t), "invalid!")
	if o != nil {
		t.Error("expected nil obfuscator")
	}
	if !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("err = %v, want ErrInvalidSymbol", err)
	}
}

func TestObfuscator_Deterministic(t *testing.T) {
	a, b := snippy(t), snippy(t)
	if a.permuted.String() != b.permuted.String() || a.shift != b.shift {
		t.Error("same passphrase produced different mappings")
	}

	other, err := NewObfuscator(full(t), "another")
	if err != nil {
		t.Fatalf("NewObfuscator: %v", err)
	}
	if a.permuted.String() == other.permuted.String() {
		t.Error("different passphrases produced the same permutation")
	}
}

func TestObfuscator_PermutationKeepsSymbols(t *testing.T) {
	cs := full(t)
	o := snippy(t)

	if o.permuted.Len() != cs.Len() {
		t.Errorf("permuted Len() = %d, want %d", o.permuted.Len(), cs.Len())
	}
	if !cs.Validate(o.permuted.String()) || !o.permuted.Validate(cs.String()) {
		t.Error("permutation changed the symbol set")
	}
	if o.shift < 0 || o.shift >= cs.Len() {
		t.Errorf("shift = %d, out of range", o.shift)
	}
}

func TestObfuscator_RoundTrip(t *testing.T) {
	cs := full(t)
	o := snippy(t)

	inputs := []string{"", "0", "test", "aZ9~_-.", cs.String()}
	c := NewCodec(cs)
	for n := uint64(0); n < 2000; n++ {
		inputs = append(inputs, c.Encode(n*7919))
	}

	for _, in := range inputs {
		tr, err := o.Transform(in)
		if err != nil {
			t.Fatalf("Transform(%q): %v", in, err)
		}
		if len(tr) != len(in) || !cs.Validate(tr) {
			t.Errorf("Transform(%q) = %q", in, tr)
		}
		back, err := o.Restore(tr)
		if err != nil {
			t.Fatalf("Restore(%q): %v", tr, err)
		}
		if back != in {
			t.Fatalf("Restore(Transform(%q)) = %q", in, back)
		}
	}
}

func TestObfuscator_ChangesEverySymbol(t *testing.T) {
	cs := full(t)

	// A non-zero rotation of the shuffled alphabet has no fixed points.
	var o *Obfuscator
	for _, p := range []string{"snippy", "vite", "passphrase", "abc", "xyz123"} {
		cand, err := NewObfuscator(cs, p)
		if err != nil {
			t.Fatalf("NewObfuscator(%q): %v", p, err)
		}
		if cand.shift != 0 {
			o = cand
			break
		}
	}
	if o == nil {
		t.Fatal("every passphrase produced a zero rotation")
	}

	tr, err := o.Transform(cs.String())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	for i := 0; i < len(tr); i++ {
		if tr[i] == cs.At(i) {
			t.Errorf("symbol %q maps to itself", tr[i])
		}
	}
}

func TestObfuscator_Empty(t *testing.T) {
	o := snippy(t)

	if tr, err := o.Transform(""); err != nil || tr != "" {
		t.Errorf("Transform(\"\") = %q, %v", tr, err)
	}
	if r, err := o.Restore(""); err != nil || r != "" {
		t.Errorf("Restore(\"\") = %q, %v", r, err)
	}
}

func TestObfuscator_InvalidInput(t *testing.T) {
	o := snippy(t)

	if _, err := o.Transform("test!"); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("Transform err = %v, want ErrInvalidSymbol", err)
	}
	if _, err := o.Restore("te st"); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("Restore err = %v, want ErrInvalidSymbol", err)
	}
}
