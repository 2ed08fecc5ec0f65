package cmdparse

import (
	"fmt"
	"math"
	"strconv"
)

// Bounds is an inclusive range for float values where either end may be
// left open.
type Bounds struct {
	min, max       float64
	hasMin, hasMax bool
}

// Between returns bounds enforcing both ends of [min, max].
func Between(min, max float64) Bounds {
	return Bounds{min: min, max: max, hasMin: true, hasMax: true}
}

// AtLeast returns bounds with only a lower limit.
func AtLeast(min float64) Bounds {
	return Bounds{min: min, hasMin: true}
}

// AtMost returns bounds with only an upper limit.
func AtMost(max float64) Bounds {
	return Bounds{max: max, hasMax: true}
}

// Unbounded returns bounds that accept every value.
func Unbounded() Bounds {
	return Bounds{}
}

// Contains reports whether v satisfies every limit that is set. NaN
// fails as soon as one limit is set.
func (b Bounds) Contains(v float64) bool {
	if (b.hasMin || b.hasMax) && math.IsNaN(v) {
		return false
	}
	if b.hasMin && v < b.min {
		return false
	}
	if b.hasMax && v > b.max {
		return false
	}
	return true
}

func (b Bounds) String() string {
	lo, hi := "-inf", "+inf"
	if b.hasMin {
		lo = strconv.FormatFloat(b.min, 'g', -1, 64)
	}
	if b.hasMax {
		hi = strconv.FormatFloat(b.max, 'g', -1, 64)
	}
	return "[" + lo + ", " + hi + "]"
}

// Token returns the token at index i.
func (t *Tokenizer) Token(i int) (string, error) {
	if i < 0 || i >= len(t.tokens) {
		return "", fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(t.tokens))
	}
	return t.tokens[i], nil
}

// Int parses the token at index i as a base 10 integer. The whole
// token must be a number: "2.0" and "12abc" give ErrNotNumeric rather
// than their leading digits.
func (t *Tokenizer) Int(i int) (int64, error) {
	tok, err := t.Token(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, tok)
	}
	return v, nil
}

// Float parses the token at index i as a float. Trailing garbage such
// as "1.5x" gives ErrNotNumeric.
func (t *Tokenizer) Float(i int) (float64, error) {
	tok, err := t.Token(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, tok)
	}
	return v, nil
}

// Equals reports whether the token at index i is exactly other. It is
// false for an index that holds no token.
func (t *Tokenizer) Equals(i int, other string) bool {
	tok, err := t.Token(i)
	return err == nil && tok == other
}

// CopyText copies the token at index i into dst and returns the number
// of bytes copied. Tokens longer than dst are truncated.
func (t *Tokenizer) CopyText(i int, dst []byte) (int, error) {
	tok, err := t.Token(i)
	if err != nil {
		return 0, err
	}
	return copy(dst, tok), nil
}

// Text returns at most maxLen bytes of the token at index i.
func (t *Tokenizer) Text(i, maxLen int) (string, error) {
	tok, err := t.Token(i)
	if err != nil {
		return "", err
	}
	if maxLen < 0 {
		maxLen = 0
	}
	if len(tok) > maxLen {
		tok = tok[:maxLen]
	}
	return tok, nil
}

// CheckedInt parses the token at index i and rejects values outside
// [min, max].
func (t *Tokenizer) CheckedInt(i int, min, max int64) (int64, error) {
	v, err := t.Int(i)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v, min, max)
	}
	return v, nil
}

// CheckedFloat parses the token at index i and rejects values that
// violate b.
func (t *Tokenizer) CheckedFloat(i int, b Bounds) (float64, error) {
	v, err := t.Float(i)
	if err != nil {
		return 0, err
	}
	if !b.Contains(v) {
		return 0, fmt.Errorf("%w: %g not in %s", ErrOutOfRange, v, b)
	}
	return v, nil
}
