package teleprinter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNonBinary is returned by DotCross for values other than 0 and 1.
	ErrNonBinary = errors.New("teleprinter: non-binary sequence")

	// ErrNotDotCross is returned by Binarify for runes other than '.' and '+'.
	ErrNotDotCross = errors.New("teleprinter: non-dotcross sequence")
)

const (
	dot   = '.'
	cross = '+'
)

// DotCross renders bits as dots (0) and crosses (1).
func DotCross(bits []int) (string, error) {
	var b strings.Builder
	b.Grow(len(bits))
	for i, bit := range bits {
		switch bit {
		case 0:
			b.WriteByte(dot)
		case 1:
			b.WriteByte(cross)
		default:
			return "", fmt.Errorf("%w: %d at index %d", ErrNonBinary, bit, i)
		}
	}
	return b.String(), nil
}

// Binarify parses dots and crosses into bits.
func Binarify(s string) ([]int, error) {
	bits := make([]int, 0, len(s))
	for pos, r := range s {
		switch r {
		case dot:
			bits = append(bits, 0)
		case cross:
			bits = append(bits, 1)
		default:
			return nil, fmt.Errorf("%w: %q at offset %d", ErrNotDotCross, r, pos)
		}
	}
	return bits, nil
}

// ImpulsesOf returns the five impulses of a code point, first impulse first.
// The first impulse is the most significant bit, matching the order in which
// a RotorSet packs its rotors.
func ImpulsesOf(symbol int) ([]int, error) {
	if symbol < 0 || symbol >= Size {
		return nil, fmt.Errorf("%w %d", ErrIllegalSymbol, symbol)
	}
	bits := make([]int, Impulses)
	for i := range bits {
		bits[i] = symbol >> (Impulses - 1 - i) & 1
	}
	return bits, nil
}
