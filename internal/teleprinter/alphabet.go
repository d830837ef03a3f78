package teleprinter

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Impulses is the number of bits in one teleprinter character.
const Impulses = 5

// Size is the number of code points in an ITA2 alphabet.
const Size = 1 << Impulses

// Shiftless is the Bletchley Park shiftless ITA2 alphabet.
const Shiftless = "/T3O9HNM4LRGIPCVEZDBSYFXAWJ+UQK8"

var (
	// ErrIllegalCharacter is returned when text contains a rune with no code point.
	ErrIllegalCharacter = errors.New("teleprinter: illegal character")

	// ErrIllegalSymbol is returned when a code point is outside [0, 32).
	ErrIllegalSymbol = errors.New("teleprinter: illegal symbol")

	// ErrBadAlphabet is returned by NewAlphabet for malformed tables.
	ErrBadAlphabet = errors.New("teleprinter: bad alphabet")
)

// Alphabet maps the 32 ITA2 code points to characters.
type Alphabet struct {
	chars [Size]rune
	index map[rune]int
}

// Default is the shiftless alphabet. Encode and Decode use it.
var Default = MustAlphabet(Shiftless)

// NewAlphabet builds an alphabet from a 32-rune table. Letters must be upper
// case, since input text is upper-cased before lookup.
func NewAlphabet(table string) (*Alphabet, error) {
	table = norm.NFC.String(table)
	if n := utf8.RuneCountInString(table); n != Size {
		return nil, fmt.Errorf("%w: %d characters, want %d", ErrBadAlphabet, n, Size)
	}

	a := &Alphabet{
		index: make(map[rune]int, Size),
	}
	i := 0
	for _, r := range table {
		if j, dup := a.index[r]; dup {
			return nil, fmt.Errorf("%w: %q at %d and %d", ErrBadAlphabet, r, j, i)
		}
		a.chars[i] = r
		a.index[r] = i
		i++
	}
	return a, nil
}

// MustAlphabet is NewAlphabet that panics on error. Intended for package-level
// tables.
func MustAlphabet(table string) *Alphabet {
	a, err := NewAlphabet(table)
	if err != nil {
		panic(err)
	}
	return a
}

// Encode converts text to code points. Letters are matched case-insensitively.
func (a *Alphabet) Encode(text string) ([]int, error) {
	// Casers carry state, so each call gets its own.
	text = cases.Upper(language.Und).String(norm.NFC.String(text))

	out := make([]int, 0, len(text))
	for pos, r := range text {
		cp, ok := a.index[r]
		if !ok {
			return nil, fmt.Errorf("%w %q at offset %d", ErrIllegalCharacter, r, pos)
		}
		out = append(out, cp)
	}
	return out, nil
}

// Decode converts code points to text.
func (a *Alphabet) Decode(symbols []int) (string, error) {
	var b strings.Builder
	b.Grow(len(symbols))
	for i, s := range symbols {
		if s < 0 || s >= Size {
			return "", fmt.Errorf("%w %d at index %d", ErrIllegalSymbol, s, i)
		}
		b.WriteRune(a.chars[s])
	}
	return b.String(), nil
}

// String returns the alphabet table.
func (a *Alphabet) String() string {
	return string(a.chars[:])
}

// Encode converts text with the Default alphabet.
func Encode(text string) ([]int, error) {
	return Default.Encode(text)
}

// Decode converts code points with the Default alphabet.
func Decode(symbols []int) (string, error) {
	return Default.Decode(symbols)
}
