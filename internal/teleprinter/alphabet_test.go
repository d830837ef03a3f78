package teleprinter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codecCases = []struct {
	text    string
	symbols []int
}{
	{"ALAN99TURING", []int{24, 9, 24, 6, 4, 4, 1, 28, 10, 12, 6, 11}},
	{"BILL99TUTTE", []int{19, 12, 9, 9, 4, 4, 1, 28, 1, 1, 16}},
	{"BLETCHLEY99PARK", []int{19, 9, 16, 1, 14, 5, 9, 16, 21, 4, 4, 13, 24, 10, 30}},
	{"STATION99X", []int{20, 1, 24, 1, 12, 3, 6, 4, 4, 23}},
}

func TestEncode(t *testing.T) {
	for _, tc := range codecCases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := Encode(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.symbols, got)
		})
	}
}

func TestEncode_LowerCase(t *testing.T) {
	got, err := Encode("alan99turing")
	require.NoError(t, err)
	assert.Equal(t, codecCases[0].symbols, got)
}

func TestEncode_IllegalCharacter(t *testing.T) {
	_, err := Encode("ILLEGAL CHARACTERS!")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalCharacter)
	assert.Contains(t, err.Error(), "offset 7")
}

func TestEncode_Empty(t *testing.T) {
	got, err := Encode("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecode(t *testing.T) {
	for _, tc := range codecCases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := Decode(tc.symbols)
			require.NoError(t, err)
			assert.Equal(t, tc.text, got)
		})
	}

	got, err := Decode([]int{12, 9, 9, 16, 11, 24, 9, 14, 5, 24, 10, 24, 14, 1, 16, 10, 20})
	require.NoError(t, err)
	assert.Equal(t, "ILLEGALCHARACTERS", got)
}

func TestDecode_IllegalSymbol(t *testing.T) {
	for _, bad := range []int{-1, 32, 255} {
		_, err := Decode([]int{1, 2, bad})
		assert.ErrorIs(t, err, ErrIllegalSymbol, "symbol %d", bad)
	}
}

func TestDecode_EveryCodePoint(t *testing.T) {
	all := make([]int, Size)
	for i := range all {
		all[i] = i
	}
	got, err := Decode(all)
	require.NoError(t, err)
	assert.Equal(t, Shiftless, got)

	back, err := Encode(got)
	require.NoError(t, err)
	assert.Equal(t, all, back)
}

func TestNewAlphabet(t *testing.T) {
	custom := "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"
	a, err := NewAlphabet(custom)
	require.NoError(t, err)
	assert.Equal(t, custom, a.String())

	got, err := a.Encode("abc5")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 31}, got)
}

func TestNewAlphabet_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"too short", "ABC"},
		{"too long", Shiftless + "X"},
		{"duplicate", strings.Repeat("A", Size)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAlphabet(tc.table)
			assert.ErrorIs(t, err, ErrBadAlphabet)
		})
	}
}

func TestMustAlphabet_Panics(t *testing.T) {
	assert.Panics(t, func() { MustAlphabet("short") })
}
