package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pattern []int

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int", -100, "-100"},
		{"int64", int64(9223372036854775807), "9223372036854775807"},
		{"uint8", uint8(7), "7"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"empty array", []int{}, "[]"},
		{"named slice", pattern{1, 0, 1}, "[1,0,1]"},
		{"nested", [][]int{{1}, {0, 1}}, "[[1],[0,1]]"},
		{"empty object", map[string]any{}, "{}"},
		{"simple object", map[string]int{"a": 1}, `{"a":1}`},
		{"mixed any", []any{"x", 1, true}, `["x",1,true]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestMarshalSortedKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"b": 1, "a": 2},
		"beta":  3,
	}

	got, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":2,"b":1},"beta":3,"zebra":1}`, string(got))
}

func TestMarshalUTF16KeyOrder(t *testing.T) {
	// U+1F600 encodes as surrogates D83D DE00, which sort before U+FF61.
	obj := map[string]int{"｡": 1, "\U0001F600": 2}

	got, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"｡\":1}", string(got))
}

func TestMarshalStringEscaping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"line\nbreak", `"line\nbreak"`},
		{"\x01", `"\u0001"`},
		{"<&>", `"<&>"`},
		{" ", "\" \""},
		{"é", "\"é\""},
	}

	for _, tt := range tests {
		got, err := Marshal(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, string(got), "input %q", tt.input)
	}
}

func TestMarshalRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"float", 1.5},
		{"nested float", map[string]any{"x": []any{1, 2.5}}},
		{"nil in array", []any{nil}},
		{"struct", struct{ A int }{1}},
		{"int keys", map[int]int{1: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestHashWithDomain(t *testing.T) {
	a := HashWithDomain(DomainSetting, []byte(`{"a":1}`))
	b := HashWithDomain(DomainTrace, []byte(`{"a":1}`))

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b, "domains must separate identical data")
	assert.Equal(t, a, HashWithDomain(DomainSetting, []byte(`{"a":1}`)))
}

func TestHash_KeyOrderIndependent(t *testing.T) {
	a, err := Hash(DomainSetting, map[string]any{"chi": []int{1}, "mu": []int{0}})
	require.NoError(t, err)
	b, err := Hash(DomainSetting, map[string]any{"mu": []int{0}, "chi": []int{1}})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = Hash(DomainSetting, 0.5)
	assert.Error(t, err)
}
