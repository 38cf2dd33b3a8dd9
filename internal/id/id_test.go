package id

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{"0", 0},
		{"1", 1},
		{"42", 42},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParse_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"-1",
		"1.5",
		"abc",
		" 1",
	}
	for _, input := range badInputs {
		_, err := Parse(input)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "expected error for input: %q", input)
		assert.Equal(t, input, pe.ID)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	}
}

func TestParse_NotCanonical(t *testing.T) {
	for _, input := range []string{"01", "007", "00"} {
		_, err := Parse(input)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "input: %q", input)
		assert.ErrorIs(t, err, ErrNotCanonical)
	}
}

func TestNext_RejectsNotCanonical(t *testing.T) {
	_, err := Next([]string{"1", "02"})
	assert.ErrorIs(t, err, ErrNotCanonical)
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare("2", "10"))
	assert.Equal(t, 1, Compare("10", "9"))
	assert.Equal(t, 0, Compare("5", "5"))
}

func TestNext(t *testing.T) {
	tests := []struct {
		ids  []string
		want string
	}{
		{[]string{"1", "3", "5"}, "6"},
		{[]string{"5", "3", "1"}, "6"},
		{[]string{"0"}, "1"},
		{nil, First},
		{[]string{}, First},
	}
	for _, tt := range tests {
		got, err := Next(tt.ids)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Next(%v)", tt.ids)
	}
}

func TestNext_Errors(t *testing.T) {
	_, err := Next([]string{"1", "two"})
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)

	_, err = Next([]string{Format(^uint64(0))})
	assert.ErrorContains(t, err, "exhausted")
}
