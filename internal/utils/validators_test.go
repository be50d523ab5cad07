package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBudget(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "dollars suffix", input: "50$", want: 50, wantOK: true},
		{name: "rubles suffix", input: "3000₽", want: 3000, wantOK: true},
		{name: "words only", input: "about fifty", wantOK: false},
		{name: "no numbers", input: "no numbers here", wantOK: false},
		{name: "zero is a valid parse", input: "0", want: 0, wantOK: true},
		{name: "zero with currency word", input: "0 rub", want: 0, wantOK: true},
		{name: "first run wins", input: "between 100 and 200", want: 100, wantOK: true},
		{name: "leading zeros", input: "$007", want: 7, wantOK: true},
		{name: "punctuation splits runs", input: "1,500", want: 1, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "arabic-indic digits", input: "٥٠$", want: 50, wantOK: true},
		{name: "fullwidth digits", input: "５０$", want: 50, wantOK: true},
		{name: "mathematical bold digits", input: "𝟓𝟎 руб", want: 50, wantOK: true},
		{name: "devanagari digits", input: "१२३", want: 123, wantOK: true},
		{name: "overflow saturates", input: "99999999999999999999999", want: math.MaxInt, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBudget(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	_, err := ValidateName("A")
	assert.Error(t, err)

	_, err = ValidateName("   A   ")
	assert.Error(t, err)

	name, err := ValidateName("  Al ")
	require.NoError(t, err)
	assert.Equal(t, "Al", name)

	// Длина считается в символах, а не в байтах
	_, err = ValidateName("Я")
	assert.Error(t, err)
	name, err = ValidateName("Ян")
	require.NoError(t, err)
	assert.Equal(t, "Ян", name)
}

func TestValidateTask(t *testing.T) {
	_, err := ValidateTask("fix")
	assert.Error(t, err)

	task, err := ValidateTask(" fix my bug ")
	require.NoError(t, err)
	assert.Equal(t, "fix my bug", task)

	task, err = ValidateTask("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", task)
}

func TestParseOrderID(t *testing.T) {
	id, err := ParseOrderID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "-1", "1a", "+3", "１２"} {
		_, err := ParseOrderID(bad)
		assert.Error(t, err, bad)
	}
}
