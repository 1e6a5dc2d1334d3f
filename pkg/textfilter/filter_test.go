package textfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfanityFilter_FilterText(t *testing.T) {
	filter := NewProfanityFilter()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single word", input: "Get out of my tavern, you bastard.", want: "Get out of my tavern, you jerk."},
		{name: "two words", input: "Damn tide took the whole crap catch.", want: "Dang tide took the whole crud catch."},
		{name: "shouting keeps upper case", input: "HELL NO, not the lighthouse!", want: "HECK NO, not the lighthouse!"},
		{name: "mixed case copied rune by rune", input: "DaMn gulls.", want: "DaNg gulls."},
		{name: "plural keeps its s", input: "Those bastards cut my nets.", want: "Those jerks cut my nets."},
		{name: "censored words take no plural", input: "sluts", want: "[censored]"},
		{name: "longest word wins", input: "Quiet, jackass.", want: "Quiet, jerk."},
		{name: "embedded letters are left alone", input: "A classical passage through the hellebore.", want: "A classical passage through the hellebore."},
		{name: "process is not ass plus s", input: "Let me process that.", want: "Let me process that."},
		{name: "punctuation around words", input: "Hell?! Damn.", want: "Heck?! Dang."},
		{name: "clean text", input: "The fog rolls in.", want: "The fog rolls in."},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.FilterText(tt.input))
		})
	}
}

func TestProfanityFilter_ContainsProfanity(t *testing.T) {
	filter := NewProfanityFilter()

	assert.True(t, filter.ContainsProfanity("What the hell was that?"))
	assert.True(t, filter.ContainsProfanity("BULLSHIT, says Bram."))
	assert.True(t, filter.ContainsProfanity("jesus christ, the fog"))
	assert.False(t, filter.ContainsProfanity("Bram passes the classical chart."))
	assert.False(t, filter.ContainsProfanity(""))
}

func TestPreserveCase(t *testing.T) {
	tests := []struct {
		original, replacement, want string
	}{
		{"hell", "heck", "heck"},
		{"HELL", "heck", "HECK"},
		{"Hell", "heck", "Heck"},
		{"hElL", "heck", "hEcK"},
		{"Ass", "butt", "Butt"},
		{"", "heck", "heck"},
		{"aSS", "tough", "tOUgh"},
	}
	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			assert.Equal(t, tt.want, preserveCase(tt.original, tt.replacement))
		})
	}
}
