package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpperCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"foobar", "Foobar"},
		{"FOOBAR", "Foobar"},
		{"f", "F"},
		{"", ""},
		{"éCLAIR", "Éclair"},
		{"spades", "Spades"},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, UpperCase(c.in))
		})
	}
}

func TestSnakeToCamel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"foo_bar", "fooBar"},
		{"FOO_BAR_BAZ", "fooBarBaz"},
		{"f", "f"},
		{"", ""},
		{"CHOOSE_VARIANT", "chooseVariant"},
		{"free_for_all", "freeForAll"},
		{"trailing_", "trailing"},
		{"double__underscore", "doubleUnderscore"},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, SnakeToCamel(c.in))
		})
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"chooseVariant", "CHOOSE_VARIANT"},
		{"sortHand", "SORT_HAND"},
		{"quit", "QUIT"},
		{"", ""},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := CamelToSnake(c.in)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.in, SnakeToCamel(got))
		})
	}
}
