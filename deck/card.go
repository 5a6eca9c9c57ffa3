package deck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minaorangina/spades/strcase"
)

var (
	ErrOutOfRange  = errors.New("arguments out of range")
	ErrUnknownCode = errors.New("unknown card code")
)

// Suit represents a suit in a deck of cards
type Suit int

var (
	suitNames = []string{"SPADES", "CLUBS", "HEARTS", "DIAMONDS"}
	suitCodes = []string{"s", "c", "h", "d"}
)

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

func (s Suit) String() string {
	return strcase.UpperCase(suitNames[s])
}

// Code is the single letter used in card image names
func (s Suit) Code() string {
	return suitCodes[s]
}

// Value represents a card's face value, highest first
type Value int

var (
	valueNames = []string{"ACE", "KING", "QUEEN", "JACK", "TEN", "NINE", "EIGHT", "SEVEN", "SIX", "FIVE", "FOUR", "THREE", "TWO"}
	valueCodes = []string{"a", "k", "q", "j", "0", "9", "8", "7", "6", "5", "4", "3", "2"}
)

const (
	Ace Value = iota
	King
	Queen
	Jack
	Ten
	Nine
	Eight
	Seven
	Six
	Five
	Four
	Three
	Two
)

func (v Value) String() string {
	return strcase.UpperCase(valueNames[v])
}

// Code is the single character used in card image names
func (v Value) Code() string {
	return valueCodes[v]
}

// Card represents a playing card
type Card struct {
	Suit  Suit
	Value Value
}

// NewCard constructs a card
func NewCard(v Value, s Suit) (Card, error) {
	if v < Ace || v > Two || s < Spades || s > Diamonds {
		return Card{}, ErrOutOfRange
	}
	return Card{Suit: s, Value: v}, nil
}

// ParseCode parses a card code such as "sa" (ace of spades) or "h0" (ten of hearts)
func ParseCode(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("%w %q", ErrUnknownCode, code)
	}

	s := indexOf(suitCodes, strings.ToLower(code[:1]))
	v := indexOf(valueCodes, strings.ToLower(code[1:]))
	if s < 0 || v < 0 {
		return Card{}, fmt.Errorf("%w %q", ErrUnknownCode, code)
	}

	return Card{Suit: Suit(s), Value: Value(v)}, nil
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Value, c.Suit)
}

// Code is the card's image code, suit then value
func (c Card) Code() string {
	return c.Suit.Code() + c.Value.Code()
}

// Alt is the card's image alt text
func (c Card) Alt() string {
	return fmt.Sprintf("The %s of %s", strings.ToLower(valueNames[c.Value]), strings.ToLower(suitNames[c.Suit]))
}

// ImagePath is where the card's face is served from
func (c Card) ImagePath() string {
	return "/imgs/cards/" + c.Code() + ".svg"
}

// MarshalText encodes a card as its code
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// UnmarshalText decodes a card from its code
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func indexOf(s []string, target string) int {
	for i, v := range s {
		if v == target {
			return i
		}
	}
	return -1
}
