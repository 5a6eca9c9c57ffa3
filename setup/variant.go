package setup

import (
	"math"
	"strconv"
)

// Variant is a flavour of Spades
type Variant string

const (
	Standard   Variant = "standard"
	Whiz       Variant = "whiz"
	Suicide    Variant = "suicide"
	FreeForAll Variant = "free_for_all"
)

var variantLabels = map[Variant]string{
	Standard:   "Standard",
	Whiz:       "Whiz",
	Suicide:    "Suicide",
	FreeForAll: "Free for All",
}

// Variants lists every variant in menu order
func Variants() []Variant {
	return []Variant{Standard, Whiz, Suicide, FreeForAll}
}

// Label is the variant's menu label
func (v Variant) Label() string {
	return variantLabels[v]
}

// Valid reports whether v is a known variant
func (v Variant) Valid() bool {
	_, ok := variantLabels[v]
	return ok
}

// ParseVariant reads a variant from an action payload
func ParseVariant(payload any) (Variant, bool) {
	var v Variant
	switch p := payload.(type) {
	case Variant:
		v = p
	case string:
		v = Variant(p)
	default:
		return "", false
	}

	return v, v.Valid()
}

// toInt reads a whole number from an action payload. Numbers decoded from
// JSON arrive as float64.
func toInt(payload any) (int, bool) {
	switch p := payload.(type) {
	case int:
		return p, true
	case float64:
		if p != math.Trunc(p) {
			return 0, false
		}
		return int(p), true
	case string:
		n, err := strconv.Atoi(p)
		return n, err == nil
	}
	return 0, false
}
