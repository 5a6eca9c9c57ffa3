// Package cx composes HTML class attribute values from chunks.
package cx

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidChunk = errors.New("invalid chunk type")

// Toggle is a class name that is included only when On is true
type Toggle struct {
	Name string
	On   bool
}

// Toggles is an ordered set of conditional class names
type Toggles []Toggle

// Cx joins chunks into a single space-separated class string.
//
// A chunk may be nil, a string, a *string, Toggles, a map[string]bool or a
// map[string]any. Strings are appended when non-empty. Mapping chunks
// contribute the names whose value is exactly true; Toggles keep their own
// order, maps contribute in sorted key order. Duplicates are kept.
func Cx(chunks ...any) (string, error) {
	classes := []string{}

	for _, chunk := range chunks {
		switch c := chunk.(type) {
		case nil:
		case string:
			classes = appendClass(classes, c)
		case *string:
			if c != nil {
				classes = appendClass(classes, *c)
			}
		case Toggles:
			for _, t := range c {
				if t.On {
					classes = appendClass(classes, t.Name)
				}
			}
		case map[string]bool:
			for _, name := range sortedKeys(c) {
				if c[name] {
					classes = appendClass(classes, name)
				}
			}
		case map[string]any:
			for _, name := range sortedKeys(c) {
				if on, ok := c[name].(bool); ok && on {
					classes = appendClass(classes, name)
				}
			}
		default:
			return "", fmt.Errorf("%w '%T'", ErrInvalidChunk, chunk)
		}
	}

	return strings.Join(classes, " "), nil
}

// MustCx is like Cx but panics on an invalid chunk.
// Intended for templates built from static chunks.
func MustCx(chunks ...any) string {
	s, err := Cx(chunks...)
	if err != nil {
		panic(err)
	}
	return s
}

func appendClass(classes []string, name string) []string {
	if name == "" {
		return classes
	}
	return append(classes, name)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
