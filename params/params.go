// Package params reads validated values from URL query parameters.
// Every readable key must be declared in a Schema; values come from the
// request being served rather than any ambient location.
package params

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

var (
	ErrUnknownKey = errors.New("key does not exist in schema")
	ErrParse      = errors.New("could not parse value")
)

// Field describes how one query parameter is validated and parsed.
// A nil Validate accepts any value; a nil Parse returns the raw string.
type Field struct {
	Validate func(string) bool
	Parse    func(string) (any, error)
}

// Schema maps parameter names to their fields
type Schema map[string]Field

// Matches returns a validator accepting values that match pattern
func Matches(pattern string) func(string) bool {
	re := regexp.MustCompile(pattern)
	return re.MatchString
}

// Int parses a base 10 integer
func Int(v string) (any, error) {
	return strconv.Atoi(v)
}

// Get returns the parsed value of key. ok is false when the parameter is
// missing or fails validation.
func (s Schema) Get(values url.Values, key string) (value any, ok bool, err error) {
	field, declared := s[key]
	if !declared {
		return nil, false, fmt.Errorf("cannot get key %q: %w", key, ErrUnknownKey)
	}

	if _, present := values[key]; !present {
		return nil, false, nil
	}

	raw := values.Get(key)
	if field.Validate != nil && !field.Validate(raw) {
		return nil, false, nil
	}

	if field.Parse == nil {
		return raw, true, nil
	}

	parsed, err := field.Parse(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%w %q for %q: %s", ErrParse, raw, key, err)
	}

	return parsed, true, nil
}

// String is Get for string-valued keys
func (s Schema) String(values url.Values, key string) (string, bool, error) {
	v, ok, err := s.Get(values, key)
	if err != nil || !ok {
		return "", ok, err
	}
	str, isString := v.(string)
	return str, isString, nil
}

// Int is Get for integer-valued keys
func (s Schema) Int(values url.Values, key string) (int, bool, error) {
	v, ok, err := s.Get(values, key)
	if err != nil || !ok {
		return 0, ok, err
	}
	n, isInt := v.(int)
	return n, isInt, nil
}
