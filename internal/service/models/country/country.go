package country

import (
	"errors"
	"strings"
)

// ErrInvalidCode is returned for codes that are not two-letter ISO 3166 regions.
var ErrInvalidCode = errors.New("invalid country code")

// Code is an ISO 3166-1 alpha-2 country code.
type Code string

func (c Code) String() string {
	return string(c)
}

// ParseCode normalizes s into an upper-case two-letter code.
func ParseCode(s string) (Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return "", ErrInvalidCode
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCode
		}
	}

	return Code(s), nil
}

// Info describes a resolved country.
type Info struct {
	Code Code
	Name string
}
