package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for core operations.
var (
	// ErrInvalidName indicates a name that is not two uppercase ASCII letters.
	ErrInvalidName = errors.New("core: invalid valve name")

	// ErrMalformedLine indicates an input record that does not match the grammar.
	ErrMalformedLine = errors.New("core: malformed valve line")

	// ErrDuplicateValve indicates a second record for an already defined name.
	ErrDuplicateValve = errors.New("core: duplicate valve")
)

// alphabet is the number of letters a Name position can hold.
const alphabet = 26

// MaxName is the number of distinct names, 26².
const MaxName = alphabet * alphabet

// Name is a two-letter valve identifier such as "AA".
// Both bytes are always in 'A'..'Z'.
type Name [2]byte

// ParseName validates s and returns it as a Name.
func ParseName(s string) (Name, error) {
	if len(s) != 2 || !isUpper(s[0]) || !isUpper(s[1]) {
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
	}

	return Name{s[0], s[1]}, nil
}

// MustName is like ParseName but panics on invalid input.
// Intended for constants and tests.
func MustName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}

	return n
}

// NameFromIndex returns the name stored at index i of a NameMap.
// i must be in [0, MaxName).
func NameFromIndex(i int) Name {
	if i < 0 || i >= MaxName {
		panic(fmt.Sprintf("core: name index %d out of range", i))
	}

	return Name{byte(i/alphabet) + 'A', byte(i%alphabet) + 'A'}
}

// Index returns the dense index of n, in [0, MaxName).
func (n Name) Index() int {
	return int(n[0]-'A')*alphabet + int(n[1]-'A')
}

// Valid reports whether both bytes are uppercase ASCII letters.
func (n Name) Valid() bool {
	return isUpper(n[0]) && isUpper(n[1])
}

// String returns the two letters of n.
func (n Name) String() string {
	return string(n[:])
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// Valve is one parsed input record. It is never mutated after parsing.
type Valve struct {
	// Name identifies the valve.
	Name Name

	// Flow is the pressure released per turn once the valve is open.
	Flow uint64

	// Links lists directly adjacent valves in input order.
	Links []Name
}
