// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strings"

	"github.com/pkg/errors"
)

// Logic is a 3-valued logic level.
//
// Bit 0 of a Logic holds the level and bit 1 is set for Unknown. The
// packed representation in Vec64 relies on this encoding.
//
type Logic uint8

// Logic values.
//
const (
	Zero    Logic = iota // logic low
	One                  // logic high
	Unknown              // undefined level (X)
)

// Logics lists all Logic values in encoding order.
//
var Logics = [...]Logic{Zero, One, Unknown}

// FromBool converts a bool to Zero or One.
//
func FromBool(b bool) Logic {
	if b {
		return One
	}
	return Zero
}

// String returns "0", "1" or "x".
//
func (l Logic) String() string {
	switch l {
	case Zero:
		return "0"
	case One:
		return "1"
	}
	return "x"
}

// Defined returns true if l is Zero or One.
//
func (l Logic) Defined() bool { return l == Zero || l == One }

// Eq reports whether l and o are physically equal: both defined and at the
// same level. Unknown is never physically equal to anything, itself included.
// Use == for logical equality.
//
func (l Logic) Eq(o Logic) bool {
	return l.Defined() && l == o
}

// ParseLogic converts '0', '1', 'x' or 'X' to a Logic.
//
func ParseLogic(r rune) (Logic, error) {
	switch r {
	case '0':
		return Zero, nil
	case '1':
		return One, nil
	case 'x', 'X':
		return Unknown, nil
	}
	return Unknown, errors.Wrapf(ErrInvalidArgument, "invalid logic level %q", r)
}

var (
	boolSet0 = []bool{false}
	boolSet1 = []bool{true}
	boolSetX = []bool{false, true}
)

// BoolSet returns the set of boolean values l may stand for: {false} for Zero,
// {true} for One and {false, true} for Unknown.
//
// The returned slice must not be modified.
//
func BoolSet(l Logic) []bool {
	switch l {
	case Zero:
		return boolSet0
	case One:
		return boolSet1
	}
	return boolSetX
}

// FromBoolSet reduces a set of boolean outcomes to a Logic: if all values are
// equal, the result is that value, otherwise it is Unknown. An empty set is an
// error.
//
func FromBoolSet(set []bool) (Logic, error) {
	if len(set) == 0 {
		return Unknown, errors.Wrap(ErrInvalidArgument, "empty boolean set")
	}
	first := set[0]
	for _, b := range set[1:] {
		if b != first {
			return Unknown, nil
		}
	}
	return FromBool(first), nil
}

// Edge is the kind of transition between two consecutive samples of a signal.
//
type Edge uint8

// Edge values.
//
const (
	NoEdge      Edge = iota // 0→0 or 1→1
	EdgeUnknown             // either sample is Unknown
	Rising                  // 0→1
	Falling                 // 1→0
)

// EdgeOf returns the edge between a previous and current sample.
//
func EdgeOf(prev, cur Logic) Edge {
	if !prev.Defined() || !cur.Defined() {
		return EdgeUnknown
	}
	switch {
	case prev == cur:
		return NoEdge
	case cur == One:
		return Rising
	}
	return Falling
}

func (e Edge) String() string {
	switch e {
	case NoEdge:
		return "none"
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	}
	return "x"
}

// FormatLogics formats ls as a bit string, most significant (last) bit first,
// the way a Verilog literal reads.
//
func FormatLogics(ls []Logic) string {
	var b strings.Builder
	b.Grow(len(ls))
	for i := len(ls) - 1; i >= 0; i-- {
		b.WriteString(ls[i].String())
	}
	return b.String()
}

// ParseLogics is the reverse of FormatLogics. The first character of s is the
// most significant bit.
//
func ParseLogics(s string) ([]Logic, error) {
	ls := make([]Logic, len(s))
	for i, r := range s {
		l, err := ParseLogic(r)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", s)
		}
		ls[len(s)-1-i] = l
	}
	return ls, nil
}
