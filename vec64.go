// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "fmt"

// MaxVecWidth is the maximum number of Logic values a Vec64 can hold.
//
const MaxVecWidth = 64

// Vec64 packs up to 64 Logic values into two bit planes: a value mask and an
// unknown mask. Bit i of the value mask is only meaningful when bit i of the
// unknown mask is clear. Only the low Width() bits are meaningful.
//
// Operations on Vec64 give the same results as applying the scalar truth
// tables bit by bit.
//
type Vec64 struct {
	v     uint64
	x     uint64
	width uint8
}

// PackLogics packs ls into a Vec64. It panics if len(ls) > MaxVecWidth.
//
func PackLogics(ls []Logic) Vec64 {
	if len(ls) > MaxVecWidth {
		panic(fmt.Sprintf("cannot pack %d logic values in a Vec64", len(ls)))
	}
	v, x := packLanes(ls)
	return Vec64{v: v, x: x, width: uint8(len(ls))}
}

// Unpack writes the values of a to out. It panics if len(out) != a.Width().
//
func (a Vec64) Unpack(out []Logic) {
	if len(out) != a.Width() {
		panic(fmt.Sprintf("Vec64 width %d != output width %d", a.width, len(out)))
	}
	unpackLanes(a.v, a.x, out)
}

// Logics returns the values of a in a new slice.
//
func (a Vec64) Logics() []Logic {
	out := make([]Logic, a.width)
	a.Unpack(out)
	return out
}

// Width returns the number of meaningful bits in a.
//
func (a Vec64) Width() int { return int(a.width) }

// Bit returns the value of bit i.
//
func (a Vec64) Bit(i int) Logic {
	m := uint64(1) << uint(i)
	if a.x&m != 0 {
		return Unknown
	}
	return Logic(a.v>>uint(i)) & 1
}

func (a Vec64) String() string {
	return FormatLogics(a.Logics())
}

func minWidth(a, b Vec64) uint8 {
	if a.width < b.width {
		return a.width
	}
	return b.width
}

// Not returns !a.
//
func (a Vec64) Not() Vec64 {
	return Vec64{v: ^a.v, x: a.x, width: a.width}
}

// And returns a & b.
//
func (a Vec64) And(b Vec64) Vec64 {
	return Vec64{
		v:     a.v & b.v,
		x:     a.x&b.x | a.v&b.x | b.v&a.x,
		width: minWidth(a, b),
	}
}

// Or returns a | b.
//
func (a Vec64) Or(b Vec64) Vec64 {
	return Vec64{
		v:     a.v | b.v,
		x:     a.x&b.x | ^a.v&b.x | ^b.v&a.x,
		width: minWidth(a, b),
	}
}

// Nand returns !(a & b).
//
func (a Vec64) Nand(b Vec64) Vec64 { return a.And(b).Not() }

// Nor returns !(a | b).
//
func (a Vec64) Nor(b Vec64) Vec64 { return a.Or(b).Not() }

// Xor returns a ^ b. A result bit is unknown as soon as one operand bit is.
//
func (a Vec64) Xor(b Vec64) Vec64 {
	return Vec64{
		v:     a.v ^ b.v,
		x:     a.x | b.x,
		width: minWidth(a, b),
	}
}

// Xnor returns !(a ^ b).
//
func (a Vec64) Xnor(b Vec64) Vec64 { return a.Xor(b).Not() }

// AndNot returns a & !b.
//
func (a Vec64) AndNot(b Vec64) Vec64 { return a.And(b.Not()) }

// OrNot returns a | !b.
//
func (a Vec64) OrNot(b Vec64) Vec64 { return a.Or(b.Not()) }

var vecOps = [binaryOpCount]func(a, b Vec64) Vec64{
	And:    Vec64.And,
	Or:     Vec64.Or,
	Xor:    Vec64.Xor,
	Nand:   Vec64.Nand,
	Nor:    Vec64.Nor,
	Xnor:   Vec64.Xnor,
	AndNot: Vec64.AndNot,
	OrNot:  Vec64.OrNot,
}

// Apply returns op(a, b).
//
func (a Vec64) Apply(op BinaryOp, b Vec64) Vec64 {
	return vecOps[op](a, b)
}

// ApplyUnary returns op(a).
//
func (a Vec64) ApplyUnary(op UnaryOp) Vec64 {
	if op == Not {
		return a.Not()
	}
	return a
}
