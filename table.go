// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// Truth tables for the 3-valued operators. All tables are compiled once at
// package initialization and never modified afterwards.

// UnaryTable is a compiled 3-valued unary operator.
//
type UnaryTable [3]Logic

// BinaryTable is a compiled 3-valued binary operator, indexed [a][b].
//
type BinaryTable [3][3]Logic

// TernaryTable is a compiled 3-valued ternary operator, indexed [a][b][c].
//
type TernaryTable [3][3][3]Logic

func mustFromBoolSet(set []bool) Logic {
	l, err := FromBoolSet(set)
	if err != nil {
		panic(err)
	}
	return l
}

// Lift1 lifts a boolean function to the 3-valued domain. The result for a
// given input is Unknown exactly when the boolean outcome varies across the
// values an Unknown input may take.
//
func Lift1(f func(a bool) bool) (t UnaryTable) {
	out := make([]bool, 0, 2)
	for _, a := range Logics {
		out = out[:0]
		for _, ba := range BoolSet(a) {
			out = append(out, f(ba))
		}
		t[a] = mustFromBoolSet(out)
	}
	return t
}

// Lift2 is the binary version of Lift1.
//
func Lift2(f func(a, b bool) bool) (t BinaryTable) {
	out := make([]bool, 0, 4)
	for _, a := range Logics {
		for _, b := range Logics {
			out = out[:0]
			for _, ba := range BoolSet(a) {
				for _, bb := range BoolSet(b) {
					out = append(out, f(ba, bb))
				}
			}
			t[a][b] = mustFromBoolSet(out)
		}
	}
	return t
}

// Lift3 is the ternary version of Lift1.
//
func Lift3(f func(a, b, c bool) bool) (t TernaryTable) {
	out := make([]bool, 0, 8)
	for _, a := range Logics {
		for _, b := range Logics {
			for _, c := range Logics {
				out = out[:0]
				for _, ba := range BoolSet(a) {
					for _, bb := range BoolSet(b) {
						for _, bc := range BoolSet(c) {
							out = append(out, f(ba, bb, bc))
						}
					}
				}
				t[a][b][c] = mustFromBoolSet(out)
			}
		}
	}
	return t
}

// UnaryOp is a unary map operator.
//
type UnaryOp uint8

// Unary operators.
//
const (
	Not UnaryOp = iota
	Buf
	unaryOpCount
)

// BinaryOp is a binary map operator.
//
type BinaryOp uint8

// Binary operators.
//
const (
	And    BinaryOp = iota
	Or              // a | b
	Xor             // a ^ b
	Nand            // !(a & b)
	Nor             // !(a | b)
	Xnor            // !(a ^ b)
	AndNot          // a & !b
	OrNot           // a | !b
	binaryOpCount
)

// TernaryOp is a ternary map operator.
//
type TernaryOp uint8

// Ternary operators.
//
const (
	Aoi3 TernaryOp = iota // !((a & b) | c)
	Oai3                  // !((a | b) & c)
	Mux3                  // c ? b : a
	ternaryOpCount
)

var (
	unaryNames   = [...]string{"NOT", "BUF"}
	binaryNames  = [...]string{"AND", "OR", "XOR", "NAND", "NOR", "XNOR", "ANDNOT", "ORNOT"}
	ternaryNames = [...]string{"AOI3", "OAI3", "MUX"}

	unaryFns = [...]func(bool) bool{
		Not: func(a bool) bool { return !a },
		Buf: func(a bool) bool { return a },
	}
	binaryFns = [...]func(a, b bool) bool{
		And:    func(a, b bool) bool { return a && b },
		Or:     func(a, b bool) bool { return a || b },
		Xor:    func(a, b bool) bool { return a != b },
		Nand:   func(a, b bool) bool { return !(a && b) },
		Nor:    func(a, b bool) bool { return !(a || b) },
		Xnor:   func(a, b bool) bool { return a == b },
		AndNot: func(a, b bool) bool { return a && !b },
		OrNot:  func(a, b bool) bool { return a || !b },
	}
	// boolean reference functions. AOI3 and OAI3 tables are not lifted from
	// these but composed from the unary and binary tables.
	ternaryFns = [...]func(a, b, c bool) bool{
		Aoi3: func(a, b, c bool) bool { return !(a && b || c) },
		Oai3: func(a, b, c bool) bool { return !((a || b) && c) },
		Mux3: func(a, b, s bool) bool {
			if s {
				return b
			}
			return a
		},
	}

	unaryTables   [unaryOpCount]UnaryTable
	binaryTables  [binaryOpCount]BinaryTable
	ternaryTables [ternaryOpCount]TernaryTable
)

func init() {
	for op, f := range unaryFns {
		unaryTables[op] = Lift1(f)
	}
	for op, f := range binaryFns {
		binaryTables[op] = Lift2(f)
	}
	not, and, or := &unaryTables[Not], &binaryTables[And], &binaryTables[Or]
	for _, a := range Logics {
		for _, b := range Logics {
			for _, c := range Logics {
				ternaryTables[Aoi3][a][b][c] = not[or[and[a][b]][c]]
				ternaryTables[Oai3][a][b][c] = not[and[or[a][b]][c]]
			}
		}
	}
	ternaryTables[Mux3] = Lift3(ternaryFns[Mux3])
}

// Apply returns op(a).
//
func (op UnaryOp) Apply(a Logic) Logic { return unaryTables[op][a] }

// Table returns the compiled truth table for op.
//
func (op UnaryOp) Table() UnaryTable { return unaryTables[op] }

// Func returns the boolean function for op.
//
func (op UnaryOp) Func() func(bool) bool { return unaryFns[op] }

func (op UnaryOp) String() string { return unaryNames[op] }

// Apply returns op(a, b).
//
func (op BinaryOp) Apply(a, b Logic) Logic { return binaryTables[op][a][b] }

// Table returns the compiled truth table for op.
//
func (op BinaryOp) Table() BinaryTable { return binaryTables[op] }

// Func returns the boolean function for op.
//
func (op BinaryOp) Func() func(a, b bool) bool { return binaryFns[op] }

func (op BinaryOp) String() string { return binaryNames[op] }

// Apply returns op(a, b, c).
//
func (op TernaryOp) Apply(a, b, c Logic) Logic { return ternaryTables[op][a][b][c] }

// Table returns the compiled truth table for op.
//
func (op TernaryOp) Table() TernaryTable { return ternaryTables[op] }

// Func returns the boolean function for op.
//
func (op TernaryOp) Func() func(a, b, c bool) bool { return ternaryFns[op] }

func (op TernaryOp) String() string { return ternaryNames[op] }

// AddBits computes the ripple-carry sum y = a + b, least significant bit
// first, with a carry in of Zero. Each step goes through the XOR, AND and OR
// tables so that Unknown bits propagate along the carry chain like they would
// in gate-level arithmetic. a, b and y must have the same length.
//
func AddBits(a, b, y []Logic) {
	xor, and, or := &binaryTables[Xor], &binaryTables[And], &binaryTables[Or]
	c := Zero
	for i := range y {
		p := xor[a[i]][b[i]]
		y[i] = xor[p][c]
		c = or[and[p][c]][and[a[i]][b[i]]]
	}
}
