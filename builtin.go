// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "strconv"

// common pin names
const (
	pinA   = "a"
	pinB   = "b"
	pinC   = "c"
	pinIn  = "in"
	pinSel = "sel"
	pinClk = "clk"
	pinOut = "out"
)

// pinNames returns the pin names for the given names, as single pins if bits is
// 1, as buses otherwise.
//
func pinNames(bits int, names ...string) []string {
	if bits == 1 {
		return names
	}
	out := make([]string, 0, len(names)*bits)
	for _, n := range names {
		for i := 0; i < bits; i++ {
			out = append(out, busPinName(n, i))
		}
	}
	return out
}

func partName(name string, bits int) string {
	if bits == 1 {
		return name
	}
	return name + strconv.Itoa(bits)
}

func checkBits(bits int) {
	if bits <= 0 {
		panic("invalid bit count " + strconv.Itoa(bits))
	}
}

// UnaryPart returns the specification of a bitwise unary gate mapped onto a
// UnaryCell.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = op(in)
//
// If bits is 1, pins are single pins rather than buses.
//
func UnaryPart(name string, op UnaryOp, bits int) *PartSpec {
	checkBits(bits)
	return &PartSpec{
		Name:    partName(name, bits),
		Inputs:  pinNames(bits, pinIn),
		Outputs: pinNames(bits, pinOut),
		Mount: func(s *Socket) ([]Cell, error) {
			c, err := NewUnary(s.Name(), op, s.Bus(pinIn), s.Wires(pinOut))
			if err != nil {
				return nil, err
			}
			return []Cell{c}, nil
		},
	}
}

// BinaryPart returns the specification of a bitwise binary gate mapped onto a
// BinaryCell.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = op(a, b)
//
func BinaryPart(name string, op BinaryOp, bits int) *PartSpec {
	checkBits(bits)
	return &PartSpec{
		Name:    partName(name, bits),
		Inputs:  pinNames(bits, pinA, pinB),
		Outputs: pinNames(bits, pinOut),
		Mount: func(s *Socket) ([]Cell, error) {
			c, err := NewBinary(s.Name(), op, s.Bus(pinA), s.Bus(pinB), s.Wires(pinOut))
			if err != nil {
				return nil, err
			}
			return []Cell{c}, nil
		},
	}
}

// TernaryPart returns the specification of a bitwise ternary gate mapped onto
// a TernaryCell.
//
//	Inputs: a[bits], b[bits], c[bits]
//	Outputs: out[bits]
//	Function: out = op(a, b, c)
//
func TernaryPart(name string, op TernaryOp, bits int) *PartSpec {
	checkBits(bits)
	return &PartSpec{
		Name:    partName(name, bits),
		Inputs:  pinNames(bits, pinA, pinB, pinC),
		Outputs: pinNames(bits, pinOut),
		Mount: func(s *Socket) ([]Cell, error) {
			c, err := NewTernary(s.Name(), op, s.Bus(pinA), s.Bus(pinB), s.Bus(pinC), s.Wires(pinOut))
			if err != nil {
				return nil, err
			}
			return []Cell{c}, nil
		},
	}
}

// AdderPart returns the specification of an adder mapped onto an AddCell.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = a + b, truncated to bits
//
func AdderPart(bits int) *PartSpec {
	checkBits(bits)
	return &PartSpec{
		Name:    partName("ADD", bits),
		Inputs:  pinNames(bits, pinA, pinB),
		Outputs: pinNames(bits, pinOut),
		Mount: func(s *Socket) ([]Cell, error) {
			c, err := NewAdd(s.Name(), s.Bus(pinA), s.Bus(pinB), s.Wires(pinOut))
			if err != nil {
				return nil, err
			}
			return []Cell{c}, nil
		},
	}
}

// MuxPart returns the specification of a multiplexer mapped onto a MuxCell.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: if sel == 0 { out = a } else { out = b }
//
func MuxPart(bits int) *PartSpec {
	checkBits(bits)
	return &PartSpec{
		Name:    partName("MUX", bits),
		Inputs:  append(pinNames(bits, pinA, pinB), pinSel),
		Outputs: pinNames(bits, pinOut),
		Mount: func(s *Socket) ([]Cell, error) {
			c, err := NewMux(s.Name(), s.Bus(pinA), s.Bus(pinB), s.Bus(pinSel), s.Wires(pinOut))
			if err != nil {
				return nil, err
			}
			return []Cell{c}, nil
		},
	}
}

// DFFPart returns the specification of a D flip-flop mapped onto a DFF cell,
// triggered on the given clock edge.
//
//	Inputs: clk, in[bits]
//	Outputs: out[bits]
//	Function: out = in, sampled on the active edge of clk
//
func DFFPart(edge Edge, bits int) *PartSpec {
	checkBits(bits)
	name := "DFF"
	if edge == Falling {
		name = "NEGDFF"
	}
	return &PartSpec{
		Name:    partName(name, bits),
		Inputs:  append([]string{pinClk}, pinNames(bits, pinIn)...),
		Outputs: pinNames(bits, pinOut),
		Mount: func(s *Socket) ([]Cell, error) {
			c, err := NewDFF(s.Name(), edge, s.Bus(pinClk), s.Bus(pinIn), s.Wires(pinOut))
			if err != nil {
				return nil, err
			}
			return []Cell{c}, nil
		},
	}
}
