// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// Kind identifies the variant of a Cell.
//
type Kind uint8

// Cell kinds.
//
const (
	KindUnary Kind = iota
	KindBinary
	KindTernary
	KindAdd
	KindDFF
	KindMux
)

var kindNames = [...]string{"unary", "binary", "ternary", "add", "dff", "mux"}

func (k Kind) String() string { return kindNames[k] }

// A Cell is a primitive in a flattened netlist. The set of cell types is
// closed: UnaryCell, BinaryCell, TernaryCell, AddCell, DFF and MuxCell.
//
// Simulate reads the current value of the cell inputs and writes its outputs,
// immediately for combinational cells, through the deferred write queue for
// clocked cells.
//
type Cell interface {
	Name() string
	Kind() Kind
	Inputs() []*InPort
	Outputs() []*OutPort
	Simulate(s *State)

	sealed()
}

type cellName string

func (n cellName) Name() string { return string(n) }
func (cellName) sealed()        {}

func checkWidth(name string, w int, ps ...*InPort) error {
	for _, p := range ps {
		if p.Width() != w {
			return errors.Wrapf(ErrConstruction, "cell %s: port %s has width %d, expected %d", name, p.Name, p.Width(), w)
		}
	}
	return nil
}

func checkOut(name string, p *OutPort) error {
	if p.Width() == 0 {
		return errors.Wrapf(ErrConstruction, "cell %s: empty output port %s", name, p.Name)
	}
	return nil
}

// UnaryCell applies a unary operator bitwise: Y = op(A).
//
type UnaryCell struct {
	cellName
	Op UnaryOp
	A  InPort
	Y  OutPort
}

// NewUnary returns a new UnaryCell. A and Y must have the same width.
//
func NewUnary(name string, op UnaryOp, a []Signal, y []Wire) (*UnaryCell, error) {
	c := &UnaryCell{cellName(name), op, InPort{"A", a}, OutPort{"Y", y}}
	if err := checkOut(name, &c.Y); err != nil {
		return nil, err
	}
	if err := checkWidth(name, c.Y.Width(), &c.A); err != nil {
		return nil, err
	}
	return c, nil
}

// Kind implements Cell.
func (c *UnaryCell) Kind() Kind { return KindUnary }

// Inputs implements Cell.
func (c *UnaryCell) Inputs() []*InPort { return []*InPort{&c.A} }

// Outputs implements Cell.
func (c *UnaryCell) Outputs() []*OutPort { return []*OutPort{&c.Y} }

// Simulate implements Cell.
func (c *UnaryCell) Simulate(s *State) {
	a := s.input(&c.A)
	if s.vec && len(a) > 1 {
		y := s.alloc(len(a))
		vecUnary(c.Op, a, y)
		s.write(c.Y.Wires, y)
		return
	}
	t := &unaryTables[c.Op]
	for i, w := range c.Y.Wires {
		s.cur[w] = t[a[i]]
	}
}

// BinaryCell applies a binary operator bitwise: Y = op(A, B).
//
type BinaryCell struct {
	cellName
	Op   BinaryOp
	A, B InPort
	Y    OutPort
}

// NewBinary returns a new BinaryCell. A, B and Y must have the same width.
//
func NewBinary(name string, op BinaryOp, a, b []Signal, y []Wire) (*BinaryCell, error) {
	c := &BinaryCell{cellName(name), op, InPort{"A", a}, InPort{"B", b}, OutPort{"Y", y}}
	if err := checkOut(name, &c.Y); err != nil {
		return nil, err
	}
	if err := checkWidth(name, c.Y.Width(), &c.A, &c.B); err != nil {
		return nil, err
	}
	return c, nil
}

// Kind implements Cell.
func (c *BinaryCell) Kind() Kind { return KindBinary }

// Inputs implements Cell.
func (c *BinaryCell) Inputs() []*InPort { return []*InPort{&c.A, &c.B} }

// Outputs implements Cell.
func (c *BinaryCell) Outputs() []*OutPort { return []*OutPort{&c.Y} }

// Simulate implements Cell.
func (c *BinaryCell) Simulate(s *State) {
	a, b := s.input(&c.A), s.input(&c.B)
	if s.vec && len(a) > 1 {
		y := s.alloc(len(a))
		vecBinary(c.Op, a, b, y)
		s.write(c.Y.Wires, y)
		return
	}
	t := &binaryTables[c.Op]
	for i, w := range c.Y.Wires {
		s.cur[w] = t[a[i]][b[i]]
	}
}

// TernaryCell applies a ternary operator bitwise: Y = op(A, B, C).
//
type TernaryCell struct {
	cellName
	Op      TernaryOp
	A, B, C InPort
	Y       OutPort
}

// NewTernary returns a new TernaryCell. A, B, C and Y must have the same width.
//
func NewTernary(name string, op TernaryOp, a, b, c []Signal, y []Wire) (*TernaryCell, error) {
	t := &TernaryCell{cellName(name), op, InPort{"A", a}, InPort{"B", b}, InPort{"C", c}, OutPort{"Y", y}}
	if err := checkOut(name, &t.Y); err != nil {
		return nil, err
	}
	if err := checkWidth(name, t.Y.Width(), &t.A, &t.B, &t.C); err != nil {
		return nil, err
	}
	return t, nil
}

// Kind implements Cell.
func (c *TernaryCell) Kind() Kind { return KindTernary }

// Inputs implements Cell.
func (c *TernaryCell) Inputs() []*InPort { return []*InPort{&c.A, &c.B, &c.C} }

// Outputs implements Cell.
func (c *TernaryCell) Outputs() []*OutPort { return []*OutPort{&c.Y} }

// Simulate implements Cell.
func (c *TernaryCell) Simulate(s *State) {
	a, b, cc := s.input(&c.A), s.input(&c.B), s.input(&c.C)
	t := &ternaryTables[c.Op]
	for i, w := range c.Y.Wires {
		s.cur[w] = t[a[i]][b[i]][cc[i]]
	}
}

// AddCell is a ripple-carry adder: Y = A + B, truncated to the width of Y.
//
type AddCell struct {
	cellName
	A, B InPort
	Y    OutPort
}

// NewAdd returns a new AddCell. A, B and Y must have the same width.
//
func NewAdd(name string, a, b []Signal, y []Wire) (*AddCell, error) {
	c := &AddCell{cellName(name), InPort{"A", a}, InPort{"B", b}, OutPort{"Y", y}}
	if err := checkOut(name, &c.Y); err != nil {
		return nil, err
	}
	if err := checkWidth(name, c.Y.Width(), &c.A, &c.B); err != nil {
		return nil, err
	}
	return c, nil
}

// Kind implements Cell.
func (c *AddCell) Kind() Kind { return KindAdd }

// Inputs implements Cell.
func (c *AddCell) Inputs() []*InPort { return []*InPort{&c.A, &c.B} }

// Outputs implements Cell.
func (c *AddCell) Outputs() []*OutPort { return []*OutPort{&c.Y} }

// Simulate implements Cell.
func (c *AddCell) Simulate(s *State) {
	a, b := s.input(&c.A), s.input(&c.B)
	y := s.alloc(len(a))
	AddBits(a, b, y)
	s.write(c.Y.Wires, y)
}

// DFF is an edge triggered D flip-flop: on the configured clock edge, D is
// sampled and written to Q once the current delta cycle completes. An Unknown
// clock never triggers a write.
//
type DFF struct {
	cellName
	Edge   Edge // Rising or Falling
	Clk, D InPort
	Q      OutPort
}

// NewDFF returns a new DFF. Clk must be one bit wide, D and Q must have the
// same width and edge must be Rising or Falling.
//
func NewDFF(name string, edge Edge, clk, d []Signal, q []Wire) (*DFF, error) {
	c := &DFF{cellName(name), edge, InPort{"CLK", clk}, InPort{"D", d}, OutPort{"Q", q}}
	if edge != Rising && edge != Falling {
		return nil, errors.Wrapf(ErrConstruction, "cell %s: invalid clock edge %v", name, edge)
	}
	if err := checkOut(name, &c.Q); err != nil {
		return nil, err
	}
	if err := checkWidth(name, 1, &c.Clk); err != nil {
		return nil, err
	}
	if err := checkWidth(name, c.Q.Width(), &c.D); err != nil {
		return nil, err
	}
	return c, nil
}

// Kind implements Cell.
func (c *DFF) Kind() Kind { return KindDFF }

// Inputs implements Cell.
func (c *DFF) Inputs() []*InPort { return []*InPort{&c.Clk, &c.D} }

// Outputs implements Cell.
func (c *DFF) Outputs() []*OutPort { return []*OutPort{&c.Q} }

// Simulate implements Cell.
func (c *DFF) Simulate(s *State) {
	clk := c.Clk.Bits[0]
	if clk.Tied || s.Edge(clk.Wire) != c.Edge {
		return
	}
	s.deferWrite(c.Q.Wires, s.input(&c.D))
}

// MuxCell is a multiplexer: Y = S ? B : A.
//
// When S is Unknown, each bit of Y is the matching bit of A if it is
// physically equal to the one in B, Unknown otherwise.
//
type MuxCell struct {
	cellName
	A, B, S InPort
	Y       OutPort
}

// NewMux returns a new MuxCell. A, B and Y must have the same width and S
// must be one bit wide.
//
func NewMux(name string, a, b, sel []Signal, y []Wire) (*MuxCell, error) {
	c := &MuxCell{cellName(name), InPort{"A", a}, InPort{"B", b}, InPort{"S", sel}, OutPort{"Y", y}}
	if err := checkOut(name, &c.Y); err != nil {
		return nil, err
	}
	if err := checkWidth(name, c.Y.Width(), &c.A, &c.B); err != nil {
		return nil, err
	}
	if err := checkWidth(name, 1, &c.S); err != nil {
		return nil, err
	}
	return c, nil
}

// Kind implements Cell.
func (c *MuxCell) Kind() Kind { return KindMux }

// Inputs implements Cell.
func (c *MuxCell) Inputs() []*InPort { return []*InPort{&c.A, &c.B, &c.S} }

// Outputs implements Cell.
func (c *MuxCell) Outputs() []*OutPort { return []*OutPort{&c.Y} }

// Simulate implements Cell.
func (c *MuxCell) Simulate(s *State) {
	var sel Logic
	if b := c.S.Bits[0]; b.Tied {
		sel = b.Value
	} else {
		sel = s.cur[b.Wire]
	}
	switch sel {
	case Zero:
		s.write(c.Y.Wires, s.input(&c.A))
	case One:
		s.write(c.Y.Wires, s.input(&c.B))
	default:
		a, b := s.input(&c.A), s.input(&c.B)
		t := &ternaryTables[Mux3]
		for i, w := range c.Y.Wires {
			s.cur[w] = t[a[i]][b[i]][Unknown]
		}
	}
}

// vecUnary and vecBinary evaluate operators through Vec64, 64 bits at a time.

func vecUnary(op UnaryOp, a, y []Logic) {
	for i := 0; i < len(a); i += MaxVecWidth {
		end := i + MaxVecWidth
		if end > len(a) {
			end = len(a)
		}
		PackLogics(a[i:end]).ApplyUnary(op).Unpack(y[i:end])
	}
}

func vecBinary(op BinaryOp, a, b, y []Logic) {
	for i := 0; i < len(a); i += MaxVecWidth {
		end := i + MaxVecWidth
		if end > len(a) {
			end = len(a)
		}
		PackLogics(a[i:end]).Apply(op, PackLogics(b[i:end])).Unpack(y[i:end])
	}
}

// cellLabel returns a printable name for cell number i.
//
func cellLabel(c Cell, i int) string {
	if n := c.Name(); n != "" {
		return n
	}
	return c.Kind().String() + "#" + strconv.Itoa(i)
}
