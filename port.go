// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "strconv"

// Wire is a handle to a signal in a circuit. Wires are numbered densely from 0
// and index the simulator's wire state.
//
type Wire int

// A Signal is one bit of a cell input: either a wire or a tied constant.
//
type Signal struct {
	Wire  Wire
	Value Logic // constant value if Tied
	Tied  bool
}

// W returns a Signal for wire w.
//
func W(w Wire) Signal { return Signal{Wire: w} }

// Tie returns a Signal tied to the constant l.
//
func Tie(l Logic) Signal { return Signal{Value: l, Tied: true} }

func (s Signal) String() string {
	if s.Tied {
		return s.Value.String()
	}
	return "#" + strconv.Itoa(int(s.Wire))
}

// Signals converts a list of wires to signals.
//
func Signals(ws ...Wire) []Signal {
	ss := make([]Signal, len(ws))
	for i, w := range ws {
		ss[i] = W(w)
	}
	return ss
}

// InPort is a named cell input port.
//
type InPort struct {
	Name string
	Bits []Signal
}

// Width returns the port width.
//
func (p *InPort) Width() int { return len(p.Bits) }

// OutPort is a named cell output port.
//
type OutPort struct {
	Name  string
	Wires []Wire
}

// Width returns the port width.
//
func (p *OutPort) Width() int { return len(p.Wires) }

// Dir is the direction of a module port.
//
type Dir uint8

// Port directions.
//
const (
	Input Dir = iota
	Output
)

func (d Dir) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// ModulePort is a named module input or output.
//
type ModulePort struct {
	Name  string
	Dir   Dir
	Wires []Wire
}

// Width returns the port width.
//
func (p *ModulePort) Width() int { return len(p.Wires) }
