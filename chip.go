// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "github.com/pkg/errors"

type chip struct {
	PartSpec             // PartSpec for this chip
	parts    []*PartSpec // sub parts
	bindings [][]binding // resolved connections of each sub part
}

func (c *chip) mount(s *Socket) ([]Cell, error) {
	// chip namespace: the chip pins, then internal wires allocated on demand.
	inner := newSocket(s.b, s.name)
	for _, i := range c.Inputs {
		inner.m[i] = s.Signal(i)
	}
	for _, o := range c.Outputs {
		inner.m[o] = W(s.Wire(o))
	}

	var cells []Cell
	for i, p := range c.parts {
		sub := inner.sub(p, i)
		for _, b := range c.bindings[i] {
			if b.tied() {
				sub.m[b.pin] = Tie(b.val)
			} else {
				sub.m[b.pin] = inner.signalOrNew(b.wire)
			}
		}
		// unconnected inputs are undefined, unconnected outputs get a
		// dangling wire.
		for _, n := range p.Inputs {
			if _, ok := sub.m[n]; !ok {
				sub.m[n] = Tie(Unknown)
			}
		}
		for _, n := range p.Outputs {
			if _, ok := sub.m[n]; !ok {
				sub.m[n] = W(s.b.alloc())
			}
		}
		cs, err := p.Mount(sub)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cs...)
	}
	return cells, nil
}

func checkPins(name string, inputs Inputs, outputs Outputs) (map[string]Dir, error) {
	pins := make(map[string]Dir, len(inputs)+len(outputs))
	for _, ps := range [][]string{inputs, outputs} {
		for _, n := range ps {
			if _, ok := pins[n]; ok {
				return nil, errors.Wrapf(ErrConstruction, "chip %s: duplicate pin name %s", name, n)
			}
			if _, ok := constants[n]; ok {
				return nil, errors.Wrapf(ErrConstruction, "chip %s: reserved pin name %s", name, n)
			}
			pins[n] = Input
		}
	}
	for _, n := range outputs {
		pins[n] = Output
	}
	return pins, nil
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// An Xor gate could be created like this:
//
//	nand := BinaryPart("NAND", Nand, 1).NewPart
//	xor, err := Chip(
//		"XOR",
//		In("a, b"),
//		Out("out"),
//		Parts{
//			nand("a=a, b=b, out=nandAB"),
//			nand("a=a, b=nandAB, out=w0"),
//			nand("a=b, b=nandAB, out=w1"),
//			nand("a=w0, b=w1, out=out"),
//		})
//
// The returned value is a function of type NewPartFn that can be used to
// compose the new part with others into other chips:
//
//	xnor, err := Chip(
//		"XNOR",
//		In("a, b"),
//		Out("out"),
//		Parts{
//			xor("a=a, b=b, out=xorAB"),
//			nand("a=xorAB, b=xorAB, out=out"),
//		})
//
// Chip checks that no chip input or constant is driven by a part output, that
// internal pins have at most one driver, and that every internal pin used as
// a part input is driven by some part output. Chip outputs that no part
// drives stay undefined.
//
func Chip(name string, inputs Inputs, outputs Outputs, parts Parts) (NewPartFn, error) {
	pins, err := checkPins(name, inputs, outputs)
	if err != nil {
		return nil, err
	}
	known := func(n string) bool {
		_, ok := pins[n]
		return ok
	}

	spcs := make([]*PartSpec, len(parts))
	bss := make([][]binding, len(parts))
	drivers := make(map[string]string)
	for i, p := range parts {
		bs, err := p.bindings(known)
		if err != nil {
			return nil, errors.Wrapf(err, "chip %s", name)
		}
		for _, b := range bs {
			if b.tied() || b.dir != Output {
				continue
			}
			pn := p.Name + "." + b.pin + ":" + b.wire
			if d, ok := pins[b.wire]; ok && d == Input {
				return nil, errors.Wrapf(ErrConstruction, "chip %s: %s: chip input pin used as output", name, pn)
			}
			if d, ok := drivers[b.wire]; ok {
				return nil, errors.Wrapf(ErrConstruction, "chip %s: %s: output pin already used as output by %s", name, pn, d)
			}
			drivers[b.wire] = p.Name + "." + b.pin
		}
		spcs[i] = p.PartSpec
		bss[i] = bs
	}
	for _, bs := range bss {
		for _, b := range bs {
			if b.tied() || b.dir != Input || known(b.wire) {
				continue
			}
			if _, ok := drivers[b.wire]; !ok {
				return nil, errors.Wrapf(ErrConstruction, "chip %s: pin %s not connected to any output", name, b.wire)
			}
		}
	}

	c := &chip{
		PartSpec{
			Name:    name,
			Inputs:  inputs,
			Outputs: outputs,
		},
		spcs,
		bss,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}

// groupPins groups the expanded pin names of an i/o spec into module ports.
//
func groupPins(pins []string, s *Socket) []ModulePort {
	var ps []ModulePort
	for _, n := range pins {
		w := s.Wire(n)
		bus, i := splitBusPin(n)
		if l := len(ps); i > 0 && l > 0 && ps[l-1].Name == bus && len(ps[l-1].Wires) == i {
			ps[l-1].Wires = append(ps[l-1].Wires, w)
			continue
		}
		if i != 0 {
			bus = n
		}
		ps = append(ps, ModulePort{Name: bus, Wires: []Wire{w}})
	}
	return ps
}

// BuildModule builds a flattened Module from the given parts. The inputs and
// outputs become the module ports. Buses are grouped into a single port named
// after the bus: In("a[8]") gives an 8 bits wide port named "a".
//
func BuildModule(name string, inputs Inputs, outputs Outputs, parts Parts) (*Module, error) {
	top, err := Chip(name, inputs, outputs, parts)
	if err != nil {
		return nil, err
	}
	b := new(builder)
	s := newSocket(b, "")
	for _, ps := range [][]string{inputs, outputs} {
		for _, n := range ps {
			s.m[n] = W(b.alloc())
		}
	}
	cells, err := top("").Mount(s)
	if err != nil {
		return nil, errors.Wrapf(err, "module %s", name)
	}
	return NewModule(name, cells, groupPins(inputs, s), groupPins(outputs, s))
}
