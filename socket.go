// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "strconv"

// builder allocates wires while mounting parts.
//
type builder struct {
	wires int
}

func (b *builder) alloc() Wire {
	w := Wire(b.wires)
	b.wires++
	return w
}

// A Socket maps a part's pin names to signals in a module.
//
type Socket struct {
	b    *builder
	name string
	m    map[string]Signal
}

func newSocket(b *builder, name string) *Socket {
	return &Socket{b: b, name: name, m: make(map[string]Signal)}
}

// sub returns a socket for part number i mounted in s.
//
func (s *Socket) sub(p *PartSpec, i int) *Socket {
	n := p.Name + ":" + strconv.Itoa(i)
	if s.name != "" {
		n = s.name + "/" + n
	}
	return newSocket(s.b, n)
}

// Name returns the instance path of the part mounted in s, like
// "FullAdder:2/HalfAdder:0/XOR:0". Mount functions use it to name cells.
//
func (s *Socket) Name() string { return s.name }

// Signal returns the signal assigned to the given pin name.
// This function panics if the pin does not exist.
//
func (s *Socket) Signal(name string) Signal {
	sig, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return sig
}

// Wire returns the wire assigned to the given output pin name.
// This function panics if the pin does not exist or is tied to a constant.
//
func (s *Socket) Wire(name string) Wire {
	sig := s.Signal(name)
	if sig.Tied {
		panic("pin " + name + " is tied to a constant")
	}
	return sig.Wire
}

// signalOrNew returns the signal assigned to the given pin name.
// If no such pin exists a new wire is allocated.
//
func (s *Socket) signalOrNew(name string) Signal {
	sig, ok := s.m[name]
	if !ok {
		sig = W(s.b.alloc())
		s.m[name] = sig
	}
	return sig
}

// Bus returns the signals assigned to the given bus name, least significant
// bit first. If name is the name of a single pin, the returned bus is one bit
// wide.
// This function panics if the bus does not exist.
//
func (s *Socket) Bus(name string) []Signal {
	if sig, ok := s.m[name]; ok {
		return []Signal{sig}
	}
	var out []Signal
	for i := 0; ; i++ {
		sig, ok := s.m[busPinName(name, i)]
		if !ok {
			break
		}
		out = append(out, sig)
	}
	if len(out) == 0 {
		panic("bus " + name + " does not exist")
	}
	return out
}

// Wires is like Bus for output pins.
//
func (s *Socket) Wires(name string) []Wire {
	bus := s.Bus(name)
	ws := make([]Wire, len(bus))
	for i, sig := range bus {
		if sig.Tied {
			panic("pin " + name + " is tied to a constant")
		}
		ws[i] = sig.Wire
	}
	return ws
}
