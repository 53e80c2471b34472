// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// A MountFn mounts a part into socket s. MountFn's should query the socket
// for the signals and wires assigned to the part's pins and return the cells
// implementing the part.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name:    "NOT",
//		Inputs:  In("in"),
//		Outputs: Out("out"),
//		Mount: func(s *Socket) ([]Cell, error) {
//			c, err := NewUnary(s.Name(), Not, s.Bus("in"), s.Wires("out"))
//			return []Cell{c}, err
//		}}
//
type MountFn func(s *Socket) ([]Cell, error)

// A PartSpec wraps a part specification (its blueprint).
//
// Custom parts are implemented by creating a PartSpec, then using its NewPart
// method as a NewPartFn:
//
//	var notGate = notSpec.NewPart
//
// or:
//
//	func Not(c string) Part { return notSpec.NewPart(c) }
//
// Which can then be used when building other chips:
//
//	c, _ := Chip("dummy", In("a, b"), Out("c, d"), Parts{
//		notGate("in=a, out=c"),
//		Not("in=b, out=d"),
//	})
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the In() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}
	Inputs Inputs
	// Output pin names. Must be distinct pin names.
	// Use the Out() function to expand an output description string.
	Outputs Outputs

	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed.
//
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, conns}
}

// pinDir returns the direction of the named pin.
//
func (p *PartSpec) pinDir(name string) (Dir, bool) {
	for _, n := range p.Inputs {
		if n == name {
			return Input, true
		}
	}
	for _, n := range p.Outputs {
		if n == name {
			return Output, true
		}
	}
	return 0, false
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a host
// chip.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a list of parts.
//
type Parts []Part
