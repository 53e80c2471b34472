// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"
	"strings"

	"github.com/db47h/netsim/internal/hdl"
	"github.com/pkg/errors"
)

// Constant names usable on the chip side of a connection.
//
const (
	True  = "true"
	False = "false"
	Undef = "undef"
)

var constants = map[string]Logic{False: Zero, True: One, Undef: Unknown}

func busPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// splitBusPin splits a pin name like "bus[3]" into its bus name and index.
// The index is -1 for names that are not bus pins.
//
func splitBusPin(name string) (string, int) {
	i := strings.IndexByte(name, '[')
	if i <= 0 || !strings.HasSuffix(name, "]") {
		return name, -1
	}
	n, err := strconv.Atoi(name[i+1 : len(name)-1])
	if err != nil || n < 0 {
		return name, -1
	}
	return name[:i], n
}

func formatError(err error) error {
	return errors.Wrapf(ErrFormat, "%v", err)
}

// ParseIOSpec parses the pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
// For example:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIOSpec(names string) ([]string, error) {
	var out []string
	p := hdl.Parser{Input: names}
	for {
		i, err := p.Next(false)
		if err != nil {
			return nil, formatError(err)
		}
		switch i := i.(type) {
		case nil:
			return out, nil
		case hdl.Pin:
			out = append(out, i.Name)
		case hdl.PinIndex:
			if i.Index == 0 {
				return nil, errors.Wrapf(ErrFormat, "in %q at pos %d: zero bus size", names, i.Pos+1)
			}
			for n := 0; n < i.Index; n++ {
				out = append(out, busPinName(i.Name, n))
			}
		default:
			return nil, errors.Wrapf(ErrFormat, "in %q: unexpected range in i/o spec", names)
		}
	}
}

// Inputs is a list of input pin names.
//
type Inputs []string

// Outputs is a list of output pin names.
//
type Outputs []string

// In parses an input spec with ParseIOSpec. It panics on error.
//
func In(spec string) Inputs {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// Out parses an output spec with ParseIOSpec. It panics on error.
//
func Out(spec string) Outputs {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// A Ref is a reference to pins on either side of a connection: a single pin
// or whole bus (Start < 0), a bus pin (Start == End) or a bus range.
//
type Ref struct {
	Name       string
	Start, End int
}

func (r Ref) String() string {
	switch {
	case r.Start < 0:
		return r.Name
	case r.Start == r.End:
		return busPinName(r.Name, r.Start)
	}
	return r.Name + "[" + strconv.Itoa(r.Start) + ".." + strconv.Itoa(r.End) + "]"
}

// A Connection connects part pins (PP) to pins in the containing chip (CP).
//
type Connection struct {
	PP Ref
	CP Ref
}

func ref(v interface{}) Ref {
	switch v := v.(type) {
	case hdl.Pin:
		return Ref{v.Name, -1, -1}
	case hdl.PinIndex:
		return Ref{v.Name, v.Index, v.Index}
	case hdl.PinRange:
		return Ref{v.Name, v.Start, v.End}
	}
	panic("unexpected pin type")
}

// ParseConnections parses a connection configuration like "partPinX=chipPinY,
// ...". Both sides accept pin names, bus pins like "a[3]" and bus ranges like
// "a[0..3]". A bare bus name on the part side stands for the whole bus. The
// chip side may also be one of the constants "true", "false" or "undef".
//
// A single chip pin can be connected to several part inputs, as in
// "a[0..7]=false".
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	p := hdl.Parser{Input: c}
	for {
		i, err := p.Next(true)
		if err != nil {
			return nil, formatError(err)
		}
		switch i := i.(type) {
		case nil:
			return conns, nil
		case hdl.PinAssignment:
			cn := Connection{ref(i.LHS), ref(i.RHS)}
			for _, r := range []Ref{cn.PP, cn.CP} {
				if r.End < r.Start {
					return nil, errors.Wrapf(ErrFormat, "in %q: invalid range %s", c, r)
				}
			}
			if _, ok := constants[cn.CP.Name]; ok && cn.CP.Start >= 0 {
				return nil, errors.Wrapf(ErrFormat, "in %q: constant %s cannot be indexed", c, cn.CP.Name)
			}
			conns = append(conns, cn)
		default:
			return nil, errors.Wrapf(ErrFormat, "in %q: expected pin assignment", c)
		}
	}
}
