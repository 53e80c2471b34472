// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"sort"
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

type factory func(width int) netsim.NewPartFn

func scalar(f netsim.NewPartFn) factory {
	return func(width int) netsim.NewPartFn {
		if width != 1 {
			return nil
		}
		return f
	}
}

var factories = map[string]factory{
	"not":         NotN,
	"buf":         BufN,
	"and":         AndN,
	"nand":        NandN,
	"or":          OrN,
	"nor":         NorN,
	"xor":         XorN,
	"xnor":        XnorN,
	"andnot":      func(w int) netsim.NewPartFn { return GateN(netsim.AndNot, w) },
	"ornot":       func(w int) netsim.NewPartFn { return GateN(netsim.OrNot, w) },
	"aoi3":        Aoi3N,
	"oai3":        Oai3N,
	"mux":         MuxN,
	"dmux":        DMuxN,
	"mux4way":     func(w int) netsim.NewPartFn { return MuxMWayN(4, w) },
	"mux8way":     func(w int) netsim.NewPartFn { return MuxMWayN(8, w) },
	"add":         AdderN,
	"rippleadder": RippleAdderN,
	"inc":         IncN,
	"halfadder":   scalar(HalfAdder),
	"fulladder":   scalar(FullAdder),
	"dff":         DFFN,
	"negdff":      NegDFFN,
	"register":    RegisterN,
	"counter":     CounterN,
	"ornway":      OrNWay,
	"andnway":     AndNWay,
}

// Names returns the sorted list of part names known to Lookup.
//
func Names() []string {
	ns := make([]string, 0, len(factories))
	for n := range factories {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// Lookup returns the part with the given case insensitive name and width.
// For gates, width is the bus width. For ornway and andnway, it is the number
// of inputs.
//
// It returns an error wrapping netsim.ErrNotFound if no such part exists, or
// netsim.ErrInvalidArgument if the width is not supported by the part.
//
func Lookup(name string, width int) (p netsim.NewPartFn, err error) {
	f, ok := factories[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(netsim.ErrNotFound, "unknown part type %q", name)
	}
	// part constructors panic on invalid widths.
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, errors.Wrapf(netsim.ErrInvalidArgument, "part %s: invalid width %d: %v", name, width, r)
		}
	}()
	if width <= 0 {
		return nil, errors.Wrapf(netsim.ErrInvalidArgument, "part %s: invalid width %d", name, width)
	}
	if p = f(width); p == nil {
		return nil, errors.Wrapf(netsim.ErrInvalidArgument, "part %s: invalid width %d", name, width)
	}
	return p, nil
}
