// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"strconv"
	"strings"

	"github.com/db47h/netsim"
)

var (
	mux  = netsim.MuxPart(1)
	dmux = mustChip("DMUX", netsim.In("in, sel"), netsim.Out("a, b"), netsim.Parts{
		AndNot("a=in, b=sel, out=a"),
		And("a=in, b=sel, out=b"),
	})
)

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
// If sel is undefined, out is only defined where a and b agree.
//
func Mux(w string) netsim.Part { return mux.NewPart(w) }

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(w string) netsim.Part { return dmux(w) }

// MuxN returns a N-bits Mux.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: for i := range out { if sel == 0 { out[i] = a[i] } else { out[i] = b[i] } }
//
func MuxN(bits int) netsim.NewPartFn {
	return netsim.MuxPart(bits).NewPart
}

// DMuxN returns a N-bits demultiplexer.
//
//	Inputs: in[bits], sel
//	Outputs: a[bits], b[bits]
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMuxN(bits int) netsim.NewPartFn {
	if bits == 1 {
		return dmux
	}
	var parts netsim.Parts
	for i := 0; i < bits; i++ {
		n := strconv.Itoa(i)
		parts = append(parts, DMux("in=in["+n+"], sel=sel, a=a["+n+"], b=b["+n+"]"))
	}
	n := strconv.Itoa(bits)
	return mustChip("DMUX"+n, netsim.In("in["+n+"], sel"), netsim.Out("a["+n+"], b["+n+"]"), parts)
}

// MuxMWayN returns a M-Way N-bits Mux. ways must be a power of two greater
// than 1.
//
//	Inputs: in0[bits], in1[bits], ..., in{ways-1}[bits], sel[log2(ways)]
//	Outputs: out[bits]
//	Function: out = in{sel}
//
// The selected input is the bus whose number matches sel, lsb first.
//
func MuxMWayN(ways, bits int) netsim.NewPartFn {
	sb := 0
	for 1<<uint(sb) < ways {
		sb++
	}
	if ways < 2 || 1<<uint(sb) != ways {
		panic("invalid way count " + strconv.Itoa(ways))
	}
	muxN := MuxN(bits)
	ins := make([]string, ways)
	level := make([]string, ways)
	for i := range level {
		level[i] = "in" + strconv.Itoa(i)
		ins[i] = level[i] + "[" + strconv.Itoa(bits) + "]"
	}
	var parts netsim.Parts
	n := 0
	for s := 0; len(level) > 1; s++ {
		next := make([]string, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			out := pOut
			if len(level) > 2 {
				out = "t" + strconv.Itoa(n)
				n++
			}
			parts = append(parts, muxN("a="+level[i]+", b="+level[i+1]+", sel=sel["+strconv.Itoa(s)+"], out="+out))
			next = append(next, out)
		}
		level = next
	}
	return mustChip(
		"MUX"+strconv.Itoa(ways)+"WAY"+strconv.Itoa(bits),
		netsim.In(strings.Join(ins, ", ")+", sel["+strconv.Itoa(sb)+"]"),
		netsim.Out("out["+strconv.Itoa(bits)+"]"),
		parts)
}
