// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"strconv"

	"github.com/db47h/netsim"
)

var (
	dff    = netsim.DFFPart(netsim.Rising, 1)
	negDFF = netsim.DFFPart(netsim.Falling, 1)
	bitReg = mustChip("BIT", netsim.In("clk, in, load"), netsim.Out("out"), netsim.Parts{
		Mux("a=out, b=in, sel=load, out=d"),
		DFF("clk=clk, in=d, out=out"),
	})
)

// DFF returns a data flip flop triggered on the rising edge of clk.
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
// The output is only updated when the clock edge is known. Writes to out
// take effect on the next delta cycle.
//
func DFF(w string) netsim.Part { return dff.NewPart(w) }

// NegDFF is like DFF but triggered on the falling edge of clk.
//
func NegDFF(w string) netsim.Part { return negDFF.NewPart(w) }

// DFFN returns a N-bits rising edge data flip flop.
//
//	Inputs: clk, in[bits]
//	Outputs: out[bits]
//
func DFFN(bits int) netsim.NewPartFn {
	return netsim.DFFPart(netsim.Rising, bits).NewPart
}

// NegDFFN returns a N-bits falling edge data flip flop.
//
//	Inputs: clk, in[bits]
//	Outputs: out[bits]
//
func NegDFFN(bits int) netsim.NewPartFn {
	return netsim.DFFPart(netsim.Falling, bits).NewPart
}

// Bit returns a 1 bit register.
//
//	Inputs: clk, in, load
//	Outputs: out
//	Function: if load(t-1) then out(t) = in(t-1) else out(t) = out(t-1)
//
func Bit(c string) netsim.Part { return bitReg(c) }

// RegisterN returns a N-bits register.
//
//	Inputs: clk, in[bits], load
//	Outputs: out[bits]
//	Function: if load(t-1) then out(t) = in(t-1) else out(t) = out(t-1)
//
func RegisterN(bits int) netsim.NewPartFn {
	if bits == 1 {
		return bitReg
	}
	n := strconv.Itoa(bits)
	return mustChip("REGISTER"+n, netsim.In("clk, in["+n+"], load"), netsim.Out("out["+n+"]"), netsim.Parts{
		MuxN(bits)("a=out, b=in, sel=load, out=d"),
		DFFN(bits)("clk=clk, in=d, out=out"),
	})
}

// CounterN returns a N-bits counter.
//
//	Inputs: clk, inc, reset
//	Outputs: out[bits]
//	Function: if reset(t-1) out(t) = 0
//	          else if inc(t-1) out(t) = out(t-1) + 1
//	          else out(t) = out(t-1)
//
// The counter output is undefined until it is reset.
//
func CounterN(bits int) netsim.NewPartFn {
	n := strconv.Itoa(bits)
	return mustChip("COUNTER"+n, netsim.In("clk, inc, reset"), netsim.Out("out["+n+"]"), netsim.Parts{
		IncN(bits)("in=out, out=next"),
		MuxN(bits)("a=out, b=next, sel=inc, out=d0"),
		MuxN(bits)("a=d0, b=false, sel=reset, out=d1"),
		DFFN(bits)("clk=clk, in=d1, out=out"),
	})
}
