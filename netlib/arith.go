// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"strconv"

	"github.com/db47h/netsim"
)

var (
	hAdder = mustChip("HalfAdder", netsim.In("a, b"), netsim.Out("s, c"), netsim.Parts{
		Xor("a=a, b=b, out=s"),
		And("a=a, b=b, out=c"),
	})
	fAdder = mustChip("FullAdder", netsim.In("a, b, cin"), netsim.Out("s, cout"), netsim.Parts{
		hAdder("a=a, b=b, s=s0, c=c0"),
		hAdder("a=s0, b=cin, s=s, c=c1"),
		Or("a=c0, b=c1, out=cout"),
	})
)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(c string) netsim.Part {
	return hAdder(c)
}

// FullAdder returns a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(c string) netsim.Part {
	return fAdder(c)
}

// AdderN returns a N-bits adder mapped onto a single add cell. The carry out
// is dropped.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = a + b
//
// Undefined input bits propagate along the carry chain the same way they
// would through a gate-level ripple carry adder.
//
func AdderN(bits int) netsim.NewPartFn {
	return netsim.AdderPart(bits).NewPart
}

// RippleAdderN returns a N-bits ripple carry adder built from full adders.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = lsb(a + b)
//	          c = carry out
//
func RippleAdderN(bits int) netsim.NewPartFn {
	if bits <= 0 {
		panic("invalid bit count " + strconv.Itoa(bits))
	}
	parts := make(netsim.Parts, 0, bits)
	cin := netsim.False
	for i := 0; i < bits; i++ {
		n := strconv.Itoa(i)
		cout := "c"
		if i < bits-1 {
			cout = "c" + n
		}
		parts = append(parts, FullAdder("a=a["+n+"], b=b["+n+"], cin="+cin+", s=out["+n+"], cout="+cout))
		cin = cout
	}
	n := strconv.Itoa(bits)
	return mustChip("RippleAdder"+n, netsim.In("a["+n+"], b["+n+"]"), netsim.Out("out["+n+"], c"), parts)
}

// IncN returns a N-bits incrementer.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = in + 1
//
func IncN(bits int) netsim.NewPartFn {
	n := strconv.Itoa(bits)
	c := "a=in, b=true, out=out"
	if bits > 1 {
		c = "a=in, b[0]=true, b[1.." + strconv.Itoa(bits-1) + "]=false, out=out"
	}
	return mustChip("INC"+n, netsim.In("in["+n+"]"), netsim.Out("out["+n+"]"), netsim.Parts{AdderN(bits)(c)})
}
