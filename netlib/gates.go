// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlib provides a library of reusable parts for netsim.
//
// Primitive parts map directly onto a single netsim cell. Composite parts are
// chips built from primitives.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package netlib

import (
	"strconv"

	"github.com/db47h/netsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pC   = "c"
	pIn  = "in"
	pSel = "sel"
	pClk = "clk"
	pOut = "out"
)

var (
	notGate  = netsim.UnaryPart("NOT", netsim.Not, 1)
	bufGate  = netsim.UnaryPart("BUF", netsim.Buf, 1)
	and      = netsim.BinaryPart("AND", netsim.And, 1)
	nand     = netsim.BinaryPart("NAND", netsim.Nand, 1)
	or       = netsim.BinaryPart("OR", netsim.Or, 1)
	nor      = netsim.BinaryPart("NOR", netsim.Nor, 1)
	xor      = netsim.BinaryPart("XOR", netsim.Xor, 1)
	xnor     = netsim.BinaryPart("XNOR", netsim.Xnor, 1)
	andNot   = netsim.BinaryPart("ANDNOT", netsim.AndNot, 1)
	orNot    = netsim.BinaryPart("ORNOT", netsim.OrNot, 1)
	aoi3Gate = netsim.TernaryPart("AOI3", netsim.Aoi3, 1)
	oai3Gate = netsim.TernaryPart("OAI3", netsim.Oai3, 1)
)

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) netsim.Part { return notGate.NewPart(w) }

// Buf returns a buffer.
//
//	Inputs: in
//	Outputs: out
//	Function: out = in
//
func Buf(w string) netsim.Part { return bufGate.NewPart(w) }

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) netsim.Part { return and.NewPart(w) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(w string) netsim.Part { return nand.NewPart(w) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) netsim.Part { return or.NewPart(w) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor(w string) netsim.Part { return nor.NewPart(w) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = (a && !b) || (!a && b)
//
func Xor(w string) netsim.Part { return xor.NewPart(w) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor(w string) netsim.Part { return xnor.NewPart(w) }

// AndNot returns a AND gate with an inverted b input.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && !b
//
func AndNot(w string) netsim.Part { return andNot.NewPart(w) }

// OrNot returns a OR gate with an inverted b input.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || !b
//
func OrNot(w string) netsim.Part { return orNot.NewPart(w) }

// Aoi3 returns an AND-OR-INVERT gate.
//
//	Inputs: a, b, c
//	Outputs: out
//	Function: out = !(a && b || c)
//
func Aoi3(w string) netsim.Part { return aoi3Gate.NewPart(w) }

// Oai3 returns an OR-AND-INVERT gate.
//
//	Inputs: a, b, c
//	Outputs: out
//	Function: out = !((a || b) && c)
//
func Oai3(w string) netsim.Part { return oai3Gate.NewPart(w) }

// NotN returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(bits int) netsim.NewPartFn {
	return netsim.UnaryPart("NOT", netsim.Not, bits).NewPart
}

// BufN returns a N-bits buffer.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = in
//
func BufN(bits int) netsim.NewPartFn {
	return netsim.UnaryPart("BUF", netsim.Buf, bits).NewPart
}

// GateN returns a N-bits logic gate for the given binary operator.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = op(a[i], b[i]) }
//
func GateN(op netsim.BinaryOp, bits int) netsim.NewPartFn {
	return netsim.BinaryPart(op.String(), op, bits).NewPart
}

// AndN returns a N-bits AND gate.
//
func AndN(bits int) netsim.NewPartFn { return GateN(netsim.And, bits) }

// NandN returns a N-bits NAND gate.
//
func NandN(bits int) netsim.NewPartFn { return GateN(netsim.Nand, bits) }

// OrN returns a N-bits OR gate.
//
func OrN(bits int) netsim.NewPartFn { return GateN(netsim.Or, bits) }

// NorN returns a N-bits NOR gate.
//
func NorN(bits int) netsim.NewPartFn { return GateN(netsim.Nor, bits) }

// XorN returns a N-bits XOR gate.
//
func XorN(bits int) netsim.NewPartFn { return GateN(netsim.Xor, bits) }

// XnorN returns a N-bits XNOR gate.
//
func XnorN(bits int) netsim.NewPartFn { return GateN(netsim.Xnor, bits) }

// Aoi3N returns a N-bits AND-OR-INVERT gate.
//
//	Inputs: a[bits], b[bits], c[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !(a[i] && b[i] || c[i]) }
//
func Aoi3N(bits int) netsim.NewPartFn {
	return netsim.TernaryPart("AOI3", netsim.Aoi3, bits).NewPart
}

// Oai3N returns a N-bits OR-AND-INVERT gate.
//
//	Inputs: a[bits], b[bits], c[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !((a[i] || b[i]) && c[i]) }
//
func Oai3N(bits int) netsim.NewPartFn {
	return netsim.TernaryPart("OAI3", netsim.Oai3, bits).NewPart
}

// nWay builds a balanced tree of 1 bit gates reducing in[ways] to out.
//
func nWay(name string, gate netsim.NewPartFn, ways int) netsim.NewPartFn {
	if ways < 2 {
		panic("invalid way count " + strconv.Itoa(ways))
	}
	var parts netsim.Parts
	level := make([]string, ways)
	for i := range level {
		level[i] = pIn + "[" + strconv.Itoa(i) + "]"
	}
	n := 0
	for len(level) > 1 {
		var next []string
		for i := 0; i+1 < len(level); i += 2 {
			out := pOut
			if len(level) > 2 {
				out = "t" + strconv.Itoa(n)
				n++
			}
			parts = append(parts, gate(pA+"="+level[i]+", "+pB+"="+level[i+1]+", "+pOut+"="+out))
			next = append(next, out)
		}
		if len(level)%2 != 0 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return mustChip(name+strconv.Itoa(ways)+"Way", netsim.In(pIn+"["+strconv.Itoa(ways)+"]"), netsim.Out(pOut), parts)
}

// OrNWay returns a N-Way OR gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] || in[1] || in[2] || ... || in[n-1]
//
func OrNWay(ways int) netsim.NewPartFn { return nWay("OR", Or, ways) }

// AndNWay returns a N-Way AND gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] && in[1] && in[2] && ... && in[n-1]
//
func AndNWay(ways int) netsim.NewPartFn { return nWay("AND", And, ways) }

func mustChip(name string, inputs netsim.Inputs, outputs netsim.Outputs, parts netsim.Parts) netsim.NewPartFn {
	c, err := netsim.Chip(name, inputs, outputs, parts)
	if err != nil {
		panic(err)
	}
	return c
}
