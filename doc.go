/*
Package netsim provides a zero-delay, cycle based gate level simulator for
flattened netlists using a 3-valued logic (0, 1 and undefined).

A Module is a list of cells connected by wires, with named input and output
ports. The set of cells is closed: bitwise unary, binary and ternary gates,
ripple carry adders, multiplexers and edge triggered D flip-flops. Modules can
be built cell by cell with NewModule, or composed from parts with Chip and
BuildModule, using a small hardware description language for pin
connections:

	nand := netsim.BinaryPart("NAND", netsim.Nand, 1).NewPart
	not, _ := netsim.Chip("NOT", netsim.In("in"), netsim.Out("out"), netsim.Parts{
		nand("a=in, b=in, out=out"),
	})
	m, _ := netsim.BuildModule("top", netsim.In("a"), netsim.Out("y"), netsim.Parts{
		not("in=a, out=y"),
	})

A Sim runs a Module: callers set input ports, call Simulate to advance one
frame, then read output ports. Within a frame, cells are updated in
topological order once per delta cycle. Flip-flops write their outputs at the
end of the delta cycle in which their clock edge was seen, triggering another
delta cycle, until no write is pending.

Unknown values propagate through gates the way they would through real logic:
the output of a gate is undefined only when it depends on the value of an
undefined input.

The netlib package provides a library of common parts built on top of this
package.
*/
package netsim
