package netsim_test

import (
	"strings"
	"testing"

	hw "github.com/db47h/netsim"
	"github.com/pkg/errors"
)

var (
	nand = hw.BinaryPart("NAND", hw.Nand, 1).NewPart
	not  = hw.UnaryPart("NOT", hw.Not, 1).NewPart
	buf  = hw.UnaryPart("BUF", hw.Buf, 1).NewPart
)

func TestChip_errors(t *testing.T) {
	unkChip, err := hw.Chip("TESTCHIP", hw.In("a, b"), hw.Out("out"), hw.Parts{
		// chip input a is unused
		nand("a=b, b=b, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	mux4 := hw.MuxPart(4).NewPart
	data := []struct {
		name  string
		in    hw.Inputs
		out   hw.Outputs
		parts hw.Parts
		err   string
	}{
		{"true_out", hw.In("a, b"), hw.Out("out"), hw.Parts{
			nand("a=a, b=b, out=true"),
			nand("a=a, b=b, out=out"),
		}, "NAND.out:true: output pin connected to constant"},
		{"false_out", hw.In("a, b"), hw.Out("out"), hw.Parts{
			nand("a=a, b=b, out=false"),
			nand("a=a, b=b, out=out"),
		}, "NAND.out:false: output pin connected to constant"},
		{"multi_out", hw.In("a, b"), hw.Out("out"), hw.Parts{
			nand("a=a, b=b, out=a"),
			nand("a=a, b=b, out=out"),
		}, "NAND.out:a: chip input pin used as output"},
		{"multi_out2", hw.In("a, b"), hw.Out("out"), hw.Parts{
			nand("a=a, b=b, out=x"),
			nand("a=a, b=b, out=x"),
			not("in=x, out=out"),
		}, "NAND.out:x: output pin already used as output by NAND.out"},
		{"no_output", hw.In("a, b"), hw.Out("out"), hw.Parts{
			nand("a=a, b=wx, out=out"),
		}, "pin wx not connected to any output"},
		{"twice", hw.In("a, b"), hw.Out("out"), hw.Parts{
			nand("a=a, a=b, out=out"),
		}, "NAND.a: pin connected more than once"},
		{"dup_pin", hw.In("a, a"), hw.Out("out"), nil, "duplicate pin name a"},
		{"reserved", hw.In("a, true"), hw.Out("out"), nil, "reserved pin name true"},
		{"width", hw.In("x[2], b[4], s"), hw.Out("out[4]"), hw.Parts{
			mux4("a=x, b=b, sel=s, out=out"),
		}, "pin count mismatch in connection a=x: 4 != 2"},
		{"fan_out", hw.In("a[4], s"), hw.Out("o"), hw.Parts{
			mux4("a=a, b[0..3]=s, sel=s, out=o"),
		}, "MUX4.out[0]:o: several output pins connected to the same pin"},
		{"unconnected_in", hw.In("a, b"), hw.Out("out"), hw.Parts{}, ""},
		{"unknown_pin", hw.In("a, b"), hw.Out("out"), hw.Parts{
			nand("a=a, typo=b, out=out"),
		}, "invalid pin name typo for part NAND"},
		{"unknown_pin2", hw.In("a, b"), hw.Out("out"), hw.Parts{
			unkChip("a=a, typo=b, out=out"),
		}, "invalid pin name typo for part TESTCHIP"},
		{"unknown_bus_pin", hw.In("a, b"), hw.Out("out"), hw.Parts{
			mux4("a[4]=a, out=out"),
		}, "invalid pin name a[4] for part MUX4"},
		{"ok", hw.In("a, b"), hw.Out("out"), hw.Parts{
			unkChip("a=a, b=b, out=out"),
		}, ""},
		{"constants", hw.In("a"), hw.Out("out[4]"), hw.Parts{
			mux4("a=true, b[0..1]=false, b[2..3]=undef, sel=a, out=out"),
		}, ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := hw.Chip(d.name, d.in, d.out, d.parts)
			if d.err == "" {
				if err != nil {
					trace(t, err)
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if errors.Cause(err) != hw.ErrConstruction {
				t.Fatalf("got error %v, expected %v", err, hw.ErrConstruction)
			}
			if !strings.Contains(err.Error(), d.err) {
				t.Errorf("got error %q, expected %q", err, d.err)
			}
		})
	}
}

func TestChip_omitted_pins(t *testing.T) {
	var a, b, c, tr, f, o0, o1 hw.Signal
	dummy := (&hw.PartSpec{
		Name:    "dummy",
		Inputs:  hw.In("a, b, c, t, f"),
		Outputs: hw.Out("o0, o1"),
		Mount: func(s *hw.Socket) ([]hw.Cell, error) {
			a, b, c, tr, f, o0, o1 = s.Signal("a"), s.Signal("b"), s.Signal("c"), s.Signal("t"), s.Signal("f"), s.Signal("o0"), s.Signal("o1")
			return nil, nil
		}}).NewPart
	// another layer for testing purposes: dummy.o1 gets a dangling wire.
	wrapper, err := hw.Chip("wrapper", hw.In("wa, wb"), hw.Out("wo0, wo1"), hw.Parts{
		dummy("a=wa, c=wb, t=true, f=false, o0=wo0"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}

	m, err := hw.BuildModule("top", hw.In("wa, wb"), hw.Out("wo0, wo1"), hw.Parts{wrapper("wa=wa, wb=wb, wo0=wo0, wo1=wo1")})
	if err != nil {
		t.Fatal(err)
	}
	wire := func(name string) hw.Signal {
		p, err := m.Port(name)
		if err != nil {
			t.Fatal(err)
		}
		return hw.W(p.Wires[0])
	}

	if a != wire("wa") || c != wire("wb") || o0 != wire("wo0") {
		t.Errorf("a = %v, c = %v, o0 = %v: not connected to module ports", a, c, o0)
	}
	if b != hw.Tie(hw.Unknown) || tr != hw.Tie(hw.One) || f != hw.Tie(hw.Zero) {
		t.Errorf("b = %v, t = %v, f = %v: expected x, 1, 0", b, tr, f)
	}
	if o1.Tied || o1 == wire("wo1") || o1 == o0 {
		t.Errorf("o1 = %v: expected a dangling wire", o1)
	}
}

func TestChip_fanout(t *testing.T) {
	gate, err := hw.Chip("FANOUT", hw.In("in"), hw.Out("a, b, bus[2]"), hw.Parts{
		buf("in=in, out=a"),
		not("in=in, out=b"),
		// chip outputs feeding part inputs
		buf("in=a, out=bus[0]"),
		not("in=b, out=bus[1]"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	wrapper, err := hw.Chip("FANOUT_Wrapper", hw.In("in"), hw.Out("o[4]"), hw.Parts{
		gate("in=in, a=o[0], b=o[1], bus=o[2..3]"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	m, err := hw.BuildModule("fanout", hw.In("in"), hw.Out("o[4]"), hw.Parts{wrapper("in=in, o=o")})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	if n := len(m.Cells()); n != 4 {
		t.Errorf("got %d cells, expected 4", n)
	}
	s := newSim(t, m, nil)
	for _, d := range []struct{ in, o string }{{"1", "1101"}, {"0", "0010"}, {"x", "xxxx"}} {
		set(t, s, "in", d.in)
		simulate(t, s)
		if o := get(t, s, "o", 4); o != d.o {
			t.Errorf("in = %s: o = %s, expected %s", d.in, o, d.o)
		}
	}
}

func TestChip_cellNames(t *testing.T) {
	half, err := hw.Chip("HalfAdder", hw.In("a, b"), hw.Out("s, c"), hw.Parts{
		hw.BinaryPart("XOR", hw.Xor, 1).NewPart("a=a, b=b, out=s"),
		hw.BinaryPart("AND", hw.And, 1).NewPart("a=a, b=b, out=c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err := hw.BuildModule("ha", hw.In("a, b"), hw.Out("s, c"), hw.Parts{
		half("a=a, b=b, s=s, c=c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"HalfAdder:0/XOR:0", "HalfAdder:0/AND:1"}
	for i, c := range m.Cells() {
		if c.Name() != want[i] {
			t.Errorf("cell %d: got name %q, expected %q", i, c.Name(), want[i])
		}
	}
}

func TestBuildModule(t *testing.T) {
	m, err := hw.BuildModule("mux4", hw.In("a[4], b[4], sel"), hw.Out("out[4]"), hw.Parts{
		hw.MuxPart(4).NewPart("a=a, b=b, sel=sel, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range m.Inputs() {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "a,b,sel" {
		t.Errorf("inputs = %v", names)
	}
	if p := m.Outputs()[0]; p.Name != "out" || p.Width() != 4 || p.Dir != hw.Output {
		t.Errorf("output port = %+v", p)
	}

	_, err = hw.BuildModule("bad", hw.In("a"), hw.Out("out"), hw.Parts{
		not("in=a, out=a"),
	})
	if errors.Cause(err) != hw.ErrConstruction {
		t.Errorf("got error %v, expected %v", err, hw.ErrConstruction)
	}
}
