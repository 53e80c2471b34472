package netlib_test

import (
	"testing"
	"testing/quick"

	hw "github.com/db47h/netsim"
	nl "github.com/db47h/netsim/netlib"
	"github.com/db47h/netsim/nettest"
)

func TestMuxN(t *testing.T) {
	s := nettest.Sim(t, nl.MuxN(16), nil)
	f := func(a, b uint16, sel bool) bool {
		if err := s.SetFields(&struct {
			A   uint16 `net:""`
			B   uint16 `net:""`
			Sel bool   `net:""`
		}{a, b, sel}); err != nil {
			t.Fatal(err)
		}
		if err := s.Simulate(); err != nil {
			t.Fatal(err)
		}
		var out struct {
			Out uint16 `net:""`
		}
		if err := s.GetFields(&out); err != nil {
			t.Fatal(err)
		}
		if sel {
			return out.Out == b
		}
		return out.Out == a
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestMux_undefSel(t *testing.T) {
	c, err := hw.Chip("muxX", hw.In("a[4], b[4]"), hw.Out("out[4]"), hw.Parts{
		nl.MuxN(4)("a=a, b=b, sel=undef, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	s := nettest.Sim(t, c, nil)
	td := []struct{ a, b, out string }{
		{"0000", "0000", "0000"},
		{"1111", "1111", "1111"},
		{"1100", "1010", "1xx0"},
		{"x101", "x100", "x10x"},
	}
	for _, d := range td {
		if got := run(t, s, map[string]string{"a": d.a, "b": d.b}, "out"); got != d.out {
			t.Errorf("mux(%s, %s, x) = %s, got %s", d.a, d.b, d.out, got)
		}
	}
}

func TestDMuxN(t *testing.T) {
	s := nettest.Sim(t, nl.DMuxN(8), nil)
	td := []struct{ in, sel, a, b string }{
		{"10110011", "0", "10110011", "00000000"},
		{"10110011", "1", "00000000", "10110011"},
		{"1x001100", "0", "1x001100", "00000000"},
		{"11110000", "x", "xxxx0000", "xxxx0000"},
	}
	for _, d := range td {
		if got := run(t, s, map[string]string{"in": d.in, "sel": d.sel}, "a"); got != d.a {
			t.Errorf("dmux(%s, %s).a = %s, got %s", d.in, d.sel, d.a, got)
		}
		if got := run(t, s, nil, "b"); got != d.b {
			t.Errorf("dmux(%s, %s).b = %s, got %s", d.in, d.sel, d.b, got)
		}
	}
}

func TestMuxMWayN(t *testing.T) {
	s := nettest.Sim(t, nl.MuxMWayN(4, 8), nil)
	f := func(in [4]uint8, sel uint8) bool {
		sel &= 3
		for i, n := range []string{"in0", "in1", "in2", "in3"} {
			if err := s.SetUint(n, uint64(in[i])); err != nil {
				t.Fatal(err)
			}
		}
		if err := s.SetUint("sel", uint64(sel)); err != nil {
			t.Fatal(err)
		}
		if err := s.Simulate(); err != nil {
			t.Fatal(err)
		}
		out, err := s.GetUint("out")
		if err != nil {
			t.Fatal(err)
		}
		return out == uint64(in[sel])
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestMux8Way1(t *testing.T) {
	s := nettest.Sim(t, nl.MuxMWayN(8, 1), nil)
	for in := uint64(0); in < 256; in += 37 {
		for sel := uint64(0); sel < 8; sel++ {
			for i := 0; i < 8; i++ {
				if err := s.Set("in"+string(rune('0'+i)), []hw.Logic{hw.Logic(in>>uint(i)) & 1}); err != nil {
					t.Fatal(err)
				}
			}
			if err := s.SetUint("sel", sel); err != nil {
				t.Fatal(err)
			}
			if err := s.Simulate(); err != nil {
				t.Fatal(err)
			}
			out, err := s.GetUint("out")
			if err != nil {
				t.Fatal(err)
			}
			if exp := in >> sel & 1; out != exp {
				t.Errorf("mux8way(%08b, %d) = %d, got %d", in, sel, exp, out)
			}
		}
	}
}
