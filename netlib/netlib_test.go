package netlib_test

import (
	"testing"

	hw "github.com/db47h/netsim"
	"github.com/db47h/netsim/nettest"
)

// testGate checks all input combinations of a part with 1 bit ports. The first
// input is the most significant bit of the combination number, and result[o]
// lists the expected value of output o for every combination.
//
func testGate(t *testing.T, gate hw.NewPartFn, result []string) {
	t.Helper()
	s := nettest.Sim(t, gate, nil)
	ins, outs := s.Module().Inputs(), s.Module().Outputs()
	tot := 1 << uint(len(ins))
	for i := 0; i < tot; i++ {
		vs := make([]hw.Logic, len(ins))
		for n, p := range ins {
			vs[n] = hw.Logic(i>>uint(len(ins)-n-1)) & 1
			if err := s.Set(p.Name, vs[n:n+1]); err != nil {
				t.Fatal(err)
			}
		}
		if err := s.Simulate(); err != nil {
			t.Fatal(err)
		}
		for o, p := range outs {
			got, err := s.Get(p.Name, 1)
			if err != nil {
				t.Fatal(err)
			}
			if exp := result[o][i : i+1]; got[0].String() != exp {
				t.Errorf("%s %s: %s = %s, got %s", s.Module().Name(), hw.FormatLogics(vs), p.Name, exp, got[0])
			}
		}
	}
}

// run sets the given ports, simulates one frame and returns the value of port
// out. Bits in the ports map are written MSB first.
//
func run(t *testing.T, s *hw.Sim, ports map[string]string, out string) string {
	t.Helper()
	for n, v := range ports {
		ls, err := hw.ParseLogics(v)
		if err != nil {
			t.Fatal(err)
		}
		if err = s.Set(n, ls); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Simulate(); err != nil {
		t.Fatal(err)
	}
	p, err := s.Module().Port(out)
	if err != nil {
		t.Fatal(err)
	}
	ls, err := s.Get(out, p.Width())
	if err != nil {
		t.Fatal(err)
	}
	return hw.FormatLogics(ls)
}
