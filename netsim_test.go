package netsim_test

import (
	"math/rand"
	"testing"

	hw "github.com/db47h/netsim"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func logics(t *testing.T, s string) []hw.Logic {
	t.Helper()
	ls, err := hw.ParseLogics(s)
	if err != nil {
		t.Fatal(err)
	}
	return ls
}

func newSim(t *testing.T, m *hw.Module, cfg *hw.Config) *hw.Sim {
	t.Helper()
	s, err := hw.NewSim(m, cfg)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

func set(t *testing.T, s *hw.Sim, port, value string) {
	t.Helper()
	if err := s.Set(port, logics(t, value)); err != nil {
		t.Fatal(err)
	}
}

func get(t *testing.T, s *hw.Sim, port string, width int) string {
	t.Helper()
	ls, err := s.Get(port, width)
	if err != nil {
		t.Fatal(err)
	}
	return hw.FormatLogics(ls)
}

func simulate(t *testing.T, s *hw.Sim) {
	t.Helper()
	if err := s.Simulate(); err != nil {
		trace(t, err)
		t.Fatal(err)
	}
}

func port(name string, ws ...hw.Wire) hw.ModulePort {
	return hw.ModulePort{Name: name, Wires: ws}
}

func mustCell(t *testing.T) func(c hw.Cell, err error) hw.Cell {
	return func(c hw.Cell, err error) hw.Cell {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return c
	}
}

// randomModule returns a module with random single bit cells. Input wires
// 0..in-1 form the "in" port, wire in is the clock. Cell i drives wire in+1+i
// and only reads wires driven before it, except flip-flops, which read any
// wire. Cells are listed in random order.
//
func randomModule(t *testing.T, rng *rand.Rand, in, n int) *hw.Module {
	must := mustCell(t)
	clk := hw.Wire(in)
	cells := make([]hw.Cell, n)
	out := make([]hw.Wire, n)
	for i := range cells {
		y := hw.Wire(in + 1 + i)
		out[i] = y
		pick := func() hw.Signal {
			switch rng.Intn(16) {
			case 0:
				return hw.Tie(hw.Logics[rng.Intn(3)])
			case 1:
				return hw.W(clk)
			}
			return hw.W(hw.Wire(rng.Intn(int(y))))
		}
		ys := []hw.Wire{y}
		switch rng.Intn(6) {
		case 0:
			cells[i] = must(hw.NewUnary("", hw.UnaryOp(rng.Intn(2)), []hw.Signal{pick()}, ys))
		case 1:
			cells[i] = must(hw.NewBinary("", hw.BinaryOp(rng.Intn(8)), []hw.Signal{pick()}, []hw.Signal{pick()}, ys))
		case 2:
			cells[i] = must(hw.NewTernary("", hw.TernaryOp(rng.Intn(3)), []hw.Signal{pick()}, []hw.Signal{pick()}, []hw.Signal{pick()}, ys))
		case 3:
			cells[i] = must(hw.NewMux("", []hw.Signal{pick()}, []hw.Signal{pick()}, []hw.Signal{pick()}, ys))
		case 4:
			cells[i] = must(hw.NewAdd("", []hw.Signal{pick()}, []hw.Signal{pick()}, ys))
		default:
			edge := hw.Rising
			if rng.Intn(2) == 0 {
				edge = hw.Falling
			}
			d := hw.W(hw.Wire(rng.Intn(in + n + 1)))
			cells[i] = must(hw.NewDFF("", edge, []hw.Signal{hw.W(clk)}, []hw.Signal{d}, ys))
		}
	}
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	ins := make([]hw.Wire, in)
	for i := range ins {
		ins[i] = hw.Wire(i)
	}
	m, err := hw.NewModule("random", cells, []hw.ModulePort{port("in", ins...), port("clk", clk)}, []hw.ModulePort{port("out", out...)})
	if err != nil {
		t.Fatal(err)
	}
	return m
}
