package netsim_test

import (
	"math/rand"
	"strings"
	"testing"
	"testing/quick"

	hw "github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// checkOrder verifies that every combinational cell comes before the cells
// consuming its outputs.
//
func checkOrder(t *testing.T, m *hw.Module, s *hw.Schedule) bool {
	t.Helper()
	cells := m.Cells()
	if len(s.Order) != len(cells) {
		t.Errorf("schedule has %d cells, expected %d", len(s.Order), len(cells))
		return false
	}
	pos := make([]int, len(cells))
	for i := range pos {
		pos[i] = -1
	}
	for i, c := range s.Order {
		if pos[c] >= 0 {
			t.Errorf("cell %d scheduled twice", c)
			return false
		}
		pos[c] = i
	}
	driver := make(map[hw.Wire]int)
	for i, c := range cells {
		if c.Kind() == hw.KindDFF {
			continue
		}
		for _, p := range c.Outputs() {
			for _, w := range p.Wires {
				driver[w] = i
			}
		}
	}
	for i, c := range cells {
		for _, p := range c.Inputs() {
			for _, b := range p.Bits {
				if b.Tied {
					continue
				}
				if d, ok := driver[b.Wire]; ok {
					if pos[d] >= pos[i] {
						t.Errorf("cell %d scheduled before its driver %d", i, d)
						return false
					}
					if s.Level[d] >= s.Level[i] {
						t.Errorf("cell %d level %d <= driver %d level %d", i, s.Level[i], d, s.Level[d])
						return false
					}
				}
			}
		}
	}
	return true
}

func TestSchedule_chain(t *testing.T) {
	must := mustCell(t)
	// cells listed in reverse dependency order
	cells := []hw.Cell{
		must(hw.NewUnary("n2", hw.Not, hw.Signals(2), []hw.Wire{3})),
		must(hw.NewBinary("n1", hw.And, hw.Signals(1), []hw.Signal{hw.Tie(hw.One)}, []hw.Wire{2})),
		must(hw.NewUnary("n0", hw.Not, hw.Signals(0), []hw.Wire{1})),
	}
	m, err := hw.NewModule("chain", cells, []hw.ModulePort{port("a", 0)}, []hw.ModulePort{port("y", 3)})
	if err != nil {
		t.Fatal(err)
	}
	s, err := hw.NewSchedule(m)
	if err != nil {
		t.Fatal(err)
	}
	if s.Wires != 4 {
		t.Errorf("got %d wires, expected 4", s.Wires)
	}
	want := []int{2, 1, 0}
	for i := range want {
		if s.Order[i] != want[i] {
			t.Fatalf("order = %v, expected %v", s.Order, want)
		}
	}
	ls := s.Levels()
	if len(ls) != 3 || ls[0][0] != 2 || ls[1][0] != 1 || ls[2][0] != 0 {
		t.Fatalf("levels = %v", ls)
	}
	checkOrder(t, m, s)
}

func TestSchedule_random(t *testing.T) {
	f := func(seed int64) bool {
		rng := rand.New(rand.NewSource(seed))
		m := randomModule(t, rng, 1+rng.Intn(8), 1+rng.Intn(200))
		s, err := hw.NewSchedule(m)
		if err != nil {
			t.Log(err)
			return false
		}
		return checkOrder(t, m, s)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestSchedule_dffFeedback(t *testing.T) {
	must := mustCell(t)
	// toggle flip-flop: q = DFF(clk, !q)
	cells := []hw.Cell{
		must(hw.NewUnary("inv", hw.Not, hw.Signals(1), []hw.Wire{2})),
		must(hw.NewDFF("ff", hw.Rising, hw.Signals(0), hw.Signals(2), []hw.Wire{1})),
	}
	m, err := hw.NewModule("toggle", cells, []hw.ModulePort{port("clk", 0)}, []hw.ModulePort{port("q", 1)})
	if err != nil {
		t.Fatal(err)
	}
	s, err := hw.NewSchedule(m)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	checkOrder(t, m, s)
	if ls := s.Levels(); len(ls) != 2 {
		t.Errorf("levels = %v, expected 2 levels", ls)
	}
}

func TestSchedule_errors(t *testing.T) {
	must := mustCell(t)
	td := []struct {
		name  string
		cells []hw.Cell
		err   string
	}{
		{"duplicate_driver", []hw.Cell{
			must(hw.NewUnary("n0", hw.Not, hw.Signals(0), []hw.Wire{1})),
			must(hw.NewUnary("n1", hw.Buf, hw.Signals(0), []hw.Wire{1})),
		}, "wire 1 driven by both n0 and n1"},
		{"duplicate_dff_driver", []hw.Cell{
			must(hw.NewDFF("", hw.Rising, hw.Signals(0), hw.Signals(0), []hw.Wire{1})),
			must(hw.NewDFF("", hw.Falling, hw.Signals(0), hw.Signals(0), []hw.Wire{1})),
		}, "wire 1 driven by both dff#0 and dff#1"},
		{"loop", []hw.Cell{
			must(hw.NewUnary("n0", hw.Not, hw.Signals(2), []hw.Wire{1})),
			must(hw.NewUnary("n1", hw.Not, hw.Signals(1), []hw.Wire{2})),
		}, "combinational loop through cells n0, n1"},
		{"input_loop", []hw.Cell{
			must(hw.NewBinary("and", hw.And, hw.Signals(0), hw.Signals(2), []hw.Wire{1})),
			must(hw.NewUnary("buf", hw.Buf, hw.Signals(1), []hw.Wire{2})),
		}, "combinational loop through cells and, buf"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			m, err := hw.NewModule(d.name, d.cells, []hw.ModulePort{port("a", 0)}, nil)
			if err != nil {
				t.Fatal(err)
			}
			_, err = hw.NewSchedule(m)
			if errors.Cause(err) != hw.ErrConstruction {
				t.Fatalf("got error %v, expected %v", err, hw.ErrConstruction)
			}
			if !strings.Contains(err.Error(), d.err) {
				t.Errorf("error %q does not contain %q", err, d.err)
			}
		})
	}
}

func TestNewModule_errors(t *testing.T) {
	_, err := hw.NewModule("dup", nil, []hw.ModulePort{port("a", 0)}, []hw.ModulePort{port("a", 1)})
	if errors.Cause(err) != hw.ErrConstruction {
		t.Errorf("duplicate port: got error %v", err)
	}
	_, err = hw.NewModule("empty", nil, []hw.ModulePort{port("", 0)}, nil)
	if errors.Cause(err) != hw.ErrConstruction {
		t.Errorf("empty port name: got error %v", err)
	}
	m, err := hw.NewModule("ok", nil, []hw.ModulePort{port("a", 0)}, []hw.ModulePort{port("y", 0)})
	if err != nil {
		t.Fatal(err)
	}
	p, err := m.Port("y")
	if err != nil || p.Dir != hw.Output || p.Width() != 1 {
		t.Errorf("Port(\"y\") = %v, %v", p, err)
	}
	if _, err = m.Port("z"); errors.Cause(err) != hw.ErrNotFound {
		t.Errorf("Port(\"z\") error = %v", err)
	}
}

func TestNewCell_errors(t *testing.T) {
	td := []struct {
		name string
		err  error
	}{
		{"unary", func() error {
			_, err := hw.NewUnary("c", hw.Not, hw.Signals(0, 1), []hw.Wire{2})
			return err
		}()},
		{"binary", func() error {
			_, err := hw.NewBinary("c", hw.And, hw.Signals(0), hw.Signals(0, 1), []hw.Wire{2})
			return err
		}()},
		{"ternary", func() error {
			_, err := hw.NewTernary("c", hw.Aoi3, hw.Signals(0), hw.Signals(1), nil, []hw.Wire{2})
			return err
		}()},
		{"add", func() error {
			_, err := hw.NewAdd("c", hw.Signals(0), hw.Signals(1), nil)
			return err
		}()},
		{"dff_clk", func() error {
			_, err := hw.NewDFF("c", hw.Rising, hw.Signals(0, 1), hw.Signals(2), []hw.Wire{3})
			return err
		}()},
		{"dff_edge", func() error {
			_, err := hw.NewDFF("c", hw.NoEdge, hw.Signals(0), hw.Signals(2), []hw.Wire{3})
			return err
		}()},
		{"mux_sel", func() error {
			_, err := hw.NewMux("c", hw.Signals(0), hw.Signals(1), nil, []hw.Wire{3})
			return err
		}()},
	}
	for _, d := range td {
		if errors.Cause(d.err) != hw.ErrConstruction {
			t.Errorf("%s: got error %v, expected %v", d.name, d.err, hw.ErrConstruction)
		}
	}
}
