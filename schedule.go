// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strings"

	"github.com/pkg/errors"
)

// A Schedule is the update order of the cells of a module. Updating cells in
// that order once per delta cycle propagates every combinational dependency.
//
// Flip-flop outputs do not create dependencies: flip-flops write their outputs
// between delta cycles, so their consumers see the new value in the next
// delta cycle. This is what keeps state-holding feedback loops out of the
// dependency graph.
//
type Schedule struct {
	Order []int // cell indices in update order
	Level []int // topological depth of each cell, indexed by cell index
	Wires int   // number of wires: 1 + the highest wire handle in use
}

// Levels groups the cells in Order by level. Cells in the same level do not
// depend on each other.
//
func (s *Schedule) Levels() [][]int {
	var ls [][]int
	for _, c := range s.Order {
		l := s.Level[c]
		for len(ls) <= l {
			ls = append(ls, nil)
		}
		ls[l] = append(ls[l], c)
	}
	return ls
}

type wireNode struct {
	driver    int   // driving cell or -1
	consumers []int // consuming cells in ascending order
}

type cellNode struct {
	prev []int
	next []int
}

// NewSchedule computes the update order of the cells in m.
//
// It fails with ErrConstruction if a wire has more than one driver or if the
// module contains a combinational loop.
//
func NewSchedule(m *Module) (*Schedule, error) {
	n := countWires(m)
	wires, err := wireGraph(m, n)
	if err != nil {
		return nil, err
	}
	cells := cellGraph(m.cells, wires)
	order, level, err := updateOrder(m, wires, cells)
	if err != nil {
		return nil, err
	}
	return &Schedule{Order: order, Level: level, Wires: n}, nil
}

func countWires(m *Module) int {
	n := 0
	use := func(w Wire) {
		if w < 0 {
			panic("negative wire handle")
		}
		if int(w) >= n {
			n = int(w) + 1
		}
	}
	for _, c := range m.cells {
		for _, p := range c.Inputs() {
			for _, b := range p.Bits {
				if !b.Tied {
					use(b.Wire)
				}
			}
		}
		for _, p := range c.Outputs() {
			for _, w := range p.Wires {
				use(w)
			}
		}
	}
	for _, ps := range [][]ModulePort{m.inputs, m.outputs} {
		for _, p := range ps {
			for _, w := range p.Wires {
				use(w)
			}
		}
	}
	return n
}

func wireGraph(m *Module, n int) ([]wireNode, error) {
	wires := make([]wireNode, n)
	for i := range wires {
		wires[i].driver = -1
	}
	for h, c := range m.cells {
		for _, p := range c.Inputs() {
			for _, b := range p.Bits {
				if b.Tied {
					continue
				}
				wn := &wires[b.Wire]
				if l := len(wn.consumers); l == 0 || wn.consumers[l-1] != h {
					wn.consumers = append(wn.consumers, h)
				}
			}
		}
		for _, p := range c.Outputs() {
			for _, w := range p.Wires {
				wn := &wires[w]
				if wn.driver >= 0 {
					return nil, errors.Wrapf(ErrConstruction, "module %s: wire %d driven by both %s and %s",
						m.name, w, cellLabel(m.cells[wn.driver], wn.driver), cellLabel(c, h))
				}
				wn.driver = h
			}
		}
	}
	return wires, nil
}

func cellGraph(cs []Cell, wires []wireNode) []cellNode {
	cells := make([]cellNode, len(cs))
	seen := make(map[[2]int]bool)
	for _, wn := range wires {
		d := wn.driver
		if d < 0 || cs[d].Kind() == KindDFF {
			continue
		}
		for _, c := range wn.consumers {
			e := [2]int{d, c}
			if seen[e] {
				continue
			}
			seen[e] = true
			cells[d].next = append(cells[d].next, c)
			cells[c].prev = append(cells[c].prev, d)
		}
	}
	return cells
}

// inputCells returns the cells consuming a module input, in port order.
//
func inputCells(m *Module, wires []wireNode) []int {
	var cs []int
	seen := make(map[int]bool)
	for _, p := range m.inputs {
		for _, w := range p.Wires {
			for _, c := range wires[w].consumers {
				if !seen[c] {
					seen[c] = true
					cs = append(cs, c)
				}
			}
		}
	}
	return cs
}

// updateOrder runs Kahn's algorithm on the cell graph. Every queued cell holds
// one token per pending predecessor, plus one if it is a seed. Cells are
// appended to the update order when their last token is consumed.
//
func updateOrder(m *Module, wires []wireNode, cells []cellNode) (order []int, level []int, err error) {
	n := len(cells)
	pending := make([]int, n)
	for i := range cells {
		pending[i] = len(cells[i].prev)
	}

	// seed with cells fed by module inputs, then with cells that have no
	// combinational predecessor: cells driven by constants or flip-flops only.
	queue := inputCells(m, wires)
	seeded := make([]bool, n)
	for _, c := range queue {
		seeded[c] = true
	}
	for c := range cells {
		if !seeded[c] && pending[c] == 0 {
			queue = append(queue, c)
		}
	}
	for _, c := range queue {
		pending[c]++
	}

	order = make([]int, 0, n)
	level = make([]int, n)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		pending[c]--
		switch {
		case pending[c] < 0:
			return nil, nil, errors.Wrapf(ErrConstruction, "module %s: illegal scheduler state at cell %s", m.name, cellLabel(m.cells[c], c))
		case pending[c] == 0:
			order = append(order, c)
			for _, nx := range cells[c].next {
				if l := level[c] + 1; l > level[nx] {
					level[nx] = l
				}
				queue = append(queue, nx)
			}
		}
	}

	if len(order) < n {
		var names []string
		for c := range cells {
			if pending[c] > 0 {
				names = append(names, cellLabel(m.cells[c], c))
			}
		}
		if len(names) > 8 {
			names = append(names[:8], "...")
		}
		return nil, nil, errors.Wrapf(ErrConstruction, "module %s: combinational loop through cells %s", m.name, strings.Join(names, ", "))
	}
	return order, level, nil
}
