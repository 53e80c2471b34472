// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// State is the wire state of a running simulation as seen by cells: the
// previous and current value of every wire, and the queue of deferred writes
// made by clocked cells during the current delta cycle.
//
// Each worker of a parallel simulation gets its own State sharing the wire
// buffers of the simulator but with private deferred queue and scratch space.
//
type State struct {
	prev     []Logic // wire states at the end of the last delta cycle
	cur      []Logic // current wire states
	deferred []deferredWrite
	buf      []Logic // scratch space, reset before each cell update
	vec      bool    // use the packed evaluation path
}

type deferredWrite struct {
	w Wire
	v Logic
}

func newState(wires int) State {
	s := State{
		prev: make([]Logic, wires),
		cur:  make([]Logic, wires),
	}
	for i := range s.cur {
		s.prev[i] = Unknown
		s.cur[i] = Unknown
	}
	return s
}

// fork returns a State sharing the wire buffers of s.
//
func (s *State) fork() State {
	return State{prev: s.prev, cur: s.cur, vec: s.vec}
}

// Cur returns the current value of wire w.
//
func (s *State) Cur(w Wire) Logic { return s.cur[w] }

// Prev returns the value of wire w at the end of the previous delta cycle.
//
func (s *State) Prev(w Wire) Logic { return s.prev[w] }

// Edge returns the transition of wire w between the previous and current
// delta cycle.
//
func (s *State) Edge(w Wire) Edge { return EdgeOf(s.prev[w], s.cur[w]) }

func (s *State) reset() { s.buf = s.buf[:0] }

// alloc returns n Logic values of scratch space, valid until the next reset.
//
func (s *State) alloc(n int) []Logic {
	l := len(s.buf)
	if cap(s.buf)-l < n {
		s.buf = make([]Logic, 0, 2*cap(s.buf)+n)
		l = 0
	}
	s.buf = s.buf[:l+n]
	return s.buf[l : l+n : l+n]
}

// input reads the current values of an input port into scratch space.
//
func (s *State) input(p *InPort) []Logic {
	dst := s.alloc(len(p.Bits))
	for i, b := range p.Bits {
		if b.Tied {
			dst[i] = b.Value
		} else {
			dst[i] = s.cur[b.Wire]
		}
	}
	return dst
}

func (s *State) read(ws []Wire, dst []Logic) {
	if len(ws) != len(dst) {
		panic("wire count does not match value count")
	}
	for i, w := range ws {
		dst[i] = s.cur[w]
	}
}

func (s *State) write(ws []Wire, src []Logic) {
	if len(ws) != len(src) {
		panic("wire count does not match value count")
	}
	for i, w := range ws {
		s.cur[w] = src[i]
	}
}

// deferWrite queues writes of src to ws. They are applied once all cells of
// the current delta cycle have been updated.
//
func (s *State) deferWrite(ws []Wire, src []Logic) {
	if len(ws) != len(src) {
		panic("wire count does not match value count")
	}
	for i, w := range ws {
		s.deferred = append(s.deferred, deferredWrite{w, src[i]})
	}
}

// commit applies the deferred writes ds to the current wire states.
//
func (s *State) commit(ds []deferredWrite) {
	for _, d := range ds {
		s.cur[d.w] = d.v
	}
}
