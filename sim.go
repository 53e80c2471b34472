// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/pkg/errors"
)

// DefaultMaxDelta is the default cap on the number of delta cycles per frame.
//
const DefaultMaxDelta = 1000

// Config holds the simulator settings. The zero value is a valid
// configuration.
//
type Config struct {
	// Workers is the number of goroutines used to update cells. Values of 0
	// or 1 run the simulation on the calling goroutine. If negative, the
	// value of GOMAXPROCS is used.
	Workers int
	// MaxDelta caps the number of delta cycles in a frame. Defaults to
	// DefaultMaxDelta.
	MaxDelta int
	// Vectorized enables the packed 64 bits evaluation path of multi-bit
	// unary and binary cells.
	Vectorized bool
	// Logger receives debug traces of the delta-cycle loop. Defaults to a
	// discarding logger.
	Logger *slog.Logger
}

// Sim is a zero-delay, cycle based simulator for a Module.
//
// Callers write input ports with Set, call Simulate, then read output ports
// with Get. Each call to Simulate runs delta cycles until no clocked cell has
// pending writes.
//
// A Sim is not safe for concurrent use. Callers must make sure to call Close
// once the simulator is no longer needed if it was created with more than one
// worker.
//
type Sim struct {
	m        *Module
	sched    *Schedule
	cells    []Cell   // in update order
	levels   [][]Cell // cells grouped by topological level
	st       State
	ports    map[string][]Wire
	frame    uint64
	deltas   int
	maxDelta int
	log      *slog.Logger
	pool     *pool
}

// NewSim returns a new simulator for m. cfg may be nil.
//
// The wire state starts with all wires Unknown.
//
func NewSim(m *Module, cfg *Config) (*Sim, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	sched, err := NewSchedule(m)
	if err != nil {
		return nil, err
	}

	s := &Sim{
		m:        m,
		sched:    sched,
		cells:    make([]Cell, len(sched.Order)),
		st:       newState(sched.Wires),
		ports:    make(map[string][]Wire, len(m.inputs)+len(m.outputs)),
		maxDelta: cfg.MaxDelta,
		log:      cfg.Logger,
	}
	s.st.vec = cfg.Vectorized
	if s.maxDelta <= 0 {
		s.maxDelta = DefaultMaxDelta
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for i, c := range sched.Order {
		s.cells[i] = m.cells[c]
	}
	for _, ps := range [][]ModulePort{m.inputs, m.outputs} {
		for _, p := range ps {
			s.ports[p.Name] = p.Wires
		}
	}

	workers := cfg.Workers
	if workers < 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers > 1 {
		for _, l := range sched.Levels() {
			cs := make([]Cell, len(l))
			for i, c := range l {
				cs[i] = m.cells[c]
			}
			s.levels = append(s.levels, cs)
		}
		s.pool = newPool(workers, &s.st)
	}

	s.log.Debug("simulator ready", "module", m.name, "cells", len(s.cells), "wires", sched.Wires, "workers", workers)
	return s, nil
}

// Close stops the worker goroutines, if any. The simulator must not be used
// afterwards.
//
func (s *Sim) Close() {
	if s.pool != nil {
		s.pool.close()
		s.pool = nil
	}
}

// Module returns the simulated module.
//
func (s *Sim) Module() *Module { return s.m }

// Schedule returns the cell update order.
//
func (s *Sim) Schedule() *Schedule { return s.sched }

// Frame returns the number of frames successfully simulated so far.
//
func (s *Sim) Frame() uint64 { return s.frame }

// Deltas returns the number of delta cycles run by the last call to Simulate.
//
func (s *Sim) Deltas() int { return s.deltas }

func (s *Sim) lookup(name string) ([]Wire, error) {
	ws, ok := s.ports[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "module %s: no port named %q", s.m.name, name)
	}
	return ws, nil
}

func checkLen(name string, ws []Wire, n int) error {
	if len(ws) != n {
		return errors.Wrapf(ErrInvalidArgument, "port %q has width %d, got %d", name, len(ws), n)
	}
	return nil
}

// Set sets the current value of the named port. Port bits are ordered least
// significant bit first. Both input and output ports can be set.
//
func (s *Sim) Set(name string, ls []Logic) error {
	ws, err := s.lookup(name)
	if err != nil {
		return err
	}
	if err = checkLen(name, ws, len(ls)); err != nil {
		return err
	}
	s.st.write(ws, ls)
	return nil
}

// Get returns the current value of the named port. width must match the port
// width.
//
func (s *Sim) Get(name string, width int) ([]Logic, error) {
	ws, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if err = checkLen(name, ws, width); err != nil {
		return nil, err
	}
	ls := make([]Logic, width)
	s.st.read(ws, ls)
	return ls, nil
}

// A Handle is a port resolved by Sim.Port. It avoids name lookups in tight
// simulation loops.
//
type Handle struct {
	name  string
	wires []Wire
}

// Name returns the port name.
//
func (h Handle) Name() string { return h.name }

// Width returns the port width.
//
func (h Handle) Width() int { return len(h.wires) }

// Port resolves the named port.
//
func (s *Sim) Port(name string) (Handle, error) {
	ws, err := s.lookup(name)
	if err != nil {
		return Handle{}, err
	}
	return Handle{name, ws}, nil
}

// SetPort is like Set for a resolved port.
//
func (s *Sim) SetPort(h Handle, ls []Logic) error {
	if err := checkLen(h.name, h.wires, len(ls)); err != nil {
		return err
	}
	s.st.write(h.wires, ls)
	return nil
}

// GetPort reads the current value of a resolved port into dst.
//
func (s *Sim) GetPort(h Handle, dst []Logic) error {
	if err := checkLen(h.name, h.wires, len(dst)); err != nil {
		return err
	}
	s.st.read(h.wires, dst)
	return nil
}

// Simulate advances the simulation by one frame.
//
// Each delta cycle updates every cell in schedule order, then saves the
// current wire states as the previous ones. If clocked cells queued writes
// during the cycle, these are applied and a new delta cycle starts. The frame
// ends when a delta cycle completes with no queued write.
//
// Simulate returns an error wrapping ErrSimulation if the frame does not
// settle within the configured number of delta cycles. Pending writes are
// dropped and the frame counter is left unchanged.
//
func (s *Sim) Simulate() error {
	st := &s.st
	for d := 1; ; d++ {
		if d > s.maxDelta {
			st.deferred = st.deferred[:0]
			s.deltas = d - 1
			s.log.Debug("frame did not settle", "frame", s.frame+1, "deltas", s.deltas)
			return errors.Wrapf(ErrSimulation, "module %s: frame %d did not settle after %d delta cycles", s.m.name, s.frame+1, s.maxDelta)
		}
		s.update()
		copy(st.prev, st.cur)
		if len(st.deferred) == 0 {
			s.deltas = d
			s.frame++
			s.log.Debug("frame settled", "frame", s.frame, "deltas", d)
			return nil
		}
		s.log.Debug("delta cycle", "frame", s.frame+1, "delta", d, "writes", len(st.deferred))
		st.commit(st.deferred)
		st.deferred = st.deferred[:0]
	}
}

// update runs one delta cycle.
//
func (s *Sim) update() {
	if s.pool == nil {
		for _, c := range s.cells {
			s.st.reset()
			c.Simulate(&s.st)
		}
		return
	}
	for _, l := range s.levels {
		s.pool.run(l, &s.st)
	}
}
