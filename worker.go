// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "sync"

// pool is a fixed set of goroutines updating the cells of one topological
// level concurrently. Each worker has its own State sharing the wire buffers
// of the simulator.
//
type pool struct {
	ws []*worker
	wg sync.WaitGroup
}

type worker struct {
	st State
	wc chan []Cell
}

func newPool(n int, st *State) *pool {
	p := &pool{ws: make([]*worker, n)}
	for i := range p.ws {
		w := &worker{st: st.fork(), wc: make(chan []Cell, 1)}
		p.ws[i] = w
		go w.loop(&p.wg)
	}
	return p
}

func (w *worker) loop(wg *sync.WaitGroup) {
	for {
		cs, ok := <-w.wc
		if !ok {
			wg.Done()
			return
		}
		for _, c := range cs {
			w.st.reset()
			c.Simulate(&w.st)
		}
		wg.Done()
	}
}

// run updates cells cs, which must not depend on each other, and merges the
// deferred writes of all workers into st.
//
func (p *pool) run(cs []Cell, st *State) {
	if len(cs) < 2 {
		for _, c := range cs {
			st.reset()
			c.Simulate(st)
		}
		return
	}
	n := len(p.ws)
	size := len(cs) / n
	if size*n < len(cs) {
		size++
	}
	var busy []*worker
	for _, w := range p.ws {
		if len(cs) == 0 {
			break
		}
		if size > len(cs) {
			size = len(cs)
		}
		p.wg.Add(1)
		w.wc <- cs[:size]
		busy = append(busy, w)
		cs = cs[size:]
	}
	p.wg.Wait()
	for _, w := range busy {
		st.deferred = append(st.deferred, w.st.deferred...)
		w.st.deferred = w.st.deferred[:0]
	}
}

// close stops all workers.
//
func (p *pool) close() {
	p.wg.Add(len(p.ws))
	for _, w := range p.ws {
		close(w.wc)
	}
	p.wg.Wait()
}
