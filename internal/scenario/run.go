// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package scenario

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// PortValue is the value of a port, formatted MSB first.
//
type PortValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Frame records the state of the module ports after a simulated frame.
//
type Frame struct {
	Step   int         `json:"step"`
	Frame  uint64      `json:"frame"`
	Deltas int         `json:"deltas"`
	Ports  []PortValue `json:"ports"`
}

// Failure is an expectation that did not match.
//
type Failure struct {
	Step  int    `json:"step"`
	Frame uint64 `json:"frame"`
	Port  string `json:"port"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

func (f *Failure) String() string {
	return fmt.Sprintf("step=%d frame=%d %s: want %s, got %s", f.Step, f.Frame, f.Port, f.Want, f.Got)
}

// Result is the outcome of a scenario run.
//
type Result struct {
	Name     string    `json:"name"`
	Trace    []Frame   `json:"trace"`
	Failures []Failure `json:"failures"`
}

// Pass returns true if all expectations were met.
//
func (r *Result) Pass() bool { return len(r.Failures) == 0 }

type runner struct {
	sc    *Scenario
	s     *netsim.Sim
	ports []netsim.ModulePort
	res   Result
}

// Run builds the scenario module and runs its steps. cfg is passed on to
// netsim.NewSim and may be nil.
//
// Unmet expectations are reported in the result. An error is returned if the
// module cannot be built, if a value cannot be parsed or if a frame does not
// settle.
//
func Run(sc *Scenario, cfg *netsim.Config) (*Result, error) {
	m, err := sc.Module()
	if err != nil {
		return nil, err
	}
	s, err := netsim.NewSim(m, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	r := &runner{
		sc:    sc,
		s:     s,
		ports: append(append([]netsim.ModulePort(nil), m.Inputs()...), m.Outputs()...),
		res:   Result{Name: sc.Name, Trace: []Frame{}, Failures: []Failure{}},
	}
	for i := range sc.Steps {
		if err = r.step(i+1, &sc.Steps[i]); err != nil {
			return &r.res, errors.Wrapf(err, "scenario %s: step %d", sc.Name, i+1)
		}
	}
	return &r.res, nil
}

func sortedKeys(m map[string]string) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func (r *runner) value(port, v string) ([]netsim.Logic, error) {
	p, err := r.s.Module().Port(port)
	if err != nil {
		return nil, err
	}
	ls, err := ParseValue(v, p.Width())
	return ls, errors.Wrapf(err, "port %s", port)
}

func (r *runner) set(port, v string) error {
	ls, err := r.value(port, v)
	if err != nil {
		return err
	}
	return r.s.Set(port, ls)
}

func (r *runner) simulate(step int) error {
	if err := r.s.Simulate(); err != nil {
		return err
	}
	f := Frame{Step: step, Frame: r.s.Frame(), Deltas: r.s.Deltas(), Ports: make([]PortValue, len(r.ports))}
	for i, p := range r.ports {
		ls, err := r.s.Get(p.Name, p.Width())
		if err != nil {
			return err
		}
		f.Ports[i] = PortValue{p.Name, netsim.FormatLogics(ls)}
	}
	r.res.Trace = append(r.res.Trace, f)
	return nil
}

func (r *runner) step(n int, st *Step) error {
	keys := sortedKeys(st.Set)
	repeat := st.Repeat
	if repeat == 0 {
		repeat = 1
	}
	for i := 0; i < repeat; i++ {
		for _, k := range keys {
			if err := r.set(k, st.Set[k]); err != nil {
				return err
			}
		}
		if st.Tick == "" {
			if err := r.simulate(n); err != nil {
				return err
			}
			continue
		}
		for _, v := range []string{"0", "1"} {
			if err := r.set(st.Tick, v); err != nil {
				return err
			}
			if err := r.simulate(n); err != nil {
				return err
			}
		}
	}

	for _, k := range sortedKeys(st.Expect) {
		want, err := r.value(k, st.Expect[k])
		if err != nil {
			return err
		}
		got, err := r.s.Get(k, len(want))
		if err != nil {
			return err
		}
		if w, g := netsim.FormatLogics(want), netsim.FormatLogics(got); w != g {
			r.res.Failures = append(r.res.Failures, Failure{Step: n, Frame: r.s.Frame(), Port: k, Want: w, Got: g})
		}
	}
	return nil
}

// WriteText writes a plain text report of r to w: one line per frame with the
// value of every port, then one line per failure.
//
func WriteText(w io.Writer, r *Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %s\n", r.Name)
	for _, f := range r.Trace {
		fmt.Fprintf(&b, "frame=%d step=%d deltas=%d", f.Frame, f.Step, f.Deltas)
		for _, p := range f.Ports {
			fmt.Fprintf(&b, " %s=%s", p.Name, p.Value)
		}
		b.WriteByte('\n')
	}
	for i := range r.Failures {
		fmt.Fprintf(&b, "FAIL %s\n", r.Failures[i].String())
	}
	fmt.Fprintf(&b, "frames=%d failures=%d\n", len(r.Trace), len(r.Failures))
	_, err := io.WriteString(w, b.String())
	return err
}
