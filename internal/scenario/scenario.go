// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package scenario loads and runs simulation scenarios.
//
// A scenario is a YAML document describing a module built from library parts
// and a sequence of stimulus steps with expected outputs:
//
//	name: counter2
//	inputs: clk, inc, reset
//	outputs: out[2]
//	parts:
//	  - type: counter
//	    width: 2
//	    conns: clk=clk, inc=inc, reset=reset, out=out
//	steps:
//	  - set: {inc: 1, reset: 1}
//	    tick: clk
//	    expect: {out: "00"}
//
// Port values are either bit strings, most significant bit first, over the
// characters 0, 1 and x, whose length matches the port width, or unsigned
// integers in decimal or with a 0x, 0b or 0o prefix.
//
package scenario

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/netlib"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scenario is a module description together with its stimulus.
//
type Scenario struct {
	// Name of the scenario, also used as the module name.
	Name string `yaml:"name"`
	// Description is free text.
	Description string `yaml:"description,omitempty"`
	// Inputs and Outputs are io specs for the module ports, like
	// "a[8], b[8], cin".
	Inputs  string `yaml:"inputs"`
	Outputs string `yaml:"outputs"`
	// Parts lists the parts the module is made of.
	Parts []Part `yaml:"parts"`
	// Steps is the stimulus.
	Steps []Step `yaml:"steps,omitempty"`
}

// Part is a library part instance.
//
type Part struct {
	// Type is the part name as known by netlib.Lookup.
	Type string `yaml:"type"`
	// Width defaults to 1.
	Width int `yaml:"width,omitempty"`
	// Conns is the connection string.
	Conns string `yaml:"conns"`
}

// Step is a stimulus step.
//
// Set values are applied, then a single frame is simulated. If Tick names a
// clock port, two frames are simulated instead: one with the clock low, then
// one with the clock high. The step is run Repeat times (at least once) and
// Expect is checked after the last run.
//
type Step struct {
	Set    map[string]string `yaml:"set,omitempty"`
	Tick   string            `yaml:"tick,omitempty"`
	Repeat int               `yaml:"repeat,omitempty"`
	Expect map[string]string `yaml:"expect,omitempty"`
}

// Parse decodes a scenario from r. Unknown fields are rejected.
//
func Parse(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, errors.Wrapf(netsim.ErrFormat, "failed to parse YAML: %v", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads and parses a scenario file.
//
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scenario file")
	}
	sc, err := Parse(bytes.NewReader(data))
	return sc, errors.Wrapf(err, "%s", path)
}

func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return errors.Wrap(netsim.ErrFormat, "invalid scenario: name is required")
	}
	if len(sc.Parts) == 0 {
		return errors.Wrapf(netsim.ErrFormat, "invalid scenario %s: parts list is required and must be non-empty", sc.Name)
	}
	for i, p := range sc.Parts {
		if p.Type == "" {
			return errors.Wrapf(netsim.ErrFormat, "invalid scenario %s: part %d: type is required", sc.Name, i)
		}
		if p.Width < 0 {
			return errors.Wrapf(netsim.ErrFormat, "invalid scenario %s: part %d: negative width", sc.Name, i)
		}
	}
	for i, s := range sc.Steps {
		if s.Repeat < 0 {
			return errors.Wrapf(netsim.ErrFormat, "invalid scenario %s: step %d: negative repeat count", sc.Name, i+1)
		}
	}
	return nil
}

// Module builds the scenario module.
//
func (sc *Scenario) Module() (*netsim.Module, error) {
	ins, err := netsim.ParseIOSpec(sc.Inputs)
	if err != nil {
		return nil, errors.Wrap(err, "inputs")
	}
	outs, err := netsim.ParseIOSpec(sc.Outputs)
	if err != nil {
		return nil, errors.Wrap(err, "outputs")
	}
	parts := make(netsim.Parts, 0, len(sc.Parts))
	for i, p := range sc.Parts {
		w := p.Width
		if w == 0 {
			w = 1
		}
		newPart, err := netlib.Lookup(p.Type, w)
		if err != nil {
			return nil, errors.Wrapf(err, "part %d", i)
		}
		conns, err := netsim.ParseConnections(p.Conns)
		if err != nil {
			return nil, errors.Wrapf(err, "part %d", i)
		}
		parts = append(parts, netsim.Part{PartSpec: newPart("").PartSpec, Conns: conns})
	}
	return netsim.BuildModule(sc.Name, ins, outs, parts)
}

// ParseValue parses a port value for a port of the given width. The result
// is least significant bit first. Strings of 0, 1 and x matching the port
// width are read as bit strings, so that "0x10" is a bit string for a 4 bits
// port and an hexadecimal number for wider ones.
//
func ParseValue(s string, width int) ([]netsim.Logic, error) {
	s = strings.TrimSpace(s)
	if len(s) == width && strings.Trim(s, "01xX") == "" {
		return netsim.ParseLogics(s)
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXbBoO", rune(s[1])) {
		return parseUint(s, 0, width)
	}
	return parseUint(s, 10, width)
}

func parseUint(s string, base, width int) ([]netsim.Logic, error) {
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return nil, errors.Wrapf(netsim.ErrFormat, "invalid value %q for %d bits port", s, width)
	}
	if width < 64 && v>>uint(width) != 0 {
		return nil, errors.Wrapf(netsim.ErrInvalidArgument, "value %q does not fit in %d bits", s, width)
	}
	return netsim.FromUint(v, width), nil
}
