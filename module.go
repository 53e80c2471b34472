// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "github.com/pkg/errors"

// A Module is a flattened netlist: a list of cells and the module's input and
// output ports. A Module must not be modified once created. It can be shared
// by any number of simulators.
//
type Module struct {
	name    string
	cells   []Cell
	inputs  []ModulePort
	outputs []ModulePort
}

// NewModule returns a new Module.
//
// Port names must be unique across inputs and outputs. A wire may appear in
// both an input and an output port.
//
func NewModule(name string, cells []Cell, inputs, outputs []ModulePort) (*Module, error) {
	seen := make(map[string]bool, len(inputs)+len(outputs))
	for _, ps := range [][]ModulePort{inputs, outputs} {
		for _, p := range ps {
			if p.Name == "" {
				return nil, errors.Wrapf(ErrConstruction, "module %s: empty port name", name)
			}
			if seen[p.Name] {
				return nil, errors.Wrapf(ErrConstruction, "module %s: duplicate port name %q", name, p.Name)
			}
			seen[p.Name] = true
		}
	}
	for i := range inputs {
		inputs[i].Dir = Input
	}
	for i := range outputs {
		outputs[i].Dir = Output
	}
	return &Module{
		name:    name,
		cells:   cells,
		inputs:  inputs,
		outputs: outputs,
	}, nil
}

// Name returns the module name.
//
func (m *Module) Name() string { return m.name }

// Cells returns the module cells. The returned slice must not be modified.
//
func (m *Module) Cells() []Cell { return m.cells }

// Inputs returns the module input ports.
//
func (m *Module) Inputs() []ModulePort { return m.inputs }

// Outputs returns the module output ports.
//
func (m *Module) Outputs() []ModulePort { return m.outputs }

// Port returns the named module port.
//
func (m *Module) Port(name string) (*ModulePort, error) {
	for _, ps := range [][]ModulePort{m.inputs, m.outputs} {
		for i := range ps {
			if ps[i].Name == name {
				return &ps[i], nil
			}
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "module %s: no port named %q", m.name, name)
}
