// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "github.com/pkg/errors"

// Error kinds. Errors returned by this package wrap one of these values with
// some context. Use errors.Cause (or errors.Is) to get the kind of an error:
//
//	if errors.Cause(err) == netsim.ErrNotFound {
//		// no such port
//	}
//
var (
	// ErrFormat is returned for malformed io specs and connection strings.
	ErrFormat = errors.New("format error")
	// ErrConstruction is returned when a cell, module or schedule cannot be
	// built: duplicate wire drivers, width mismatches, unknown pins or
	// combinational loops.
	ErrConstruction = errors.New("construction error")
	// ErrSimulation is returned when a frame does not settle.
	ErrSimulation = errors.New("simulation error")
	// ErrInvalidArgument is returned for bad argument values, like a port
	// width mismatch on Sim.Set or Sim.Get.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when a named port does not exist.
	ErrNotFound = errors.New("not found")
)
