// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package nettest provides utility functions for testing circuits.
//
package nettest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/netsim"
	"github.com/stretchr/testify/require"
)

func connString(pins ...[]string) string {
	var b strings.Builder
	for _, ps := range pins {
		for _, n := range ps {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(n)
			b.WriteByte('=')
			b.WriteString(n)
		}
	}
	return b.String()
}

// Module wraps the part returned by newPart into a module. Each input and
// output pin of the part becomes a module port of the same name, and bus pins
// are grouped into a single port named after the bus.
//
func Module(newPart netsim.NewPartFn) (*netsim.Module, error) {
	spec := newPart("").PartSpec
	p := newPart(connString(spec.Inputs, spec.Outputs))
	return netsim.BuildModule(spec.Name, spec.Inputs, spec.Outputs, netsim.Parts{p})
}

// Sim builds a simulator for the part returned by newPart, wrapped with
// Module. The simulator is closed when the test completes.
//
func Sim(t testing.TB, newPart netsim.NewPartFn, cfg *netsim.Config) *netsim.Sim {
	t.Helper()
	m, err := Module(newPart)
	require.NoError(t, err)
	s, err := netsim.NewSim(m, cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// stimulus returns the i-th input combination for ports, least significant
// bit of the first port first. If exhaustive is false, it returns random
// 0/1 values.
//
func stimulus(ports []netsim.ModulePort, i uint64, rnd *rand.Rand, exhaustive bool) [][]netsim.Logic {
	vs := make([][]netsim.Logic, len(ports))
	for p := range ports {
		ls := make([]netsim.Logic, ports[p].Width())
		for b := range ls {
			if exhaustive {
				ls[b] = netsim.Logic(i & 1)
				i >>= 1
			} else {
				ls[b] = netsim.Logic(rnd.Int63() & 1)
			}
		}
		vs[p] = ls
	}
	return vs
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// Parts with up to 12 input bits are tested exhaustively. Others are given
// 4096 random input combinations. Inputs are applied in sequence to the same
// pair of simulators, so that sequential parts can be compared as well.
//
func ComparePart(t testing.TB, part1, part2 netsim.NewPartFn) {
	t.Helper()

	ps1, ps2 := part1("").PartSpec, part2("").PartSpec
	require.Equal(t, []string(ps1.Inputs), []string(ps2.Inputs), "input pins of %s and %s", ps1.Name, ps2.Name)
	require.Equal(t, []string(ps1.Outputs), []string(ps2.Outputs), "output pins of %s and %s", ps1.Name, ps2.Name)

	s1, s2 := Sim(t, part1, nil), Sim(t, part2, nil)
	ins, outs := s1.Module().Inputs(), s1.Module().Outputs()

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	bits := len(ps1.Inputs)
	exhaustive := bits <= 12
	iter := uint64(1) << 12
	if exhaustive {
		iter = uint64(1) << uint(bits)
	}

	start := time.Now()
	for i := uint64(0); i < iter; i++ {
		vs := stimulus(ins, i, rnd, exhaustive)
		for p, v := range vs {
			require.NoError(t, s1.Set(ins[p].Name, v))
			require.NoError(t, s2.Set(ins[p].Name, v))
		}
		require.NoError(t, s1.Simulate())
		require.NoError(t, s2.Simulate())
		for _, o := range outs {
			g1, err := s1.Get(o.Name, o.Width())
			require.NoError(t, err)
			g2, err := s2.Get(o.Name, o.Width())
			require.NoError(t, err)
			if netsim.FormatLogics(g1) != netsim.FormatLogics(g2) {
				var b strings.Builder
				for p, v := range vs {
					if p > 0 {
						b.WriteString(", ")
					}
					b.WriteString(ins[p].Name + "=" + netsim.FormatLogics(v))
				}
				t.Fatalf("\nInputs %s (seed %d)\n%s: %s = %s, %s = %s", b.String(), seed, o.Name,
					ps1.Name, netsim.FormatLogics(g1), ps2.Name, netsim.FormatLogics(g2))
			}
		}
	}
	elapsed := time.Since(start)
	t.Logf("%d/%d cells. %d frames in %v", len(s1.Module().Cells()), len(s2.Module().Cells()), iter, elapsed)
}
