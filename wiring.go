// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "github.com/pkg/errors"

// a binding connects one part pin to a pin name in the containing chip or to
// a constant.
type binding struct {
	pin  string
	dir  Dir
	wire string // chip pin name, empty if tied
	val  Logic  // constant value if tied
}

func (b *binding) tied() bool { return b.wire == "" }

// expand returns the part pins that r stands for.
//
func (p *PartSpec) expand(r Ref) ([]string, error) {
	if r.Start < 0 {
		if _, ok := p.pinDir(r.Name); ok {
			return []string{r.Name}, nil
		}
		var pins []string
		for i := 0; ; i++ {
			n := busPinName(r.Name, i)
			if _, ok := p.pinDir(n); !ok {
				break
			}
			pins = append(pins, n)
		}
		if len(pins) == 0 {
			return nil, errors.Wrapf(ErrConstruction, "invalid pin name %s for part %s", r.Name, p.Name)
		}
		return pins, nil
	}
	pins := make([]string, 0, r.End-r.Start+1)
	for i := r.Start; i <= r.End; i++ {
		n := busPinName(r.Name, i)
		if _, ok := p.pinDir(n); !ok {
			return nil, errors.Wrapf(ErrConstruction, "invalid pin name %s for part %s", n, p.Name)
		}
		pins = append(pins, n)
	}
	return pins, nil
}

// busWidth returns the number of consecutive pins name[0], name[1], ...
// for which known returns true.
//
func busWidth(name string, known func(string) bool) int {
	n := 0
	for known(busPinName(name, n)) {
		n++
	}
	return n
}

// expandChip returns the chip pins that r stands for when connected to width
// part pins. Bare names of chip pins or buses expand to their full width.
// Other bare names are internal wires and follow the part side.
//
func expandChip(r Ref, width int, known func(string) bool) []string {
	if r.Start >= 0 {
		pins := make([]string, 0, r.End-r.Start+1)
		for i := r.Start; i <= r.End; i++ {
			pins = append(pins, busPinName(r.Name, i))
		}
		return pins
	}
	if known(r.Name) {
		return []string{r.Name}
	}
	if w := busWidth(r.Name, known); w > 0 {
		width = w
	} else if width == 1 {
		return []string{r.Name}
	}
	pins := make([]string, width)
	for i := range pins {
		pins[i] = busPinName(r.Name, i)
	}
	return pins
}

// bindings resolves the connections of p. known reports whether a name is a
// pin of the containing chip.
//
func (p *Part) bindings(known func(string) bool) ([]binding, error) {
	var bs []binding
	seen := make(map[string]bool)
	add := func(pp string, b binding) error {
		if seen[pp] {
			return errors.Wrapf(ErrConstruction, "%s.%s: pin connected more than once", p.Name, pp)
		}
		seen[pp] = true
		bs = append(bs, b)
		return nil
	}
	for _, c := range p.Conns {
		pps, err := p.expand(c.PP)
		if err != nil {
			return nil, err
		}
		if v, ok := constants[c.CP.Name]; ok {
			for _, pp := range pps {
				dir, _ := p.pinDir(pp)
				if dir == Output {
					return nil, errors.Wrapf(ErrConstruction, "%s.%s:%s: output pin connected to constant", p.Name, pp, c.CP.Name)
				}
				if err = add(pp, binding{pin: pp, dir: dir, val: v}); err != nil {
					return nil, err
				}
			}
			continue
		}
		cps := expandChip(c.CP, len(pps), known)
		if len(cps) != len(pps) && len(cps) != 1 {
			return nil, errors.Wrapf(ErrConstruction, "%s: pin count mismatch in connection %s=%s: %d != %d", p.Name, c.PP, c.CP, len(pps), len(cps))
		}
		for i, pp := range pps {
			cp := cps[0]
			if len(cps) > 1 {
				cp = cps[i]
			}
			dir, _ := p.pinDir(pp)
			if dir == Output && len(cps) < len(pps) {
				return nil, errors.Wrapf(ErrConstruction, "%s.%s:%s: several output pins connected to the same pin", p.Name, pp, cp)
			}
			if err = add(pp, binding{pin: pp, dir: dir, wire: cp}); err != nil {
				return nil, err
			}
		}
	}
	return bs, nil
}
