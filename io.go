// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "github.com/pkg/errors"

// FromUint returns the width least significant bits of v as a Logic slice,
// least significant bit first.
//
func FromUint(v uint64, width int) []Logic {
	ls := make([]Logic, width)
	for i := range ls {
		if i < 64 {
			ls[i] = Logic(v>>uint(i)) & 1
		}
	}
	return ls
}

// ToUint packs ls (least significant bit first) into an integer. It fails if
// any bit is Unknown or if ls is wider than 64 bits.
//
func ToUint(ls []Logic) (uint64, error) {
	if len(ls) > 64 {
		return 0, errors.Wrapf(ErrInvalidArgument, "%d bits do not fit in 64", len(ls))
	}
	var v uint64
	for i, l := range ls {
		switch l {
		case Zero:
		case One:
			v |= 1 << uint(i)
		default:
			return 0, errors.Wrapf(ErrInvalidArgument, "bit %d is undefined in %s", i, FormatLogics(ls))
		}
	}
	return v, nil
}

// SetUint sets the named port to the binary representation of v.
//
func (s *Sim) SetUint(name string, v uint64) error {
	p, err := s.lookup(name)
	if err != nil {
		return err
	}
	if len(p) < 64 && v>>uint(len(p)) != 0 {
		return errors.Wrapf(ErrInvalidArgument, "value %#x does not fit in %d bits port %q", v, len(p), name)
	}
	s.st.write(p, FromUint(v, len(p)))
	return nil
}

// GetUint returns the value of the named port as an integer.
//
func (s *Sim) GetUint(name string) (uint64, error) {
	p, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	ls := make([]Logic, len(p))
	s.st.read(p, ls)
	v, err := ToUint(ls)
	return v, errors.Wrapf(err, "port %q", name)
}
