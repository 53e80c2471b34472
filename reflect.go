// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

var (
	logicType      = reflect.TypeOf(Logic(0))
	logicSliceType = reflect.TypeOf([]Logic(nil))
)

// portField is a struct field bound to a module port.
//
type portField struct {
	port  string
	index int
}

// portFields returns the tagged fields of struct type typ.
//
// The field tag must be `net:"port_name"`. If the port name is empty, the
// port name is the field name in lowercase. Fields tagged with `net:"-"` or
// without a net tag are ignored.
//
func portFields(typ reflect.Type) ([]portField, error) {
	if typ.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrInvalidArgument, "unsupported type %q", typ)
	}
	var fs []portField
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("net")
		if !ok || tag == "-" {
			continue
		}
		if f.PkgPath != "" {
			return nil, errors.Wrapf(ErrInvalidArgument, "unexported field %q in %q", f.Name, typ.Name())
		}
		name := tag
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		fs = append(fs, portField{name, i})
	}
	return fs, nil
}

func structValue(v interface{}, ptr bool) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return rv, errors.Wrap(ErrInvalidArgument, "nil pointer")
		}
		rv = rv.Elem()
	} else if ptr {
		return rv, errors.Wrapf(ErrInvalidArgument, "%T is not a pointer", v)
	}
	return rv, nil
}

// SetFields sets module ports from the tagged fields of the struct v or *v:
//
//	var in struct {
//		A   uint8   `net:"a"`
//		B   uint8   `net:"b"`
//		Sel Logic   `net:""` // port "sel"
//		Bus []Logic `net:"d"`
//	}
//	err := sim.SetFields(&in)
//
// Supported field types are Logic (one bit ports), bool, unsigned and signed
// integers of any size, arrays and slices of Logic.
//
func (s *Sim) SetFields(v interface{}) error {
	rv, err := structValue(v, false)
	if err != nil {
		return err
	}
	fs, err := portFields(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range fs {
		if err = s.setField(f.port, rv.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sim) setField(port string, fv reflect.Value) error {
	switch {
	case fv.Type() == logicType:
		return s.Set(port, []Logic{Logic(fv.Uint())})
	case fv.Type() == logicSliceType:
		return s.Set(port, fv.Interface().([]Logic))
	case fv.Kind() == reflect.Array && fv.Type().Elem() == logicType:
		ls := make([]Logic, fv.Len())
		reflect.Copy(reflect.ValueOf(ls), fv)
		return s.Set(port, ls)
	}
	switch fv.Kind() {
	case reflect.Bool:
		return s.Set(port, []Logic{FromBool(fv.Bool())})
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return s.SetUint(port, fv.Uint())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ws, err := s.lookup(port)
		if err != nil {
			return err
		}
		// two's complement, truncated to the port width.
		s.st.write(ws, FromUint(uint64(fv.Int()), len(ws)))
		return nil
	}
	return errors.Wrapf(ErrInvalidArgument, "unsupported type %q for port %q", fv.Type(), port)
}

// GetFields is the reverse of SetFields: it reads module ports into the
// tagged fields of the struct pointed to by v. Slices of Logic are resized
// to the port width. Reading an undefined port into a bool or integer field
// fails with ErrInvalidArgument.
//
func (s *Sim) GetFields(v interface{}) error {
	rv, err := structValue(v, true)
	if err != nil {
		return err
	}
	fs, err := portFields(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range fs {
		if err = s.getField(f.port, rv.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sim) getField(port string, fv reflect.Value) error {
	ws, err := s.lookup(port)
	if err != nil {
		return err
	}
	ls := make([]Logic, len(ws))
	s.st.read(ws, ls)

	switch {
	case fv.Type() == logicType:
		if len(ls) != 1 {
			return errors.Wrapf(ErrInvalidArgument, "port %q has width %d, got 1", port, len(ls))
		}
		fv.SetUint(uint64(ls[0]))
		return nil
	case fv.Type() == logicSliceType:
		fv.Set(reflect.ValueOf(ls))
		return nil
	case fv.Kind() == reflect.Array && fv.Type().Elem() == logicType:
		if fv.Len() != len(ls) {
			return errors.Wrapf(ErrInvalidArgument, "port %q has width %d, got %d", port, len(ls), fv.Len())
		}
		reflect.Copy(fv, reflect.ValueOf(ls))
		return nil
	}

	u, err := ToUint(ls)
	if err != nil {
		return errors.Wrapf(err, "port %q", port)
	}
	switch fv.Kind() {
	case reflect.Bool:
		if len(ls) != 1 {
			return errors.Wrapf(ErrInvalidArgument, "port %q has width %d, got 1", port, len(ls))
		}
		fv.SetBool(u != 0)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		fv.SetUint(u)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// sign extend
		if n := uint(len(ls)); n > 0 && n < 64 && u&(1<<(n-1)) != 0 {
			u |= ^uint64(0) << n
		}
		fv.SetInt(int64(u))
	default:
		return errors.Wrapf(ErrInvalidArgument, "unsupported type %q for port %q", fv.Type(), port)
	}
	return nil
}
