// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Evaluator is the interface that combinational blocks bound with Bind must
// implement.
//
type Evaluator interface {
	Eval()
}

var signalType = reflect.TypeOf((*Signal)(nil))

// Bind registers impl as an always-combinational block. impl must be a pointer
// to a struct whose input and output signals are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"`. Only fields tagged "in" are
// part of the sensitivity list. Fields must be of type *Signal, or arrays or
// slices of *Signal for buses. Nil fields are resolved by name: by default the
// signal name is the field name in lowercase; a specific name can be forced by
// adding it in the tag: `hw:"in,sel"`. Nil bus arrays are resolved as name[0],
// name[1], and so on.
//
// Bind panics if a field has an unsupported type or tag, or if a signal cannot
// be resolved.
//
func Bind(k *Kernel, name string, impl Evaluator) *Comb {
	v := reflect.ValueOf(impl)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("unsupported type %T for %q", impl, name))
	}
	e := v.Elem()
	typ := e.Type()

	var inputs []*Signal
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pin := strings.ToLower(f.Name)
		tv := strings.Split(tag, ",")
		if len(tv) > 1 && tv[1] != "" {
			pin = tv[1]
		}
		var isInput bool
		switch tv[0] {
		case "in":
			isInput = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		fv := e.Field(i)
		var sigs []*Signal
		switch {
		case f.Type == signalType:
			if fv.IsNil() {
				fv.Set(reflect.ValueOf(k.mustLookup(pin)))
			}
			sigs = append(sigs, fv.Interface().(*Signal))
		case (f.Type.Kind() == reflect.Array || f.Type.Kind() == reflect.Slice) && f.Type.Elem() == signalType:
			if f.Type.Kind() == reflect.Slice && fv.Len() == 0 {
				panic(errors.Errorf("empty bus %q in %q", f.Name, typ.Name()))
			}
			for j := 0; j < fv.Len(); j++ {
				ev := fv.Index(j)
				if ev.IsNil() {
					ev.Set(reflect.ValueOf(k.mustLookup(BusPinName(pin, j))))
				}
				sigs = append(sigs, ev.Interface().(*Signal))
			}
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", f.Type, f.Name, typ.Name()))
		}
		if isInput {
			inputs = append(inputs, sigs...)
		}
	}
	return k.AlwaysComb(name, inputs, impl.Eval)
}

func (k *Kernel) mustLookup(name string) *Signal {
	s, ok := k.names[name]
	if !ok {
		panic(errors.Errorf("signal %q does not exist", name))
	}
	return s
}
