// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/evsim"
	"github.com/pkg/errors"
)

// checkArity checks that n == 2**sel.Width().
func checkArity(name string, n int, sel *evsim.Signal) error {
	if w := sel.Width(); w >= 31 || n != 1<<w {
		return errors.Wrapf(evsim.ErrArityMismatch, "%s: %d selector bits for %d signals", name, w, n)
	}
	return nil
}

// Mux returns a multiplexer with len(inputs) == 2**sel.Width(). It returns an
// error wrapping evsim.ErrArityMismatch if this condition is not met.
//
//	Inputs: inputs[n], sel
//	Outputs: out
//	Function: out = inputs[sel]
//
func Mux(k *evsim.Kernel, inputs []*evsim.Signal, sel, out *evsim.Signal) (*evsim.Comb, error) {
	name := "MUX:" + out.Name()
	if err := checkArity(name, len(inputs), sel); err != nil {
		return nil, err
	}
	ins := make([]*evsim.Signal, len(inputs), len(inputs)+1)
	copy(ins, inputs)
	return k.AlwaysComb(name, append(ins, sel), func() {
		out.Write(ins[sel.Read()].Read())
	}), nil
}

// Demux returns a demultiplexer with len(outputs) == 2**sel.Width(). It returns
// an error wrapping evsim.ErrArityMismatch if this condition is not met.
//
//	Inputs: sel, in
//	Outputs: outputs[n]
//	Function: for i := range outputs { if i == sel { outputs[i] = in } else { outputs[i] = 0 } }
//
func Demux(k *evsim.Kernel, sel, in *evsim.Signal, outputs []*evsim.Signal) (*evsim.Comb, error) {
	name := "DMUX:" + in.Name()
	if err := checkArity(name, len(outputs), sel); err != nil {
		return nil, err
	}
	outs := make([]*evsim.Signal, len(outputs))
	copy(outs, outputs)
	return k.AlwaysComb(name, []*evsim.Signal{sel, in}, func() {
		s := sel.Read()
		for i, o := range outs {
			if uint64(i) == s {
				o.Write(in.Read())
			} else {
				o.Write(0)
			}
		}
	}), nil
}
