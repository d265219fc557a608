// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/db47h/evsim"
)

// Period is the delay between two consecutive input values in testbenches.
//
const Period evsim.Time = 10

// maxExhaustive is the largest input width tested exhaustively by ComparePart.
const maxExhaustive = 12

// A GateFn mounts a single input, single output gate in a kernel.
// All reducing gates of the hwlib package are GateFn's.
//
type GateFn func(k *evsim.Kernel, a, out *evsim.Signal) *evsim.Comb

// Product returns all values of the given bit width in increasing order, i.e.
// the binary strings "00..0" through "11..1".
//
func Product(width uint) []uint64 {
	if width == 0 || width > 24 {
		panic("hwtest: unsupported product width")
	}
	vs := make([]uint64, 1<<width)
	for i := range vs {
		vs[i] = uint64(i)
	}
	return vs
}

// Drive registers a stimulus process that writes each value to in, waits for
// period time units, then calls capture. The process terminates after the
// last capture.
//
func Drive(k *evsim.Kernel, in *evsim.Signal, values []uint64, period evsim.Time, capture func()) *evsim.Proc {
	steps := make([]evsim.Step, 0, len(values)+1)
	for i, v := range values {
		v := v
		first := i == 0
		steps = append(steps, func(*evsim.Kernel) evsim.Wait {
			if !first {
				capture()
			}
			in.Write(v)
			return evsim.Delay(period)
		})
	}
	steps = append(steps, func(*evsim.Kernel) evsim.Wait {
		if len(values) > 0 {
			capture()
		}
		return evsim.Done
	})
	return k.Register("stimulus:"+in.Name(), evsim.Sequence(steps...))
}

// TruthTable mounts gate between an input signal of width in and an output
// signal of width out, drives the input through all possible values and
// returns the output captured for each, formatted with evsim.Bin.
//
func TruthTable(t testing.TB, in, out uint, gate GateFn) []string {
	t.Helper()
	k := evsim.NewKernel()
	a := k.NewSignal("a", in, 0)
	o := k.NewSignal("out", out, 0)
	gate(k, a, o)

	var got []string
	Drive(k, a, Product(in), Period, func() { got = append(got, o.Bin()) })
	if _, err := k.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	return got
}

// ComparePart takes two gates and compares their outputs given the same
// inputs. Inputs up to 12 bits wide are tested exhaustively, wider inputs with
// random values.
//
func ComparePart(t *testing.T, in, out uint, part1, part2 GateFn) {
	t.Helper()

	k := evsim.NewKernel()
	a := k.NewSignal("a", in, 0)
	o1 := k.NewSignal("out1", out, 0)
	o2 := k.NewSignal("out2", out, 0)
	part1(k, a, o1)
	part2(k, a, o2)

	var values []uint64
	if in <= maxExhaustive {
		values = Product(in)
	} else {
		// all 0, all 1, then random values
		m := ^uint64(0) >> (64 - in)
		values = append(values, 0, m)
		for i := 0; i < 1<<maxExhaustive; i++ {
			values = append(values, rand.Uint64()&m)
		}
	}

	i := 0
	Drive(k, a, values, Period, func() {
		if o1.Read() != o2.Read() {
			t.Error(errString(a, o1, o2, values[i]))
		}
		i++
	})
	if _, err := k.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := k.Stats()
	t.Logf("%d values, %d instants, %d deltas, %d evaluations in %v", len(values), st.Instants, st.Deltas, st.Evals, st.Elapsed)
}

func errString(a, o1, o2 *evsim.Signal, v uint64) string {
	return fmt.Sprintf("\nExpected %s=%s => %s\nGot %s", a.Name(), evsim.Bin(v, a.Width()), o1.Bin(), o2.Bin())
}
