// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for evsim.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package hwlib

import (
	"math/bits"

	"github.com/db47h/evsim"
)

func ones(width uint) uint64 { return ^uint64(0) >> (64 - width) }

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// reduce gates: a single input bus reduced to an output value.
type reduce func(v uint64, width uint) uint64

func (r reduce) mount(k *evsim.Kernel, name string, a, out *evsim.Signal) *evsim.Comb {
	return k.AlwaysComb(name+":"+out.Name(), []*evsim.Signal{a}, func() {
		out.Write(r(a.Read(), a.Width()))
	})
}

var (
	and       = reduce(func(v uint64, w uint) uint64 { return b2u(v == ones(w)) })
	or        = reduce(func(v uint64, w uint) uint64 { return b2u(v != 0) })
	not       = reduce(func(v uint64, w uint) uint64 { return ^v })
	xor       = reduce(func(v uint64, w uint) uint64 { return b2u(bits.OnesCount64(v) == 1) })
	oddParity = reduce(func(v uint64, w uint) uint64 { return uint64(bits.OnesCount64(v) & 1) })
)

// And returns a AND gate over all bits of a.
//
//	Inputs: a
//	Outputs: out
//	Function: out = a[0] && a[1] && ... && a[n-1]
//
func And(k *evsim.Kernel, a, out *evsim.Signal) *evsim.Comb { return and.mount(k, "AND", a, out) }

// Or returns a OR gate over all bits of a.
//
//	Inputs: a
//	Outputs: out
//	Function: out = a[0] || a[1] || ... || a[n-1]
//
func Or(k *evsim.Kernel, a, out *evsim.Signal) *evsim.Comb { return or.mount(k, "OR", a, out) }

// Not returns a bitwise NOT gate. The output is truncated to the width of out.
//
//	Inputs: a
//	Outputs: out
//	Function: for i := range out { out[i] = !a[i] }
//
func Not(k *evsim.Kernel, a, out *evsim.Signal) *evsim.Comb { return not.mount(k, "NOT", a, out) }

// Xor returns a XOR gate: out is 1 iff exactly one bit of a is set.
//
//	Inputs: a
//	Outputs: out
//	Function: out = a[0] != a[1]
//
// Xor is only meaningful for a 2 bits input. For wider inputs use OddParity.
//
func Xor(k *evsim.Kernel, a, out *evsim.Signal) *evsim.Comb { return xor.mount(k, "XOR", a, out) }

// OddParity returns an odd parity checker: out is 1 iff an odd number of bits
// of a are set. It is equivalent to Xor for 2 bits inputs.
//
//	Inputs: a
//	Outputs: out
//	Function: out = a[0] ^ a[1] ^ ... ^ a[n-1]
//
func OddParity(k *evsim.Kernel, a, out *evsim.Signal) *evsim.Comb {
	return oddParity.mount(k, "PARITY", a, out)
}

// other gates
type gate func(a, b uint64) uint64

func (g gate) mount(k *evsim.Kernel, name string, a, b, out *evsim.Signal) *evsim.Comb {
	return k.AlwaysComb(name+":"+out.Name(), []*evsim.Signal{a, b}, func() {
		out.Write(g(a.Read(), b.Read()))
	})
}

var (
	nand = gate(func(a, b uint64) uint64 { return ^(a & b) })
	nor  = gate(func(a, b uint64) uint64 { return ^(a | b) })
	xnor = gate(func(a, b uint64) uint64 { return ^(a ^ b) })
)

// Nand returns a bitwise NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(k *evsim.Kernel, a, b, out *evsim.Signal) *evsim.Comb {
	return nand.mount(k, "NAND", a, b, out)
}

// Nor returns a bitwise NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor(k *evsim.Kernel, a, b, out *evsim.Signal) *evsim.Comb {
	return nor.mount(k, "NOR", a, b, out)
}

// Xnor returns a bitwise XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor(k *evsim.Kernel, a, b, out *evsim.Signal) *evsim.Comb {
	return xnor.mount(k, "XNOR", a, b, out)
}
