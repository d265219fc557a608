// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/evsim"

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(k *evsim.Kernel, a, b, s, c *evsim.Signal) *evsim.Comb {
	return k.AlwaysComb("HalfAdder:"+s.Name(), []*evsim.Signal{a, b}, func() {
		va, vb := a.Bit(0), b.Bit(0)
		s.WriteBool(va != vb)
		c.WriteBool(va && vb)
	})
}

// FullAdder returns a 3 bits adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(k *evsim.Kernel, a, b, cin, s, cout *evsim.Signal) *evsim.Comb {
	return k.AlwaysComb("FullAdder:"+s.Name(), []*evsim.Signal{a, b, cin}, func() {
		va, vb, vc := a.Bit(0), b.Bit(0), cin.Bit(0)
		x := va != vb
		s.WriteBool(x != vc)
		cout.WriteBool(x && vc || va && vb)
	})
}

// Adder returns a N bits adder where N is the width of sum. cout may be nil.
//
//	Inputs: a[n], b[n]
//	Outputs: sum[n], cout
//	Function: sum = lsb(a + b)
//	          cout = carry out of bit n-1
//
func Adder(k *evsim.Kernel, a, b, sum, cout *evsim.Signal) *evsim.Comb {
	w := sum.Width()
	return k.AlwaysComb("Adder:"+sum.Name(), []*evsim.Signal{a, b}, func() {
		m := ones(w)
		va, vb := a.Read()&m, b.Read()&m
		r := va + vb
		sum.Write(r)
		if cout != nil {
			// carry out of the msb, computed without overflowing 64 bits.
			c := (va&vb | (va|vb)&^r) >> (w - 1)
			cout.Write(c & 1)
		}
	})
}
