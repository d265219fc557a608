// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/evsim"

// DFF returns a data flip flop clocked on the rising edge of clk.
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(k *evsim.Kernel, clk, in, out *evsim.Signal) *evsim.Proc {
	return k.Register("DFF:"+out.Name(), evsim.Always(evsim.Posedge(clk), func(*evsim.Kernel) {
		out.Write(in.Read())
	}))
}
