// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package evsim provides a minimal event driven simulation kernel for digital
logic, using Go as a hardware description language.

A simulation is built from three kinds of objects owned by a Kernel:

Signals are fixed width value cells. Writes are staged and committed all at
once at the end of a delta cycle, so that every reader in a given cycle sees
the same values (non-blocking assignment semantics).

Always-comb blocks are functions of a declared set of input signals. They are
re-evaluated whenever one of their inputs changes, and cascades of blocks
settle within the same simulated instant.

Processes are cooperatively scheduled state machines. Each time it is resumed,
a process returns the condition it waits for next: a delay, an edge on a
signal, or a change on any of a set of signals.

For example, a clock driver and a process printing on rising edges:

	k := evsim.NewKernel()
	clk := k.NewBit("clk")
	k.Register("driver", evsim.Always(evsim.Delay(10), func(*evsim.Kernel) {
		clk.Write(^clk.Read())
	}))
	k.Register("hello", evsim.Always(evsim.Posedge(clk), func(k *evsim.Kernel) {
		fmt.Printf("%d: Hello!\n", k.Now())
	}))
	k.RunFor(context.Background(), 100)

The kernel is single threaded: exactly one process or always-comb block runs at
a time, and ordering among them is fully determined by the event queue.

Reusable gates and parts are in the hwlib package. The hwtest package provides
testbench helpers.
*/
package evsim
