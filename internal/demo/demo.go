// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package demo implements small simulations exercising the kernel: clock
// drivers, periodic processes and gate truth tables.
package demo

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/db47h/evsim"
	"github.com/db47h/evsim/hwlib"
	"github.com/pkg/errors"
)

// Default run durations.
const (
	HelloDuration       evsim.Time = 50
	ConcurrencyDuration evsim.Time = 100
	PeriodDuration      evsim.Time = 100
)

// step is the delay between input values in truth table demos.
const step evsim.Time = 10

var messages = []string{"Hello", "Hola"}

// Hello prints "Hello!" every 10 time units.
func Hello(ctx context.Context, w io.Writer, d evsim.Time, opts ...evsim.Option) error {
	k := evsim.NewKernel(opts...)
	hwlib.Announce(k, w, evsim.Delay(10), "Hello!")
	_, err := k.RunFor(ctx, d)
	return err
}

// Concurrency toggles a clock every 10 time units and prints "Hello!" on
// every rising edge.
func Concurrency(ctx context.Context, w io.Writer, d evsim.Time, opts ...evsim.Option) error {
	k := evsim.NewKernel(opts...)
	clk := k.NewBit("clk")
	hwlib.Toggle(k, clk, 10)
	hwlib.Announce(k, w, evsim.Posedge(clk), "Hello!")
	_, err := k.RunFor(ctx, d)
	return err
}

// Period drives a single clock signal with one clock driver per period. Each
// driver is paired with a process greeting on falling edges of the clock.
func Period(ctx context.Context, w io.Writer, periods []evsim.Time, d evsim.Time, opts ...evsim.Option) error {
	if len(periods) == 0 {
		return errors.New("no clock period")
	}
	for _, p := range periods {
		if p < 2 {
			return errors.Errorf("invalid clock period %d", p)
		}
	}
	k := evsim.NewKernel(opts...)
	clk := k.NewBit("clk")
	for i, p := range periods {
		hwlib.ClockDriver(k, clk, p)
		hwlib.Announce(k, w, evsim.Negedge(clk), messages[i%len(messages)])
	}
	_, err := k.RunFor(ctx, d)
	return err
}

// stimulus returns a process that calls set with each value in turn, waits
// for step time units, then calls report.
func stimulus(n int, set func(i int), report func()) evsim.Process {
	i := 0
	return evsim.ProcessFunc(func(*evsim.Kernel) evsim.Wait {
		if i > 0 {
			report()
		}
		if i == n {
			return evsim.Done
		}
		set(i)
		i++
		return evsim.Delay(step)
	})
}

// Nand prints the truth table of a NAND gate.
func Nand(ctx context.Context, w io.Writer, opts ...evsim.Option) error {
	k := evsim.NewKernel(opts...)
	a, b, out := k.NewBit("a"), k.NewBit("b"), k.NewBit("out")
	hwlib.Nand(k, a, b, out)
	k.Register("stimulus", stimulus(4,
		func(i int) {
			a.Write(uint64(i) >> 1)
			b.Write(uint64(i))
		},
		func() {
			fmt.Fprintf(w, "a: %s | b: %s | out: %s\n", a.Bin(), b.Bin(), out.Bin())
		}))
	_, err := k.Run(ctx)
	return err
}

type gateSpec struct {
	fn   func(k *evsim.Kernel, a, out *evsim.Signal) *evsim.Comb
	wide bool // output as wide as the input
}

var gates = map[string]gateSpec{
	"and":    {hwlib.And, false},
	"or":     {hwlib.Or, false},
	"not":    {hwlib.Not, true},
	"xor":    {hwlib.Xor, false},
	"parity": {hwlib.OddParity, false},
}

// Gates returns the names of the gates supported by Gate.
func Gates() []string {
	names := make([]string, 0, len(gates))
	for n := range gates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Gate prints the truth table of the named gate for inputs of the given width.
func Gate(ctx context.Context, w io.Writer, name string, width uint, opts ...evsim.Option) error {
	g, ok := gates[name]
	if !ok {
		return errors.Errorf("unknown gate %q, must be one of %s", name, strings.Join(Gates(), ", "))
	}
	if width == 0 || width > 16 {
		return errors.Errorf("invalid width %d", width)
	}
	ow := uint(1)
	if g.wide {
		ow = width
	}
	k := evsim.NewKernel(opts...)
	a := k.NewSignal("a", width, 0)
	out := k.NewSignal("out", ow, 0)
	g.fn(k, a, out)
	k.Register("stimulus", stimulus(1<<width,
		func(i int) { a.Write(uint64(i)) },
		func() { fmt.Fprintf(w, "a: %s | out: %s\n", a.Bin(), out.Bin()) }))
	_, err := k.Run(ctx)
	return err
}

// Demux routes the value 101 through a demultiplexer with a selector of the
// given width and prints all outputs for every selector value.
func Demux(ctx context.Context, w io.Writer, width uint, opts ...evsim.Option) error {
	if width == 0 || width > 8 {
		return errors.Errorf("invalid width %d", width)
	}
	k := evsim.NewKernel(opts...)
	in := k.NewSignal("ip", 3, 5)
	sel := k.NewSignal("sel", width, 0)
	outs := k.NewBus("op", 1<<width, 3)
	if _, err := hwlib.Demux(k, sel, in, outs); err != nil {
		return err
	}
	k.Register("stimulus", stimulus(1<<width,
		func(i int) { sel.Write(uint64(i)) },
		func() {
			vs := make([]string, len(outs))
			for i, o := range outs {
				vs[i] = o.Bin()
			}
			fmt.Fprintf(w, "ip: %s | sel: %s | out: [%s]\n", in.Bin(), sel.Bin(), strings.Join(vs, " "))
		}))
	_, err := k.Run(ctx)
	return err
}
