// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"fmt"
	"io"

	"github.com/db47h/evsim"
)

type clockDriver struct {
	clk       *evsim.Signal
	low, high evsim.Time
	phase     int
}

func (c *clockDriver) Resume(k *evsim.Kernel) evsim.Wait {
	switch c.phase {
	case 0:
		c.phase = 1
		return evsim.Delay(c.low)
	case 1:
		c.clk.Write(1)
		c.phase = 2
		return evsim.Delay(c.high)
	default:
		c.clk.Write(0)
		c.phase = 1
		return evsim.Delay(c.low)
	}
}

// ClockDriver drives clk with the given period: clk goes high period/2 time
// units after the process starts, stays high for the remainder of the period,
// goes low, and repeats. period must be at least 2.
//
func ClockDriver(k *evsim.Kernel, clk *evsim.Signal, period evsim.Time) *evsim.Proc {
	if period < 2 {
		panic("hwlib: clock period must be at least 2")
	}
	low := period / 2
	return k.Register("ClockDriver:"+clk.Name(), &clockDriver{clk: clk, low: low, high: period - low})
}

// Toggle inverts s every half time units.
//
func Toggle(k *evsim.Kernel, s *evsim.Signal, half evsim.Time) *evsim.Proc {
	if half == 0 {
		panic("hwlib: zero toggle period")
	}
	return k.Register("Toggle:"+s.Name(), evsim.Always(evsim.Delay(half), func(*evsim.Kernel) {
		s.Write(^s.Read())
	}))
}

// Probe calls fn with the current time and value of s every time s changes.
//
func Probe(k *evsim.Kernel, s *evsim.Signal, fn func(t evsim.Time, v uint64)) *evsim.Proc {
	return k.Register("Probe:"+s.Name(), evsim.Always(evsim.Change(s), func(k *evsim.Kernel) {
		fn(k.Now(), s.Read())
	}))
}

// Announce prints "<time>: msg" to w every time cond is satisfied.
//
func Announce(k *evsim.Kernel, w io.Writer, cond evsim.Wait, msg string) *evsim.Proc {
	return k.Register("Announce:"+msg, evsim.Always(cond, func(k *evsim.Kernel) {
		fmt.Fprintf(w, "%d: %s\n", k.Now(), msg)
	}))
}
