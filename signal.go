// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Time is a simulated time value. Its unit is left to the host program.
//
type Time uint64

// MaxTime is the largest representable simulated time.
//
const MaxTime = ^Time(0)

// addTime returns t+d, saturated to MaxTime.
func addTime(t, d Time) Time {
	if r := t + d; r >= t {
		return r
	}
	return MaxTime
}

// Signal is a fixed width value cell driven and observed by processes.
//
// A Signal has a committed value, returned by Read, and a staged value set by
// Write. Staged values become visible only when the kernel commits them, all
// at once, at the end of the current delta cycle.
//
type Signal struct {
	k     *Kernel
	id    int
	name  string
	width uint
	mask  uint64

	cur    uint64 // committed value
	prev   uint64 // value before the last change
	next   uint64 // staged value, valid if staged is true
	staged bool

	combs   []*Comb
	waiters []waiter
}

// waiter is a suspended process waiting for a condition on a signal. Entries
// whose seq no longer matches the process's are stale and dropped lazily.
type waiter struct {
	p    *Proc
	seq  uint64
	kind waitKind
}

// NewSignal allocates a new signal of the given bit width with initial value
// init. Width must be in the range [1, 64]. If name is empty, a unique name is
// generated.
//
func (k *Kernel) NewSignal(name string, width uint, init uint64) *Signal {
	if width == 0 || width > 64 {
		panic("evsim: invalid signal width " + strconv.FormatUint(uint64(width), 10))
	}
	id := len(k.signals)
	if name == "" {
		name = "__" + strconv.Itoa(id)
	}
	if _, ok := k.names[name]; ok {
		panic("evsim: signal " + name + " already exists")
	}
	mask := ^uint64(0) >> (64 - width)
	s := &Signal{
		k:     k,
		id:    id,
		name:  name,
		width: width,
		mask:  mask,
		cur:   init & mask,
		prev:  init & mask,
	}
	k.signals = append(k.signals, s)
	k.names[name] = s
	return s
}

// NewBit is a shorthand for NewSignal(name, 1, 0).
//
func (k *Kernel) NewBit(name string) *Signal {
	return k.NewSignal(name, 1, 0)
}

// NewBus allocates count signals of the given width, named name[0] through
// name[count-1], all initialized to 0.
//
func (k *Kernel) NewBus(name string, count int, width uint) []*Signal {
	bus := make([]*Signal, count)
	for i := range bus {
		bus[i] = k.NewSignal(BusPinName(name, i), width, 0)
	}
	return bus
}

// Lookup returns the signal with the given name or nil if no such signal
// exists. Bus ranges like "a[0..3]" are expanded and returned in order.
//
func (k *Kernel) Lookup(name string) []*Signal {
	names := expandRange(name)
	if names == nil {
		return nil
	}
	out := make([]*Signal, 0, len(names))
	for _, n := range names {
		s, ok := k.names[n]
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, bit int) string {
	return bus + "[" + strconv.Itoa(bit) + "]"
}

func expandRange(name string) []string {
	i := strings.IndexRune(name, '[')
	if i < 0 {
		return []string{name}
	}
	bus := name[:i]
	if bus == "" {
		return nil
	}
	n := name[i+1:]
	i = strings.Index(n, "..")
	if i < 0 {
		return []string{name}
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil
	}
	n = n[i+2:]
	i = strings.IndexRune(n, ']')
	if i < 0 {
		return nil
	}
	end, err := strconv.Atoi(n[:i])
	if err != nil || end < start {
		return nil
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r
}

// Name returns the signal name.
//
func (s *Signal) Name() string { return s.name }

// Width returns the signal width in bits.
//
func (s *Signal) Width() uint { return s.width }

// Read returns the last committed value.
//
func (s *Signal) Read() uint64 { return s.cur }

// Prev returns the committed value prior to the last change.
//
func (s *Signal) Prev() uint64 { return s.prev }

// Bit returns the state of bit n of the committed value. Bit 0 is the lsb.
//
func (s *Signal) Bit(n uint) bool { return s.cur&(1<<n) != 0 }

// Bin returns the committed value formatted as a binary string of Width()
// digits, msb first.
//
func (s *Signal) Bin() string { return Bin(s.cur, s.width) }

func (s *Signal) String() string { return s.name + "=" + s.Bin() }

// Write stages v, truncated to the signal width, as the signal's next value.
// The value is committed at the end of the current delta cycle. If Write is
// called several times in the same cycle, the last value wins.
//
func (s *Signal) Write(v uint64) {
	s.k.checkOwner()
	s.next = v & s.mask
	if !s.staged {
		s.staged = true
		s.k.staged = append(s.k.staged, s)
	}
}

// WriteBool writes 1 if b is true, 0 otherwise.
//
func (s *Signal) WriteBool(b bool) {
	if b {
		s.Write(1)
	} else {
		s.Write(0)
	}
}

// WriteAfter schedules a write of v to the signal d time units from now.
//
func (s *Signal) WriteAfter(v uint64, d Time) {
	s.k.checkOwner()
	s.k.q.schedule(addTime(s.k.now, d), event{sig: s, val: v})
}

// commit makes the staged value current. It returns false if the committed
// value did not change.
func (s *Signal) commit() (old uint64, changed bool) {
	old = s.cur
	s.cur = s.next
	s.staged = false
	if old == s.cur {
		return old, false
	}
	s.prev = old
	return old, true
}

// wake moves processes whose wait condition is satisfied by the transition
// from old to the current value to the kernel's wake list.
func (s *Signal) wake(old uint64) {
	ws := s.waiters[:0]
	for _, w := range s.waiters {
		if w.p.state != Suspended || w.p.waitSeq != w.seq {
			continue
		}
		var fire bool
		switch w.kind {
		case waitPosedge:
			fire = old == 0 && s.cur != 0
		case waitNegedge:
			fire = old != 0 && s.cur == 0
		case waitChange:
			fire = true
		}
		if fire {
			w.p.state = Runnable
			s.k.woken = append(s.k.woken, w)
			continue
		}
		ws = append(ws, w)
	}
	// clear the tail so that dropped processes can be collected.
	for i := len(ws); i < len(s.waiters); i++ {
		s.waiters[i] = waiter{}
	}
	s.waiters = ws
}

// Bin formats the low width bits of v as a binary string, msb first.
//
func Bin(v uint64, width uint) string {
	b := make([]byte, width)
	for i := range b {
		if v&(1<<(width-uint(i)-1)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// ParseBin parses a binary string as returned by Bin.
//
func ParseBin(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid binary value %q", s)
	}
	return v, nil
}
