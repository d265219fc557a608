package evsim_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/evsim"
)

func TestNewSignal(t *testing.T) {
	k := evsim.NewKernel()
	s := k.NewSignal("s", 8, 0x1ff)
	assert.Equal(t, "s", s.Name())
	assert.Equal(t, uint(8), s.Width())
	assert.Equal(t, uint64(0xff), s.Read())
	assert.Equal(t, "s=11111111", s.String())
	assert.True(t, s.Bit(7))
	assert.False(t, s.Bit(8))

	anon := k.NewSignal("", 1, 0)
	assert.Equal(t, "__1", anon.Name())

	w := k.NewSignal("wide", 64, ^uint64(0))
	assert.Equal(t, ^uint64(0), w.Read())

	assert.Panics(t, func() { k.NewSignal("zero", 0, 0) })
	assert.Panics(t, func() { k.NewSignal("big", 65, 0) })
	assert.Panics(t, func() { k.NewBit("s") })
	assert.Len(t, k.Signals(), 3)
}

func TestBus(t *testing.T) {
	k := evsim.NewKernel()
	bus := k.NewBus("a", 4, 2)
	require.Len(t, bus, 4)
	for i, s := range bus {
		assert.Equal(t, evsim.BusPinName("a", i), s.Name())
		assert.Equal(t, uint(2), s.Width())
	}
	assert.Equal(t, "a[3]", bus[3].Name())

	assert.Equal(t, bus, k.Lookup("a[0..3]"))
	assert.Equal(t, bus[1:3], k.Lookup("a[1..2]"))
	assert.Equal(t, bus[2:3], k.Lookup("a[2]"))
	assert.Nil(t, k.Lookup("a[2..5]"))
	assert.Nil(t, k.Lookup("a[3..1]"))
	assert.Nil(t, k.Lookup("a[x..1]"))
	assert.Nil(t, k.Lookup("[0..1]"))
	assert.Nil(t, k.Lookup("b"))

	c := k.NewBit("c")
	assert.Equal(t, []*evsim.Signal{c}, k.Lookup("c"))
}

func TestBin(t *testing.T) {
	assert.Equal(t, "0101", evsim.Bin(5, 4))
	assert.Equal(t, "101", evsim.Bin(0xd, 3))
	assert.Equal(t, "", evsim.Bin(1, 0))

	v, err := evsim.ParseBin("0101")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	_, err = evsim.ParseBin("012")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid binary value "012"`)
}

// Writes are only visible once committed.
func TestWriteNonBlocking(t *testing.T) {
	k := evsim.NewKernel()
	s := k.NewSignal("s", 4, 0)
	var before, after uint64
	k.Register("p", evsim.Sequence(
		func(*evsim.Kernel) evsim.Wait {
			s.Write(3)
			before = s.Read()
			return evsim.Delay(0)
		},
		func(*evsim.Kernel) evsim.Wait {
			after = s.Read()
			return evsim.Done
		},
	))
	_, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), before)
	assert.Equal(t, uint64(3), after)
	assert.Equal(t, evsim.Time(0), k.Now())
}

func TestLastWriteWins(t *testing.T) {
	k := evsim.NewKernel()
	s := k.NewSignal("s", 4, 0)
	var changes []uint64
	k.Register("p1", evsim.ProcessFunc(func(*evsim.Kernel) evsim.Wait {
		s.Write(1)
		s.Write(2)
		return evsim.Done
	}))
	k.Register("p2", evsim.ProcessFunc(func(*evsim.Kernel) evsim.Wait {
		s.Write(7)
		return evsim.Done
	}))
	k.Register("observer", evsim.Always(evsim.Change(s), func(*evsim.Kernel) {
		changes = append(changes, s.Read())
	}))
	_, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint64{7}, changes)
	assert.Equal(t, uint64(0), s.Prev())
}

// Writing back the committed value is not a change.
func TestWriteSameValue(t *testing.T) {
	k := evsim.NewKernel()
	s := k.NewSignal("s", 4, 5)
	n := 0
	k.Register("observer", evsim.Always(evsim.Change(s), func(*evsim.Kernel) { n++ }))
	k.Register("p", evsim.ProcessFunc(func(*evsim.Kernel) evsim.Wait {
		s.Write(5)
		return evsim.Done
	}))
	_, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEdges(t *testing.T) {
	k := evsim.NewKernel()
	s := k.NewSignal("s", 4, 0)
	var pos, neg, chg []evsim.Time
	k.Register("pos", evsim.Always(evsim.Posedge(s), func(k *evsim.Kernel) { pos = append(pos, k.Now()) }))
	k.Register("neg", evsim.Always(evsim.Negedge(s), func(k *evsim.Kernel) { neg = append(neg, k.Now()) }))
	k.Register("chg", evsim.Always(evsim.Change(s), func(k *evsim.Kernel) { chg = append(chg, k.Now()) }))
	// 0 -> 3 -> 5 -> 0 -> 8
	s.WriteAfter(3, 10)
	s.WriteAfter(5, 20)
	s.WriteAfter(0, 30)
	s.WriteAfter(8, 40)
	_, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []evsim.Time{10, 40}, pos)
	assert.Equal(t, []evsim.Time{30}, neg)
	assert.Equal(t, []evsim.Time{10, 20, 30, 40}, chg)
}

// A process waiting on several signals is resumed once even if they all
// change in the same delta cycle.
func TestChangeMany(t *testing.T) {
	k := evsim.NewKernel()
	a, b := k.NewBit("a"), k.NewBit("b")
	n := 0
	k.Register("observer", evsim.Always(evsim.Change(a, b), func(*evsim.Kernel) { n++ }))
	a.WriteAfter(1, 10)
	b.WriteAfter(1, 10)
	b.WriteAfter(0, 20)
	_, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestForeignGoroutine(t *testing.T) {
	k := evsim.NewKernel()
	s := k.NewBit("s")

	// no guard while idle
	done := make(chan interface{})
	go func() {
		defer func() { done <- recover() }()
		s.Write(1)
	}()
	require.Nil(t, <-done)

	var r interface{}
	k.Register("p", evsim.ProcessFunc(func(*evsim.Kernel) evsim.Wait {
		done := make(chan interface{})
		go func() {
			defer func() { done <- recover() }()
			s.Write(0)
		}()
		r = <-done
		return evsim.Done
	}))
	_, err := k.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, r)
	perr, ok := r.(error)
	require.True(t, ok)
	assert.True(t, errors.Is(perr, evsim.ErrForeignGoroutine))
	assert.Equal(t, uint64(1), s.Read())
}
