package evsim

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrder(t *testing.T) {
	var q eventQueue
	in := []Time{30, 10, 20, 10, 30, 0, 10}
	for i, at := range in {
		q.schedule(at, event{val: uint64(i)})
	}
	require.Equal(t, len(in), q.len())

	var got []uint64
	var times []Time
	for q.len() > 0 {
		e, err := q.pop()
		require.NoError(t, err)
		got = append(got, e.val)
		times = append(times, e.at)
	}
	// same time events come out in insertion order.
	assert.Equal(t, []uint64{5, 1, 3, 6, 2, 0, 4}, got)
	assert.Equal(t, []Time{0, 10, 10, 10, 20, 30, 30}, times)
}

func TestQueueEmpty(t *testing.T) {
	var q eventQueue
	_, err := q.peek()
	assert.Equal(t, ErrEmptyQueue, err)
	_, err = q.pop()
	assert.True(t, errors.Is(err, ErrEmptyQueue))
	assert.Equal(t, ErrEmptyQueue, errors.Cause(err))
	assert.Empty(t, q.popDue(MaxTime))
}

func TestQueuePopDue(t *testing.T) {
	var q eventQueue
	q.schedule(5, event{val: 1})
	q.schedule(3, event{val: 2})
	q.schedule(5, event{val: 3})
	q.schedule(8, event{val: 4})

	assert.Empty(t, q.popDue(2))
	due := q.popDue(5)
	require.Len(t, due, 3)
	assert.Equal(t, uint64(2), due[0].val)
	assert.Equal(t, uint64(1), due[1].val)
	assert.Equal(t, uint64(3), due[2].val)

	e, err := q.peek()
	require.NoError(t, err)
	assert.Equal(t, Time(8), e.at)
	assert.Equal(t, 1, q.len())
}

func TestQueuePast(t *testing.T) {
	var q eventQueue
	q.schedule(10, event{})
	_, err := q.pop()
	require.NoError(t, err)
	assert.NotPanics(t, func() { q.schedule(10, event{}) })
	assert.Panics(t, func() { q.schedule(9, event{}) })
}

func TestEventKind(t *testing.T) {
	k := NewKernel()
	s := k.NewBit("s")
	assert.True(t, (&event{sig: s}).isCommit())
	assert.False(t, (&event{p: &Proc{}}).isCommit())
}

// Waiters on a signal that never changes do not accumulate.
func TestWaitersBounded(t *testing.T) {
	k := NewKernel()
	a, b := k.NewBit("a"), k.NewBit("b")
	n := 0
	k.Register("observer", Always(Change(a, b), func(*Kernel) { n++ }))
	k.Register("toggle", Always(Delay(1), func(*Kernel) { a.Write(^a.Read()) }))
	_, err := k.RunFor(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, n)
	assert.Len(t, a.waiters, 1)
	assert.Len(t, b.waiters, 1)
}

func TestStaleWaitersDropped(t *testing.T) {
	k := NewKernel()
	a, b := k.NewBit("a"), k.NewBit("b")
	steps := 0
	k.Register("p", ProcessFunc(func(*Kernel) Wait {
		steps++
		if steps == 1 {
			return Change(a, b)
		}
		return Delay(100)
	}))
	k.Register("drive", Sequence(
		func(*Kernel) Wait { return Delay(10) },
		func(*Kernel) Wait { b.Write(1); return Delay(10) },
		func(*Kernel) Wait { a.Write(1); return Done },
	))
	_, err := k.RunFor(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 2, steps)
	// b's waiter was consumed, a's is stale and dropped on a's change.
	assert.Empty(t, a.waiters)
	assert.Empty(t, b.waiters)
}
