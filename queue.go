// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"container/heap"
	"strconv"

	"github.com/pkg/errors"
)

// event is either a signal commit (sig != nil) or a process resumption.
type event struct {
	at  Time
	seq uint64
	sig *Signal
	val uint64
	p   *Proc
}

func (e *event) isCommit() bool { return e.sig != nil }

// eventHeap orders events by (at, seq).
type eventHeap []event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(event))
}
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old) - 1
	e := old[n]
	old[n] = event{}
	*h = old[:n]
	return e
}

// eventQueue is a time ordered schedule of events. Events scheduled for the
// same time are delivered in insertion order.
type eventQueue struct {
	h    eventHeap
	seq  uint64
	last Time // time of the last delivered event
}

func (q *eventQueue) len() int { return len(q.h) }

// schedule inserts e at time at. Scheduling before the time of the last
// delivered event panics.
func (q *eventQueue) schedule(at Time, e event) {
	if at < q.last {
		panic("evsim: event scheduled in the past at " + strconv.FormatUint(uint64(at), 10))
	}
	q.seq++
	e.at = at
	e.seq = q.seq
	heap.Push(&q.h, e)
}

// peek returns the next event without removing it.
func (q *eventQueue) peek() (event, error) {
	if len(q.h) == 0 {
		return event{}, ErrEmptyQueue
	}
	return q.h[0], nil
}

// pop removes and returns the next event.
func (q *eventQueue) pop() (event, error) {
	if len(q.h) == 0 {
		return event{}, errors.WithStack(ErrEmptyQueue)
	}
	e := heap.Pop(&q.h).(event)
	q.last = e.at
	return e, nil
}

// popDue removes and returns, in order, all events scheduled at or before t.
func (q *eventQueue) popDue(t Time) []event {
	var due []event
	for len(q.h) > 0 && q.h[0].at <= t {
		e, _ := q.pop()
		due = append(due, e)
	}
	return due
}
