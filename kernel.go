// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/petermattis/goid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// State is the kernel's run state.
//
type State int

// Kernel states. Run and RunFor return either Drained or TimeLimitReached; the
// kernel itself goes back to Idle once they return.
//
const (
	Idle State = iota
	Running
	Drained
	TimeLimitReached
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Drained:
		return "drained"
	case TimeLimitReached:
		return "time limit reached"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Stats holds counters updated while the kernel runs.
//
type Stats struct {
	Instants uint64        // distinct simulated instants processed
	Deltas   uint64        // delta cycles (commit phases)
	Events   uint64        // events delivered from the queue
	Resumes  uint64        // process resumptions
	Evals    uint64        // always-comb evaluations
	Elapsed  time.Duration // wall clock time spent in Run
}

// Kernel is a discrete event simulation kernel.
//
// A Kernel owns a set of signals, processes and always-comb blocks. It is not
// safe for concurrent use: signals must only be written from the goroutine that
// created the kernel's content or, while the kernel runs, from its processes.
//
type Kernel struct {
	now   Time
	state State
	q     eventQueue

	signals []*Signal
	names   map[string]*Signal
	procs   []*Proc
	combs   []*Comb

	staged       []*Signal // signals with a staged value
	spare        []*Signal
	pendingCombs []*Comb
	spareCombs   []*Comb
	woken        []waiter // processes woken by signal changes
	waitSeq      uint64

	owner     int64 // goroutine running the kernel, 0 if idle
	maxDeltas int
	clk       clock.Clock
	log       *slog.Logger
	tracer    trace.Tracer
	stats     Stats
}

// NewKernel returns a new idle kernel at time 0.
//
func NewKernel(opts ...Option) *Kernel {
	k := &Kernel{
		names:     make(map[string]*Signal),
		maxDeltas: DefaultMaxDeltas,
		clk:       clock.New(),
		log:       discardLogger(),
		tracer:    defaultTracer(),
	}
	for _, o := range opts {
		o(k)
	}
	return k
}

// Now returns the current simulated time.
//
func (k *Kernel) Now() Time { return k.now }

// State returns Running if called from a process while the kernel runs, Idle
// otherwise.
//
func (k *Kernel) State() State { return k.state }

// Stats returns a snapshot of the kernel's counters.
//
func (k *Kernel) Stats() Stats { return k.stats }

// Signals returns all signals in allocation order.
//
func (k *Kernel) Signals() []*Signal { return k.signals }

// Procs returns all registered processes in registration order.
//
func (k *Kernel) Procs() []*Proc { return k.procs }

func (k *Kernel) checkOwner() {
	if k.owner != 0 && goid.Get() != k.owner {
		panic(errors.WithStack(ErrForeignGoroutine))
	}
}

// Run runs the simulation until no events remain. It returns Drained, or the
// first error encountered.
//
func (k *Kernel) Run(ctx context.Context) (State, error) {
	return k.run(ctx, MaxTime)
}

// RunFor runs the simulation for d time units: events scheduled after Now()+d
// are left in the queue. It returns TimeLimitReached if such events remain,
// in which case Now() is set to the limit, Drained otherwise. Consecutive
// calls to RunFor therefore cover contiguous windows.
//
func (k *Kernel) RunFor(ctx context.Context, d Time) (State, error) {
	return k.run(ctx, addTime(k.now, d))
}

func (k *Kernel) run(ctx context.Context, limit Time) (st State, err error) {
	if k.state == Running {
		return Idle, errors.WithStack(ErrKernelRunning)
	}
	ctx, span := k.startSpan(ctx, "Kernel.Run",
		trace.WithAttributes(attribute.Int64("evsim.start", int64(k.now))))
	k.state = Running
	k.owner = goid.Get()
	start := k.clk.Now()
	k.log.Debug("simulation started", "time", k.now, "limit", limit)

	defer func() {
		k.state = Idle
		k.owner = 0
		elapsed := k.clk.Since(start)
		k.stats.Elapsed += elapsed
		span.SetAttributes(
			attribute.Int64("evsim.time", int64(k.now)),
			attribute.String("evsim.state", st.String()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			k.log.Error("simulation failed", "time", k.now, "error", err)
		} else {
			k.log.Info("simulation stopped", "state", st, "time", k.now, "elapsed", elapsed)
		}
		span.End()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return Idle, err
		}
		t, ok := k.nextInstant()
		if !ok {
			return Drained, nil
		}
		if t > limit {
			k.now = limit
			return TimeLimitReached, nil
		}
		k.now = t
		if err := k.instant(); err != nil {
			return Idle, err
		}
	}
}

// nextInstant returns the time of the next instant with pending work.
func (k *Kernel) nextInstant() (Time, bool) {
	if len(k.staged) > 0 || len(k.pendingCombs) > 0 {
		return k.now, true
	}
	e, err := k.q.peek()
	if errors.Is(err, ErrEmptyQueue) {
		return 0, false
	}
	return e.at, true
}

// instant processes all events at the current time, including cascaded
// combinational updates and zero delay resumptions.
//
// Each delta cycle first stages commit events due now, then commits staged
// signals and evaluates the always-comb blocks they trigger, repeating until
// no signal changes. Only then are processes resumed: those woken by events
// in (time, seq) order, then those woken by signal changes in the order they
// started waiting.
func (k *Kernel) instant() error {
	k.stats.Instants++
	deltas := 0
	for {
		var resume []*Proc
		for _, e := range k.q.popDue(k.now) {
			k.stats.Events++
			if e.isCommit() {
				e.sig.Write(e.val)
				continue
			}
			if e.p.state != Finished {
				e.p.state = Runnable
				resume = append(resume, e.p)
			}
		}

		for len(k.staged) > 0 || len(k.pendingCombs) > 0 {
			if deltas++; deltas > k.maxDeltas {
				return errors.Wrapf(ErrCombinationalLoop, "no settlement after %d delta cycles at time %d (%s)",
					k.maxDeltas, k.now, k.stagedNames())
			}
			k.commit()
			k.evalCombs()
		}

		if len(k.woken) > 0 {
			ws := k.woken
			sort.Slice(ws, func(i, j int) bool { return ws[i].seq < ws[j].seq })
			for _, w := range ws {
				resume = append(resume, w.p)
			}
			k.woken = ws[:0]
		}
		if len(resume) == 0 && len(k.staged) == 0 {
			k.log.Debug("instant settled", "time", k.now, "deltas", deltas)
			return nil
		}
		if deltas++; deltas > k.maxDeltas {
			return errors.Wrapf(ErrCombinationalLoop, "zero delay process loop at time %d", k.now)
		}
		for _, p := range resume {
			k.resume(p)
		}
	}
}

// commit commits all staged signals at once.
func (k *Kernel) commit() {
	staged := k.staged
	k.staged = k.spare[:0]
	k.stats.Deltas++
	for _, s := range staged {
		old, changed := s.commit()
		if !changed {
			continue
		}
		for _, c := range s.combs {
			k.markComb(c)
		}
		if len(s.waiters) > 0 {
			s.wake(old)
		}
	}
	for i := range staged {
		staged[i] = nil
	}
	k.spare = staged[:0]
}

func (k *Kernel) stagedNames() string {
	var b []byte
	for i, s := range k.staged {
		if i > 0 {
			b = append(b, ", "...)
		}
		if i == 8 {
			b = append(b, "..."...)
			break
		}
		b = append(b, s.name...)
	}
	for _, c := range k.pendingCombs {
		if len(b) > 0 {
			b = append(b, ", "...)
		}
		b = append(b, c.name...)
	}
	return string(b)
}
