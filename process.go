// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

type waitKind int

const (
	waitDone waitKind = iota
	waitDelay
	waitPosedge
	waitNegedge
	waitChange
)

// A Wait is the condition a suspended process waits for before being resumed.
// The zero value is Done.
//
type Wait struct {
	kind waitKind
	d    Time
	sigs []*Signal
}

// Done terminates the process that returns it.
//
var Done = Wait{}

// Delay returns a Wait that resumes a process d time units from now. A zero
// delay resumes the process in the next delta cycle of the current instant.
//
func Delay(d Time) Wait { return Wait{kind: waitDelay, d: d} }

// Posedge returns a Wait that resumes a process when the committed value of s
// goes from zero to non-zero.
//
func Posedge(s *Signal) Wait { return Wait{kind: waitPosedge, sigs: []*Signal{s}} }

// Negedge returns a Wait that resumes a process when the committed value of s
// goes from non-zero to zero.
//
func Negedge(s *Signal) Wait { return Wait{kind: waitNegedge, sigs: []*Signal{s}} }

// Change returns a Wait that resumes a process when the committed value of any
// of the given signals changes.
//
func Change(sigs ...*Signal) Wait {
	if len(sigs) == 0 {
		panic("evsim: Change requires at least one signal")
	}
	return Wait{kind: waitChange, sigs: sigs}
}

func (w Wait) String() string {
	switch w.kind {
	case waitDelay:
		return "delay"
	case waitPosedge:
		return "posedge"
	case waitNegedge:
		return "negedge"
	case waitChange:
		return "change"
	}
	return "done"
}

// A Process is a cooperatively scheduled unit of execution.
//
// The kernel calls Resume once when the process is started and then every
// time the Wait returned by the previous call is satisfied. Resume may read
// and write signals; it must not block. Any continuation state must be kept
// in the Process value itself.
//
type Process interface {
	Resume(k *Kernel) Wait
}

// ProcessFunc adapts a function to the Process interface.
//
type ProcessFunc func(k *Kernel) Wait

// Resume implements Process.
//
func (f ProcessFunc) Resume(k *Kernel) Wait { return f(k) }

type always struct {
	cond    Wait
	fn      func(k *Kernel)
	started bool
}

func (a *always) Resume(k *Kernel) Wait {
	if a.started {
		a.fn(k)
	}
	a.started = true
	return a.cond
}

// Always returns a process that calls fn every time cond is satisfied.
//
// For example, a clock toggling every 10 time units:
//
//	k.Register("clk_driver", evsim.Always(evsim.Delay(10), func(*evsim.Kernel) {
//		clk.Write(^clk.Read())
//	}))
//
func Always(cond Wait, fn func(k *Kernel)) Process {
	return &always{cond: cond, fn: fn}
}

// A Step is a single step of a Sequence. It returns the condition to wait for
// before running the next step.
//
type Step func(k *Kernel) Wait

type sequence struct {
	steps []Step
	pc    int
}

func (s *sequence) Resume(k *Kernel) Wait {
	if s.pc >= len(s.steps) {
		return Done
	}
	st := s.steps[s.pc]
	s.pc++
	return st(k)
}

// Sequence returns a process running the given steps in order, waiting for the
// condition returned by each step before running the next one. The process
// terminates once the last step's condition is satisfied, or as soon as a step
// returns Done.
//
func Sequence(steps ...Step) Process {
	return &sequence{steps: steps}
}

// ProcState is the scheduling state of a process.
//
type ProcState int

// Process states.
//
const (
	Suspended ProcState = iota
	Runnable
	Finished
)

func (s ProcState) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Runnable:
		return "runnable"
	}
	return "finished"
}

// Proc is a process registered with a kernel.
//
type Proc struct {
	id      int
	name    string
	p       Process
	state   ProcState
	wait    Wait
	waitSeq uint64
}

// Name returns the process name.
//
func (p *Proc) Name() string { return p.name }

// State returns the process state.
//
func (p *Proc) State() ProcState { return p.state }

// Register registers a process with the kernel. The process is first resumed
// at the current simulated time, once the kernel runs. Processes started in
// the same instant are resumed in registration order.
//
func (k *Kernel) Register(name string, p Process) *Proc {
	pr := &Proc{
		id:    len(k.procs),
		name:  name,
		p:     p,
		state: Runnable,
	}
	k.procs = append(k.procs, pr)
	k.q.schedule(k.now, event{p: pr})
	return pr
}

// resume runs p until its next suspension point and registers its new wait
// condition.
func (k *Kernel) resume(p *Proc) {
	if p.state == Finished {
		return
	}
	k.stats.Resumes++
	k.unwait(p)
	w := p.p.Resume(k)
	k.suspend(p, w)
}

// unwait removes p from the waiter lists of the signals it was waiting on.
// wake only drops the entry of the signal that fired.
func (k *Kernel) unwait(p *Proc) {
	for _, s := range p.wait.sigs {
		ws := s.waiters[:0]
		for _, w := range s.waiters {
			if w.p != p {
				ws = append(ws, w)
			}
		}
		for i := len(ws); i < len(s.waiters); i++ {
			s.waiters[i] = waiter{}
		}
		s.waiters = ws
	}
}

func (k *Kernel) suspend(p *Proc, w Wait) {
	k.waitSeq++
	p.wait = w
	p.waitSeq = k.waitSeq
	switch w.kind {
	case waitDone:
		p.state = Finished
		k.log.Debug("process finished", "proc", p.name, "time", k.now)
	case waitDelay:
		p.state = Suspended
		k.q.schedule(addTime(k.now, w.d), event{p: p})
	default:
		p.state = Suspended
		for _, s := range w.sigs {
			s.waiters = append(s.waiters, waiter{p: p, seq: p.waitSeq, kind: w.kind})
		}
	}
}
