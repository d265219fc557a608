// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import "github.com/pkg/errors"

// Errors returned by the simulator. Use errors.Is or errors.Cause to test for
// them since they are usually wrapped with additional context.
//
var (
	// ErrArityMismatch is returned by parts whose input or output count does
	// not match their selector width.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrCombinationalLoop is returned by Run when combinational logic does
	// not settle within the kernel's delta limit.
	ErrCombinationalLoop = errors.New("combinational loop")

	// ErrEmptyQueue is returned when popping an event from an empty queue.
	// The kernel treats it as normal termination.
	ErrEmptyQueue = errors.New("empty event queue")

	// ErrKernelRunning is returned by Run when called while the kernel is
	// already running.
	ErrKernelRunning = errors.New("kernel already running")

	// ErrForeignGoroutine is the panic value raised when a signal is written
	// from a goroutine other than the one running the kernel.
	ErrForeignGoroutine = errors.New("signal written from a foreign goroutine")
)
