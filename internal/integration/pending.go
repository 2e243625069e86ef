// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package integration

import "context"

// Result is the outcome of an integration request.
type Result[T any] struct {
	Value T
	Err   error
}

// Pending is the caller's handle on an in-flight request. The executor
// writes exactly one result into a single-slot channel, so the write never
// blocks and dropping the handle is harmless. A Pending is owned by one
// goroutine.
type Pending[T any] struct {
	ch   chan Result[T]
	done *Result[T]
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{ch: make(chan Result[T], 1)}
}

// Resolved returns a handle that already holds a result.
func Resolved[T any](v T, err error) *Pending[T] {
	p := newPending[T]()
	p.resolve(v, err)
	return p
}

func (p *Pending[T]) resolve(v T, err error) {
	p.ch <- Result[T]{Value: v, Err: err}
	close(p.ch)
}

// abandon closes the channel without a result.
func (p *Pending[T]) abandon() {
	close(p.ch)
}

func (p *Pending[T]) settle(r Result[T], ok bool) Result[T] {
	if !ok {
		r = Result[T]{Err: failure("pending", newError(KindNetwork, "request abandoned before completion"))}
	}
	p.done = &r
	return r
}

// TryRecv returns the result if it is ready. It never blocks. Once a
// result has been received, every later call returns it again.
func (p *Pending[T]) TryRecv() (Result[T], bool) {
	if p.done != nil {
		return *p.done, true
	}
	select {
	case r, ok := <-p.ch:
		return p.settle(r, ok), true
	default:
		return Result[T]{}, false
	}
}

// Wait blocks until the result arrives.
func (p *Pending[T]) Wait() (T, error) {
	if p.done != nil {
		return p.done.Value, p.done.Err
	}
	r, ok := <-p.ch
	r = p.settle(r, ok)
	return r.Value, r.Err
}

// WaitContext is Wait bounded by ctx. A cancelled wait leaves the request
// running; a later TryRecv or Wait still sees its result.
func (p *Pending[T]) WaitContext(ctx context.Context) (T, error) {
	if p.done != nil {
		return p.done.Value, p.done.Err
	}
	select {
	case r, ok := <-p.ch:
		r = p.settle(r, ok)
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
