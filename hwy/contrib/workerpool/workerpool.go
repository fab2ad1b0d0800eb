// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs row-partitioned work on a fixed set of persistent
// goroutines. Workers are spawned once by New and reused by every call until
// Close; each call is a fork-join region that returns only after all of its
// work has finished.
//
// Work is handed out dynamically: workers claim the next batch of indices from
// a shared atomic counter as soon as they finish the previous one, so rows that
// cost more (border rows of a convolution, say) do not leave other workers idle.
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelForRows(height, width, func(row, start, end int) {
//	    fillRow(out[start:end], row)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// counter is a claim counter on a cache line of its own, so workers
// hammering it do not invalidate the line holding the pool or the caller's
// stack frame.
type counter struct {
	_ cpu.CacheLinePad
	n atomic.Int64
	_ cpu.CacheLinePad
}

// claim reserves the next batch number and returns it.
func (c *counter) claim() int {
	return int(c.n.Add(1)) - 1
}

// Pool is a fixed-size set of persistent workers. Its methods may be called
// from several goroutines at once, but fn callbacks must not call back into
// the same pool.
type Pool struct {
	workers int
	tasks   chan task

	// mu is held shared by every call that hands work to the workers and
	// exclusively by Close, so tasks is never closed under a sender.
	mu     sync.RWMutex
	closed bool
}

type task struct {
	body func()
	done *sync.WaitGroup
}

// New starts a pool of the given number of workers. workers <= 0 means
// GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		tasks:   make(chan task, workers*2),
	}
	for range workers {
		go p.loop()
	}
	return p
}

func (p *Pool) loop() {
	for t := range p.tasks {
		t.body()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Close waits for calls already in flight, then stops the workers. It is
// safe to call more than once and concurrently with other calls. Calls made
// after Close run sequentially on the caller's goroutine.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
}

// fork runs body on n workers and waits for every copy to return.
func (p *Pool) fork(n int, body func()) {
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		p.tasks <- task{body: body, done: &wg}
	}
	wg.Wait()
}

// ParallelForAtomicBatched calls fn on consecutive ranges [start, end) that
// together cover [0, n) exactly once. Ranges hold batchSize indices, except
// possibly the last, and are claimed on demand by whichever worker is free.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	batchSize = max(batchSize, 1)
	workers := min(p.workers, (n+batchSize-1)/batchSize)
	if workers <= 1 {
		fn(0, n)
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		fn(0, n)
		return
	}

	var next counter
	p.fork(workers, func() {
		for {
			start := next.claim() * batchSize
			if start >= n {
				return
			}
			fn(start, min(start+batchSize, n))
		}
	})
}

// ParallelForRows executes fn over a rows×width index space laid out in
// row-major order. Work is claimed one row at a time and every call to fn
// covers exactly one full row: fn receives the row index and the flat range
// [start, end) with end-start == width. Two workers therefore only ever meet
// at row boundaries.
func (p *Pool) ParallelForRows(rows, width int, fn func(row, start, end int)) {
	if rows <= 0 || width <= 0 {
		return
	}
	p.ParallelForAtomicBatched(rows*width, width, func(start, end int) {
		for ; start < end; start += width {
			fn(start/width, start, start+width)
		}
	})
}
