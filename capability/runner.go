// /home/krylon/go/src/github.com/blicero/sitfit/capability/runner.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 22:03:55 krylon>

package capability

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
	"github.com/blicero/sitfit/metrics"
)

const defaultQueueDepth = 32

type job struct {
	name string
	fn   func() error
}

// Runner executes capability requests one after another on a goroutine of
// its own, so slow or hanging devices never hold up the caller. Failures
// are logged and counted, they do not propagate.
type Runner struct {
	log     *log.Logger
	metrics *metrics.Collector
	lock    sync.Mutex
	cond    *sync.Cond
	queue   []job
	depth   int
	pending sync.WaitGroup
	done    chan struct{}
	closed  bool
}

// NewRunner creates a Runner and starts its worker. depth is the number of
// requests that may be waiting, ordinary requests beyond that are dropped.
func NewRunner(depth int, m *metrics.Collector) (*Runner, error) {
	var (
		err error
		r   = &Runner{metrics: m}
	)

	if depth <= 0 {
		depth = defaultQueueDepth
	}

	if r.log, err = common.GetLogger(logdomain.Capability); err != nil {
		return nil, err
	}

	r.depth = depth
	r.queue = make([]job, 0, depth)
	r.cond = sync.NewCond(&r.lock)
	r.done = make(chan struct{})

	go r.loop()

	return r, nil
} // func NewRunner(depth int, m *metrics.Collector) (*Runner, error)

// Submit queues fn for execution. name identifies the capability in log
// messages and metrics. If the queue is full, the request is dropped.
func (r *Runner) Submit(name string, fn func() error) {
	r.enqueue(name, fn, false)
} // func (r *Runner) Submit(name string, fn func() error)

// SubmitUrgent queues fn like Submit, but never drops it for lack of
// room. Requests that silence a device or give up a resource go through
// here, so a backlog of Play requests cannot leave the alarm ringing.
func (r *Runner) SubmitUrgent(name string, fn func() error) {
	r.enqueue(name, fn, true)
} // func (r *Runner) SubmitUrgent(name string, fn func() error)

func (r *Runner) enqueue(name string, fn func() error, urgent bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		r.log.Printf("[DEBUG] Runner is closed, dropping request to %s\n", name)
		return
	} else if !urgent && len(r.queue) >= r.depth {
		r.log.Printf("[ERROR] Capability queue is full, dropping request to %s\n",
			name)
		r.metrics.CapabilityError(name)
		return
	}

	r.pending.Add(1)
	r.queue = append(r.queue, job{name: name, fn: fn})
	r.cond.Signal()
} // func (r *Runner) enqueue(name string, fn func() error, urgent bool)

// Flush blocks until every request submitted so far has been processed.
func (r *Runner) Flush() {
	r.pending.Wait()
} // func (r *Runner) Flush()

// Close processes the remaining requests and stops the worker.
func (r *Runner) Close() {
	r.lock.Lock()
	if r.closed {
		r.lock.Unlock()
		return
	}
	r.closed = true
	r.cond.Broadcast()
	r.lock.Unlock()

	<-r.done
} // func (r *Runner) Close()

// next blocks until a request is waiting and takes it off the queue. ok
// is false once the Runner is closed and the queue is empty.
func (r *Runner) next() (j job, ok bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for len(r.queue) == 0 && !r.closed {
		r.cond.Wait()
	}

	if len(r.queue) == 0 {
		return job{}, false
	}

	j = r.queue[0]
	r.queue[0] = job{}
	r.queue = r.queue[1:]

	return j, true
} // func (r *Runner) next() (j job, ok bool)

func (r *Runner) loop() {
	defer close(r.done)

	for {
		var j, ok = r.next()
		if !ok {
			return
		}
		r.run(j)
	}
} // func (r *Runner) loop()

func (r *Runner) run(j job) {
	defer r.pending.Done()
	defer func() {
		if x := recover(); x != nil {
			r.log.Printf("[CANTHAPPEN] Request to %s panicked: %v\n",
				j.name,
				x)
			r.metrics.CapabilityError(j.name)
		}
	}()

	var err error

	if err = j.fn(); err != nil {
		if errors.Is(err, ErrUnavailable) {
			r.log.Printf("[DEBUG] %s is not available\n", j.name)
		} else {
			r.log.Printf("[ERROR] Request to %s failed: %s\n",
				j.name,
				err.Error())
			r.metrics.CapabilityError(j.name)
		}
	}
} // func (r *Runner) run(j job)

func (r *Runner) String() string {
	r.lock.Lock()
	defer r.lock.Unlock()

	return fmt.Sprintf("Runner{ depth: %d, queued: %d }",
		r.depth,
		len(r.queue))
} // func (r *Runner) String() string
