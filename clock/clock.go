// /home/krylon/go/src/github.com/blicero/sitfit/clock/clock.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:58:16 krylon>

// Package clock abstracts the passage of time, so the timer engine can be
// driven by a manual clock in tests.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time and tickers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks at intervals.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Real is the Clock backed by the time package. The times it hands out
// carry no monotonic reading, so differences between them follow the wall
// clock. The monotonic clock stands still while the system is suspended.
type Real struct{}

// Now returns the current local time.
func (Real) Now() time.Time { return time.Now().Round(0) }

// NewTicker returns a ticker from the time package.
func (Real) NewTicker(d time.Duration) Ticker {
	var r = &realTicker{
		t:    time.NewTicker(d),
		c:    make(chan time.Time, 1),
		stop: make(chan struct{}),
	}

	go r.loop()

	return r
} // func (Real) NewTicker(d time.Duration) Ticker

type realTicker struct {
	t    *time.Ticker
	c    chan time.Time
	stop chan struct{}
	once sync.Once
}

func (r *realTicker) C() <-chan time.Time { return r.c }

func (r *realTicker) Stop() {
	r.once.Do(func() {
		r.t.Stop()
		close(r.stop)
	})
} // func (r *realTicker) Stop()

// loop forwards the ticks without their monotonic reading. Like the
// ticker of the time package, it drops ticks nobody picks up.
func (r *realTicker) loop() {
	for {
		select {
		case <-r.stop:
			return
		case ts := <-r.t.C:
			select {
			case r.c <- ts.Round(0):
			default:
			}
		}
	}
} // func (r *realTicker) loop()

// Manual is a Clock that only moves when told to.
type Manual struct {
	lock    sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManual creates a Manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
} // func NewManual(start time.Time) *Manual

// Now returns the clock's current time.
func (m *Manual) Now() time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.now
} // func (m *Manual) Now() time.Time

// Set moves the clock to t, which may lie in the past.
func (m *Manual) Set(t time.Time) {
	m.lock.Lock()
	m.now = t
	m.lock.Unlock()
} // func (m *Manual) Set(t time.Time)

// Advance moves the clock forward by d and delivers one tick to every
// ticker that is not stopped. A ticker whose channel is still full
// misses the tick, like a real one would.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.lock.Lock()
	m.now = m.now.Add(d)
	var (
		now     = m.now
		tickers = make([]*manualTicker, len(m.tickers))
	)
	copy(tickers, m.tickers)
	m.lock.Unlock()

	for _, t := range tickers {
		t.fire(now)
	}

	return now
} // func (m *Manual) Advance(d time.Duration) time.Time

// NewTicker returns a ticker that fires whenever the clock is advanced.
func (m *Manual) NewTicker(d time.Duration) Ticker {
	var t = &manualTicker{c: make(chan time.Time, 1)}

	m.lock.Lock()
	m.tickers = append(m.tickers, t)
	m.lock.Unlock()

	return t
} // func (m *Manual) NewTicker(d time.Duration) Ticker

type manualTicker struct {
	lock    sync.Mutex
	c       chan time.Time
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.c }

func (t *manualTicker) Stop() {
	t.lock.Lock()
	t.stopped = true
	t.lock.Unlock()
}

func (t *manualTicker) fire(now time.Time) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.stopped {
		return
	}

	select {
	case t.c <- now:
	default:
	}
} // func (t *manualTicker) fire(now time.Time)
