// /home/krylon/go/src/github.com/blicero/sitfit/engine/engine.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 05:48:19 krylon>

// Package engine counts down the timers and implements the operations
// the user performs on them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/sitfit/alarm"
	"github.com/blicero/sitfit/capability"
	"github.com/blicero/sitfit/clock"
	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
	"github.com/blicero/sitfit/metrics"
	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/objects/kind"
	"github.com/blicero/sitfit/store"
)

// Errors returned by the Engine.
var (
	ErrTimerExpired      = errors.New("timer has expired, its alarm must be dismissed or snoozed")
	ErrInvalidTransition = errors.New("invalid state transition")
)

// TickInterval is how often Run advances the timers.
const TickInterval = time.Second

// AlarmSink takes care of expired timers.
type AlarmSink interface {
	Expire(id string) error
	Forget(id string)
	Tick(now time.Time) error
}

// Recorder keeps the statistics.
type Recorder interface {
	Created() error
	Rollover(now time.Time) error
}

// Options configure an Engine. Clock, Store and Alarm are required.
type Options struct {
	Clock    clock.Clock
	Store    *store.Store
	Alarm    AlarmSink
	Recorder Recorder
	Metrics  *metrics.Collector
}

// Engine drives the timers from a single clock.
type Engine struct {
	log     *log.Logger
	lock    sync.Mutex
	clk     clock.Clock
	st      *store.Store
	alarm   AlarmSink
	rec     Recorder
	metrics *metrics.Collector
	last    time.Time
}

// New creates an Engine.
func New(opt Options) (*Engine, error) {
	var (
		err error
		e   = &Engine{
			clk:     opt.Clock,
			st:      opt.Store,
			alarm:   opt.Alarm,
			rec:     opt.Recorder,
			metrics: opt.Metrics,
		}
	)

	if e.clk == nil || e.st == nil || e.alarm == nil {
		return nil, fmt.Errorf("Engine needs a Clock, a Store and an AlarmSink")
	} else if e.log, err = common.GetLogger(logdomain.Engine); err != nil {
		return nil, err
	}

	return e, nil
} // func New(opt Options) (*Engine, error)

// QuickStartSettings are the settings QuickStart creates a Timer with.
func QuickStartSettings() objects.Settings {
	return objects.Settings{
		Kind:    kind.Posture,
		Minutes: 30,
		Sound:   capability.ProfileChime,
		Volume:  70,
		Vibrate: true,
	}
} // func QuickStartSettings() objects.Settings

// Create adds a new running Timer and returns its ID.
// If the Timer was created but could not be saved, the ID is returned
// together with the error.
func (e *Engine) Create(set objects.Settings) (string, error) {
	var (
		err error
		id  string
	)

	set.Sound = capability.ResolveProfile(set.Sound)

	e.lock.Lock()
	defer e.lock.Unlock()

	if id, err = e.st.Create(set); id == "" {
		e.log.Printf("[INFO] Refusing to create timer: %s\n",
			err.Error())
		return "", err
	} else if err != nil {
		e.log.Printf("[ERROR] Timer %s was created but not saved: %s\n",
			id,
			err.Error())
	}

	e.log.Printf("[INFO] Created %s reminder %s (%s)\n",
		set.Kind,
		id,
		objects.FormatSeconds(set.TotalSeconds()))

	e.metrics.TimerCreated(set.Kind.Name())
	if e.rec != nil {
		if rerr := e.rec.Created(); rerr != nil {
			e.log.Printf("[ERROR] Cannot count new reminder: %s\n",
				rerr.Error())
		}
	}

	return id, err
} // func (e *Engine) Create(set objects.Settings) (string, error)

// QuickStart creates a 30 minute posture reminder.
func (e *Engine) QuickStart() (string, error) {
	return e.Create(QuickStartSettings())
} // func (e *Engine) QuickStart() (string, error)

// Get returns the Timer with the given ID.
func (e *Engine) Get(id string) (objects.Timer, error) {
	return e.st.Get(id)
} // func (e *Engine) Get(id string) (objects.Timer, error)

// Timers returns all Timers, oldest first.
func (e *Engine) Timers() []objects.Timer {
	return e.st.List()
} // func (e *Engine) Timers() []objects.Timer

// transition moves a Timer from one status to another.
func (e *Engine) transition(id string, from, to objects.Status) error {
	var (
		err error
		tmr objects.Timer
	)

	e.lock.Lock()
	defer e.lock.Unlock()

	if tmr, err = e.st.Get(id); err != nil {
		return err
	} else if tmr.Status == objects.Expired {
		return fmt.Errorf("%w: %s", ErrTimerExpired, id)
	} else if tmr.Status != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, tmr.Status, to)
	}

	return e.st.SetStatus(id, to)
} // func (e *Engine) transition(id string, from, to objects.Status) error

// Pause stops a running Timer from counting down.
func (e *Engine) Pause(id string) error {
	return e.transition(id, objects.Running, objects.Paused)
} // func (e *Engine) Pause(id string) error

// Resume lets a paused Timer count down again.
func (e *Engine) Resume(id string) error {
	return e.transition(id, objects.Paused, objects.Running)
} // func (e *Engine) Resume(id string) error

// Stop removes a Timer. Expired Timers cannot be stopped, their alarm
// has to be dismissed or snoozed.
func (e *Engine) Stop(id string) error {
	var (
		err error
		tmr objects.Timer
	)

	e.lock.Lock()
	defer e.lock.Unlock()

	if tmr, err = e.st.Get(id); err != nil {
		return err
	} else if tmr.Status == objects.Expired {
		return fmt.Errorf("%w: %s", ErrTimerExpired, id)
	}

	err = e.st.Delete(id)
	e.alarm.Forget(id)

	e.log.Printf("[INFO] Stopped timer %s\n", id)

	return err
} // func (e *Engine) Stop(id string) error

// PauseAll pauses every running Timer and returns their IDs.
func (e *Engine) PauseAll() ([]string, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.st.SetStatusAll(objects.Running, objects.Paused)
} // func (e *Engine) PauseAll() ([]string, error)

// ResumeAll resumes every paused Timer and returns their IDs.
func (e *Engine) ResumeAll() ([]string, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.st.SetStatusAll(objects.Paused, objects.Running)
} // func (e *Engine) ResumeAll() ([]string, error)

// StopAll removes every Timer, expired ones included, and tears down the
// active alarm.
func (e *Engine) StopAll() ([]string, error) {
	var (
		err error
		ids []string
	)

	e.lock.Lock()
	defer e.lock.Unlock()

	ids, err = e.st.DeleteAll()

	for _, id := range ids {
		e.alarm.Forget(id)
	}

	e.log.Printf("[INFO] Stopped %d timers\n", len(ids))

	return ids, err
} // func (e *Engine) StopAll() ([]string, error)

// Start hands Timers that expired before the Engine started to the alarm
// and begins counting time from now.
func (e *Engine) Start() {
	var now = e.clk.Now().Round(0)

	e.lock.Lock()
	defer e.lock.Unlock()

	e.last = now

	for _, id := range e.st.Expired() {
		e.expireLocked(id)
	}

	if e.rec != nil {
		if err := e.rec.Rollover(now); err != nil {
			e.log.Printf("[ERROR] Cannot roll over statistics: %s\n",
				err.Error())
		}
	}
} // func (e *Engine) Start()

func (e *Engine) expireLocked(id string) {
	var err error

	if err = e.alarm.Expire(id); err != nil && !errors.Is(err, alarm.ErrAlarmAlreadyActive) {
		e.log.Printf("[ERROR] Cannot raise alarm for %s: %s\n",
			id,
			err.Error())
	}
} // func (e *Engine) expireLocked(id string)

// Tick advances every running Timer by the number of whole seconds that
// passed since the last Tick. The fraction of a second that is left over
// is carried into the next Tick, so ticks that were missed, e.g. while
// the system was suspended, are made up for. Only the wall clock counts,
// a monotonic reading in now is ignored.
func (e *Engine) Tick(now time.Time) {
	var (
		err     error
		secs    int
		expired []string
	)

	now = now.Round(0)

	e.lock.Lock()
	defer e.lock.Unlock()

	if e.last.IsZero() {
		e.last = now
	} else if now.Before(e.last) {
		e.log.Printf("[INFO] Clock went backwards by %s\n",
			e.last.Sub(now))
		e.last = now
	}

	secs = int(now.Sub(e.last) / time.Second)

	if secs > 0 {
		e.last = e.last.Add(time.Duration(secs) * time.Second)

		if secs > 1 {
			e.log.Printf("[DEBUG] Catching up on %d seconds\n", secs)
		}

		if expired, err = e.st.Advance(secs); err != nil {
			e.log.Printf("[ERROR] Error advancing timers: %s\n",
				err.Error())
		}

		for _, id := range expired {
			e.log.Printf("[INFO] Timer %s expired\n", id)
			e.expireLocked(id)
		}
	}

	if err = e.alarm.Tick(now); err != nil {
		e.log.Printf("[ERROR] Error checking the alarm: %s\n",
			err.Error())
	}

	if e.rec != nil {
		if err = e.rec.Rollover(now); err != nil {
			e.log.Printf("[ERROR] Cannot roll over statistics: %s\n",
				err.Error())
		}
	}
} // func (e *Engine) Tick(now time.Time)

// Run calls Tick once per second until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	var ticker = e.clk.NewTicker(TickInterval)
	defer ticker.Stop()

	e.log.Println("[INFO] Engine is running")

	for {
		select {
		case <-ctx.Done():
			e.log.Println("[INFO] Engine is stopping")
			return
		case now := <-ticker.C():
			e.Tick(now)
		}
	}
} // func (e *Engine) Run(ctx context.Context)
