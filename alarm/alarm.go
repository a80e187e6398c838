// /home/krylon/go/src/github.com/blicero/sitfit/alarm/alarm.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 04:27:13 krylon>

// Package alarm presents expired timers to the user, one at a time, and
// resolves them when the user dismisses or snoozes the alarm.
package alarm

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/sitfit/capability"
	"github.com/blicero/sitfit/catalog"
	"github.com/blicero/sitfit/clock"
	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/event"
	"github.com/blicero/sitfit/logdomain"
	"github.com/blicero/sitfit/metrics"
	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/store"
)

// ErrAlarmAlreadyActive is returned when a timer expires while another
// alarm is being presented. The timer is queued and raised later.
var ErrAlarmAlreadyActive = errors.New("another alarm is already active")

// Defaults for the alarm durations.
const (
	DefaultAutoDismiss = time.Second * 300
	DefaultSnooze      = time.Second * 300
)

// Names under which capability requests are logged and counted.
const (
	capSound    = "sound"
	capHaptics  = "haptics"
	capNotifier = "notifier"
	capPower    = "power"
)

// Capabilities bundles the devices an alarm is presented with. Missing
// ones are replaced by capability.Unavailable.
type Capabilities struct {
	Sound    capability.SoundPlayer
	Haptics  capability.Haptics
	Notifier capability.Notifier
	Power    capability.PowerHint
}

// Recorder is told about alarms going off and being completed.
type Recorder interface {
	Triggered() error
	Completed() error
}

// Options configure a Controller. Clock and Store are required.
type Options struct {
	Clock       clock.Clock
	Store       *store.Store
	Recorder    Recorder
	Caps        Capabilities
	Runner      *capability.Runner
	Sink        event.Sink
	Metrics     *metrics.Collector
	AutoDismiss time.Duration
	Snooze      time.Duration
}

// session is the alarm currently presented to the user.
type session struct {
	timer     objects.Timer
	title     string
	body      string
	startedAt time.Time
	deadline  time.Time
}

// Controller owns the single alarm slot and the queue of timers waiting
// for it.
type Controller struct {
	log         *log.Logger
	lock        sync.Mutex
	clk         clock.Clock
	st          *store.Store
	rec         Recorder
	caps        Capabilities
	runner      *capability.Runner
	ownRunner   bool
	sink        event.Sink
	metrics     *metrics.Collector
	autoDismiss time.Duration
	snooze      time.Duration
	current     *session
	queue       []string
}

// New creates a Controller. If opt.Runner is nil, the Controller creates
// a Runner of its own and closes it in Close.
func New(opt Options) (*Controller, error) {
	var (
		err error
		c   = &Controller{
			clk:         opt.Clock,
			st:          opt.Store,
			rec:         opt.Recorder,
			caps:        opt.Caps,
			runner:      opt.Runner,
			sink:        opt.Sink,
			metrics:     opt.Metrics,
			autoDismiss: opt.AutoDismiss,
			snooze:      opt.Snooze,
		}
	)

	if c.clk == nil || c.st == nil {
		return nil, fmt.Errorf("alarm Controller needs a Clock and a Store")
	} else if c.log, err = common.GetLogger(logdomain.Alarm); err != nil {
		return nil, err
	}

	if c.runner == nil {
		if c.runner, err = capability.NewRunner(0, c.metrics); err != nil {
			c.log.Printf("[ERROR] Cannot create capability runner: %s\n",
				err.Error())
			return nil, err
		}
		c.ownRunner = true
	}

	if c.caps.Sound == nil {
		c.caps.Sound = capability.Unavailable{}
	}
	if c.caps.Haptics == nil {
		c.caps.Haptics = capability.Unavailable{}
	}
	if c.caps.Notifier == nil {
		c.caps.Notifier = capability.Unavailable{}
	}
	if c.caps.Power == nil {
		c.caps.Power = capability.Unavailable{}
	}
	if c.sink == nil {
		c.sink = event.Discard{}
	}
	if c.autoDismiss <= 0 {
		c.autoDismiss = DefaultAutoDismiss
	}
	if c.snooze <= 0 {
		c.snooze = DefaultSnooze
	}

	return c, nil
} // func New(opt Options) (*Controller, error)

// Close waits for outstanding capability requests. The Runner is only
// shut down if the Controller created it.
func (c *Controller) Close() {
	if c.ownRunner {
		c.runner.Close()
	} else {
		c.runner.Flush()
	}
} // func (c *Controller) Close()

// Flush waits until every capability request made so far was carried out.
func (c *Controller) Flush() {
	c.runner.Flush()
} // func (c *Controller) Flush()

func (c *Controller) emit(evs []event.Event) {
	for _, ev := range evs {
		c.sink.Emit(ev)
	}
} // func (c *Controller) emit(evs []event.Event)

// Expire marks the Timer as expired and raises its alarm. If another alarm
// is active, the Timer is queued and ErrAlarmAlreadyActive is returned.
// Expiring the Timer whose alarm is active does nothing.
func (c *Controller) Expire(id string) error {
	var (
		err error
		tmr objects.Timer
		evs []event.Event
	)

	c.lock.Lock()

	if c.current != nil && c.current.timer.ID == id {
		c.lock.Unlock()
		return nil
	} else if tmr, err = c.st.Get(id); err != nil {
		c.lock.Unlock()
		c.log.Printf("[ERROR] Cannot expire timer %s: %s\n",
			id,
			err.Error())
		return err
	}

	if tmr.Status != objects.Expired {
		if err = c.st.SetStatus(id, objects.Expired); err != nil {
			c.log.Printf("[ERROR] Cannot mark timer %s as expired: %s\n",
				id,
				err.Error())
		}
		tmr.Status = objects.Expired
	}

	if c.current != nil {
		if !c.queuedLocked(id) {
			c.queue = append(c.queue, id)
			c.log.Printf("[DEBUG] Timer %s expired while the alarm for %s is active, %d waiting\n",
				id,
				c.current.timer.ID,
				len(c.queue))
		}
		c.lock.Unlock()
		return ErrAlarmAlreadyActive
	}

	evs, err = c.raiseLocked(tmr)
	c.lock.Unlock()

	c.emit(evs)
	return err
} // func (c *Controller) Expire(id string) error

func (c *Controller) queuedLocked(id string) bool {
	for _, q := range c.queue {
		if q == id {
			return true
		}
	}

	return false
} // func (c *Controller) queuedLocked(id string) bool

// openSessionLocked is the only way to fill the alarm slot.
func (c *Controller) openSessionLocked(tmr objects.Timer) (*session, error) {
	if c.current != nil {
		return nil, ErrAlarmAlreadyActive
	}

	var (
		entry = catalog.Resolve(&tmr)
		now   = c.clk.Now().Round(0)
	)

	c.current = &session{
		timer:     tmr,
		title:     entry.Title,
		body:      entry.Body,
		startedAt: now,
		deadline:  now.Add(c.autoDismiss),
	}

	return c.current, nil
} // func (c *Controller) openSessionLocked(tmr objects.Timer) (*session, error)

func (c *Controller) raiseLocked(tmr objects.Timer) ([]event.Event, error) {
	var (
		err  error
		sess *session
	)

	if sess, err = c.openSessionLocked(tmr); err != nil {
		return nil, err
	}

	c.log.Printf("[INFO] Alarm for %s: %s\n",
		tmr.ID,
		sess.title)

	var (
		profile = capability.ResolveProfile(tmr.Sound)
		volume  = tmr.Volume
		title   = sess.title
		body    = sess.body
	)

	c.runner.Submit(capSound, func() error { return c.caps.Sound.Play(profile, volume) })
	if tmr.Vibrate {
		c.runner.Submit(capHaptics, func() error {
			return c.caps.Haptics.Vibrate(capability.VibrationPattern)
		})
	}
	c.runner.Submit(capNotifier, func() error { return c.caps.Notifier.Notify(title, body) })
	c.runner.Submit(capPower, c.caps.Power.Acquire)

	c.metrics.AlarmRaised(tmr.Kind.Name())

	if c.rec != nil {
		if err = c.rec.Triggered(); err != nil {
			c.log.Printf("[ERROR] Cannot count triggered alarm: %s\n",
				err.Error())
		}
	}

	return []event.Event{{
		Type:    event.AlarmRaised,
		TimerID: tmr.ID,
		Title:   sess.title,
		Body:    sess.body,
		At:      sess.startedAt,
	}}, err
} // func (c *Controller) raiseLocked(tmr objects.Timer) ([]event.Event, error)

// closeSessionLocked empties the alarm slot and silences the alarm.
func (c *Controller) closeSessionLocked(outcome string) *session {
	var sess = c.current

	c.current = nil
	c.runner.SubmitUrgent(capSound, c.caps.Sound.Stop)
	if sess.timer.Vibrate {
		c.runner.SubmitUrgent(capHaptics, c.caps.Haptics.Stop)
	}
	c.runner.SubmitUrgent(capPower, c.caps.Power.Release)
	c.metrics.AlarmEnded(outcome)

	c.log.Printf("[DEBUG] Alarm for %s ended: %s\n",
		sess.timer.ID,
		outcome)

	return sess
} // func (c *Controller) closeSessionLocked(outcome string) *session

// raiseNextLocked raises the oldest queued Timer that still exists and is
// still expired.
func (c *Controller) raiseNextLocked() []event.Event {
	for len(c.queue) > 0 {
		var (
			err error
			tmr objects.Timer
			evs []event.Event
			id  = c.queue[0]
		)

		c.queue = c.queue[1:]

		if tmr, err = c.st.Get(id); err != nil || tmr.Status != objects.Expired {
			continue
		} else if evs, err = c.raiseLocked(tmr); err != nil {
			c.log.Printf("[ERROR] Error raising alarm for %s: %s\n",
				id,
				err.Error())
		}

		return evs
	}

	return nil
} // func (c *Controller) raiseNextLocked() []event.Event

func (c *Controller) clearedEvent(sess *session) event.Event {
	return event.Event{
		Type:    event.AlarmCleared,
		TimerID: sess.timer.ID,
		At:      c.clk.Now(),
	}
} // func (c *Controller) clearedEvent(sess *session) event.Event

// Dismiss completes the active alarm. A repeating Timer whose schedule
// includes both today and tomorrow starts over, any other Timer is
// removed. Without an active alarm, Dismiss does nothing.
func (c *Controller) Dismiss() error {
	c.lock.Lock()

	if c.current == nil {
		c.lock.Unlock()
		return nil
	}

	var evs, err = c.dismissLocked(metrics.OutcomeDismissed)
	c.lock.Unlock()

	c.emit(evs)
	return err
} // func (c *Controller) Dismiss() error

func (c *Controller) dismissLocked(outcome string) ([]event.Event, error) {
	var (
		err  error
		tmr  objects.Timer
		sess = c.closeSessionLocked(outcome)
		evs  = []event.Event{c.clearedEvent(sess)}
	)

	if c.rec != nil {
		if err = c.rec.Completed(); err != nil {
			c.log.Printf("[ERROR] Cannot count completed alarm: %s\n",
				err.Error())
		}
	}

	if tmr, err = c.st.Get(sess.timer.ID); err != nil {
		c.log.Printf("[INFO] Timer %s is gone already\n",
			sess.timer.ID)
		err = nil
	} else if RepeatsNow(&tmr, c.clk.Now()) {
		c.log.Printf("[DEBUG] Re-arming repeating timer %s\n", tmr.ID)
		err = c.st.Rearm(tmr.ID)
	} else {
		err = c.st.Delete(tmr.ID)
	}

	if err != nil {
		c.log.Printf("[ERROR] Cannot resolve timer %s: %s\n",
			sess.timer.ID,
			err.Error())
	}

	evs = append(evs, c.raiseNextLocked()...)

	return evs, err
} // func (c *Controller) dismissLocked(outcome string) ([]event.Event, error)

// RepeatsNow returns true if t should start over after its alarm was
// dismissed at now: it must repeat, and its schedule must include both
// today and tomorrow.
func RepeatsNow(t *objects.Timer, now time.Time) bool {
	var (
		today    = now.Weekday()
		tomorrow = (today + 1) % 7
	)

	return t.Repeat && t.SelectedDays.On(today) && t.SelectedDays.On(tomorrow)
} // func RepeatsNow(t *objects.Timer, now time.Time) bool

// Snooze silences the active alarm and lets its Timer run for the snooze
// period once more. The alarm does not count as completed. Without an
// active alarm, Snooze does nothing.
func (c *Controller) Snooze() error {
	var (
		err  error
		sess *session
		evs  []event.Event
	)

	c.lock.Lock()

	if c.current == nil {
		c.lock.Unlock()
		return nil
	}

	sess = c.closeSessionLocked(metrics.OutcomeSnoozed)
	evs = append(evs, c.clearedEvent(sess))

	if err = c.st.Snooze(sess.timer.ID, int(c.snooze/time.Second)); err != nil {
		c.log.Printf("[ERROR] Cannot snooze timer %s: %s\n",
			sess.timer.ID,
			err.Error())
	} else {
		c.log.Printf("[INFO] Snoozed %s for %s\n",
			sess.timer.ID,
			c.snooze)
	}

	evs = append(evs, c.raiseNextLocked()...)
	c.lock.Unlock()

	c.emit(evs)
	return err
} // func (c *Controller) Snooze() error

// Tick dismisses the active alarm once it has been left alone for the
// auto-dismiss period.
func (c *Controller) Tick(now time.Time) error {
	now = now.Round(0)

	c.lock.Lock()

	if c.current == nil || now.Before(c.current.deadline) {
		c.lock.Unlock()
		return nil
	}

	c.log.Printf("[INFO] Nobody reacted to the alarm for %s, dismissing it\n",
		c.current.timer.ID)

	var evs, err = c.dismissLocked(metrics.OutcomeAutoDismissed)
	c.lock.Unlock()

	c.emit(evs)
	return err
} // func (c *Controller) Tick(now time.Time) error

// Forget is called after a Timer was deleted. If its alarm is active, the
// alarm is torn down without counting it as completed. A queued entry for
// the Timer is dropped.
func (c *Controller) Forget(id string) {
	var evs []event.Event

	c.lock.Lock()

	for idx, q := range c.queue {
		if q == id {
			c.queue = append(c.queue[:idx], c.queue[idx+1:]...)
			break
		}
	}

	if c.current != nil && c.current.timer.ID == id {
		var sess = c.closeSessionLocked(metrics.OutcomeForgotten)
		evs = append(evs, c.clearedEvent(sess))
		evs = append(evs, c.raiseNextLocked()...)
	}

	c.lock.Unlock()

	c.emit(evs)
} // func (c *Controller) Forget(id string)

// Current returns a view of the active alarm, or nil if there is none.
func (c *Controller) Current() *objects.Alarm {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.current == nil {
		return nil
	}

	var elapsed = c.clk.Now().Round(0).Sub(c.current.startedAt)

	if elapsed < 0 {
		elapsed = 0
	}

	return &objects.Alarm{
		TimerID:   c.current.timer.ID,
		Kind:      c.current.timer.Kind,
		Title:     c.current.title,
		Body:      c.current.body,
		StartedAt: c.current.startedAt,
		Deadline:  c.current.deadline,
		Elapsed:   int(elapsed / time.Second),
		Queued:    len(c.queue),
	}
} // func (c *Controller) Current() *objects.Alarm

// Pending returns the IDs of the Timers waiting for the alarm slot.
func (c *Controller) Pending() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	var ids = make([]string, len(c.queue))
	copy(ids, c.queue)
	return ids
} // func (c *Controller) Pending() []string

// HandleAction reacts to the user clicking a button on the desktop
// notification.
func (c *Controller) HandleAction(action string) {
	var err error

	switch action {
	case capability.ActionDismiss:
		err = c.Dismiss()
	case capability.ActionSnooze:
		err = c.Snooze()
	default:
		c.log.Printf("[DEBUG] Ignoring notification action %q\n", action)
		return
	}

	if err != nil {
		c.log.Printf("[ERROR] Error handling notification action %s: %s\n",
			action,
			err.Error())
	}
} // func (c *Controller) HandleAction(action string)
