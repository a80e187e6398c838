// /home/krylon/go/src/github.com/blicero/sitfit/store/store.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 00:41:19 krylon>

// Package store owns the live timers and the statistics. It is the only
// place they are modified, and it saves them to a Storage after every
// change.
package store

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/blicero/sitfit/clock"
	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/event"
	"github.com/blicero/sitfit/logdomain"
	"github.com/blicero/sitfit/metrics"
	"github.com/blicero/sitfit/objects"
)

//go:generate mockgen -destination=mock_storage_test.go -package=store github.com/blicero/sitfit/store Storage

// Storage is the medium the timer state is saved to. Load returns nil
// and no error if nothing has been saved yet.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// RestorePolicy decides what happens to timers that ran out while the
// application was not running.
type RestorePolicy uint8

const (
	// RestoreDiscard drops them.
	RestoreDiscard RestorePolicy = iota
	// RestoreFire keeps them as expired, so their alarm goes off right away.
	RestoreFire
)

// ParsePolicy converts a policy name from the configuration.
func ParsePolicy(name string) (RestorePolicy, error) {
	switch name {
	case common.PolicyDiscard, "":
		return RestoreDiscard, nil
	case common.PolicyFire:
		return RestoreFire, nil
	default:
		return RestoreDiscard, fmt.Errorf("Unknown restore policy %q", name)
	}
} // func ParsePolicy(name string) (RestorePolicy, error)

// Options configure a Store. Clock and Storage are required.
type Options struct {
	Clock   clock.Clock
	Storage Storage
	Sink    event.Sink
	Policy  RestorePolicy
	Metrics *metrics.Collector
}

// Store holds the timers and statistics.
type Store struct {
	log     *log.Logger
	lock    sync.RWMutex
	clk     clock.Clock
	storage Storage
	sink    event.Sink
	policy  RestorePolicy
	metrics *metrics.Collector
	timers  map[string]*objects.Timer
	stats   objects.Statistics
}

// New creates an empty Store. Call Load to bring back the saved state.
func New(opt Options) (*Store, error) {
	var (
		err error
		s   = &Store{
			clk:     opt.Clock,
			storage: opt.Storage,
			sink:    opt.Sink,
			policy:  opt.Policy,
			metrics: opt.Metrics,
			timers:  make(map[string]*objects.Timer),
		}
	)

	if s.clk == nil {
		return nil, fmt.Errorf("Store needs a Clock")
	} else if s.storage == nil {
		return nil, fmt.Errorf("Store needs a Storage")
	} else if s.log, err = common.GetLogger(logdomain.Store); err != nil {
		return nil, err
	}

	if s.sink == nil {
		s.sink = event.Discard{}
	}

	return s, nil
} // func New(opt Options) (*Store, error)

func (s *Store) emit(t event.Type, id string) {
	s.sink.Emit(event.Event{
		Type:    t,
		TimerID: id,
		At:      s.clk.Now(),
	})
} // func (s *Store) emit(t event.Type, id string)

// Create validates the settings and adds a new running Timer.
// If only saving fails, the Timer exists and its ID is returned along with
// an error wrapping ErrPersist.
func (s *Store) Create(set objects.Settings) (string, error) {
	var (
		err error
		tmr *objects.Timer
	)

	if tmr, err = s.newTimer(set); err != nil {
		return "", err
	}

	s.lock.Lock()
	s.timers[tmr.ID] = tmr
	err = s.persistLocked()
	s.lock.Unlock()

	s.log.Printf("[DEBUG] Created %s\n", tmr)
	s.emit(event.TimersChanged, tmr.ID)

	return tmr.ID, err
} // func (s *Store) Create(set objects.Settings) (string, error)

func (s *Store) newTimer(set objects.Settings) (*objects.Timer, error) {
	if !set.Kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, set.Kind)
	} else if set.Hours < 0 || set.Minutes < 0 || set.Seconds < 0 || set.TotalSeconds() <= 0 {
		return nil, fmt.Errorf("%w: %dh %dm %ds",
			ErrInvalidDuration,
			set.Hours,
			set.Minutes,
			set.Seconds)
	} else if set.Repeat && set.SelectedDays.Empty() {
		return nil, ErrInvalidSchedule
	}

	var tmr = &objects.Timer{
		ID:               common.GetUUID(),
		Kind:             set.Kind,
		TotalSeconds:     set.TotalSeconds(),
		RemainingSeconds: set.TotalSeconds(),
		Status:           objects.Running,
		Repeat:           set.Repeat,
		SelectedDays:     set.SelectedDays,
		Sound:            set.Sound,
		Volume:           set.Volume,
		Vibrate:          set.Vibrate,
		CustomText:       set.CustomText,
		CreatedAt:        s.clk.Now(),
	}

	if !tmr.Repeat {
		tmr.SelectedDays = objects.Weekdays{}
	}

	if tmr.Volume < 0 {
		tmr.Volume = 0
	} else if tmr.Volume > 100 {
		tmr.Volume = 100
	}

	return tmr, nil
} // func (s *Store) newTimer(set objects.Settings) (*objects.Timer, error)

// Get returns a copy of the Timer with the given ID.
func (s *Store) Get(id string) (objects.Timer, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	var tmr, ok = s.timers[id]
	if !ok {
		return objects.Timer{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return *tmr, nil
} // func (s *Store) Get(id string) (objects.Timer, error)

// List returns copies of all Timers, oldest first.
func (s *Store) List() []objects.Timer {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.listLocked()
} // func (s *Store) List() []objects.Timer

func (s *Store) listLocked() []objects.Timer {
	var list = make([]objects.Timer, 0, len(s.timers))

	for _, t := range s.timers {
		list = append(list, *t)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	return list
} // func (s *Store) listLocked() []objects.Timer

// Count returns the number of Timers.
func (s *Store) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.timers)
} // func (s *Store) Count() int

// Expired returns the IDs of all expired Timers, oldest first.
func (s *Store) Expired() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	var ids []string

	for _, t := range s.listLocked() {
		if t.Status == objects.Expired {
			ids = append(ids, t.ID)
		}
	}

	return ids
} // func (s *Store) Expired() []string

// mutate applies fn to the Timer with the given ID and saves the result.
func (s *Store) mutate(id string, fn func(t *objects.Timer)) error {
	var err error

	s.lock.Lock()
	var tmr, ok = s.timers[id]
	if !ok {
		s.lock.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	fn(tmr)
	err = s.persistLocked()
	s.lock.Unlock()

	s.emit(event.TimersChanged, id)
	return err
} // func (s *Store) mutate(id string, fn func(t *objects.Timer)) error

// Delete removes a Timer.
func (s *Store) Delete(id string) error {
	var err error

	s.lock.Lock()
	if _, ok := s.timers[id]; !ok {
		s.lock.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	delete(s.timers, id)
	err = s.persistLocked()
	s.lock.Unlock()

	s.emit(event.TimersChanged, id)
	return err
} // func (s *Store) Delete(id string) error

// UpdateRemaining sets the remaining seconds of a Timer.
func (s *Store) UpdateRemaining(id string, seconds int) error {
	return s.mutate(id, func(t *objects.Timer) {
		t.RemainingSeconds = seconds
	})
} // func (s *Store) UpdateRemaining(id string, seconds int) error

// SetStatus sets the Status of a Timer.
func (s *Store) SetStatus(id string, status objects.Status) error {
	return s.mutate(id, func(t *objects.Timer) {
		t.Status = status
	})
} // func (s *Store) SetStatus(id string, status objects.Status) error

// Rearm restarts a Timer from its full duration.
func (s *Store) Rearm(id string) error {
	return s.mutate(id, func(t *objects.Timer) {
		t.RemainingSeconds = t.TotalSeconds
		t.Status = objects.Running
	})
} // func (s *Store) Rearm(id string) error

// Snooze sets a Timer running again with the given number of seconds left.
func (s *Store) Snooze(id string, seconds int) error {
	return s.mutate(id, func(t *objects.Timer) {
		t.RemainingSeconds = seconds
		t.Status = objects.Running
	})
} // func (s *Store) Snooze(id string, seconds int) error

// SetStatusAll moves every Timer in state from to state to, in one step.
// It returns the IDs of the Timers that changed.
func (s *Store) SetStatusAll(from, to objects.Status) ([]string, error) {
	var (
		err error
		ids []string
	)

	s.lock.Lock()
	for _, t := range s.listLocked() {
		if t.Status == from {
			s.timers[t.ID].Status = to
			ids = append(ids, t.ID)
		}
	}

	if len(ids) > 0 {
		err = s.persistLocked()
	}
	s.lock.Unlock()

	if len(ids) > 0 {
		s.emit(event.TimersChanged, "")
	}

	return ids, err
} // func (s *Store) SetStatusAll(from, to objects.Status) ([]string, error)

// DeleteAll removes every Timer in one step and returns their IDs.
func (s *Store) DeleteAll() ([]string, error) {
	var (
		err error
		ids []string
	)

	s.lock.Lock()
	for _, t := range s.listLocked() {
		ids = append(ids, t.ID)
	}

	s.timers = make(map[string]*objects.Timer)

	if len(ids) > 0 {
		err = s.persistLocked()
	}
	s.lock.Unlock()

	if len(ids) > 0 {
		s.emit(event.TimersChanged, "")
	}

	return ids, err
} // func (s *Store) DeleteAll() ([]string, error)

// Advance counts every running Timer down by the given number of seconds.
// Timers that reach zero are marked as expired, their IDs are returned
// oldest first.
func (s *Store) Advance(seconds int) ([]string, error) {
	var (
		err     error
		expired []string
		changed bool
	)

	if seconds <= 0 {
		return nil, nil
	}

	s.lock.Lock()
	for _, t := range s.listLocked() {
		if t.Status != objects.Running {
			continue
		}

		var tmr = s.timers[t.ID]
		tmr.RemainingSeconds -= seconds
		changed = true

		if tmr.RemainingSeconds <= 0 {
			tmr.RemainingSeconds = 0
			tmr.Status = objects.Expired
			expired = append(expired, tmr.ID)
		}
	}

	if changed {
		err = s.persistLocked()
	}
	s.lock.Unlock()

	if changed {
		s.emit(event.TimersChanged, "")
	}

	return expired, err
} // func (s *Store) Advance(seconds int) ([]string, error)

// Statistics returns a copy of the statistics.
func (s *Store) Statistics() objects.Statistics {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.stats
} // func (s *Store) Statistics() objects.Statistics

// UpdateStatistics lets fn modify the statistics. If fn returns true, the
// change is saved and announced.
func (s *Store) UpdateStatistics(fn func(st *objects.Statistics) bool) error {
	var err error

	s.lock.Lock()
	var changed = fn(&s.stats)
	if changed {
		err = s.persistLocked()
	}
	s.lock.Unlock()

	if changed {
		s.emit(event.StatisticsChanged, "")
	}

	return err
} // func (s *Store) UpdateStatistics(fn func(st *objects.Statistics) bool) error

func (s *Store) persistLocked() error {
	var (
		err    error
		buf    []byte
		start  = time.Now()
		counts = make(map[string]int, 3)
	)

	for _, t := range s.timers {
		counts[t.Status.String()]++
	}
	s.metrics.SetTimers(counts)

	if buf, err = s.snapshotLocked(); err != nil {
		s.log.Printf("[CANTHAPPEN] Cannot serialize timer state: %s\n",
			err.Error())
		s.metrics.PersistError()
		return fmt.Errorf("%w: %w", ErrPersist, err)
	} else if err = s.storage.Save(buf); err != nil {
		s.log.Printf("[ERROR] Cannot save timer state: %s\n",
			err.Error())
		s.metrics.PersistError()
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.metrics.ObservePersist(time.Since(start))
	return nil
} // func (s *Store) persistLocked() error
