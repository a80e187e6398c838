// /home/krylon/go/src/github.com/blicero/sitfit/stats/stats.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 03:12:40 krylon>

// Package stats keeps the daily counters and the streak of days on which
// the user completed at least one reminder.
package stats

import (
	"fmt"
	"log"
	"time"

	"github.com/blicero/sitfit/clock"
	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/store"
)

// Tracker updates the Statistics held by a Store.
type Tracker struct {
	log *log.Logger
	clk clock.Clock
	st  *store.Store
}

// New creates a Tracker.
func New(clk clock.Clock, st *store.Store) (*Tracker, error) {
	var (
		err error
		t   = &Tracker{clk: clk, st: st}
	)

	if clk == nil || st == nil {
		return nil, fmt.Errorf("Tracker needs a Clock and a Store")
	} else if t.log, err = common.GetLogger(logdomain.Stats); err != nil {
		return nil, err
	}

	return t, nil
} // func New(clk clock.Clock, st *store.Store) (*Tracker, error)

// Statistics returns the current counters, without rolling them over.
func (t *Tracker) Statistics() objects.Statistics {
	return t.st.Statistics()
} // func (t *Tracker) Statistics() objects.Statistics

// Created counts a newly created reminder.
func (t *Tracker) Created() error {
	var now = t.clk.Now()

	return t.st.UpdateStatistics(func(s *objects.Statistics) bool {
		rollover(s, now)
		s.TodayReminders++
		return true
	})
} // func (t *Tracker) Created() error

// Triggered counts an alarm going off.
func (t *Tracker) Triggered() error {
	var now = t.clk.Now()

	return t.st.UpdateStatistics(func(s *objects.Statistics) bool {
		rollover(s, now)
		s.TodayTriggered++
		return true
	})
} // func (t *Tracker) Triggered() error

// Completed counts a dismissed alarm. The first completion of a day
// extends the streak if the previous one happened yesterday, otherwise
// a new streak starts.
func (t *Tracker) Completed() error {
	var (
		now       = t.clk.Now()
		today     = dayOf(now)
		yesterday = dayOf(now.AddDate(0, 0, -1))
	)

	return t.st.UpdateStatistics(func(s *objects.Statistics) bool {
		rollover(s, now)
		s.TodayCompleted++

		if s.LastCompletedDay != today {
			if s.LastCompletedDay == yesterday {
				s.Streak++
			} else {
				s.Streak = 1
			}
			s.LastCompletedDay = today
			t.log.Printf("[DEBUG] Streak is now %d day(s)\n", s.Streak)
		}

		return true
	})
} // func (t *Tracker) Completed() error

// Rollover resets the daily counters if now lies on a different day than
// the one they were counted for. It saves only if something changed.
func (t *Tracker) Rollover(now time.Time) error {
	return t.st.UpdateStatistics(func(s *objects.Statistics) bool {
		var prev = s.Day

		if !rollover(s, now) {
			return false
		} else if prev != "" {
			t.log.Printf("[INFO] New day %s, streak is %d\n",
				s.Day,
				s.Streak)
		}

		return true
	})
} // func (t *Tracker) Rollover(now time.Time) error

func dayOf(t time.Time) string {
	return t.Format(common.TimestampFormatDate)
} // func dayOf(t time.Time) string

// rollover moves s to the day of now. The streak is broken if no reminder
// was completed yesterday or today. It returns true if s was modified.
func rollover(s *objects.Statistics, now time.Time) bool {
	var (
		today     = dayOf(now)
		yesterday = dayOf(now.AddDate(0, 0, -1))
	)

	if s.Day == today {
		return false
	} else if s.Day == "" {
		s.Day = today
		return true
	}

	s.Day = today
	s.TodayReminders = 0
	s.TodayCompleted = 0
	s.TodayTriggered = 0

	if s.LastCompletedDay < yesterday {
		s.Streak = 0
	}

	return true
} // func rollover(s *objects.Statistics, now time.Time) bool
