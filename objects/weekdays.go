// /home/krylon/go/src/github.com/blicero/sitfit/objects/weekdays.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 09. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 19:52:36 krylon>

package objects

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekdays is the set of days a repeating Timer is active on.
// Unlike the calendar-minded Monday-first lists, it is indexed by
// time.Weekday, so Sunday is 0 and Saturday is 6, which is also how the
// days are numbered in persisted data.
type Weekdays [7]bool

// WeekdaysOf builds a Weekdays set from a list of day numbers.
func WeekdaysOf(days ...time.Weekday) Weekdays {
	var w Weekdays

	for _, d := range days {
		w[d%7] = true
	}

	return w
} // func WeekdaysOf(days ...time.Weekday) Weekdays

// Bitfield returns an unsigned integer using the least significant bits
// as flags from right to left, i.e. the least significant bit is Sunday,
// the second bit from the right is Monday, etc. The most significant
// bit it always zero.
func (w *Weekdays) Bitfield() uint8 {
	var days uint8 = b2i(w[0]) |
		b2i(w[1])<<1 |
		b2i(w[2])<<2 |
		b2i(w[3])<<3 |
		b2i(w[4])<<4 |
		b2i(w[5])<<5 |
		b2i(w[6])<<6

	return days
} // func (w *Weekdays) Bitfield() uint8

// Count returns the number of weekdays that are set.
func (w *Weekdays) Count() int {
	var cnt int

	for _, b := range w {
		if b {
			cnt++
		}
	}

	return cnt
} // func (w *Weekdays) Count() int

// Empty returns true if no day is set.
func (w *Weekdays) Empty() bool {
	return w.Bitfield() == 0
} // func (w *Weekdays) Empty() bool

// On returns the flag value for the given weekday.
func (w *Weekdays) On(d time.Weekday) bool {
	return w[d%7]
} // func (w *Weekdays) On(d time.Weekday) bool

// Days returns the numbers of the days that are set, in ascending order.
func (w *Weekdays) Days() []int {
	var days = make([]int, 0, 7)

	for idx, v := range w {
		if v {
			days = append(days, idx)
		}
	}

	return days
} // func (w *Weekdays) Days() []int

var wDayStr = []string{
	"Sun",
	"Mon",
	"Tue",
	"Wed",
	"Thu",
	"Fri",
	"Sat",
}

func (w Weekdays) String() string {
	var days = make([]string, 0, 7)

	for idx, v := range w {
		if v {
			days = append(days, wDayStr[idx])
		}
	}

	return "[" + strings.Join(days, ",") + "]"
} // func (w Weekdays) String() string

// MarshalJSON encodes the set as a list of day numbers.
func (w Weekdays) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Days())
} // func (w Weekdays) MarshalJSON() ([]byte, error)

// UnmarshalJSON decodes a list of day numbers. null yields the empty set.
func (w *Weekdays) UnmarshalJSON(buf []byte) error {
	var (
		err  error
		days []int
		res  Weekdays
	)

	if err = json.Unmarshal(buf, &days); err != nil {
		return fmt.Errorf("Cannot parse list of weekdays %s: %w", buf, err)
	}

	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("Invalid weekday %d", d)
		}
		res[d] = true
	}

	*w = res
	return nil
} // func (w *Weekdays) UnmarshalJSON(buf []byte) error

// FormatSeconds renders a number of seconds as HH:MM:SS. Negative
// values are shown as zero.
func FormatSeconds(secs int) string {
	var h, m, s int

	if secs < 0 {
		secs = 0
	}

	h = secs / 3600
	secs = secs % 3600
	m = secs / 60
	s = secs % 60

	return fmt.Sprintf("%02d:%02d:%02d",
		h, m, s)
} // func FormatSeconds(secs int) string

func b2i(b bool) uint8 {
	if b {
		return 1
	}
	return 0
} // func b2i(b bool) uint8
