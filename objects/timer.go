// /home/krylon/go/src/github.com/blicero/sitfit/objects/timer.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:05:18 krylon>

package objects

import (
	"fmt"
	"time"

	"github.com/blicero/sitfit/objects/kind"
)

// Timer is a countdown that raises an alarm when it runs out.
// TotalSeconds and CreatedAt never change after creation, RemainingSeconds
// is decremented once per second while the Timer is running.
type Timer struct {
	ID               string    `json:"id"`
	Kind             kind.Kind `json:"type"`
	TotalSeconds     int       `json:"totalSeconds"`
	RemainingSeconds int       `json:"remainingSeconds"`
	Status           Status    `json:"status"`
	Repeat           bool      `json:"repeat"`
	SelectedDays     Weekdays  `json:"selectedDays"`
	Sound            string    `json:"sound"`
	Volume           int       `json:"volume"`
	Vibrate          bool      `json:"vibrate"`
	CustomText       string    `json:"customText"`
	CreatedAt        time.Time `json:"createdAt"`
}

// IsActive returns true if the Timer is counting down.
func (t *Timer) IsActive() bool {
	return t.Status == Running
} // func (t *Timer) IsActive() bool

// Progress returns the fraction of the Timer's duration that has passed,
// between 0 and 1.
func (t *Timer) Progress() float64 {
	if t.TotalSeconds <= 0 {
		return 0
	}

	var p = float64(t.TotalSeconds-t.RemainingSeconds) / float64(t.TotalSeconds)

	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
} // func (t *Timer) Progress() float64

// Display returns the remaining time formatted as HH:MM:SS.
func (t *Timer) Display() string {
	return FormatSeconds(t.RemainingSeconds)
} // func (t *Timer) Display() string

func (t *Timer) String() string {
	return fmt.Sprintf("Timer{ ID: %s, Type: %s, Remaining: %s/%s, Status: %s, Repeat: %t %s }",
		t.ID,
		t.Kind.Name(),
		FormatSeconds(t.RemainingSeconds),
		FormatSeconds(t.TotalSeconds),
		t.Status,
		t.Repeat,
		t.SelectedDays)
} // func (t *Timer) String() string

// Settings is what the user specifies when creating a Timer.
type Settings struct {
	Kind         kind.Kind `json:"type"`
	Hours        int       `json:"hours"`
	Minutes      int       `json:"minutes"`
	Seconds      int       `json:"seconds"`
	Repeat       bool      `json:"repeat"`
	SelectedDays Weekdays  `json:"selectedDays"`
	Sound        string    `json:"sound"`
	Volume       int       `json:"volume"`
	Vibrate      bool      `json:"vibrate"`
	CustomText   string    `json:"customText"`
}

// TotalSeconds returns the duration described by the Settings.
func (s *Settings) TotalSeconds() int {
	return s.Hours*3600 + s.Minutes*60 + s.Seconds
} // func (s *Settings) TotalSeconds() int
