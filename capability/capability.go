// /home/krylon/go/src/github.com/blicero/sitfit/capability/capability.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 21:48:30 krylon>

// Package capability defines the interfaces through which an alarm reaches
// the user: sound, vibration, desktop notifications and keeping the screen
// awake. None of them are required, a missing capability is reported as
// ErrUnavailable and otherwise ignored.
package capability

import (
	"errors"
	"strings"
	"time"
)

//go:generate mockgen -destination=mock/mock_capability.go -package=mock github.com/blicero/sitfit/capability SoundPlayer,Haptics,Notifier,PowerHint

// ErrUnavailable is returned by capabilities the host does not provide.
var ErrUnavailable = errors.New("capability is not available")

// Sound profiles. Unknown profiles fall back to ProfileBeep.
const (
	ProfileBeep   = "beep"
	ProfileChime  = "chime"
	ProfileBell   = "bell"
	ProfileNature = "nature"
	ProfileGentle = "gentle"
)

// Profiles returns the known sound profiles.
func Profiles() []string {
	return []string{
		ProfileBeep,
		ProfileChime,
		ProfileBell,
		ProfileNature,
		ProfileGentle,
	}
} // func Profiles() []string

// ResolveProfile maps a profile name to a known profile.
func ResolveProfile(name string) string {
	var n = strings.ToLower(strings.TrimSpace(name))

	for _, p := range Profiles() {
		if p == n {
			return p
		}
	}

	return ProfileBeep
} // func ResolveProfile(name string) string

// VibrationPattern alternates between vibrating and pausing, starting
// with vibration.
var VibrationPattern = []time.Duration{
	time.Millisecond * 500,
	time.Millisecond * 200,
	time.Millisecond * 500,
	time.Millisecond * 200,
	time.Millisecond * 500,
}

// SoundPlayer plays the alarm sound in a loop until stopped.
// Volume ranges from 0 to 100.
type SoundPlayer interface {
	Play(profile string, volume int) error
	Stop() error
}

// Haptics repeats a vibration pattern until stopped.
type Haptics interface {
	Vibrate(pattern []time.Duration) error
	Stop() error
}

// Notifier posts a system notification.
type Notifier interface {
	Notify(title, body string) error
}

// PowerHint keeps the screen from blanking while an alarm is active.
type PowerHint interface {
	Acquire() error
	Release() error
}

// Unavailable implements every capability by refusing it.
type Unavailable struct{}

// Play returns ErrUnavailable.
func (Unavailable) Play(string, int) error { return ErrUnavailable }

// Vibrate returns ErrUnavailable.
func (Unavailable) Vibrate([]time.Duration) error { return ErrUnavailable }

// Stop returns ErrUnavailable.
func (Unavailable) Stop() error { return ErrUnavailable }

// Notify returns ErrUnavailable.
func (Unavailable) Notify(string, string) error { return ErrUnavailable }

// Acquire returns ErrUnavailable.
func (Unavailable) Acquire() error { return ErrUnavailable }

// Release returns ErrUnavailable.
func (Unavailable) Release() error { return ErrUnavailable }
