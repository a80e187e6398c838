// /home/krylon/go/src/github.com/blicero/sitfit/objects/status.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 19:40:02 krylon>

package objects

import (
	"fmt"
	"strconv"
)

// Status is the lifecycle state of a Timer.
type Status uint8

// Stopped is terminal, a stopped Timer is removed right away, so it
// never shows up in persisted data.
const (
	Running Status = iota
	Paused
	Expired
	Stopped
)

var statusNames = []string{
	"running",
	"paused",
	"expired",
	"stopped",
}

func (s Status) String() string {
	if int(s) >= len(statusNames) {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}

	return statusNames[s]
} // func (s Status) String() string

// ParseStatus looks up a Status by name.
func ParseStatus(name string) (Status, error) {
	for idx, n := range statusNames {
		if n == name {
			return Status(idx), nil
		}
	}

	return 0, fmt.Errorf("Unknown timer status %q", name)
} // func ParseStatus(name string) (Status, error)

// MarshalJSON encodes the Status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("Invalid timer status %d", s)
	}

	return []byte(strconv.Quote(statusNames[s])), nil
} // func (s Status) MarshalJSON() ([]byte, error)

// UnmarshalJSON decodes a Status from its name.
func (s *Status) UnmarshalJSON(buf []byte) error {
	var (
		err  error
		name string
		val  Status
	)

	if name, err = strconv.Unquote(string(buf)); err != nil {
		return fmt.Errorf("Cannot parse timer status %s: %w", buf, err)
	} else if val, err = ParseStatus(name); err != nil {
		return err
	}

	*s = val
	return nil
} // func (s *Status) UnmarshalJSON(buf []byte) error
