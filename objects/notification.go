// /home/krylon/go/src/github.com/blicero/sitfit/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:12:09 krylon>

// Package objects provides the data types used by the application.
package objects

import (
	"time"

	"github.com/blicero/sitfit/objects/kind"
)

// Notification is the common interface for items the user should be
// notified about.
type Notification interface {
	Payload() (string, string)
}

// Alarm is a read-only view of the alarm currently presented to the user.
type Alarm struct {
	TimerID   string    `json:"timerId"`
	Kind      kind.Kind `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	StartedAt time.Time `json:"startedAt"`
	Deadline  time.Time `json:"deadline"`
	Elapsed   int       `json:"elapsed"`
	Queued    int       `json:"queued"`
}

// Payload returns the Alarm's title and body.
func (a *Alarm) Payload() (string, string) {
	return a.Title, a.Body
} // func (a *Alarm) Payload() (string, string)

// ElapsedDisplay returns the time since the alarm went off as HH:MM:SS.
func (a *Alarm) ElapsedDisplay() string {
	return FormatSeconds(a.Elapsed)
} // func (a *Alarm) ElapsedDisplay() string
