// /home/krylon/go/src/github.com/blicero/sitfit/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 18:02:11 krylon>

// Package logdomain provides constants for log sources.
package logdomain

//go:generate stringer -type=ID

// ID represents a log source
type ID uint8

// These constants represent the pieces of the application that need to log stuff.
const (
	Common ID = iota
	Backend
	Database
	Store
	Engine
	Alarm
	Stats
	Capability
	Storage
	Client
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Database,
		Store,
		Engine,
		Alarm,
		Stats,
		Capability,
		Storage,
		Client,
	}
} // func AllDomains() []ID
