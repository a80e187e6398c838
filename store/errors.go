// /home/krylon/go/src/github.com/blicero/sitfit/store/errors.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 23:30:02 krylon>

package store

import "errors"

// Errors returned by the Store.
var (
	ErrInvalidDuration = errors.New("Duration must be greater than zero")
	ErrInvalidSchedule = errors.New("A repeating timer needs at least one weekday")
	ErrInvalidKind     = errors.New("Unknown reminder type")
	ErrNotFound        = errors.New("Timer was not found")
	ErrStorageCorrupt  = errors.New("Stored data is corrupt")
	ErrPersist         = errors.New("Cannot save timer state")
)
