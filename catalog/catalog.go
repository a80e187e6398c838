// /home/krylon/go/src/github.com/blicero/sitfit/catalog/catalog.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:41:33 krylon>

// Package catalog maps reminder kinds to the text shown when they go off.
package catalog

import (
	"strings"

	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/objects/kind"
)

// Entry is the title and body of a notification.
type Entry struct {
	Title string
	Body  string
}

var entries = map[kind.Kind]Entry{
	kind.Posture: {
		Title: "Posture Check!",
		Body:  "Time to check your posture and adjust your sitting position. Sit up straight!",
	},
	kind.Stretch: {
		Title: "Stretch Break!",
		Body:  "Stand up and do some stretches. Move your neck, shoulders, and back.",
	},
	kind.Water: {
		Title: "Hydration Time!",
		Body:  "Drink a glass of water to stay hydrated and healthy.",
	},
	kind.Walk: {
		Title: "Walk Break!",
		Body:  "Take a 5-minute walk to get your blood flowing and refresh your mind.",
	},
	kind.Eye: {
		Title: "Eye Rest!",
		Body:  "Look away from your screen. Focus on something 20 feet away for 20 seconds.",
	},
	kind.Breathing: {
		Title: "Breathing Exercise!",
		Body:  "Take 10 deep breaths. Inhale for 4 seconds, hold for 4, exhale for 4.",
	},
	kind.Custom: {
		Title: "Custom Reminder!",
		Body:  "Time for your custom reminder.",
	},
}

// Lookup returns the Entry for the given kind. The second return value is
// false for unknown kinds.
func Lookup(k kind.Kind) (Entry, bool) {
	var e, ok = entries[k]
	return e, ok
} // func Lookup(k kind.Kind) (Entry, bool)

// Resolve returns the title and body to show when t goes off.
// Custom reminders use the user's own text as the body, unless it is blank.
func Resolve(t *objects.Timer) Entry {
	var e, ok = entries[t.Kind]

	if !ok {
		e = entries[kind.Posture]
	}

	if t.Kind == kind.Custom {
		if txt := strings.TrimSpace(t.CustomText); txt != "" {
			e.Body = txt
		}
	}

	return e
} // func Resolve(t *objects.Timer) Entry
