// /home/krylon/go/src/github.com/blicero/sitfit/event/event.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 21:10:55 krylon>

// Package event distributes state changes to observers such as the web
// frontend.
package event

import (
	"sync"
	"time"
)

// Type identifies what happened.
type Type string

// The kinds of Events that are emitted.
const (
	TimersChanged     Type = "timers_changed"
	AlarmRaised       Type = "alarm_raised"
	AlarmCleared      Type = "alarm_cleared"
	StatisticsChanged Type = "statistics_changed"
)

// Event describes a change of state. Title and Body are only set for
// AlarmRaised.
type Event struct {
	Type    Type      `json:"type"`
	TimerID string    `json:"timerId,omitempty"`
	Title   string    `json:"title,omitempty"`
	Body    string    `json:"body,omitempty"`
	At      time.Time `json:"at"`
}

// Sink receives Events. Emit must not block.
type Sink interface {
	Emit(ev Event)
}

// Discard is a Sink that drops everything.
type Discard struct{}

// Emit does nothing.
func (Discard) Emit(Event) {}

// Hub fans Events out to any number of subscribers. Slow subscribers
// lose Events instead of holding up the sender.
type Hub struct {
	lock    sync.Mutex
	subs    []chan Event
	dropped int64
	closed  bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{}
} // func NewHub() *Hub

// Subscribe registers a new observer channel.
func (h *Hub) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}

	var ch = make(chan Event, buffer)

	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		close(ch)
		return ch
	}

	h.subs = append(h.subs, ch)
	return ch
} // func (h *Hub) Subscribe(buffer int) <-chan Event

// Unsubscribe removes the channel and closes it.
func (h *Hub) Unsubscribe(c <-chan Event) {
	h.lock.Lock()
	defer h.lock.Unlock()

	for idx, ch := range h.subs {
		if ch == c {
			h.subs = append(h.subs[:idx], h.subs[idx+1:]...)
			close(ch)
			return
		}
	}
} // func (h *Hub) Unsubscribe(c <-chan Event)

// Emit delivers ev to every subscriber that has room for it.
func (h *Hub) Emit(ev Event) {
	h.lock.Lock()
	defer h.lock.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.dropped++
		}
	}
} // func (h *Hub) Emit(ev Event)

// Dropped returns the number of Events that were not delivered because
// a subscriber's buffer was full.
func (h *Hub) Dropped() int64 {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.dropped
} // func (h *Hub) Dropped() int64

// Subscribers returns the number of registered observers.
func (h *Hub) Subscribers() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.subs)
} // func (h *Hub) Subscribers() int

// Close closes all subscriber channels. Later subscriptions receive a
// closed channel.
func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		return
	}

	h.closed = true
	for _, ch := range h.subs {
		close(ch)
	}
	h.subs = nil
} // func (h *Hub) Close()
