// /home/krylon/go/src/github.com/blicero/sitfit/storage/memory.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 01:10:33 krylon>

// Package storage provides the media the timer state can be saved to:
// a compressed file, a redis key, or plain memory for testing.
// The sqlite backend lives in the database package.
package storage

import "sync"

// Memory keeps the saved state in memory. It is meant for tests and for
// running without any persistence.
type Memory struct {
	lock  sync.Mutex
	data  []byte
	saves int
	Fail  error
}

// NewMemory creates a Memory storage, optionally pre-loaded with data.
func NewMemory(data []byte) *Memory {
	var m = &Memory{}

	if data != nil {
		m.data = append([]byte(nil), data...)
	}

	return m
} // func NewMemory(data []byte) *Memory

// Load returns a copy of the saved data.
func (m *Memory) Load() ([]byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.data == nil {
		return nil, nil
	}

	return append([]byte(nil), m.data...), nil
} // func (m *Memory) Load() ([]byte, error)

// Save stores a copy of data. If Fail is set, it is returned instead.
func (m *Memory) Save(data []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.Fail != nil {
		return m.Fail
	}

	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
} // func (m *Memory) Save(data []byte) error

// Saves returns how often Save succeeded.
func (m *Memory) Saves() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.saves
} // func (m *Memory) Saves() int

// SetFail makes subsequent Saves fail with err, or succeed if err is nil.
func (m *Memory) SetFail(err error) {
	m.lock.Lock()
	m.Fail = err
	m.lock.Unlock()
} // func (m *Memory) SetFail(err error)
