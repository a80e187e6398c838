// /home/krylon/go/src/github.com/blicero/sitfit/objects/kind/kind.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 09. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 18:11:52 krylon>

// Package kind provides symbolic constants for the categories of reminders.
package kind

import (
	"fmt"
	"strconv"
	"strings"
)

//go:generate stringer -type=Kind

// Kind identifies what a reminder is about.
type Kind uint8

// The known reminder kinds. Custom reminders carry their own text.
const (
	Posture Kind = iota
	Stretch
	Water
	Walk
	Eye
	Breathing
	Custom
)

// All returns all known Kinds in their canonical order.
func All() []Kind {
	return []Kind{Posture, Stretch, Water, Walk, Eye, Breathing, Custom}
} // func All() []Kind

// Valid returns true if k is one of the known Kinds.
func (k Kind) Valid() bool {
	return k <= Custom
} // func (k Kind) Valid() bool

// Name returns the lower-case name of the Kind as it appears in the
// persisted data and on the wire.
func (k Kind) Name() string {
	return strings.ToLower(k.String())
} // func (k Kind) Name() string

// Parse looks up a Kind by its (case-insensitive) name.
func Parse(s string) (Kind, error) {
	var name = strings.ToLower(strings.TrimSpace(s))

	for _, k := range All() {
		if k.Name() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("Unknown reminder type %q", s)
} // func Parse(s string) (Kind, error)

// MarshalJSON encodes the Kind as its lower-case name.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("Invalid reminder type %d", k)
	}

	return []byte(strconv.Quote(k.Name())), nil
} // func (k Kind) MarshalJSON() ([]byte, error)

// UnmarshalJSON decodes a Kind from its name.
func (k *Kind) UnmarshalJSON(buf []byte) error {
	var (
		err error
		s   string
		val Kind
	)

	if s, err = strconv.Unquote(string(buf)); err != nil {
		return fmt.Errorf("Cannot parse reminder type %s: %w",
			buf,
			err)
	} else if val, err = Parse(s); err != nil {
		return err
	}

	*k = val
	return nil
} // func (k *Kind) UnmarshalJSON(buf []byte) error
