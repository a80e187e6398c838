// /home/krylon/go/src/github.com/blicero/sitfit/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:13:30 krylon>

package objects

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
// Payload carries the affected Timer's ID, if any.
type Response struct {
	ID      int64
	Status  bool
	Message string
	Payload string `json:",omitempty"`
}
