// /home/krylon/go/src/github.com/blicero/sitfit/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 18:04:40 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

// ID identifies a prepared statement.
type ID uint8

const (
	BlobGet ID = iota
	BlobSet
	BlobDelete
	BlobList
)
