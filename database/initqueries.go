// /home/krylon/go/src/github.com/blicero/sitfit/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 07:10:23 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE state (
    name        TEXT PRIMARY KEY,
    data        BLOB NOT NULL,
    saved       INTEGER NOT NULL,
    CHECK (name <> '')
) WITHOUT ROWID
`,
	"CREATE INDEX state_saved_idx ON state (saved)",
}
