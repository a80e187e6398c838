// /home/krylon/go/src/github.com/blicero/sitfit/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 07:11:50 krylon>

package database

import "github.com/blicero/sitfit/database/query"

var dbQueries = map[query.ID]string{
	query.BlobGet: "SELECT data, saved FROM state WHERE name = ?",
	query.BlobSet: `
INSERT INTO state (name, data, saved)
VALUES            (   ?,    ?,     ?)
ON CONFLICT(name) DO UPDATE
SET data = excluded.data, saved = excluded.saved
`,
	query.BlobDelete: "DELETE FROM state WHERE name = ?",
	query.BlobList: `
SELECT
    name,
    length(data),
    saved
FROM state
ORDER BY name
`,
}
