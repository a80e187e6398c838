// /home/krylon/go/src/github.com/blicero/sitfit/database/blob.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 07:31:06 krylon>

package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blicero/sitfit/database/query"
)

// BlobInfo describes a value stored in the blob table.
type BlobInfo struct {
	Key   string
	Size  int64
	Saved time.Time
}

// BlobSet stores value under the given key, replacing any previous value.
func (db *Database) BlobSet(key string, value []byte) error {
	const qid query.ID = query.BlobSet
	var (
		err  error
		stmt *sql.Stmt
	)

	if key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrInvalidValue)
	} else if value == nil {
		value = []byte{}
	}

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(key, value, time.Now().UnixMilli()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		err = fmt.Errorf("Cannot store blob %s: %w",
			key,
			err)
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	return nil
} // func (db *Database) BlobSet(key string, value []byte) error

// BlobGet returns the value stored under key and when it was saved.
// If there is no such value, it returns nil and no error.
func (db *Database) BlobGet(key string) ([]byte, time.Time, error) {
	const qid query.ID = query.BlobGet
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, time.Time{}, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(key); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, time.Time{}, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var (
			value []byte
			saved int64
		)

		if err = rows.Scan(&value, &saved); err != nil {
			var ex = fmt.Errorf("Cannot scan row: %w", err)
			db.log.Printf("[ERROR] %s\n", ex.Error())
			return nil, time.Time{}, ex
		}

		return value, time.UnixMilli(saved), nil
	}

	return nil, time.Time{}, rows.Err()
} // func (db *Database) BlobGet(key string) ([]byte, time.Time, error)

// BlobDelete removes the value stored under key. It returns
// ErrObjectNotFound if there is no such value.
func (db *Database) BlobDelete(key string) error {
	const qid query.ID = query.BlobDelete
	var (
		err  error
		stmt *sql.Stmt
		res  sql.Result
		cnt  int64
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if res, err = stmt.Exec(key); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		err = fmt.Errorf("Cannot delete blob %s: %w",
			key,
			err)
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	} else if cnt, err = res.RowsAffected(); err != nil {
		return err
	} else if cnt == 0 {
		return fmt.Errorf("%w: blob %s", ErrObjectNotFound, key)
	}

	return nil
} // func (db *Database) BlobDelete(key string) error

// BlobList returns a description of all stored values, ordered by key.
func (db *Database) BlobList() ([]BlobInfo, error) {
	const qid query.ID = query.BlobList
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var list = make([]BlobInfo, 0, 4)

	for rows.Next() {
		var (
			info  BlobInfo
			saved int64
		)

		if err = rows.Scan(&info.Key, &info.Size, &saved); err != nil {
			var ex = fmt.Errorf("Cannot scan row: %w", err)
			db.log.Printf("[ERROR] %s\n", ex.Error())
			return nil, ex
		}

		info.Saved = time.UnixMilli(saved)
		list = append(list, info)
	}

	return list, rows.Err()
} // func (db *Database) BlobList() ([]BlobInfo, error)
