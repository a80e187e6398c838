// /home/krylon/go/src/github.com/blicero/sitfit/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 07:40:12 krylon>

package database

import (
	"fmt"
	"log"
	"sync"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
)

// Pool is a pool of database connections.
type Pool struct {
	cnt    int
	path   string
	log    *log.Logger
	lock   sync.Mutex
	dbPool chan *Database
	closed bool
}

// NewPool creates a Pool of database connections to the database at path.
// cnt is the number of idle connections the Pool keeps around.
func NewPool(path string, cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			cnt:    cnt,
			path:   path,
			dbPool: make(chan *Database, cnt),
		}
	)

	if cnt <= 0 {
		return nil, fmt.Errorf("Invalid pool size %d", cnt)
	} else if pool.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(path); err != nil {
			pool.log.Printf("[ERROR] Cannot open database: %s\n",
				err.Error())
			pool.Close()
			return nil, err
		}

		pool.dbPool <- db
	}

	return pool, nil
} // func NewPool(path string, cnt int) (*Pool, error)

// Close closes all idle connections in the Pool. Connections that are
// handed back after Close are closed right away.
func (pool *Pool) Close() {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.closed {
		return
	}

	pool.closed = true

	for {
		select {
		case db := <-pool.dbPool:
			db.Close() // nolint: errcheck
		default:
			return
		}
	}
} // func (pool *Pool) Close()

// Get returns a connection from the Pool. If the Pool is empty, a new
// connection is opened. If that fails, Get panics.
func (pool *Pool) Get() *Database {
	var (
		err error
		db  *Database
	)

	select {
	case db = <-pool.dbPool:
		return db
	default:
		if db, err = Open(pool.path); err != nil {
			pool.log.Printf("[CANTHAPPEN] Cannot open database at %s: %s\n",
				pool.path,
				err.Error())
			panic(err)
		}

		return db
	}
} // func (pool *Pool) Get() *Database

// Put returns a connection to the Pool. If the Pool is full or closed,
// the connection is closed.
func (pool *Pool) Put(db *Database) {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.closed {
		db.Close() // nolint: errcheck
		return
	}

	select {
	case pool.dbPool <- db:
	default:
		db.Close() // nolint: errcheck
	}
} // func (pool *Pool) Put(db *Database)

// IsEmpty returns true if there are no idle connections in the Pool.
func (pool *Pool) IsEmpty() bool {
	return len(pool.dbPool) == 0
} // func (pool *Pool) IsEmpty() bool
