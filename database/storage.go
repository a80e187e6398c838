// /home/krylon/go/src/github.com/blicero/sitfit/database/storage.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 07:52:33 krylon>

package database

import (
	"fmt"
	"log"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
)

// BlobStore saves the timer state as a single value in the database.
type BlobStore struct {
	pool *Pool
	key  string
	log  *log.Logger
}

// NewBlobStore creates a BlobStore that keeps its data under key.
// An empty key means common.BlobKey.
func NewBlobStore(pool *Pool, key string) (*BlobStore, error) {
	var (
		err error
		bs  = &BlobStore{pool: pool, key: key}
	)

	if pool == nil {
		return nil, fmt.Errorf("BlobStore needs a Pool")
	} else if bs.log, err = common.GetLogger(logdomain.Storage); err != nil {
		return nil, err
	}

	if bs.key == "" {
		bs.key = common.BlobKey
	}

	return bs, nil
} // func NewBlobStore(pool *Pool, key string) (*BlobStore, error)

// Load returns the saved data, or nil if nothing was saved, yet.
func (bs *BlobStore) Load() ([]byte, error) {
	var (
		err  error
		data []byte
		db   = bs.pool.Get()
	)

	defer bs.pool.Put(db)

	if data, _, err = db.BlobGet(bs.key); err != nil {
		bs.log.Printf("[ERROR] Cannot load %s: %s\n",
			bs.key,
			err.Error())
		return nil, err
	}

	return data, nil
} // func (bs *BlobStore) Load() ([]byte, error)

// Save replaces the saved data.
func (bs *BlobStore) Save(data []byte) error {
	var (
		err error
		db  = bs.pool.Get()
	)

	defer bs.pool.Put(db)

	if err = db.Begin(); err != nil {
		bs.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	} else if err = db.BlobSet(bs.key, data); err != nil {
		db.Rollback() // nolint: errcheck
		return err
	} else if err = db.Commit(); err != nil {
		bs.log.Printf("[ERROR] Cannot commit transaction: %s\n",
			err.Error())
		db.Rollback() // nolint: errcheck
		return err
	}

	return nil
} // func (bs *BlobStore) Save(data []byte) error
