// /home/krylon/go/src/github.com/blicero/sitfit/database/03_database_pool_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 08:25:51 krylon>

package database

import (
	"sync"
	"testing"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ store.Storage = (*BlobStore)(nil)

var pool *Pool

func TestPoolCreate(t *testing.T) {
	var err error

	if _, err = NewPool(common.DbPath, 0); err == nil {
		t.Error("A pool of size 0 should be refused")
	}

	if pool, err = NewPool(common.DbPath, 2); err != nil {
		pool = nil
		t.Fatalf("Cannot create pool: %s", err.Error())
	}
} // func TestPoolCreate(t *testing.T)

func TestPoolOverflow(t *testing.T) {
	if pool == nil {
		t.SkipNow()
	}

	var conns = make([]*Database, 4)

	for i := range conns {
		conns[i] = pool.Get()
	}

	assert.True(t, pool.IsEmpty())

	for _, c := range conns {
		pool.Put(c)
	}

	assert.False(t, pool.IsEmpty())
	assert.Len(t, pool.dbPool, 2)
} // func TestPoolOverflow(t *testing.T)

func TestBlobStore(t *testing.T) {
	if pool == nil {
		t.SkipNow()
	}

	var (
		err  error
		bs   *BlobStore
		data []byte
	)

	_, err = NewBlobStore(nil, "")
	assert.Error(t, err)

	bs, err = NewBlobStore(pool, "")
	require.NoError(t, err)
	assert.Equal(t, common.BlobKey, bs.key)

	data, err = bs.Load()
	require.NoError(t, err)
	assert.Nil(t, data, "nothing saved, yet")

	require.NoError(t, bs.Save([]byte(`{"timers":[]}`)))
	data, err = bs.Load()
	require.NoError(t, err)
	assert.Equal(t, `{"timers":[]}`, string(data))
} // func TestBlobStore(t *testing.T)

func TestBlobStoreConcurrent(t *testing.T) {
	if pool == nil {
		t.SkipNow()
	}

	var (
		wg     sync.WaitGroup
		bs, _  = NewBlobStore(pool, "concurrent")
		errCnt int
		lock   sync.Mutex
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := bs.Save([]byte{byte(n)}); err != nil {
				lock.Lock()
				errCnt++
				lock.Unlock()
			}
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 0, errCnt)

	var data, err = bs.Load()
	require.NoError(t, err)
	assert.Len(t, data, 1)
} // func TestBlobStoreConcurrent(t *testing.T)

func TestPoolClose(t *testing.T) {
	if pool == nil {
		t.SkipNow()
	}

	pool.Close()
	assert.True(t, pool.IsEmpty())

	// Connections handed back after Close are closed, not kept.
	var c = pool.Get()
	pool.Put(c)
	assert.True(t, pool.IsEmpty())
} // func TestPoolClose(t *testing.T)
