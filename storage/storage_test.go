// /home/krylon/go/src/github.com/blicero/sitfit/storage/storage_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 01:44:03 krylon>

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/store"
	"github.com/blicero/sitfit/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ store.Storage = (*Memory)(nil)
	_ store.Storage = (*File)(nil)
	_ store.Storage = (*Redis)(nil)
)

const payload = `{"timers":[],"statistics":{"todayReminders":1},"lastSaved":1792400000000}`

func TestMain(m *testing.M) {
	var (
		err error
		dir string
	)

	if dir, err = os.MkdirTemp("", "sitfit-storage-"); err != nil {
		panic(err)
	} else if err = common.SetBaseDir(dir); err != nil {
		panic(err)
	}

	var rc = m.Run()
	os.RemoveAll(dir) // nolint: errcheck
	os.Exit(rc)
} // func TestMain(m *testing.M)

func TestMemory(t *testing.T) {
	var (
		m        = NewMemory(nil)
		buf, err = m.Load()
	)

	require.NoError(t, err)
	assert.Nil(t, buf)

	var data = []byte(payload)
	require.NoError(t, m.Save(data))
	data[0] = 'X'

	buf, err = m.Load()
	require.NoError(t, err)
	assert.Equal(t, payload, string(buf))
	assert.Equal(t, 1, m.Saves())

	m.SetFail(errors.New("disk full"))
	assert.Error(t, m.Save([]byte("{}")))
	assert.Equal(t, 1, m.Saves())
} // func TestMemory(t *testing.T)

func TestFileRoundTrip(t *testing.T) {
	var (
		err  error
		f    *File
		buf  []byte
		path = filepath.Join(t.TempDir(), "state.zst")
	)

	f, err = NewFile(path)
	require.NoError(t, err)

	buf, err = f.Load()
	require.NoError(t, err, "missing file is not an error")
	assert.Nil(t, buf)

	require.NoError(t, f.Save([]byte(payload)))
	require.NoError(t, f.Save([]byte(payload)))

	buf, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, payload, string(buf))

	var raw []byte
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, payload, string(raw), "file content should be compressed")

	var leftovers, _ = filepath.Glob(path + ".tmp*")
	assert.Empty(t, leftovers)
} // func TestFileRoundTrip(t *testing.T)

func TestFileGarbage(t *testing.T) {
	var (
		err  error
		f    *File
		buf  []byte
		path = filepath.Join(t.TempDir(), "state.zst")
	)

	require.NoError(t, os.WriteFile(path, []byte("not zstd at all"), 0600))

	f, err = NewFile(path)
	require.NoError(t, err)

	buf, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, "not zstd at all", string(buf))
} // func TestFileGarbage(t *testing.T)

func TestFileUnwritable(t *testing.T) {
	var f, err = NewFile(filepath.Join(t.TempDir(), "no", "such", "dir", "state.zst"))

	require.NoError(t, err)
	assert.Error(t, f.Save([]byte(payload)))
} // func TestFileUnwritable(t *testing.T)

func TestRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	var (
		err     error
		r       *Redis
		buf     []byte
		ctx     = context.Background()
		client  *redis.Client
		cleanup func()
	)

	client, cleanup = testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	r, err = NewRedis(client, "")
	require.NoError(t, err)

	buf, err = r.Load()
	require.NoError(t, err)
	assert.Nil(t, buf)

	require.NoError(t, r.Save([]byte(payload)))

	buf, err = r.Load()
	require.NoError(t, err)
	assert.Equal(t, payload, string(buf))

	var stored string
	stored, err = client.Get(ctx, common.BlobKey).Result()
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
} // func TestRedis(t *testing.T)
