// /home/krylon/go/src/github.com/blicero/sitfit/stats/stats_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 03:31:02 krylon>

package stats

import (
	"os"
	"testing"
	"time"

	"github.com/blicero/sitfit/clock"
	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/storage"
	"github.com/blicero/sitfit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	var (
		err error
		dir string
	)

	if dir, err = os.MkdirTemp("", "sitfit-stats-"); err != nil {
		panic(err)
	} else if err = common.SetBaseDir(dir); err != nil {
		panic(err)
	}

	var rc = m.Run()
	os.RemoveAll(dir) // nolint: errcheck
	os.Exit(rc)
} // func TestMain(m *testing.M)

func newTracker(t *testing.T) (*Tracker, *clock.Manual, *storage.Memory) {
	t.Helper()

	var (
		err error
		s   *store.Store
		tr  *Tracker
		clk = clock.NewManual(t0)
		mem = storage.NewMemory(nil)
	)

	s, err = store.New(store.Options{Clock: clk, Storage: mem})
	require.NoError(t, err)
	tr, err = New(clk, s)
	require.NoError(t, err)

	return tr, clk, mem
} // func newTracker(t *testing.T) (*Tracker, *clock.Manual, *storage.Memory)

func TestNewRequiresStore(t *testing.T) {
	var _, err = New(clock.NewManual(t0), nil)
	assert.Error(t, err)
} // func TestNewRequiresStore(t *testing.T)

func TestCounters(t *testing.T) {
	var tr, _, _ = newTracker(t)

	require.NoError(t, tr.Created())
	require.NoError(t, tr.Created())
	require.NoError(t, tr.Triggered())
	require.NoError(t, tr.Completed())

	assert.Equal(t, objects.Statistics{
		TodayReminders:   2,
		TodayCompleted:   1,
		TodayTriggered:   1,
		Streak:           1,
		Day:              "2026-10-19",
		LastCompletedDay: "2026-10-19",
	}, tr.Statistics())

	// More completions on the same day do not extend the streak.
	require.NoError(t, tr.Completed())
	assert.Equal(t, 1, tr.Statistics().Streak)
	assert.Equal(t, 2, tr.Statistics().TodayCompleted)
} // func TestCounters(t *testing.T)

func TestStreak(t *testing.T) {
	var tr, clk, _ = newTracker(t)

	for i := 1; i <= 3; i++ {
		require.NoError(t, tr.Completed())
		assert.Equal(t, i, tr.Statistics().Streak)
		clk.Advance(24 * time.Hour)
		require.NoError(t, tr.Rollover(clk.Now()))
	}

	// A whole day without a completion breaks the streak.
	assert.Equal(t, 3, tr.Statistics().Streak, "a streak survives the day after")
	clk.Advance(24 * time.Hour)
	require.NoError(t, tr.Rollover(clk.Now()))
	assert.Equal(t, 0, tr.Statistics().Streak)

	require.NoError(t, tr.Completed())
	assert.Equal(t, 1, tr.Statistics().Streak)
} // func TestStreak(t *testing.T)

func TestRolloverResetsDailyCounters(t *testing.T) {
	var tr, clk, mem = newTracker(t)

	require.NoError(t, tr.Created())
	require.NoError(t, tr.Triggered())
	require.NoError(t, tr.Completed())

	var saves = mem.Saves()

	// Same day, nothing to do.
	require.NoError(t, tr.Rollover(clk.Now().Add(time.Hour)))
	assert.Equal(t, saves, mem.Saves())

	clk.Set(time.Date(2026, 10, 20, 0, 0, 1, 0, time.UTC))
	require.NoError(t, tr.Rollover(clk.Now()))
	assert.Equal(t, saves+1, mem.Saves())

	var st = tr.Statistics()
	assert.Equal(t, 0, st.TodayReminders)
	assert.Equal(t, 0, st.TodayCompleted)
	assert.Equal(t, 0, st.TodayTriggered)
	assert.Equal(t, 1, st.Streak)
	assert.Equal(t, "2026-10-20", st.Day)
} // func TestRolloverResetsDailyCounters(t *testing.T)

func TestRolloverAdoptsFirstDay(t *testing.T) {
	var tr, clk, _ = newTracker(t)

	require.NoError(t, tr.Rollover(clk.Now()))
	assert.Equal(t, "2026-10-19", tr.Statistics().Day)
	assert.Equal(t, 0, tr.Statistics().Streak)
} // func TestRolloverAdoptsFirstDay(t *testing.T)

func TestCountingRollsOver(t *testing.T) {
	var tr, clk, _ = newTracker(t)

	require.NoError(t, tr.Created())
	require.NoError(t, tr.Created())

	// The engine missed the rollover, counting catches up.
	clk.Advance(24 * time.Hour)
	require.NoError(t, tr.Created())

	assert.Equal(t, 1, tr.Statistics().TodayReminders)
	assert.Equal(t, "2026-10-20", tr.Statistics().Day)
} // func TestCountingRollsOver(t *testing.T)
