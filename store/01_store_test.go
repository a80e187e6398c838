// /home/krylon/go/src/github.com/blicero/sitfit/store/01_store_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 02:10:51 krylon>

package store

import (
	"os"
	"testing"
	"time"

	"github.com/blicero/sitfit/clock"
	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/event"
	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/objects/kind"
	"github.com/blicero/sitfit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	var (
		err error
		dir string
	)

	if dir, err = os.MkdirTemp("", "sitfit-store-"); err != nil {
		panic(err)
	} else if err = common.SetBaseDir(dir); err != nil {
		panic(err)
	}

	var rc = m.Run()
	os.RemoveAll(dir) // nolint: errcheck
	os.Exit(rc)
} // func TestMain(m *testing.M)

type fixture struct {
	clk *clock.Manual
	mem *storage.Memory
	hub *event.Hub
	evs <-chan event.Event
	s   *Store
}

func newFixture(t *testing.T, policy RestorePolicy) *fixture {
	t.Helper()

	var (
		err error
		f   = &fixture{
			clk: clock.NewManual(t0),
			mem: storage.NewMemory(nil),
			hub: event.NewHub(),
		}
	)

	f.evs = f.hub.Subscribe(256)

	f.s, err = New(Options{
		Clock:   f.clk,
		Storage: f.mem,
		Sink:    f.hub,
		Policy:  policy,
	})
	require.NoError(t, err)

	return f
} // func newFixture(t *testing.T, policy RestorePolicy) *fixture

func (f *fixture) drain() []event.Event {
	var evs []event.Event

	for {
		select {
		case ev := <-f.evs:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
} // func (f *fixture) drain() []event.Event

func minutes(k kind.Kind, m int) objects.Settings {
	return objects.Settings{
		Kind:    k,
		Minutes: m,
		Sound:   "chime",
		Volume:  70,
	}
} // func minutes(k kind.Kind, m int) objects.Settings

func TestNewRequiresClockAndStorage(t *testing.T) {
	var _, err = New(Options{Storage: storage.NewMemory(nil)})
	assert.Error(t, err)

	_, err = New(Options{Clock: clock.NewManual(t0)})
	assert.Error(t, err)
} // func TestNewRequiresClockAndStorage(t *testing.T)

func TestCreateValidation(t *testing.T) {
	var f = newFixture(t, RestoreDiscard)

	type testCase struct {
		name   string
		set    objects.Settings
		expect error
	}

	var cases = []testCase{
		{"zero duration", objects.Settings{Kind: kind.Water}, ErrInvalidDuration},
		{"negative part", objects.Settings{Kind: kind.Water, Hours: 1, Minutes: -30}, ErrInvalidDuration},
		{"repeat without days", objects.Settings{Kind: kind.Eye, Minutes: 5, Repeat: true}, ErrInvalidSchedule},
		{"unknown kind", objects.Settings{Kind: kind.Kind(17), Minutes: 5}, ErrInvalidKind},
	}

	for _, c := range cases {
		var id, err = f.s.Create(c.set)
		assert.ErrorIs(t, err, c.expect, c.name)
		assert.Empty(t, id, c.name)
	}

	assert.Equal(t, 0, f.s.Count())
	assert.Equal(t, 0, f.mem.Saves(), "rejected timers must not be saved")
} // func TestCreateValidation(t *testing.T)

func TestCreateNormalizes(t *testing.T) {
	var (
		err error
		id  string
		tmr objects.Timer
		f   = newFixture(t, RestoreDiscard)
		set = objects.Settings{
			Kind:         kind.Custom,
			Seconds:      90,
			SelectedDays: objects.WeekdaysOf(time.Monday),
			Volume:       250,
			CustomText:   "Water the plants",
		}
	)

	id, err = f.s.Create(set)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	tmr, err = f.s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 90, tmr.TotalSeconds)
	assert.Equal(t, 90, tmr.RemainingSeconds)
	assert.Equal(t, objects.Running, tmr.Status)
	assert.True(t, tmr.SelectedDays.Empty(), "days are cleared when repeat is off")
	assert.Equal(t, 100, tmr.Volume)
	assert.Equal(t, t0, tmr.CreatedAt)
	assert.Equal(t, 1, f.mem.Saves())

	var evs = f.drain()
	require.Len(t, evs, 1)
	assert.Equal(t, event.TimersChanged, evs[0].Type)
	assert.Equal(t, id, evs[0].TimerID)

	set.Volume = -4
	id, err = f.s.Create(set)
	require.NoError(t, err)
	tmr, _ = f.s.Get(id)
	assert.Equal(t, 0, tmr.Volume)
} // func TestCreateNormalizes(t *testing.T)

func TestGetReturnsCopy(t *testing.T) {
	var (
		f       = newFixture(t, RestoreDiscard)
		id, err = f.s.Create(minutes(kind.Posture, 1))
	)

	require.NoError(t, err)

	var tmr, _ = f.s.Get(id)
	tmr.RemainingSeconds = 1

	tmr, _ = f.s.Get(id)
	assert.Equal(t, 60, tmr.RemainingSeconds)

	_, err = f.s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.s.Delete("nope"), ErrNotFound)
	assert.ErrorIs(t, f.s.SetStatus("nope", objects.Paused), ErrNotFound)
	assert.ErrorIs(t, f.s.UpdateRemaining("nope", 3), ErrNotFound)
	assert.ErrorIs(t, f.s.Rearm("nope"), ErrNotFound)
	assert.ErrorIs(t, f.s.Snooze("nope", 300), ErrNotFound)
} // func TestGetReturnsCopy(t *testing.T)

func TestListOrder(t *testing.T) {
	var (
		f   = newFixture(t, RestoreDiscard)
		ids []string
	)

	for i := 0; i < 5; i++ {
		var id, err = f.s.Create(minutes(kind.Stretch, i+1))
		require.NoError(t, err)
		ids = append(ids, id)
		f.clk.Advance(time.Second)
	}

	var list = f.s.List()
	require.Len(t, list, 5)

	for i := range list {
		assert.Equal(t, ids[i], list[i].ID)
	}
} // func TestListOrder(t *testing.T)

func TestAdvance(t *testing.T) {
	var (
		err     error
		expired []string
		f       = newFixture(t, RestoreDiscard)
	)

	short, _ := f.s.Create(objects.Settings{Kind: kind.Eye, Seconds: 3})
	long, _ := f.s.Create(objects.Settings{Kind: kind.Walk, Seconds: 10})
	paused, _ := f.s.Create(objects.Settings{Kind: kind.Water, Seconds: 2})
	require.NoError(t, f.s.SetStatus(paused, objects.Paused))

	expired, err = f.s.Advance(2)
	require.NoError(t, err)
	assert.Empty(t, expired)

	expired, err = f.s.Advance(5)
	require.NoError(t, err)
	assert.Equal(t, []string{short}, expired)

	var tmr objects.Timer
	tmr, _ = f.s.Get(short)
	assert.Equal(t, objects.Expired, tmr.Status)
	assert.Equal(t, 0, tmr.RemainingSeconds)

	tmr, _ = f.s.Get(long)
	assert.Equal(t, 3, tmr.RemainingSeconds)

	tmr, _ = f.s.Get(paused)
	assert.Equal(t, 2, tmr.RemainingSeconds, "paused timers do not count down")

	// Expired timers are left alone.
	expired, err = f.s.Advance(3)
	require.NoError(t, err)
	assert.Equal(t, []string{long}, expired)
	assert.Equal(t, []string{short, long}, f.s.Expired())

	expired, err = f.s.Advance(0)
	assert.NoError(t, err)
	assert.Nil(t, expired)
} // func TestAdvance(t *testing.T)

func TestRearmAndSnooze(t *testing.T) {
	var (
		f      = newFixture(t, RestoreDiscard)
		id, _  = f.s.Create(minutes(kind.Breathing, 1))
		tmr, _ = f.s.Get(id)
	)

	f.s.Advance(60) // nolint: errcheck
	tmr, _ = f.s.Get(id)
	require.Equal(t, objects.Expired, tmr.Status)

	require.NoError(t, f.s.Snooze(id, 300))
	tmr, _ = f.s.Get(id)
	assert.Equal(t, 300, tmr.RemainingSeconds)
	assert.Equal(t, objects.Running, tmr.Status)
	assert.Equal(t, 60, tmr.TotalSeconds)

	require.NoError(t, f.s.UpdateRemaining(id, 7))
	require.NoError(t, f.s.SetStatus(id, objects.Expired))
	require.NoError(t, f.s.Rearm(id))
	tmr, _ = f.s.Get(id)
	assert.Equal(t, 60, tmr.RemainingSeconds)
	assert.Equal(t, objects.Running, tmr.Status)
} // func TestRearmAndSnooze(t *testing.T)

func TestStatistics(t *testing.T) {
	var f = newFixture(t, RestoreDiscard)

	require.NoError(t, f.s.UpdateStatistics(func(st *objects.Statistics) bool {
		st.TodayReminders++
		return true
	}))
	require.NoError(t, f.s.UpdateStatistics(func(st *objects.Statistics) bool {
		return false
	}))

	assert.Equal(t, 1, f.s.Statistics().TodayReminders)
	assert.Equal(t, 1, f.mem.Saves(), "unchanged statistics are not saved")

	var evs = f.drain()
	require.Len(t, evs, 1)
	assert.Equal(t, event.StatisticsChanged, evs[0].Type)
} // func TestStatistics(t *testing.T)

func TestParsePolicy(t *testing.T) {
	var p, err = ParsePolicy(common.PolicyFire)
	require.NoError(t, err)
	assert.Equal(t, RestoreFire, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, RestoreDiscard, p)

	_, err = ParsePolicy("panic")
	assert.Error(t, err)
} // func TestParsePolicy(t *testing.T)
