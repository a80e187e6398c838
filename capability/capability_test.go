// /home/krylon/go/src/github.com/blicero/sitfit/capability/capability_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 23:12:48 krylon>

package capability

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
	"github.com/blicero/sitfit/metrics"
	"github.com/godbus/dbus/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	var (
		err error
		dir string
	)

	if dir, err = os.MkdirTemp("", "sitfit-capability-"); err != nil {
		panic(err)
	} else if err = common.SetBaseDir(dir); err != nil {
		panic(err)
	}

	var rc = m.Run()
	os.RemoveAll(dir) // nolint: errcheck
	os.Exit(rc)
} // func TestMain(m *testing.M)

func TestResolveProfile(t *testing.T) {
	for _, p := range Profiles() {
		assert.Equal(t, p, ResolveProfile(p))
	}

	assert.Equal(t, ProfileChime, ResolveProfile(" Chime "))
	assert.Equal(t, ProfileBeep, ResolveProfile("klaxon"))
	assert.Equal(t, ProfileBeep, ResolveProfile(""))
} // func TestResolveProfile(t *testing.T)

func TestUnavailable(t *testing.T) {
	var u Unavailable

	assert.ErrorIs(t, u.Play(ProfileBell, 50), ErrUnavailable)
	assert.ErrorIs(t, u.Vibrate(VibrationPattern), ErrUnavailable)
	assert.ErrorIs(t, u.Stop(), ErrUnavailable)
	assert.ErrorIs(t, u.Notify("a", "b"), ErrUnavailable)
	assert.ErrorIs(t, u.Acquire(), ErrUnavailable)
	assert.ErrorIs(t, u.Release(), ErrUnavailable)
} // func TestUnavailable(t *testing.T)

func TestRunnerOrderAndErrors(t *testing.T) {
	var (
		err   error
		r     *Runner
		m     = metrics.New()
		order []int
	)

	r, err = NewRunner(8, m)
	require.NoError(t, err)
	defer r.Close()

	for i := 0; i < 5; i++ {
		var n = i
		r.Submit("sound", func() error {
			order = append(order, n)
			return nil
		})
	}

	r.Submit("notify", func() error { return errors.New("no bus") })
	r.Submit("haptics", func() error { return ErrUnavailable })
	r.Submit("power", func() error { panic("boom") })
	r.Flush()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	// One series each for the failed notification and the panic.
	var series int
	series, err = testutil.GatherAndCount(m.Registry(), "sitfit_capability_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
} // func TestRunnerOrderAndErrors(t *testing.T)

func TestRunnerFullQueue(t *testing.T) {
	var (
		err   error
		r     *Runner
		gate  = make(chan struct{})
		count atomic.Int32
	)

	r, err = NewRunner(1, nil)
	require.NoError(t, err)

	// The first job occupies the worker, the second fills the queue,
	// everything after that is dropped.
	for i := 0; i < 5; i++ {
		r.Submit("sound", func() error {
			<-gate
			count.Add(1)
			return nil
		})
	}

	close(gate)
	r.Flush()
	r.Close()
	r.Close()

	assert.LessOrEqual(t, count.Load(), int32(2))
	assert.GreaterOrEqual(t, count.Load(), int32(1))

	// Submitting after Close is ignored.
	r.Submit("sound", func() error { count.Add(100); return nil })
	assert.Less(t, count.Load(), int32(100))
} // func TestRunnerFullQueue(t *testing.T)

func TestRunnerUrgentRequests(t *testing.T) {
	var (
		err     error
		r       *Runner
		m       = metrics.New()
		started = make(chan struct{})
		gate    = make(chan struct{})
		lock    sync.Mutex
		order   []string
	)

	r, err = NewRunner(1, m)
	require.NoError(t, err)
	defer r.Close()

	var record = func(name string) func() error {
		return func() error {
			lock.Lock()
			order = append(order, name)
			lock.Unlock()
			return nil
		}
	}

	r.Submit("sound", func() error {
		close(started)
		<-gate
		return nil
	})
	<-started

	// The queue holds one request, the next Play is dropped, but the
	// requests to stop the sound and release the lock must survive.
	r.Submit("sound", record("play"))
	r.Submit("sound", record("play again"))
	r.SubmitUrgent("sound", record("stop"))
	r.SubmitUrgent("power", record("release"))

	close(gate)
	r.Flush()

	assert.Equal(t, []string{"play", "stop", "release"}, order)

	// Only the dropped Play is counted.
	var series int
	series, err = testutil.GatherAndCount(m.Registry(), "sitfit_capability_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
} // func TestRunnerUrgentRequests(t *testing.T)

func TestCommandPlayer(t *testing.T) {
	var (
		err    error
		p      *CommandPlayer
		dir    = t.TempDir()
		marker = filepath.Join(dir, "played")
		script = filepath.Join(dir, "fakeplay")
	)

	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\necho \"$@\" >> "+marker+"\nsleep 0.05\n"),
		0700))

	p, err = NewCommandPlayer(script, "/sounds")
	require.NoError(t, err)
	assert.Equal(t, "/sounds/complete.oga", p.SoundFile(ProfileChime))
	assert.Equal(t, "/sounds/dialog-warning.oga", p.SoundFile("nonsense"))

	require.NoError(t, p.Play(ProfileBell, 50))
	require.Eventually(t, func() bool {
		var buf, _ = os.ReadFile(marker)
		return len(buf) > 0
	}, time.Second*5, time.Millisecond*20)
	require.NoError(t, p.Stop())

	var buf []byte
	buf, err = os.ReadFile(marker)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "--volume=32768 /sounds/bell.oga")
} // func TestCommandPlayer(t *testing.T)

func TestCommandPlayerMissing(t *testing.T) {
	var p, err = NewCommandPlayer("no-such-player-anywhere", "/sounds")

	require.NoError(t, err)
	assert.ErrorIs(t, p.Play(ProfileBeep, 70), ErrUnavailable)
	assert.ErrorIs(t, p.Stop(), ErrUnavailable)
} // func TestCommandPlayerMissing(t *testing.T)

func TestDBusActionFilter(t *testing.T) {
	var (
		err     error
		d       = &DBus{ours: map[uint32]bool{7: true}}
		invoked []string
		handler = func(a string) { invoked = append(invoked, a) }
	)

	d.log, err = common.GetLogger(logdomain.Capability)
	require.NoError(t, err)

	d.handleSignal(&dbus.Signal{Name: notifyAction, Body: []any{uint32(7), ActionSnooze}}, handler)
	d.handleSignal(&dbus.Signal{Name: notifyAction, Body: []any{uint32(8), ActionDismiss}}, handler)
	d.handleSignal(&dbus.Signal{Name: notifyAction, Body: []any{"bogus"}}, handler)
	d.handleSignal(&dbus.Signal{Name: notifyClosed, Body: []any{uint32(7), uint32(2)}}, handler)
	d.handleSignal(&dbus.Signal{Name: notifyAction, Body: []any{uint32(7), ActionDismiss}}, handler)

	assert.Equal(t, []string{ActionSnooze}, invoked)
} // func TestDBusActionFilter(t *testing.T)
