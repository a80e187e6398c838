// /home/krylon/go/src/github.com/blicero/sitfit/backend/02_backend_client_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 11:37:12 krylon>

package backend

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blicero/sitfit/clients/clientlib"
	"github.com/blicero/sitfit/event"
	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/objects/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, f *fixture) *clientlib.Client {
	t.Helper()

	var (
		err error
		c   *clientlib.Client
		srv = httptest.NewServer(f.d.router)
	)

	t.Cleanup(srv.Close)

	c, err = clientlib.NewClient(srv.URL)
	require.NoError(t, err)

	return c
} // func newClient(t *testing.T, f *fixture) *clientlib.Client

func TestClientRoundTrip(t *testing.T) {
	var (
		err    error
		id     string
		msg    string
		al     *objects.Alarm
		st     objects.Statistics
		timers []objects.Timer
		f      = newFixture(t)
		c      = newClient(t, f)
		set    = objects.Settings{
			Kind:         kind.Custom,
			Minutes:      2,
			Repeat:       true,
			SelectedDays: objects.WeekdaysOf(time.Monday, time.Tuesday),
			Volume:       30,
			CustomText:   "Water the plants",
		}
	)

	id, err = c.Create(&set)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	timers, err = c.Timers()
	require.NoError(t, err)
	require.Len(t, timers, 1)
	assert.Equal(t, id, timers[0].ID)
	assert.Equal(t, kind.Custom, timers[0].Kind)
	assert.Equal(t, set.SelectedDays, timers[0].SelectedDays)
	assert.Equal(t, "Water the plants", timers[0].CustomText)

	require.NoError(t, c.Pause(id))
	assert.Error(t, c.Pause(id))
	require.NoError(t, c.Resume(id))

	f.tick(time.Minute * 2)

	al, err = c.CurrentAlarm()
	require.NoError(t, err)
	require.NotNil(t, al)
	assert.Equal(t, id, al.TimerID)
	assert.Equal(t, "Water the plants", al.Body)

	msg, err = c.Dismiss()
	require.NoError(t, err)
	assert.Equal(t, msgDismissed, msg)

	// Today and tomorrow are both selected, so the reminder starts over.
	timers, err = c.Timers()
	require.NoError(t, err)
	require.Len(t, timers, 1)
	assert.Equal(t, objects.Running, timers[0].Status)
	assert.Equal(t, 120, timers[0].RemainingSeconds)

	st, err = c.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 1, st.TodayCompleted)

	msg, err = c.StopAll()
	require.NoError(t, err)
	assert.Equal(t, msgStoppedAll, msg)

	timers, err = c.Timers()
	require.NoError(t, err)
	assert.Empty(t, timers)
} // func TestClientRoundTrip(t *testing.T)

func TestClientRefused(t *testing.T) {
	var (
		err error
		f   = newFixture(t)
		c   = newClient(t, f)
		set = objects.Settings{Kind: kind.Walk}
	)

	_, err = c.Create(&set)
	require.Error(t, err)
	assert.True(t, errors.Is(err, clientlib.ErrRequestFailed))
	assert.Contains(t, err.Error(), msgInvalidTime)

	err = c.Stop("0123-abcd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), msgUnknownTimer)
} // func TestClientRefused(t *testing.T)

func TestClientEvents(t *testing.T) {
	var (
		f           = newFixture(t)
		c           = newClient(t, f)
		ctx, cancel = context.WithCancel(context.Background())
		evq         = make(chan event.Event, 16)
		done        = make(chan error, 1)
	)

	defer cancel()

	go func() {
		done <- c.Events(ctx, func(ev event.Event) { evq <- ev })
	}()

	require.Eventually(t, func() bool {
		return f.d.hub.Subscribers() == 1
	}, time.Second*5, time.Millisecond*10)

	var id, err = c.QuickStart()
	require.NoError(t, err)

	var seen = map[event.Type]bool{}

	require.Eventually(t, func() bool {
		for {
			select {
			case ev := <-evq:
				if ev.Type == event.TimersChanged {
					assert.Equal(t, id, ev.TimerID)
				}
				seen[ev.Type] = true
			default:
				return seen[event.TimersChanged] && seen[event.StatisticsChanged]
			}
		}
	}, time.Second*5, time.Millisecond*10)

	cancel()

	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second * 5):
		t.Fatal("Event stream did not end after cancel")
	}
} // func TestClientEvents(t *testing.T)
