// /home/krylon/go/src/github.com/blicero/sitfit/metrics/metrics_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 21:31:12 krylon>

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	var c = New()

	c.TimerCreated("water")
	c.TimerCreated("water")
	c.AlarmRaised("eye")
	c.AlarmEnded(OutcomeSnoozed)
	c.PersistError()
	c.ObservePersist(time.Millisecond)
	c.SetTimers(map[string]int{"running": 3, "paused": 1})
	c.CapabilityError("sound")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.timersCreated.WithLabelValues("water")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.alarmsRaised.WithLabelValues("eye")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.alarmsEnded.WithLabelValues(OutcomeSnoozed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.persistErrors))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.activeTimers.WithLabelValues("running")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.activeTimers.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.capabilityErrs.WithLabelValues("sound")))
} // func TestCollectorCounts(t *testing.T)

func TestNilCollector(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.TimerCreated("posture")
		c.AlarmRaised("posture")
		c.AlarmEnded(OutcomeDismissed)
		c.PersistError()
		c.ObservePersist(time.Second)
		c.SetTimers(nil)
		c.CapabilityError("haptics")
	})
	assert.Nil(t, c.Registry())
} // func TestNilCollector(t *testing.T)

func TestHandler(t *testing.T) {
	var (
		c   = New()
		rec = httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/metrics", nil)
	)

	c.TimerCreated("stretch")
	c.Handler().ServeHTTP(rec, req)

	var body, err = io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `sitfit_timers_created_total{type="stretch"} 1`))
} // func TestHandler(t *testing.T)
