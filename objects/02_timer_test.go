// /home/krylon/go/src/github.com/blicero/sitfit/objects/02_timer_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:30:12 krylon>

package objects

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/blicero/sitfit/objects/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerJSONFields(t *testing.T) {
	var (
		err error
		buf []byte
		raw map[string]any
		tmr = Timer{
			ID:               "abc",
			Kind:             kind.Water,
			TotalSeconds:     3600,
			RemainingSeconds: 1800,
			Status:           Paused,
			Repeat:           true,
			SelectedDays:     WeekdaysOf(time.Monday),
			Sound:            "bell",
			Volume:           40,
			CreatedAt:        time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
		}
	)

	buf, err = json.Marshal(&tmr)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(buf, &raw))

	assert.Equal(t, "water", raw["type"])
	assert.Equal(t, "paused", raw["status"])
	assert.Equal(t, float64(1800), raw["remainingSeconds"])
	assert.Equal(t, []any{float64(1)}, raw["selectedDays"])
	assert.Equal(t, "2026-10-19T08:00:00Z", raw["createdAt"])
} // func TestTimerJSONFields(t *testing.T)

func TestTimerProgress(t *testing.T) {
	var tmr = Timer{TotalSeconds: 100, RemainingSeconds: 25}

	assert.InDelta(t, 0.75, tmr.Progress(), 0.0001)
	assert.Equal(t, "00:00:25", tmr.Display())

	tmr.RemainingSeconds = -3
	assert.Equal(t, 1.0, tmr.Progress())

	tmr.RemainingSeconds = 200
	assert.Equal(t, 0.0, tmr.Progress())
} // func TestTimerProgress(t *testing.T)

func TestSettingsTotal(t *testing.T) {
	var s = Settings{Hours: 1, Minutes: 2, Seconds: 3}

	assert.Equal(t, 3723, s.TotalSeconds())
} // func TestSettingsTotal(t *testing.T)

func TestStatusJSON(t *testing.T) {
	var s Status

	require.NoError(t, json.Unmarshal([]byte(`"expired"`), &s))
	assert.Equal(t, Expired, s)
	assert.Error(t, json.Unmarshal([]byte(`"sleeping"`), &s))
	assert.Equal(t, "Status(9)", Status(9).String())
} // func TestStatusJSON(t *testing.T)
