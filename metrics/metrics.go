// /home/krylon/go/src/github.com/blicero/sitfit/metrics/metrics.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 21:26:03 krylon>

// Package metrics exports counters about timers and alarms to prometheus.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ways an alarm can end.
const (
	OutcomeDismissed     = "dismissed"
	OutcomeSnoozed       = "snoozed"
	OutcomeAutoDismissed = "auto_dismissed"
	OutcomeForgotten     = "forgotten"
)

// Collector holds the application's metrics on a private registry.
type Collector struct {
	reg             *prometheus.Registry
	timersCreated   *prometheus.CounterVec
	alarmsRaised    *prometheus.CounterVec
	alarmsEnded     *prometheus.CounterVec
	persistErrors   prometheus.Counter
	persistDuration prometheus.Histogram
	activeTimers    *prometheus.GaugeVec
	capabilityErrs  *prometheus.CounterVec
}

// New creates a Collector with a fresh registry.
func New() *Collector {
	var (
		reg = prometheus.NewRegistry()
		f   = promauto.With(reg)
	)

	return &Collector{
		reg: reg,
		timersCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sitfit_timers_created_total",
			Help: "Number of timers created, by reminder type",
		}, []string{"type"}),
		alarmsRaised: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sitfit_alarms_raised_total",
			Help: "Number of alarms presented, by reminder type",
		}, []string{"type"}),
		alarmsEnded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sitfit_alarms_ended_total",
			Help: "Number of alarms that ended, by outcome",
		}, []string{"outcome"}),
		persistErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "sitfit_persist_errors_total",
			Help: "Number of failed attempts to save the timer state",
		}),
		persistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitfit_persist_duration_seconds",
			Help:    "Time spent saving the timer state",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		activeTimers: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sitfit_timers",
			Help: "Number of timers, by status",
		}, []string{"status"}),
		capabilityErrs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sitfit_capability_errors_total",
			Help: "Number of failed requests to sound, vibration, notification or power capabilities",
		}, []string{"capability"}),
	}
} // func New() *Collector

// TimerCreated counts a new timer of the given type.
func (c *Collector) TimerCreated(kind string) {
	if c == nil {
		return
	}
	c.timersCreated.WithLabelValues(kind).Inc()
}

// AlarmRaised counts an alarm being presented.
func (c *Collector) AlarmRaised(kind string) {
	if c == nil {
		return
	}
	c.alarmsRaised.WithLabelValues(kind).Inc()
}

// AlarmEnded counts an alarm ending with the given outcome.
func (c *Collector) AlarmEnded(outcome string) {
	if c == nil {
		return
	}
	c.alarmsEnded.WithLabelValues(outcome).Inc()
}

// PersistError counts a failed save.
func (c *Collector) PersistError() {
	if c == nil {
		return
	}
	c.persistErrors.Inc()
}

// ObservePersist records how long a save took.
func (c *Collector) ObservePersist(d time.Duration) {
	if c == nil {
		return
	}
	c.persistDuration.Observe(d.Seconds())
}

// SetTimers sets the number of timers per status. Statuses missing from
// counts are set to zero.
func (c *Collector) SetTimers(counts map[string]int) {
	if c == nil {
		return
	}

	for _, s := range []string{"running", "paused", "expired"} {
		c.activeTimers.WithLabelValues(s).Set(float64(counts[s]))
	}
} // func (c *Collector) SetTimers(counts map[string]int)

// CapabilityError counts a failed capability request.
func (c *Collector) CapabilityError(name string) {
	if c == nil {
		return
	}
	c.capabilityErrs.WithLabelValues(name).Inc()
}

// Handler returns an http.Handler exposing the Collector's registry.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
} // func (c *Collector) Handler() http.Handler

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.reg
}
