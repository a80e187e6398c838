// /home/krylon/go/src/github.com/blicero/sitfit/objects/statistics.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:07:44 krylon>

package objects

// Statistics are the simple counters shown to the user.
// Day is the calendar day (2006-01-02) the daily counters belong to,
// LastCompletedDay the most recent day on which an alarm was completed.
type Statistics struct {
	TodayReminders   int    `json:"todayReminders"`
	TodayCompleted   int    `json:"todayCompleted"`
	TodayTriggered   int    `json:"todayTriggered"`
	Streak           int    `json:"streak"`
	Day              string `json:"day"`
	LastCompletedDay string `json:"lastCompletedDay"`
}
