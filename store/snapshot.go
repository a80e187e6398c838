// /home/krylon/go/src/github.com/blicero/sitfit/store/snapshot.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 00:58:07 krylon>

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/blicero/sitfit/event"
	"github.com/blicero/sitfit/objects"
	"github.com/pquerna/ffjson/ffjson"
)

// blob is the persisted form of the Store.
type blob struct {
	Timers     []objects.Timer    `json:"timers"`
	Statistics objects.Statistics `json:"statistics"`
	LastSaved  int64              `json:"lastSaved"`
}

// Snapshot serializes the timers and statistics, stamped with the current
// time.
func (s *Store) Snapshot() ([]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.snapshotLocked()
} // func (s *Store) Snapshot() ([]byte, error)

func (s *Store) snapshotLocked() ([]byte, error) {
	var (
		err error
		buf []byte
		b   = blob{
			Timers:     s.listLocked(),
			Statistics: s.stats,
			LastSaved:  s.clk.Now().UnixMilli(),
		}
	)

	if buf, err = ffjson.Marshal(&b); err != nil {
		return nil, err
	}

	// ffjson may hand out a pooled buffer, the caller keeps this one.
	var res = make([]byte, len(buf))
	copy(res, buf)
	ffjson.Pool(buf)

	return res, nil
} // func (s *Store) snapshotLocked() ([]byte, error)

// Restore replaces the Store's content with the state serialized in buf.
// Time that passed between saving and now is taken off running Timers.
// Timers that would have run out in the meantime are dropped or kept as
// expired, depending on the RestorePolicy. Restore does not save.
func (s *Store) Restore(buf []byte, now time.Time) error {
	var (
		err     error
		b       blob
		elapsed int
		timers  = make(map[string]*objects.Timer)
	)

	if err = ffjson.Unmarshal(buf, &b); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageCorrupt, err)
	}

	if b.LastSaved > 0 {
		if ms := now.UnixMilli() - b.LastSaved; ms > 0 {
			elapsed = int(ms / 1000)
		}
	}

	s.log.Printf("[DEBUG] Restoring %d timers saved %d seconds ago\n",
		len(b.Timers),
		elapsed)

	for idx := range b.Timers {
		var t = b.Timers[idx]

		if t.ID == "" || t.TotalSeconds <= 0 {
			s.log.Printf("[ERROR] Skipping invalid timer in saved data: %s\n", &t)
			continue
		}

		switch t.Status {
		case objects.Stopped:
			continue
		case objects.Expired:
			t.RemainingSeconds = 0
		case objects.Running:
			t.RemainingSeconds -= elapsed
			if t.RemainingSeconds <= 0 {
				if s.policy == RestoreDiscard {
					s.log.Printf("[INFO] Timer %s ran out while we were away, discarding it\n",
						t.ID)
					continue
				}

				s.log.Printf("[INFO] Timer %s ran out while we were away, its alarm is due\n",
					t.ID)
				t.RemainingSeconds = 0
				t.Status = objects.Expired
			}
		}

		if !t.Repeat {
			t.SelectedDays = objects.Weekdays{}
		} else if t.SelectedDays.Empty() {
			s.log.Printf("[ERROR] Skipping repeating timer %s without any days\n",
				t.ID)
			continue
		}

		timers[t.ID] = &t
	}

	s.lock.Lock()
	s.timers = timers
	s.stats = b.Statistics
	if s.stats.Streak < 0 {
		s.stats.Streak = 0
	}
	s.lock.Unlock()

	return nil
} // func (s *Store) Restore(buf []byte, now time.Time) error

// Load reads the saved state from the Storage and restores it. Corrupt
// data is logged and replaced by an empty state. The reconciled state is
// saved right away.
func (s *Store) Load() error {
	var (
		err error
		buf []byte
		now = s.clk.Now()
	)

	if buf, err = s.storage.Load(); err != nil {
		s.log.Printf("[ERROR] Cannot load saved timer state: %s\n",
			err.Error())
		return err
	}

	if len(buf) == 0 {
		s.log.Println("[INFO] No saved timer state was found, starting afresh")
	} else if err = s.Restore(buf, now); err != nil {
		if !errors.Is(err, ErrStorageCorrupt) {
			return err
		}

		s.log.Printf("[ERROR] Saved timer state is unusable, starting afresh: %s\n",
			err.Error())
		s.lock.Lock()
		s.timers = make(map[string]*objects.Timer)
		s.stats = objects.Statistics{}
		s.lock.Unlock()
	}

	s.lock.Lock()
	err = s.persistLocked()
	s.lock.Unlock()

	s.emit(event.TimersChanged, "")
	s.emit(event.StatisticsChanged, "")

	return err
} // func (s *Store) Load() error
