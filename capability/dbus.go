// /home/krylon/go/src/github.com/blicero/sitfit/capability/dbus.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 22:51:17 krylon>

package capability

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj       = "org.freedesktop.Notifications"
	notifyIntf      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyMethod    = "org.freedesktop.Notifications.Notify"
	notifyAction    = "org.freedesktop.Notifications.ActionInvoked"
	notifyClosed    = "org.freedesktop.Notifications.NotificationClosed"
	saverObj        = "org.freedesktop.ScreenSaver"
	saverPath       = "/org/freedesktop/ScreenSaver"
	saverInhibit    = "org.freedesktop.ScreenSaver.Inhibit"
	saverUnInhibit  = "org.freedesktop.ScreenSaver.UnInhibit"
	urgencyCritical = byte(2)
)

// Names of the actions offered on a notification.
const (
	ActionDismiss = "dismiss"
	ActionSnooze  = "snooze"
)

// DBus talks to the desktop session over the DBus session bus. It posts
// notifications with "Done!" and "Snooze 5 min" buttons and inhibits the
// screen saver while an alarm is active.
type DBus struct {
	log       *log.Logger
	bus       *dbus.Conn
	lock      sync.Mutex
	lastID    uint32
	ours      map[uint32]bool
	cookie    uint32
	inhibited bool
}

// NewDBus connects to the session bus.
func NewDBus() (*DBus, error) {
	var (
		err error
		d   = &DBus{ours: make(map[uint32]bool)}
	)

	if d.log, err = common.GetLogger(logdomain.Capability); err != nil {
		return nil, err
	} else if d.bus, err = dbus.SessionBus(); err != nil {
		d.log.Printf("[ERROR] Failed to connect to DBus Session bus: %s\n",
			err.Error())
		return nil, err
	}

	return d, nil
} // func NewDBus() (*DBus, error)

// Notify posts a notification. A notification that is still on screen is
// replaced rather than stacked.
func (d *DBus) Notify(title, body string) error {
	var (
		err     error
		id      uint32
		obj     = d.bus.Object(notifyObj, notifyPath)
		actions = []string{
			ActionDismiss, "Done!",
			ActionSnooze, "Snooze 5 min",
		}
		hints = map[string]dbus.Variant{
			"urgency":  dbus.MakeVariant(urgencyCritical),
			"resident": dbus.MakeVariant(true),
		}
	)

	d.lock.Lock()
	var replaces = d.lastID
	d.lock.Unlock()

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		replaces,
		"alarm-symbolic",
		title,
		body,
		actions,
		hints,
		int32(0),
	)

	if res.Err != nil {
		d.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			title,
			res.Err.Error())
		return res.Err
	} else if err = res.Store(&id); err != nil {
		d.log.Printf("[ERROR] Cannot read ID of Notification %q: %s\n",
			title,
			err.Error())
		return err
	}

	d.lock.Lock()
	d.lastID = id
	d.ours[id] = true
	d.lock.Unlock()

	return nil
} // func (d *DBus) Notify(title, body string) error

// Acquire inhibits the screen saver.
func (d *DBus) Acquire() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.inhibited {
		return nil
	}

	var (
		err    error
		cookie uint32
		obj    = d.bus.Object(saverObj, saverPath)
	)

	if err = obj.Call(saverInhibit, 0, common.AppName, "An alarm is active").Store(&cookie); err != nil {
		d.log.Printf("[ERROR] Cannot inhibit screen saver: %s\n",
			err.Error())
		return err
	}

	d.cookie = cookie
	d.inhibited = true
	return nil
} // func (d *DBus) Acquire() error

// Release lifts the inhibition placed by Acquire.
func (d *DBus) Release() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if !d.inhibited {
		return nil
	}

	var res = d.bus.Object(saverObj, saverPath).Call(saverUnInhibit, 0, d.cookie)

	if res.Err != nil {
		d.log.Printf("[ERROR] Cannot release screen saver inhibition: %s\n",
			res.Err.Error())
		return res.Err
	}

	d.inhibited = false
	return nil
} // func (d *DBus) Release() error

// ListenActions calls handler with the name of every action the user
// invokes on one of our notifications, until ctx is cancelled.
func (d *DBus) ListenActions(ctx context.Context, handler func(action string)) error {
	var (
		err error
		sig = make(chan *dbus.Signal, 8)
	)

	if err = d.bus.AddMatchSignal(
		dbus.WithMatchInterface(notifyIntf),
		dbus.WithMatchObjectPath(notifyPath),
	); err != nil {
		d.log.Printf("[ERROR] Cannot subscribe to notification signals: %s\n",
			err.Error())
		return err
	}

	d.bus.Signal(sig)
	defer d.bus.RemoveSignal(sig)

	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-sig:
			if !ok {
				return fmt.Errorf("DBus signal channel was closed")
			}

			d.handleSignal(s, handler)
		}
	}
} // func (d *DBus) ListenActions(ctx context.Context, handler func(action string)) error

func (d *DBus) handleSignal(s *dbus.Signal, handler func(action string)) {
	if s == nil || len(s.Body) < 2 {
		return
	}

	var id, ok = s.Body[0].(uint32)
	if !ok {
		return
	}

	d.lock.Lock()
	var mine = d.ours[id]
	if s.Name == notifyClosed {
		delete(d.ours, id)
		if d.lastID == id {
			d.lastID = 0
		}
	}
	d.lock.Unlock()

	if !mine || s.Name != notifyAction {
		return
	}

	if action, isStr := s.Body[1].(string); isStr {
		d.log.Printf("[DEBUG] User invoked action %q on notification %d\n",
			action,
			id)
		handler(action)
	}
} // func (d *DBus) handleSignal(s *dbus.Signal, handler func(action string))

// Close disconnects from the session bus.
func (d *DBus) Close() error {
	return d.bus.Close()
} // func (d *DBus) Close() error
