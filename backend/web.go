// /home/krylon/go/src/github.com/blicero/sitfit/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 09:58:21 krylon>

package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/blicero/sitfit/alarm"
	"github.com/blicero/sitfit/engine"
	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/objects/kind"
	"github.com/blicero/sitfit/store"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

// Messages shown to the user.
const (
	msgCreated        = "Reminder created successfully!"
	msgQuickStart     = "Quick start: posture check in 30 minutes"
	msgInvalidTime    = "Please set a valid time duration"
	msgInvalidDays    = "Please select at least one day for the reminder to repeat on"
	msgInvalidKind    = "Unknown reminder type"
	msgPausedAll      = "All timers paused"
	msgResumedAll     = "All timers resumed"
	msgStoppedAll     = "All timers stopped"
	msgDismissed      = "Well done! Keep it up!"
	msgNoAlarm        = "There is no active alarm"
	msgNotSaved       = "The change could not be saved"
	msgExpired        = "This reminder has gone off, dismiss or snooze it first"
	msgUnknownTimer   = "There is no such timer"
	msgDefaultVolume  = 50
	keepAliveInterval = time.Second * 15
)

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/timer/add", d.handleTimerAdd).Methods(http.MethodPost)
	d.router.HandleFunc("/timer/quick", d.handleTimerQuick).Methods(http.MethodPost)
	d.router.HandleFunc("/timer/all", d.handleTimerGetAll).Methods(http.MethodGet)
	d.router.HandleFunc("/timer/pause_all", d.handleTimerPauseAll).Methods(http.MethodPost)
	d.router.HandleFunc("/timer/resume_all", d.handleTimerResumeAll).Methods(http.MethodPost)
	d.router.HandleFunc("/timer/stop_all", d.handleTimerStopAll).Methods(http.MethodPost)
	d.router.HandleFunc("/timer/{id:(?:[-0-9a-fA-F]+)}/{action:(?:pause|resume|stop)}", d.handleTimerAction).Methods(http.MethodPost)
	d.router.HandleFunc("/alarm/current", d.handleAlarmCurrent).Methods(http.MethodGet)
	d.router.HandleFunc("/alarm/dismiss", d.handleAlarmDismiss).Methods(http.MethodPost)
	d.router.HandleFunc("/alarm/snooze", d.handleAlarmSnooze).Methods(http.MethodPost)
	d.router.HandleFunc("/statistics", d.handleStatistics).Methods(http.MethodGet)
	d.router.HandleFunc("/events", d.handleEvents).Methods(http.MethodGet)

	if d.cfg.Metrics.Enabled {
		d.router.Handle("/metrics", d.metrics.Handler()).Methods(http.MethodGet)
	}

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web frontend is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

// parseSettings extracts the settings for a new Timer from a form.
// Days to repeat on are given as one "day" value per weekday, 0 being
// Sunday.
func parseSettings(r *http.Request) (objects.Settings, error) {
	var (
		err error
		set = objects.Settings{Volume: msgDefaultVolume}
	)

	if t := r.PostFormValue("type"); t != "" {
		if set.Kind, err = kind.Parse(t); err != nil {
			return set, fmt.Errorf("%w: %s", store.ErrInvalidKind, t)
		}
	}

	var ints = []struct {
		name string
		val  *int
	}{
		{"hours", &set.Hours},
		{"minutes", &set.Minutes},
		{"seconds", &set.Seconds},
		{"volume", &set.Volume},
	}

	for _, f := range ints {
		var s = strings.TrimSpace(r.PostFormValue(f.name))
		if s == "" {
			continue
		} else if *f.val, err = strconv.Atoi(s); err != nil {
			return set, fmt.Errorf("Cannot parse %s %q: %w", f.name, s, err)
		}
	}

	if s := r.PostFormValue("repeat"); s != "" {
		if set.Repeat, err = parseBool(s); err != nil {
			return set, err
		}
	}

	if s := r.PostFormValue("vibrate"); s != "" {
		if set.Vibrate, err = parseBool(s); err != nil {
			return set, err
		}
	}

	for _, s := range r.PostForm["day"] {
		var n int
		if n, err = strconv.Atoi(s); err != nil || n < 0 || n > 6 {
			return set, fmt.Errorf("%w: invalid weekday %q", store.ErrInvalidSchedule, s)
		}
		set.SelectedDays[n] = true
	}

	set.Sound = r.PostFormValue("sound")
	set.CustomText = r.PostFormValue("text")

	return set, nil
} // func parseSettings(r *http.Request) (objects.Settings, error)

// snoozeMessage tells the user how long the alarm is put off.
func snoozeMessage(dur time.Duration) string {
	if dur <= 0 {
		dur = alarm.DefaultSnooze
	}

	switch {
	case dur == time.Minute:
		return "Snoozed for 1 minute"
	case dur%time.Minute == 0:
		return fmt.Sprintf("Snoozed for %d minutes", int(dur/time.Minute))
	default:
		return fmt.Sprintf("Snoozed for %d seconds", int(dur/time.Second))
	}
} // func snoozeMessage(dur time.Duration) string

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	default:
		return strconv.ParseBool(s)
	}
} // func parseBool(s string) (bool, error)

// advice turns an error into a message for the user.
func advice(err error) string {
	switch {
	case errors.Is(err, store.ErrInvalidDuration):
		return msgInvalidTime
	case errors.Is(err, store.ErrInvalidSchedule):
		return msgInvalidDays
	case errors.Is(err, store.ErrInvalidKind):
		return msgInvalidKind
	case errors.Is(err, store.ErrNotFound):
		return msgUnknownTimer
	case errors.Is(err, engine.ErrTimerExpired):
		return msgExpired
	case errors.Is(err, store.ErrPersist):
		return msgNotSaved
	default:
		return err.Error()
	}
} // func advice(err error) string

func (d *Daemon) handleTimerAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		id       string
		set      objects.Settings
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if set, err = parseSettings(r); err != nil {
		d.log.Printf("[INFO] Invalid timer settings: %s\n",
			err.Error())
		response.Message = advice(err)
		goto SEND_RESPONSE
	}

	if id, err = d.engine.Create(set); id == "" {
		response.Message = advice(err)
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Payload = id
	response.Message = msgCreated

	if err != nil {
		response.Message = fmt.Sprintf("%s (%s)", msgCreated, advice(err))
	}

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleTimerAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTimerQuick(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		id       string
		response = objects.Response{ID: d.getID()}
	)

	if id, err = d.engine.QuickStart(); id == "" {
		response.Message = advice(err)
	} else {
		response.Status = true
		response.Payload = id
		response.Message = msgQuickStart
	}

	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleTimerQuick(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTimerGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.sendJSON(w, d.engine.Timers())
} // func (d *Daemon) handleTimerGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTimerAction(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		vars     = mux.Vars(r)
		id       = vars["id"]
		action   = vars["action"]
		response = objects.Response{ID: d.getID(), Payload: id}
	)

	switch action {
	case "pause":
		err = d.engine.Pause(id)
	case "resume":
		err = d.engine.Resume(id)
	case "stop":
		err = d.engine.Stop(id)
	}

	if err != nil {
		d.log.Printf("[INFO] Cannot %s timer %s: %s\n",
			action,
			id,
			err.Error())
		response.Message = advice(err)
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = fmt.Sprintf("Timer %s: %s", id, action)

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleTimerAction(w http.ResponseWriter, r *http.Request)

// handleBatch runs one of the operations on all timers.
func (d *Daemon) handleBatch(w http.ResponseWriter, r *http.Request, op func() ([]string, error), msg string) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		ids      []string
		response = objects.Response{ID: d.getID()}
	)

	if ids, err = op(); err != nil {
		d.log.Printf("[ERROR] %s: %s\n",
			r.URL.Path,
			err.Error())
		response.Message = advice(err)
	} else {
		response.Status = true
		response.Message = msg
		response.Payload = strings.Join(ids, ",")
	}

	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleBatch(...)

func (d *Daemon) handleTimerPauseAll(w http.ResponseWriter, r *http.Request) {
	d.handleBatch(w, r, d.engine.PauseAll, msgPausedAll)
} // func (d *Daemon) handleTimerPauseAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTimerResumeAll(w http.ResponseWriter, r *http.Request) {
	d.handleBatch(w, r, d.engine.ResumeAll, msgResumedAll)
} // func (d *Daemon) handleTimerResumeAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTimerStopAll(w http.ResponseWriter, r *http.Request) {
	d.handleBatch(w, r, d.engine.StopAll, msgStoppedAll)
} // func (d *Daemon) handleTimerStopAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmCurrent(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.sendJSON(w, d.alarm.Current())
} // func (d *Daemon) handleAlarmCurrent(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmDismiss(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		cur      = d.alarm.Current()
		response = objects.Response{ID: d.getID()}
	)

	if cur == nil {
		response.Status = true
		response.Message = msgNoAlarm
		goto SEND_RESPONSE
	}

	response.Payload = cur.TimerID

	if err = d.alarm.Dismiss(); err != nil {
		d.log.Printf("[ERROR] Error dismissing alarm for %s: %s\n",
			cur.TimerID,
			err.Error())
		response.Message = advice(err)
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = msgDismissed

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmDismiss(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmSnooze(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		cur      = d.alarm.Current()
		response = objects.Response{ID: d.getID()}
	)

	if cur == nil {
		response.Status = true
		response.Message = msgNoAlarm
		goto SEND_RESPONSE
	}

	response.Payload = cur.TimerID

	if err = d.alarm.Snooze(); err != nil {
		d.log.Printf("[ERROR] Error snoozing alarm for %s: %s\n",
			cur.TimerID,
			err.Error())
		response.Message = advice(err)
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = snoozeMessage(d.cfg.Alarm.Snooze)

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmSnooze(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleStatistics(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.sendJSON(w, d.stats.Statistics())
} // func (d *Daemon) handleStatistics(w http.ResponseWriter, r *http.Request)

// handleEvents streams Events to the client as server-sent events until
// the client goes away or the Daemon shuts down.
func (d *Daemon) handleEvents(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		flusher, ok = w.(http.Flusher)
		keepAlive   = time.NewTicker(keepAliveInterval)
	)

	defer keepAlive.Stop()

	if !ok {
		http.Error(w, "Streaming is not supported", http.StatusInternalServerError)
		return
	}

	var ch = d.hub.Subscribe(eventBuffer)
	defer d.hub.Unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-ch:
			if !open {
				return
			}

			var (
				err error
				buf []byte
			)

			if buf, err = ffjson.Marshal(&ev); err != nil {
				d.log.Printf("[ERROR] Cannot serialize event %s: %s\n",
					ev.Type,
					err.Error())
				continue
			}

			_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, buf)
			ffjson.Pool(buf)

			if err != nil {
				d.log.Printf("[DEBUG] Event client %s went away: %s\n",
					r.RemoteAddr,
					err.Error())
				return
			}

			flusher.Flush()
		}
	}
} // func (d *Daemon) handleEvents(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendJSON(w http.ResponseWriter, v any) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(v); err != nil {
		d.log.Printf("[ERROR] Cannot serialize %T: %s\n",
			v,
			err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendJSON(w http.ResponseWriter, v any)

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
