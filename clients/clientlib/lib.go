// /home/krylon/go/src/github.com/blicero/sitfit/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 08. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 10:41:17 krylon>

// Package clientlib provides the basic framework for
// building clients that talk to the SitFit backend.
package clientlib

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/event"
	"github.com/blicero/sitfit/logdomain"
	"github.com/blicero/sitfit/objects"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	pathAdd        = "/timer/add"
	pathQuick      = "/timer/quick"
	pathAll        = "/timer/all"
	pathPauseAll   = "/timer/pause_all"
	pathResumeAll  = "/timer/resume_all"
	pathStopAll    = "/timer/stop_all"
	pathAlarm      = "/alarm/current"
	pathDismiss    = "/alarm/dismiss"
	pathSnooze     = "/alarm/snooze"
	pathStatistics = "/statistics"
	pathEvents     = "/events"
	pathTimerFmt   = "/timer/%s/%s"
)

// ErrRequestFailed is returned when the backend processed a request but
// refused to carry it out. The error message contains the backend's
// explanation.
var ErrRequestFailed = errors.New("Request failed")

// Client is the basic implementation of a SitFit client,
// it implements the fundamental communication with the Server.
type Client struct {
	Server *url.URL
	Client http.Client
	stream http.Client
	log    *log.Logger
}

// NewClient creates a new Client. srv is either a URL or a host:port pair.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if !strings.Contains(srv, "://") {
		srv = "http://" + srv
	}

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	} else if c.Server.Host == "" {
		err = fmt.Errorf("No host in server address %q", srv)
		c.log.Printf("[ERROR] %s\n", err.Error())
		return nil, err
	}

	c.Server.Path = ""

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's Logger.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) endpoint(path string) string {
	var u = *c.Server
	u.Path = path
	return u.String()
} // func (c *Client) endpoint(path string) string

// receive reads the body of a reply and decodes it into dst.
func (c *Client) receive(addr string, hres *http.Response, dst any) error {
	var (
		err    error
		msg    string
		rcvBuf bytes.Buffer
	)

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), dst); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return err
	}

	return nil
} // func (c *Client) receive(addr string, hres *http.Response, dst any) error

// post sends a form to the backend and returns its Response. If the
// backend reports a failure, the Response is returned along with an
// error wrapping ErrRequestFailed.
func (c *Client) post(path string, values url.Values) (*objects.Response, error) {
	var (
		err  error
		hres *http.Response
		ores objects.Response
		addr = c.endpoint(path)
	)

	if hres, err = c.Client.PostForm(addr, values); err != nil {
		c.log.Printf("[ERROR] Failed to POST to %s: %s\n",
			addr,
			err.Error())
		return nil, err
	} else if err = c.receive(addr, hres, &ores); err != nil {
		return nil, err
	} else if !ores.Status {
		err = fmt.Errorf("%w: %s",
			ErrRequestFailed,
			ores.Message)
		c.log.Printf("[INFO] Request to %s failed: %s\n",
			addr,
			ores.Message)
		return &ores, err
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		addr,
		ores.Message)

	return &ores, nil
} // func (c *Client) post(path string, values url.Values) (*objects.Response, error)

func (c *Client) get(path string, dst any) error {
	var (
		err  error
		hres *http.Response
		addr = c.endpoint(path)
	)

	if hres, err = c.Client.Get(addr); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			addr,
			err.Error())
		return err
	}

	return c.receive(addr, hres, dst)
} // func (c *Client) get(path string, dst any) error

// SettingsForm encodes Settings the way the backend expects them.
func SettingsForm(set *objects.Settings) url.Values {
	var values = url.Values{
		"type":    []string{set.Kind.Name()},
		"hours":   []string{strconv.Itoa(set.Hours)},
		"minutes": []string{strconv.Itoa(set.Minutes)},
		"seconds": []string{strconv.Itoa(set.Seconds)},
		"repeat":  []string{strconv.FormatBool(set.Repeat)},
		"volume":  []string{strconv.Itoa(set.Volume)},
		"vibrate": []string{strconv.FormatBool(set.Vibrate)},
	}

	for _, d := range set.SelectedDays.Days() {
		values.Add("day", strconv.Itoa(d))
	}

	if set.Sound != "" {
		values.Set("sound", set.Sound)
	}

	if set.CustomText != "" {
		values.Set("text", set.CustomText)
	}

	return values
} // func SettingsForm(set *objects.Settings) url.Values

// Create asks the backend to create a new Timer and returns its ID.
func (c *Client) Create(set *objects.Settings) (string, error) {
	var (
		err error
		res *objects.Response
	)

	if res, err = c.post(pathAdd, SettingsForm(set)); err != nil {
		return "", err
	}

	return res.Payload, nil
} // func (c *Client) Create(set *objects.Settings) (string, error)

// QuickStart creates the default posture reminder and returns its ID.
func (c *Client) QuickStart() (string, error) {
	var (
		err error
		res *objects.Response
	)

	if res, err = c.post(pathQuick, nil); err != nil {
		return "", err
	}

	return res.Payload, nil
} // func (c *Client) QuickStart() (string, error)

// Timers fetches all live Timers.
func (c *Client) Timers() ([]objects.Timer, error) {
	var (
		err    error
		timers []objects.Timer
	)

	if err = c.get(pathAll, &timers); err != nil {
		return nil, err
	}

	return timers, nil
} // func (c *Client) Timers() ([]objects.Timer, error)

// Pause pauses the Timer with the given ID.
func (c *Client) Pause(id string) error {
	var _, err = c.post(fmt.Sprintf(pathTimerFmt, id, "pause"), nil)
	return err
} // func (c *Client) Pause(id string) error

// Resume resumes the Timer with the given ID.
func (c *Client) Resume(id string) error {
	var _, err = c.post(fmt.Sprintf(pathTimerFmt, id, "resume"), nil)
	return err
} // func (c *Client) Resume(id string) error

// Stop removes the Timer with the given ID.
func (c *Client) Stop(id string) error {
	var _, err = c.post(fmt.Sprintf(pathTimerFmt, id, "stop"), nil)
	return err
} // func (c *Client) Stop(id string) error

// batch runs one of the operations on all Timers and returns the
// backend's message.
func (c *Client) batch(path string) (string, error) {
	var (
		err error
		res *objects.Response
	)

	if res, err = c.post(path, nil); err != nil {
		return "", err
	}

	return res.Message, nil
} // func (c *Client) batch(path string) (string, error)

// PauseAll pauses all running Timers.
func (c *Client) PauseAll() (string, error) {
	return c.batch(pathPauseAll)
} // func (c *Client) PauseAll() (string, error)

// ResumeAll resumes all paused Timers.
func (c *Client) ResumeAll() (string, error) {
	return c.batch(pathResumeAll)
} // func (c *Client) ResumeAll() (string, error)

// StopAll removes all Timers.
func (c *Client) StopAll() (string, error) {
	return c.batch(pathStopAll)
} // func (c *Client) StopAll() (string, error)

// CurrentAlarm returns the active alarm, or nil if there is none.
func (c *Client) CurrentAlarm() (*objects.Alarm, error) {
	var (
		err error
		al  *objects.Alarm
	)

	if err = c.get(pathAlarm, &al); err != nil {
		return nil, err
	}

	return al, nil
} // func (c *Client) CurrentAlarm() (*objects.Alarm, error)

// Dismiss dismisses the active alarm.
func (c *Client) Dismiss() (string, error) {
	return c.batch(pathDismiss)
} // func (c *Client) Dismiss() (string, error)

// Snooze puts off the active alarm.
func (c *Client) Snooze() (string, error) {
	return c.batch(pathSnooze)
} // func (c *Client) Snooze() (string, error)

// Statistics fetches today's counters and the streak.
func (c *Client) Statistics() (objects.Statistics, error) {
	var (
		err error
		st  objects.Statistics
	)

	err = c.get(pathStatistics, &st)
	return st, err
} // func (c *Client) Statistics() (objects.Statistics, error)

// Events subscribes to the backend's event stream and passes each Event
// to fn, until ctx is cancelled or the backend closes the stream.
// A cancelled context is not reported as an error.
func (c *Client) Events(ctx context.Context, fn func(event.Event)) error {
	var (
		err  error
		req  *http.Request
		hres *http.Response
		addr = c.endpoint(pathEvents)
	)

	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, addr, nil); err != nil {
		return err
	}

	req.Header.Set("Accept", "text/event-stream")

	if hres, err = c.stream.Do(req); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.log.Printf("[ERROR] Cannot subscribe to %s: %s\n",
			addr,
			err.Error())
		return err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		return fmt.Errorf("Unexpected status from %s: %s",
			addr,
			hres.Status)
	}

	var scanner = bufio.NewScanner(hres.Body)

	for scanner.Scan() {
		var (
			ev   event.Event
			line = scanner.Text()
		)

		// Event type and keep-alive lines carry nothing the data
		// line does not.
		if !strings.HasPrefix(line, "data: ") {
			continue
		} else if err = ffjson.Unmarshal([]byte(line[6:]), &ev); err != nil {
			c.log.Printf("[ERROR] Cannot parse event %q: %s\n",
				line,
				err.Error())
			continue
		}

		fn(ev)
	}

	if err = scanner.Err(); err != nil && ctx.Err() == nil {
		c.log.Printf("[ERROR] Error reading events from %s: %s\n",
			addr,
			err.Error())
		return err
	}

	return nil
} // func (c *Client) Events(ctx context.Context, fn func(event.Event)) error
