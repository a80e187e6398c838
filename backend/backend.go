// /home/krylon/go/src/github.com/blicero/sitfit/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 09:12:40 krylon>

// Package backend implements the ... backend of the application,
// the part that runs the timers and talks to the clients and dbus.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/blicero/sitfit/alarm"
	"github.com/blicero/sitfit/capability"
	"github.com/blicero/sitfit/clock"
	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/database"
	"github.com/blicero/sitfit/engine"
	"github.com/blicero/sitfit/event"
	"github.com/blicero/sitfit/logdomain"
	"github.com/blicero/sitfit/metrics"
	"github.com/blicero/sitfit/stats"
	"github.com/blicero/sitfit/storage"
	"github.com/blicero/sitfit/store"
	"github.com/gorilla/mux"
)

const (
	poolSize      = 2
	queueDepth    = 32
	eventBuffer   = 64
	shutdownDelay = time.Second * 3
)

// Daemon is the centerpiece of the backend, coordinating between the
// timers, the alarm, the storage and the clients.
type Daemon struct {
	log        *log.Logger
	cfg        *common.Config
	lock       sync.RWMutex
	active     bool
	clk        clock.Clock
	pool       *database.Pool
	redis      *storage.Redis
	storage    store.Storage
	store      *store.Store
	engine     *engine.Engine
	alarm      *alarm.Controller
	stats      *stats.Tracker
	hub        *event.Hub
	metrics    *metrics.Collector
	runner     *capability.Runner
	bus        *capability.DBus
	player     *capability.CommandPlayer
	web        http.Server
	router     *mux.Router
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	listenAddr string
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(cfg *common.Config) (*Daemon, error) {
	var (
		err error
		d   *Daemon
	)

	if d, err = create(cfg, clock.Real{}, nil, nil); err != nil {
		return nil, err
	}

	d.start()

	return d, nil
} // func Summon(cfg *common.Config) (*Daemon, error)

// create assembles a Daemon without starting any goroutines. If st is nil,
// the storage backend is opened as configured. If caps is nil, the
// capabilities of the host are used.
func create(cfg *common.Config, clk clock.Clock, st store.Storage, caps *alarm.Capabilities) (*Daemon, error) {
	var (
		err    error
		policy store.RestorePolicy
		d      = &Daemon{
			cfg:        cfg,
			clk:        clk,
			storage:    st,
			active:     true,
			hub:        event.NewHub(),
			metrics:    metrics.New(),
			router:     mux.NewRouter(),
			listenAddr: cfg.Listen,
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if policy, err = store.ParsePolicy(cfg.Restore.Policy); err != nil {
		d.log.Printf("[ERROR] %s\n", err.Error())
		return nil, err
	} else if d.runner, err = capability.NewRunner(queueDepth, d.metrics); err != nil {
		d.log.Printf("[ERROR] Cannot create capability runner: %s\n",
			err.Error())
		return nil, err
	}

	if d.storage == nil {
		if err = d.openStorage(); err != nil {
			d.runner.Close()
			return nil, err
		}
	}

	if caps == nil {
		caps = d.hostCapabilities()
	}

	if d.store, err = store.New(store.Options{
		Clock:   d.clk,
		Storage: d.storage,
		Sink:    d.hub,
		Policy:  policy,
		Metrics: d.metrics,
	}); err != nil {
		d.log.Printf("[ERROR] Cannot create timer store: %s\n",
			err.Error())
		d.closeResources()
		return nil, err
	} else if err = d.store.Load(); err != nil {
		d.log.Printf("[ERROR] Cannot load saved timers: %s\n",
			err.Error())
		d.closeResources()
		return nil, err
	} else if d.stats, err = stats.New(d.clk, d.store); err != nil {
		d.log.Printf("[ERROR] Cannot create statistics tracker: %s\n",
			err.Error())
		d.closeResources()
		return nil, err
	} else if d.alarm, err = alarm.New(alarm.Options{
		Clock:       d.clk,
		Store:       d.store,
		Recorder:    d.stats,
		Caps:        *caps,
		Runner:      d.runner,
		Sink:        d.hub,
		Metrics:     d.metrics,
		AutoDismiss: cfg.Alarm.AutoDismiss,
		Snooze:      cfg.Alarm.Snooze,
	}); err != nil {
		d.log.Printf("[ERROR] Cannot create alarm controller: %s\n",
			err.Error())
		d.closeResources()
		return nil, err
	} else if d.engine, err = engine.New(engine.Options{
		Clock:    d.clk,
		Store:    d.store,
		Alarm:    d.alarm,
		Recorder: d.stats,
		Metrics:  d.metrics,
	}); err != nil {
		d.log.Printf("[ERROR] Cannot create timer engine: %s\n",
			err.Error())
		d.closeResources()
		return nil, err
	}

	d.engine.Start()

	d.web.Addr = d.listenAddr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		d.closeResources()
		return nil, err
	}

	return d, nil
} // func create(...) (*Daemon, error)

func (d *Daemon) openStorage() error {
	var err error

	switch d.cfg.Storage.Backend {
	case common.BackendFile:
		var f *storage.File
		if f, err = storage.NewFile(d.cfg.StoragePath()); err != nil {
			d.log.Printf("[ERROR] Cannot open storage file %s: %s\n",
				d.cfg.StoragePath(),
				err.Error())
			return err
		}
		d.storage = f
	case common.BackendRedis:
		if d.redis, err = storage.NewRedisFromConfig(d.cfg.Storage.Redis); err != nil {
			d.log.Printf("[ERROR] Cannot connect to redis at %s: %s\n",
				d.cfg.Storage.Redis.Addr,
				err.Error())
			return err
		}
		d.storage = d.redis
	default:
		var bs *database.BlobStore
		if d.pool, err = database.NewPool(d.cfg.StoragePath(), poolSize); err != nil {
			d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
				err.Error())
			return err
		} else if bs, err = database.NewBlobStore(d.pool, common.BlobKey); err != nil {
			d.pool.Close()
			return err
		}
		d.storage = bs
	}

	d.log.Printf("[INFO] Timer state is kept in %s storage\n",
		d.cfg.Storage.Backend)

	return nil
} // func (d *Daemon) openStorage() error

// hostCapabilities looks for the sound player and the session bus. What
// cannot be found is left out, alarms are still shown to the clients.
func (d *Daemon) hostCapabilities() *alarm.Capabilities {
	var (
		err  error
		caps = &alarm.Capabilities{}
	)

	if d.player, err = capability.NewCommandPlayer(d.cfg.Sound.Player, d.cfg.Sound.Dir); err != nil {
		d.log.Printf("[INFO] Alarm sounds are not available: %s\n",
			err.Error())
	} else {
		caps.Sound = d.player
	}

	if d.bus, err = capability.NewDBus(); err != nil {
		d.log.Printf("[INFO] Cannot connect to DBus session bus, desktop notifications are not available: %s\n",
			err.Error())
		d.bus = nil
	} else {
		caps.Notifier = d.bus
		caps.Power = d.bus
	}

	return caps
} // func (d *Daemon) hostCapabilities() *alarm.Capabilities

func (d *Daemon) start() {
	var ctx context.Context

	ctx, d.cancel = context.WithCancel(context.Background())

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.engine.Run(ctx)
	}()

	if d.bus != nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := d.bus.ListenActions(ctx, d.alarm.HandleAction); err != nil {
				d.log.Printf("[ERROR] Cannot listen for notification actions: %s\n",
					err.Error())
			}
		}()
	}

	go d.serveHTTP()
} // func (d *Daemon) start()

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), shutdownDelay)
	)
	defer cancel()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()

	d.closeResources()

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

// closeResources releases everything create acquired.
func (d *Daemon) closeResources() {
	if d.alarm != nil {
		d.alarm.Close()
	}
	if d.runner != nil {
		d.runner.Close()
	}
	if d.player != nil {
		d.player.Stop() // nolint: errcheck
	}
	if d.bus != nil {
		d.bus.Release() // nolint: errcheck
		d.bus.Close()   // nolint: errcheck
	}
	if d.pool != nil {
		d.pool.Close()
	}
	if d.redis != nil {
		d.redis.Close() // nolint: errcheck
	}

	d.hub.Close()
} // func (d *Daemon) closeResources()
