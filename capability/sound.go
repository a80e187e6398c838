// /home/krylon/go/src/github.com/blicero/sitfit/capability/sound.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 22:20:41 krylon>

package capability

import (
	"context"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
)

// Sound files from the freedesktop sound theme, one per profile.
var soundFiles = map[string]string{
	ProfileBeep:   "dialog-warning.oga",
	ProfileChime:  "complete.oga",
	ProfileBell:   "bell.oga",
	ProfileNature: "message-new-instant.oga",
	ProfileGentle: "message.oga",
}

// CommandPlayer plays sounds by running an external player (paplay by
// default) over and over until it is stopped. The player must understand
// paplay's --volume option.
type CommandPlayer struct {
	log    *log.Logger
	player string
	dir    string
	lock   sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCommandPlayer creates a CommandPlayer. If the player cannot be found,
// the returned CommandPlayer reports ErrUnavailable on every Play.
func NewCommandPlayer(player, dir string) (*CommandPlayer, error) {
	var (
		err error
		p   = &CommandPlayer{dir: dir}
	)

	if p.log, err = common.GetLogger(logdomain.Capability); err != nil {
		return nil, err
	}

	if p.player, err = exec.LookPath(player); err != nil {
		p.log.Printf("[INFO] Sound player %q was not found, alarms will be silent: %s\n",
			player,
			err.Error())
		p.player = ""
	}

	return p, nil
} // func NewCommandPlayer(player, dir string) (*CommandPlayer, error)

// SoundFile returns the path of the file played for the given profile.
func (p *CommandPlayer) SoundFile(profile string) string {
	return filepath.Join(p.dir, soundFiles[ResolveProfile(profile)])
} // func (p *CommandPlayer) SoundFile(profile string) string

// Play starts looping the sound for profile, replacing any sound that is
// already playing.
func (p *CommandPlayer) Play(profile string, volume int) error {
	if p.player == "" {
		return ErrUnavailable
	}

	p.stop()

	if volume < 0 {
		volume = 0
	} else if volume > 100 {
		volume = 100
	}

	var (
		ctx, cancel = context.WithCancel(context.Background())
		done        = make(chan struct{})
		file        = p.SoundFile(profile)
		vol         = "--volume=" + strconv.Itoa(volume*65536/100)
	)

	p.lock.Lock()
	p.cancel = cancel
	p.done = done
	p.lock.Unlock()

	go p.loop(ctx, done, file, vol)

	return nil
} // func (p *CommandPlayer) Play(profile string, volume int) error

func (p *CommandPlayer) loop(ctx context.Context, done chan struct{}, file, vol string) {
	defer close(done)

	for ctx.Err() == nil {
		var (
			err error
			cmd = exec.CommandContext(ctx, p.player, vol, file)
		)

		if err = cmd.Run(); err != nil && ctx.Err() == nil {
			p.log.Printf("[ERROR] Failed to play %s with %s: %s\n",
				file,
				p.player,
				err.Error())
			return
		}
	}
} // func (p *CommandPlayer) loop(...)

// Stop ends the sound that is playing, if any.
func (p *CommandPlayer) Stop() error {
	if p.player == "" {
		return ErrUnavailable
	}

	p.stop()
	return nil
} // func (p *CommandPlayer) Stop() error

func (p *CommandPlayer) stop() {
	p.lock.Lock()
	var (
		cancel = p.cancel
		done   = p.done
	)
	p.cancel = nil
	p.done = nil
	p.lock.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
} // func (p *CommandPlayer) stop()
