// /home/krylon/go/src/github.com/blicero/sitfit/storage/file.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 01:22:47 krylon>

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/logdomain"
	"github.com/klauspost/compress/zstd"
)

// File saves the state zstd-compressed to a file. Saving writes a
// temporary file next to the target and renames it, so a crash leaves
// either the old or the new state behind.
type File struct {
	log     *log.Logger
	lock    sync.Mutex
	path    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewFile creates a File storage at path.
func NewFile(path string) (*File, error) {
	var (
		err error
		f   = &File{path: path}
	)

	if f.log, err = common.GetLogger(logdomain.Storage); err != nil {
		return nil, err
	} else if f.encoder, err = zstd.NewWriter(nil); err != nil {
		return nil, fmt.Errorf("Failed to create zstd encoder: %w", err)
	} else if f.decoder, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0)); err != nil {
		return nil, fmt.Errorf("Failed to create zstd decoder: %w", err)
	}

	return f, nil
} // func NewFile(path string) (*File, error)

// Path returns the path of the file.
func (f *File) Path() string {
	return f.path
} // func (f *File) Path() string

// Load reads and decompresses the file. A missing file yields no data.
func (f *File) Load() ([]byte, error) {
	var (
		err       error
		raw, data []byte
	)

	f.lock.Lock()
	defer f.lock.Unlock()

	if raw, err = os.ReadFile(f.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		f.log.Printf("[ERROR] Cannot read %s: %s\n",
			f.path,
			err.Error())
		return nil, err
	} else if len(raw) == 0 {
		return nil, nil
	} else if data, err = f.decoder.DecodeAll(raw, nil); err != nil {
		f.log.Printf("[ERROR] Cannot decompress %s: %s\n",
			f.path,
			err.Error())
		// Garbage is handed on, the Store treats it as corrupt data.
		return raw, nil
	}

	return data, nil
} // func (f *File) Load() ([]byte, error)

// Save compresses data and atomically replaces the file.
func (f *File) Save(data []byte) error {
	var (
		err error
		fh  *os.File
		tmp string
		buf = f.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
	)

	f.lock.Lock()
	defer f.lock.Unlock()

	if fh, err = os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp*"); err != nil {
		f.log.Printf("[ERROR] Cannot create temporary file for %s: %s\n",
			f.path,
			err.Error())
		return err
	}

	tmp = fh.Name()

	if _, err = fh.Write(buf); err != nil {
		fh.Close()     // nolint: errcheck
		os.Remove(tmp) // nolint: errcheck
		return fmt.Errorf("Cannot write %s: %w", tmp, err)
	} else if err = fh.Sync(); err != nil {
		fh.Close()     // nolint: errcheck
		os.Remove(tmp) // nolint: errcheck
		return fmt.Errorf("Cannot sync %s: %w", tmp, err)
	} else if err = fh.Close(); err != nil {
		os.Remove(tmp) // nolint: errcheck
		return fmt.Errorf("Cannot close %s: %w", tmp, err)
	} else if err = os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp) // nolint: errcheck
		return fmt.Errorf("Cannot rename %s to %s: %w", tmp, f.path, err)
	}

	return nil
} // func (f *File) Save(data []byte) error
