// /home/krylon/go/src/github.com/blicero/sitfit/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 30. 06. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 18:25:03 krylon>

// Package common contains definitions used throughout the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/sitfit/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug indicates whether to emit additional log messages and perform
// additional sanity checks.
// Version is the version number to display.
// AppName is the name of the application.
// DefaultPort is the TCP port the backend listens on by default.
const (
	Debug       = true
	Version     = "0.1.0"
	AppName     = "SitFit"
	DefaultPort = 7203
	BlobKey     = "sitfit-data"
)

// Formats for time stamps, for logging and for parsing user input.
const (
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatDate      = "2006-01-02"
	TimestampFormatTime      = "15:04:05"
)

// BuildStamp is the time the binary was built.
var BuildStamp time.Time

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines minimum log levels per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(LogLevels))

// MinLogLevel is the default minimum level for new loggers.
var MinLogLevel logutils.LogLevel = "TRACE"

func init() {
	for _, id := range logdomain.AllDomains() {
		PackageLevels[id] = MinLogLevel
	}
} // func init()

// BaseDir is the folder where all application-specific files are stored.
// It defaults to $HOME/.sitfit.d
var BaseDir = filepath.Join(os.Getenv("HOME"), ".sitfit.d")

// Paths to the files and folders the application uses.
var (
	LogPath    = filepath.Join(BaseDir, "sitfit.log")
	DbPath     = filepath.Join(BaseDir, "sitfit.db")
	BlobPath   = filepath.Join(BaseDir, "sitfit-data.zst")
	ConfigPath = filepath.Join(BaseDir, "sitfit.yaml")
)

var (
	logLock    sync.Mutex
	logFile    *os.File
	logFilters []*logutils.LevelFilter
)

// SetBaseDir sets the application's base directory. This should only be done
// during initialization.
// Once the log file and the database are opened, this is useless at best and
// opens a world of confusion at worst, so this function should only be called
// at the very beginning of the program.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BASE_DIR to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, "sitfit.log")
	DbPath = filepath.Join(BaseDir, "sitfit.db")
	BlobPath = filepath.Join(BaseDir, "sitfit-data.zst")
	ConfigPath = filepath.Join(BaseDir, "sitfit.yaml")

	logLock.Lock()
	if logFile != nil {
		logFile.Close() // nolint: errcheck
		logFile = nil
	}
	logLock.Unlock()

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n", err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string)

// SetLogLevel adjusts the minimum level of every logger created so far
// and of all loggers created afterwards.
func SetLogLevel(lvl string) error {
	var level = logutils.LogLevel(lvl)

	if !validLevel(level) {
		return fmt.Errorf("Invalid log level %q", lvl)
	}

	logLock.Lock()
	defer logLock.Unlock()

	MinLogLevel = level
	for id := range PackageLevels {
		PackageLevels[id] = level
	}

	for _, f := range logFilters {
		f.SetMinLevel(level)
	}

	return nil
} // func SetLogLevel(lvl string) error

func validLevel(lvl logutils.LogLevel) bool {
	for _, l := range LogLevels {
		if l == lvl {
			return true
		}
	}

	return false
} // func validLevel(lvl logutils.LogLevel) bool

// GetLogger tries to create a named logger instance and return it.
// If the directory to hold the log file does not exist, try to create it.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logName = fmt.Sprintf("%s.%s ",
			AppName,
			dom)
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s", err.Error())
	}

	logLock.Lock()
	defer logLock.Unlock()

	if logFile == nil {
		if logFile, err = os.OpenFile(LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600); err != nil {
			msg := fmt.Sprintf("Error opening log file: %s\n", err.Error())
			fmt.Println(msg)
			logFile = nil
			return nil, fmt.Errorf("%s", msg)
		}
	}

	var (
		writer = io.MultiWriter(os.Stdout, logFile)
		lvl    = MinLogLevel
	)

	if l, ok := PackageLevels[dom]; ok {
		lvl = l
	}

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: lvl,
		Writer:   writer,
	}

	logFilters = append(logFilters, filter)

	var logger = log.New(filter, logName, log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(name string) (*log.Logger, error)

// InitApp performs some basic preparations for the application to run.
// Currently, this means creating the BaseDir folder.
func InitApp() error {
	var (
		err    error
		exists bool
	)

	if exists, err = krylib.Fexists(BaseDir); err != nil {
		return fmt.Errorf("Cannot check if %s exists: %w", BaseDir, err)
	} else if !exists {
		if err = os.MkdirAll(BaseDir, 0700); err != nil {
			msg := fmt.Sprintf("Error creating BASE_DIR %s: %s", BaseDir, err.Error())
			return fmt.Errorf("%s", msg)
		}
	}

	return nil
} // func InitApp() error

// GetUUID returns a randomized UUID
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
