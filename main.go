// /home/krylon/go/src/github.com/blicero/sitfit/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 07. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 13:34:52 krylon>

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blicero/sitfit/backend"
	"github.com/blicero/sitfit/common"
)

func main() {
	fmt.Printf("%s %s (built %s)\n",
		common.AppName,
		common.Version,
		common.BuildStamp)

	var (
		err                   error
		daemon                *backend.Daemon
		cfg                   *common.Config
		appDir, cfgPath, addr string
		initCfg               bool
	)

	flag.StringVar(
		&appDir,
		"appdir",
		common.BaseDir,
		"The directory where application-specific files live")

	flag.StringVar(
		&cfgPath,
		"config",
		"",
		"The configuration file (default: sitfit.yaml in the application directory)")

	flag.StringVar(
		&addr,
		"address",
		"",
		"Address to listen on, overrides the configuration file")

	flag.BoolVar(
		&initCfg,
		"init",
		false,
		"Write the default configuration file and exit")

	flag.Parse()

	if appDir != common.BaseDir {
		if err = common.SetBaseDir(appDir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot set application directory to %s: %s\n",
				appDir,
				err.Error())
			os.Exit(1)
		}
	} else if err = common.InitApp(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot initialize application directory %s: %s\n",
			appDir,
			err.Error())
		os.Exit(1)
	}

	if cfgPath == "" {
		cfgPath = common.ConfigPath
	}

	if initCfg {
		if err = common.WriteDefaultConfig(cfgPath); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot write configuration to %s: %s\n",
				cfgPath,
				err.Error())
			os.Exit(1)
		}

		fmt.Printf("Configuration written to %s\n", cfgPath)
		return
	}

	if cfg, err = common.LoadConfig(cfgPath); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot load configuration: %s\n",
			err.Error())
		os.Exit(1)
	} else if addr != "" {
		cfg.Listen = addr
	}

	if err = common.SetLogLevel(cfg.Log.Level); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Invalid log level: %s\n",
			err.Error())
		os.Exit(1)
	} else if daemon, err = backend.Summon(cfg); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to initialize backend: %s\n",
			err.Error())
		os.Exit(1)
	}

	var sigQ = make(chan os.Signal, 1)
	var ticker = time.NewTicker(time.Second * 2)

	signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	for daemon.IsAlive() {
		select {
		case sig := <-sigQ:
			fmt.Printf("Quitting on signal %s\n", sig)
			if err = daemon.Banish(); err != nil {
				fmt.Fprintf(
					os.Stderr,
					"Error shutting down backend: %s\n",
					err.Error())
				os.Exit(1)
			}
			os.Exit(0)
		case <-ticker.C:
			continue
		}
	}
}
