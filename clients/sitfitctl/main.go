// /home/krylon/go/src/github.com/blicero/sitfit/clients/sitfitctl/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 12:03:55 krylon>

package main

import (
	"fmt"
	"os"

	"github.com/blicero/sitfit/clients/sitfitctl/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}
