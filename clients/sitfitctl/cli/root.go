// /home/krylon/go/src/github.com/blicero/sitfit/clients/sitfitctl/cli/root.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 12:17:30 krylon>

// Package cli implements the commands of sitfitctl, the command line
// client of the SitFit backend.
package cli

import (
	"fmt"
	"io"

	"github.com/blicero/sitfit/clients/clientlib"
	"github.com/blicero/sitfit/common"
	"github.com/pquerna/ffjson/ffjson"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RootOptions holds the flags shared by all commands.
type RootOptions struct {
	Server  string
	Format  string
	Verbose bool
}

// NewRootCommand creates the sitfitctl command tree.
func NewRootCommand() *cobra.Command {
	var opts = &RootOptions{}

	var cmd = &cobra.Command{
		Use:   "sitfitctl",
		Short: "Control the SitFit break reminder",
		Long: fmt.Sprintf(`Control the %s break reminder.

sitfitctl talks to a running backend: it creates and manages reminders,
dismisses or snoozes alarms and shows today's statistics.`,
			common.AppName),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Format {
			case FormatText, FormatJSON:
			default:
				return fmt.Errorf("invalid format %q: must be %s or %s",
					opts.Format,
					FormatText,
					FormatJSON)
			}

			if !opts.Verbose {
				return common.SetLogLevel("ERROR")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Server, "server", "s",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"address of the backend")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests")

	cmd.AddCommand(
		newAddCommand(opts),
		newQuickCommand(opts),
		newListCommand(opts),
		newTimerCommand(opts, "pause", "Pause a running reminder", (*clientlib.Client).Pause),
		newTimerCommand(opts, "resume", "Resume a paused reminder", (*clientlib.Client).Resume),
		newTimerCommand(opts, "stop", "Remove a reminder", (*clientlib.Client).Stop),
		newBatchCommand(opts, "pause-all", "Pause all running reminders", (*clientlib.Client).PauseAll),
		newBatchCommand(opts, "resume-all", "Resume all paused reminders", (*clientlib.Client).ResumeAll),
		newBatchCommand(opts, "stop-all", "Remove all reminders", (*clientlib.Client).StopAll),
		newAlarmCommand(opts),
		newBatchCommand(opts, "dismiss", "Dismiss the active alarm", (*clientlib.Client).Dismiss),
		newBatchCommand(opts, "snooze", "Snooze the active alarm", (*clientlib.Client).Snooze),
		newStatsCommand(opts),
		newWatchCommand(opts),
	)

	return cmd
} // func NewRootCommand() *cobra.Command

func (o *RootOptions) client() (*clientlib.Client, error) {
	return clientlib.NewClient(o.Server)
} // func (o *RootOptions) client() (*clientlib.Client, error)

// printJSON writes v to w, followed by a newline.
func printJSON(w io.Writer, v any) error {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(v); err != nil {
		return err
	}

	defer ffjson.Pool(buf)

	_, err = fmt.Fprintf(w, "%s\n", buf)
	return err
} // func printJSON(w io.Writer, v any) error
