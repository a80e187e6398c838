// /home/krylon/go/src/github.com/blicero/sitfit/clients/sitfitctl/cli/alarm.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 12:58:44 krylon>

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blicero/sitfit/clients/clientlib"
	"github.com/blicero/sitfit/common"
	"github.com/blicero/sitfit/event"
	"github.com/blicero/sitfit/objects"
	"github.com/spf13/cobra"
)

func newAlarmCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alarm",
		Short: "Show the active alarm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err error
				c   *clientlib.Client
				al  *objects.Alarm
				out = cmd.OutOrStdout()
			)

			if c, err = root.client(); err != nil {
				return err
			} else if al, err = c.CurrentAlarm(); err != nil {
				return err
			} else if root.Format == FormatJSON {
				return printJSON(out, al)
			} else if al == nil {
				fmt.Fprintln(out, "No alarm")
				return nil
			}

			fmt.Fprintf(out, "%s\n%s\n\nRinging for %s, %d more waiting\n",
				al.Title,
				al.Body,
				al.ElapsedDisplay(),
				al.Queued)
			return nil
		},
	}
} // func newAlarmCommand(root *RootOptions) *cobra.Command

func newStatsCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err error
				c   *clientlib.Client
				st  objects.Statistics
				out = cmd.OutOrStdout()
			)

			if c, err = root.client(); err != nil {
				return err
			} else if st, err = c.Statistics(); err != nil {
				return err
			} else if root.Format == FormatJSON {
				return printJSON(out, &st)
			}

			fmt.Fprintf(out, "Reminders today: %d\nTriggered:       %d\nCompleted:       %d\nStreak:          %d days\n",
				st.TodayReminders,
				st.TodayTriggered,
				st.TodayCompleted,
				st.Streak)
			return nil
		},
	}
} // func newStatsCommand(root *RootOptions) *cobra.Command

func newWatchCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print events as they happen until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err         error
				c           *clientlib.Client
				out         = cmd.OutOrStdout()
				ctx, cancel = signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			)

			defer cancel()

			if c, err = root.client(); err != nil {
				return err
			}

			return c.Events(ctx, func(ev event.Event) {
				if root.Format == FormatJSON {
					printJSON(out, &ev) // nolint: errcheck
					return
				}

				fmt.Fprintf(out, "%s %-18s %s %s\n",
					ev.At.Format(common.TimestampFormat),
					ev.Type,
					ev.TimerID,
					ev.Title)
			})
		},
	}
} // func newWatchCommand(root *RootOptions) *cobra.Command
