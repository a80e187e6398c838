// /home/krylon/go/src/github.com/blicero/sitfit/clients/sitfitctl/cli/timer.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 12:41:08 krylon>

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/blicero/sitfit/capability"
	"github.com/blicero/sitfit/clients/clientlib"
	"github.com/blicero/sitfit/objects"
	"github.com/blicero/sitfit/objects/kind"
	"github.com/spf13/cobra"
)

// AddOptions holds the flags of the add command.
type AddOptions struct {
	*RootOptions
	Kind     string
	Duration time.Duration
	Days     []string
	Sound    string
	Volume   int
	Vibrate  bool
	Text     string
}

var dayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// parseDays accepts weekday names (at least their first three letters)
// or numbers, 0 being Sunday.
func parseDays(names []string) (objects.Weekdays, error) {
	var days objects.Weekdays

	for _, s := range names {
		s = strings.ToLower(strings.TrimSpace(s))

		if n, err := strconv.Atoi(s); err == nil {
			if n < 0 || n > 6 {
				return days, fmt.Errorf("invalid weekday %d", n)
			}
			days[n] = true
			continue
		} else if len(s) < 3 {
			return days, fmt.Errorf("invalid weekday %q", s)
		}

		var d, ok = dayNames[s[:3]]
		if !ok {
			return days, fmt.Errorf("invalid weekday %q", s)
		}
		days[d] = true
	}

	return days, nil
} // func parseDays(names []string) (objects.Weekdays, error)

// settings turns the flags into Settings for a new reminder. Durations
// are rounded down to whole seconds.
func (o *AddOptions) settings() (objects.Settings, error) {
	var (
		err  error
		secs = int(o.Duration / time.Second)
		set  = objects.Settings{
			Hours:      secs / 3600,
			Minutes:    (secs % 3600) / 60,
			Seconds:    secs % 60,
			Sound:      o.Sound,
			Volume:     o.Volume,
			Vibrate:    o.Vibrate,
			CustomText: o.Text,
		}
	)

	if set.Kind, err = kind.Parse(o.Kind); err != nil {
		return set, err
	} else if set.SelectedDays, err = parseDays(o.Days); err != nil {
		return set, err
	}

	set.Repeat = len(o.Days) > 0

	return set, nil
} // func (o *AddOptions) settings() (objects.Settings, error)

func newAddCommand(root *RootOptions) *cobra.Command {
	var opts = &AddOptions{RootOptions: root}

	var cmd = &cobra.Command{
		Use:   "add",
		Short: "Create a new reminder",
		Long: `Create a new reminder.

Example:
  sitfitctl add --type water --duration 45m --days mon,wed,fri --vibrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err error
				id  string
				c   *clientlib.Client
				set objects.Settings
			)

			if set, err = opts.settings(); err != nil {
				return err
			} else if c, err = opts.client(); err != nil {
				return err
			} else if id, err = c.Create(&set); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Kind, "type", "t", kind.Posture.Name(), "reminder type")
	cmd.Flags().DurationVarP(&opts.Duration, "duration", "d", time.Minute*30, "time until the reminder goes off")
	cmd.Flags().StringSliceVar(&opts.Days, "days", nil, "weekdays to repeat on, e.g. mon,thu")
	cmd.Flags().StringVar(&opts.Sound, "sound", capability.ProfileBeep,
		"alarm sound ("+strings.Join(capability.Profiles(), "|")+")")
	cmd.Flags().IntVar(&opts.Volume, "volume", 50, "alarm volume, 0 to 100")
	cmd.Flags().BoolVar(&opts.Vibrate, "vibrate", false, "vibrate when the alarm goes off")
	cmd.Flags().StringVar(&opts.Text, "text", "", "message of a custom reminder")

	return cmd
} // func newAddCommand(root *RootOptions) *cobra.Command

func newQuickCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quick",
		Short: "Start a 30 minute posture reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err error
				id  string
				c   *clientlib.Client
			)

			if c, err = root.client(); err != nil {
				return err
			} else if id, err = c.QuickStart(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
} // func newQuickCommand(root *RootOptions) *cobra.Command

func printTimers(w io.Writer, timers []objects.Timer) error {
	var tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tTYPE\tREMAINING\tSTATUS\tPROGRESS\tDAYS")
	for _, t := range timers {
		var days = "-"
		if t.Repeat {
			days = t.SelectedDays.String()
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%3.0f%%\t%s\n",
			t.ID,
			t.Kind.Name(),
			t.Display(),
			t.Status,
			t.Progress()*100,
			days)
	}

	return tw.Flush()
} // func printTimers(w io.Writer, timers []objects.Timer) error

func newListCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all reminders",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				c      *clientlib.Client
				timers []objects.Timer
			)

			if c, err = root.client(); err != nil {
				return err
			} else if timers, err = c.Timers(); err != nil {
				return err
			} else if root.Format == FormatJSON {
				return printJSON(cmd.OutOrStdout(), timers)
			}

			return printTimers(cmd.OutOrStdout(), timers)
		},
	}
} // func newListCommand(root *RootOptions) *cobra.Command

func newTimerCommand(root *RootOptions, name, short string, op func(*clientlib.Client, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err error
				c   *clientlib.Client
			)

			if c, err = root.client(); err != nil {
				return err
			}

			return op(c, args[0])
		},
	}
} // func newTimerCommand(...) *cobra.Command

func newBatchCommand(root *RootOptions, name, short string, op func(*clientlib.Client) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err error
				msg string
				c   *clientlib.Client
			)

			if c, err = root.client(); err != nil {
				return err
			} else if msg, err = op(c); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
} // func newBatchCommand(...) *cobra.Command
