package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CreativeUnicorns/stationprefs/temporal"
)

func newTimeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Schedule time helpers in the station timezone",
	}

	// run opens the app only to apply the station timezone.
	run := func(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(context.Context, *app) error {
				return fn(cmd, args)
			})
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "now",
			Short: "Print local and UTC time, the UTC offset and seconds to midnight",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				m := temporal.Now()
				off := m.UTCOffset()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "epoch:     %d\n", m.Unix())
				fmt.Fprintf(out, "local:     %s (%s)\n", m, temporal.DefaultLocation())
				fmt.Fprintf(out, "utc:       %s\n", m.UTCString())
				fmt.Fprintf(out, "offset:    %+03d:%02d\n", temporal.OffsetHours(off), abs(temporal.OffsetMinutes(off)))
				fmt.Fprintf(out, "day end:   %s\n", m.DayEnd().Format(temporal.DateTimeLayout))
				fmt.Fprintf(out, "until end: %ds\n", m.SecondsUntilMidnight())
				return nil
			}),
		},
		newConvertCmd(run),
		&cobra.Command{
			Use:   "duration <milliseconds>",
			Short: "Format a track length in milliseconds as HH:MM:SS.m",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				ms, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid milliseconds %q: %w", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), temporal.DurationFromMillis(ms))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "seconds <HH:MM:SS[.mmm]>",
			Short: "Convert a track length to seconds",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				secs, err := temporal.ParseDurationToSeconds(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(secs, 'f', -1, 64))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "diff <from> <to>",
			Short: "Print the seconds between two dates",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				d, err := temporal.DiffSeconds(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), d)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "strip <HH:MM:SS>",
			Short: "Drop the seconds from a clock time",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), temporal.StripSeconds(args[0]))
				return nil
			}),
		},
	)
	return cmd
}

func newConvertCmd(run func(func(*cobra.Command, []string) error) func(*cobra.Command, []string) error) *cobra.Command {
	var from, to, layout string
	cmd := &cobra.Command{
		Use:   "convert <datetime>",
		Short: "Convert a date between UTC and a timezone",
		Long: `With --from the date is read in that zone and printed in UTC.
With --to the date is read as UTC and printed in that zone.
With neither the date is read as UTC and printed in the station timezone.`,
		Args: cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			if from != "" && to != "" {
				return fmt.Errorf("use only one of --from and --to")
			}
			if layout == "" {
				layout = temporal.DateTimeLayout
			}

			var (
				s   string
				err error
			)
			switch {
			case from != "":
				t, cerr := temporal.ConvertToUTCDateTime(args[0], from)
				s, err = t.Format(layout), cerr
			case to != "":
				t, cerr := temporal.ConvertToSpecificTimezoneDateTime(args[0], to)
				s, err = t.Format(layout), cerr
			default:
				s, err = temporal.ConvertToLocalDateTimeString(args[0], layout)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(s))
			return nil
		}),
	}
	cmd.Flags().StringVar(&from, "from", "", "zone the input is in")
	cmd.Flags().StringVar(&to, "to", "", "zone to print the UTC input in")
	cmd.Flags().StringVar(&layout, "layout", "", "Go time layout for the output")
	return cmd
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
