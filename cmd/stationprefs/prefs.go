package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/CreativeUnicorns/stationprefs"
	"github.com/CreativeUnicorns/stationprefs/temporal"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var userScoped bool
	cmd := &cobra.Command{
		Use:   "get <setting|key>",
		Short: "Print a preference",
		Long:  `Print a named setting with its default applied, or the raw value of any key.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				var (
					value string
					err   error
				)
				if def, ok := stationprefs.LookupSetting(args[0]); ok {
					value, err = a.store.GetSetting(ctx, def)
				} else {
					value, err = a.store.Get(ctx, args[0], userScoped)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&userScoped, "user-scoped", false, "read the --user row of a raw key")
	return cmd
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	var userScoped bool
	cmd := &cobra.Command{
		Use:   "set <setting|key> <value>",
		Short: "Write a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				def, ok := stationprefs.LookupSetting(args[0])
				if !ok {
					return a.store.Set(ctx, args[0], args[1], userScoped)
				}
				if def.Key == stationprefs.SettingTimezone.Key && args[1] != "" {
					if _, err := temporal.LoadLocation(args[1]); err != nil {
						return err
					}
				}
				return a.store.SetSetting(ctx, def, args[1])
			})
		},
	}
	cmd.Flags().BoolVar(&userScoped, "user-scoped", false, "write a raw key for --user")
	return cmd
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "List the known settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKEY\tSCOPE\tDEFAULT")
			for _, def := range stationprefs.Settings() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Name, def.Key, def.Scope, def.Default)
			}
			return w.Flush()
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored preferences of one scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := stationprefs.ScopeSystem
			switch scope {
			case "system":
			case "user":
				sc = stationprefs.ScopeUser
			default:
				return fmt.Errorf("%w: scope must be system or user", stationprefs.ErrInvalidInput)
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				prefs, err := a.store.List(ctx, sc)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, p := range prefs {
					value := p.Value
					if def, ok := stationprefs.LookupSetting(p.Key); ok && def.Sensitive {
						value = "********"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", p.Key, value, p.UpdatedAt.Format(time.RFC3339))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "system", "system or user")
	return cmd
}

func newRemindCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remind-later",
		Short: "Postpone the registration reminder by a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if err := a.store.SetRemindMeDate(ctx, temporal.Now().Time()); err != nil {
					return err
				}
				epoch, err := a.store.GetRemindMeDate(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), temporal.ToLocalString(epoch))
				return nil
			})
		},
	}
}

func newImportStampCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import-stamp",
		Short: "Record that the media importer ran",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return a.store.SetImportTimestamp(ctx, time.Now())
			})
		},
	}
}
