package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newTitleCmd(opts *rootOptions) *cobra.Command {
	title := &cobra.Command{
		Use:   "title",
		Short: "Print the stream title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				t, err := a.store.NewTitleSession("").GetCachedTitle(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}

	title.AddCommand(&cobra.Command{
		Use:   "set <station name>",
		Short: "Rename the station and refresh the title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				session := a.store.NewTitleSession("")
				if err := session.SetCachedTitle(ctx, args[0]); err != nil {
					return err
				}
				t, err := session.GetCachedTitle(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			})
		},
	})
	return title
}

func newSysinfoCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Print the system information report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				info, err := a.store.BuildSystemInfo(ctx, asJSON)
				if err != nil {
					return err
				}
				if !asJSON {
					fmt.Fprint(cmd.OutOrStdout(), info.String())
					return nil
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "structured output including PROMOTE and LOGOIMG")
	return cmd
}
