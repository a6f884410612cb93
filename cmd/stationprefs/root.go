package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/CreativeUnicorns/stationprefs"
)

type rootOptions struct {
	configPath string
	user       string
	logLevel   string
	stderr     io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{stderr: os.Stderr}

	root := &cobra.Command{
		Use:          "stationprefs",
		Short:        "Manage radio station preferences",
		Long:         `Read and write station and per-user preferences, print the system report and convert schedule times.`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./stationprefs.yaml)")
	root.PersistentFlags().StringVar(&opts.user, "user", "", "identity for user-scoped preferences")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newSettingsCmd(),
		newListCmd(opts),
		newTitleCmd(opts),
		newSysinfoCmd(opts),
		newRemindCmd(opts),
		newImportStampCmd(opts),
		newTimeCmd(opts),
	)
	return root
}

// withApp opens the app for one command run and closes it afterwards. The
// identity from --user travels in the context.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) error {
	ctx := stationprefs.WithIdentity(cmd.Context(), opts.user)

	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Warn("Failed to close resources", "error", err)
		}
	}()
	return fn(ctx, a)
}
