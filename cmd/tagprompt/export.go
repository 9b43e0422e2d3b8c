package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/engine"
	"github.com/tartampluch/tagprompt/internal/feed"
)

func newExportCommand() *cobra.Command {
	var (
		outFile  string
		reminder string
		serve    bool
		port     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export birthdays as an iCalendar feed",
		Long: "Generates an iCalendar feed with one all-day event per birthday for\n" +
			"last year, this year and next year. The feed is written to stdout, to\n" +
			"a file with --out, or served over HTTP with --serve.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			printDiagnostics(cmd, a)

			exporter := &engine.Exporter{Clock: engine.RealClock{}}
			payload, _, err := exporter.Calendar(a.Notifier.Birthdays, reminder)
			if err != nil {
				return err
			}

			if serve {
				if port == "" {
					port = a.Settings.FeedPort
				}
				server := feed.NewServer(port)
				server.Update(payload)
				return server.Start(cmd.Context())
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, payload, config.FilePermShared); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), config.MsgExportWritten, outFile)
				return nil
			}

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}

	cmd.Flags().StringVar(&outFile, config.FlagOut, "", config.FlagDescOut)
	cmd.Flags().StringVar(&reminder, config.FlagReminder, "", config.FlagDescReminder)
	cmd.Flags().BoolVar(&serve, config.FlagServe, false, config.FlagDescServe)
	cmd.Flags().StringVar(&port, config.FlagPort, "", config.FlagDescPort)
	return cmd
}
