package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartampluch/tagprompt/internal/config"
)

func newTodayCommand() *cobra.Command {
	var dateArg string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the birthday reminder block",
		Long: "Prints the birthday reminder block unconditionally, ignoring the\n" +
			"once-per-day suppression. With --date the block is rendered as if\n" +
			"today were that date.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now()
			if dateArg != "" {
				parsed, err := time.Parse(config.DateFormatISO, dateArg)
				if err != nil {
					return fmt.Errorf("%s: %w", config.ErrDateArgParse, err)
				}
				today = parsed
			}

			a, err := loadApp()
			if err != nil {
				return err
			}

			printDiagnostics(cmd, a)
			if block := a.Notifier.Render(today); block != "" {
				fmt.Fprintln(cmd.OutOrStdout(), block)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateArg, config.FlagDate, "", config.FlagDescDate)
	return cmd
}
