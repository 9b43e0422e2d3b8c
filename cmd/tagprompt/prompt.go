package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/engine"
)

func newPromptCommand() *cobra.Command {
	var (
		secondary bool
		nowArg    string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the shell prompt for the current time",
		Long: "Prints the primary prompt prefix for the current time of day, without a\n" +
			"trailing newline. The first invocation of a calendar day is preceded by\n" +
			"the birthday reminder block and any data file diagnostics.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := resolveNow(nowArg)
			if err != nil {
				return err
			}

			a, err := loadApp()
			if err != nil {
				return err
			}

			if secondary {
				sp := engine.SecondaryPrompt{
					Primary: a.primaryPrompt(),
					Text:    a.Settings.SecondaryPrompt,
				}
				fmt.Fprint(cmd.OutOrStdout(), sp.Render(now))
				return nil
			}

			if block := dailyBlock(a, now); block != "" {
				fmt.Fprintln(cmd.OutOrStdout(), block)
			}
			fmt.Fprint(cmd.OutOrStdout(), a.primaryPrompt().Render(now))
			return nil
		},
	}

	cmd.Flags().BoolVar(&secondary, config.FlagSecondary, false, config.FlagDescSecondary)
	cmd.Flags().StringVar(&nowArg, config.FlagNow, "", config.FlagDescNow)
	return cmd
}

// resolveNow parses the --now override, defaulting to the wall clock.
func resolveNow(nowArg string) (time.Time, error) {
	if nowArg == "" {
		return engine.RealClock{}.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, nowArg)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrNowArgParse, err)
	}
	return t, nil
}

// dailyBlock returns the reminder block plus diagnostics if they have not
// been shown yet today, and records the date so the next invocation stays
// quiet. Diagnostics repeat with the block each day until the file is fixed.
func dailyBlock(a *app, now time.Time) string {
	today := now.Format(config.DateFormatISO)
	if lastShownDate() == today {
		slog.Debug(config.MsgDailySkipped,
			config.LogKeyComponent, config.CompPrompt,
		)
		return ""
	}

	var parts []string
	if len(a.Messages) > 0 {
		parts = append(parts, engine.FormatMessages(a.Messages, a.Settings.LineWidth))
	}
	if block := a.Notifier.Render(now); block != "" {
		parts = append(parts, block)
	}

	markShown(today)
	slog.Info(config.MsgDailyShown,
		config.LogKeyComponent, config.CompPrompt,
		config.LogKeyMessages, len(a.Messages),
	)
	return strings.Join(parts, "\n")
}

// lastShownDate reads the date of the last rendered reminder block. Any read
// problem counts as "never shown"; the worst case is one extra reminder.
func lastShownDate() string {
	path, err := stateFilePath()
	if err != nil {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug(config.MsgStateIgnored,
				config.LogKeyComponent, config.CompPrompt,
				config.LogKeyError, err,
			)
		}
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// markShown writes today's date to the state file, best effort.
func markShown(date string) {
	path, err := stateFilePath()
	if err != nil {
		return
	}
	if err := os.WriteFile(path, []byte(date+"\n"), config.FilePermUserRW); err != nil {
		slog.Warn(config.MsgStateIgnored,
			config.LogKeyComponent, config.CompPrompt,
			config.LogKeyError, err,
		)
	}
}

func stateFilePath() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.StateFileName), nil
}
