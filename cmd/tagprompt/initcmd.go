package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/data"
)

// sampleData is written by `init` as a starting point to edit.
var sampleData = data.File{
	Birthdays: [][]string{
		{"1917-12-06", "Finland"},
		{"1955-10-28", "Bill Gates"},
		{"1956-01-31", "Guido van Rossum"},
		{"1969-12-28", "Linus Torvalds"},
		{"10-21", "Käärijä"},
	},
	TimeTags: [][]string{
		{"00:00", "02:00", "fancy eye bags?"},
		{"02:00", "06:00", "zombie-in-waiting"},
		{"06:00", "08:30", "coffee time"},
		{"10:50", "11:50", "lunch"},
		{"22:00", "00:00", "getting late"},
	},
}

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := dataFile
			if path == "" {
				settings, err := config.LoadSettings(cfgFile)
				if err != nil {
					return fmt.Errorf("%s: %w", config.ErrSettingsLoad, err)
				}
				path = settings.DataFile
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New(config.ErrDataFileExists)
				}
			}

			payload, err := sampleData.Encode()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
				return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
			}
			if err := os.WriteFile(path, payload, config.FilePermShared); err != nil {
				return fmt.Errorf("%s: %w", config.ErrDataFileWrite, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), config.MsgSampleWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, config.FlagForce, false, config.FlagDescForce)
	return cmd
}
