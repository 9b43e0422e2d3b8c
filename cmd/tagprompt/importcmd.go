package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/data"
	"github.com/tartampluch/tagprompt/internal/engine"
)

func newImportCommand() *cobra.Command {
	var (
		user       string
		useKeyring bool
	)

	cmd := &cobra.Command{
		Use:   "import <path|url>",
		Short: "Import birthdays from a vCard file or URL",
		Long: "Reads vCard contacts from a local file or an http(s) URL and merges\n" +
			"every contact with a BDAY field into the data file. Existing birthdays\n" +
			"and time tags are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			a, err := loadApp()
			if err != nil {
				return err
			}

			slog.Info(config.MsgImportStarted,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyURL, source,
			)

			result, err := importSource(cmd, source, user, useKeyring)
			if err != nil {
				return err
			}

			file := data.File{
				Birthdays: append(existingBirthdayRecords(a), result.Records...),
				TimeTags:  existingTimeTagRecords(a),
			}
			payload, err := file.Encode()
			if err != nil {
				return err
			}
			if err := os.WriteFile(a.Settings.DataFile, payload, config.FilePermShared); err != nil {
				return fmt.Errorf("%s: %w", config.ErrDataFileWrite, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), config.MsgImported,
				len(result.Records), a.Settings.DataFile, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)
	cmd.Flags().BoolVar(&useKeyring, config.FlagKeyring, false, config.FlagDescKeyring)
	return cmd
}

// importSource runs the import against a local file, or over HTTP when the
// argument looks like an http(s) URL.
func importSource(cmd *cobra.Command, source, user string, useKeyring bool) (*engine.ImportResult, error) {
	if !strings.HasPrefix(source, config.SchemeHTTP+"://") &&
		!strings.HasPrefix(source, config.SchemeHTTPS+"://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return engine.ImportVCards(cmd.Context(), f)
	}

	pass := ""
	if useKeyring {
		secret, err := keyring.Get(config.KeyringService, user)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrKeyringRead, err)
		}
		pass = secret
	}
	return engine.ImportRemote(cmd.Context(), engine.NewHTTPFetcher(), source, user, pass)
}

// existingBirthdayRecords converts the loaded raw birthday records back to
// their string form. Records that failed validation are dropped here; their
// diagnostics were already shown and rewriting them would re-break the file.
func existingBirthdayRecords(a *app) [][]string {
	out := make([][]string, 0, len(a.Notifier.Birthdays))
	for _, b := range a.Notifier.Birthdays {
		out = append(out, []string{b.RawDate, b.Name})
	}
	return out
}

// existingTimeTagRecords converts the loaded time tags back to string form.
func existingTimeTagRecords(a *app) [][]string {
	out := make([][]string, 0, len(a.TimeTags))
	for _, t := range a.TimeTags {
		out = append(out, []string{t.RawStart, t.RawStop, t.Text})
	}
	return out
}
