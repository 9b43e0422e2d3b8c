package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/data"
	"github.com/tartampluch/tagprompt/internal/engine"
)

// Persistent flag values shared by all subcommands.
var (
	cfgFile   string
	dataFile  string
	debugMode bool
	noColor   bool
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.BinaryName,
		Short:         "Time-of-day shell prompts and birthday reminders",
		Long:          config.AppName + " renders shell prompt prefixes that follow the time of day\nand prints a once-daily birthday reminder, both driven by a JSON data file.",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debugMode)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf(config.MsgVersionTemplate,
		config.BinaryName, config.Version, runtime.GOOS, runtime.GOARCH))

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, config.FlagConfig, "", config.FlagDescConfig)
	pf.StringVar(&dataFile, config.FlagData, "", config.FlagDescData)
	pf.BoolVar(&debugMode, config.FlagDebug, false, config.FlagDescDebug)
	pf.BoolVar(&noColor, config.FlagNoColor, false, config.FlagDescNoColor)

	cmd.AddCommand(
		newPromptCommand(),
		newTagsCommand(),
		newBirthdaysCommand(),
		newTodayCommand(),
		newExportCommand(),
		newImportCommand(),
		newInitCommand(),
	)
	return cmd
}

// app bundles everything a subcommand needs: the effective settings, the
// constructed domain values and every diagnostic collected on the way.
// Construction never fails outright; a broken data file degrades to default
// prompts plus diagnostics, exactly like an empty one.
type app struct {
	Settings config.Settings
	TimeTags []data.TimeTag
	Notifier *engine.Notifier
	Messages []string
}

// loadApp reads settings and the data file and builds the domain values.
// Only setting errors abort: a prompt that silently shrank below the minimum
// width is worse than an error, while data file problems are reported through
// the diagnostics channel the reminder already has.
func loadApp() (*app, error) {
	settings, err := config.LoadSettings(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSettingsLoad, err)
	}
	if dataFile != "" {
		settings.DataFile = dataFile
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	a := &app{Settings: settings}

	raw, err := os.ReadFile(settings.DataFile)
	if err != nil {
		slog.Warn(config.MsgDataRejected,
			config.LogKeyComponent, config.CompData,
			config.LogKeyPath, settings.DataFile,
			config.LogKeyError, err,
		)
		a.Messages = append(a.Messages, fmt.Sprintf("%s: %v", config.ErrDataFileRead, err))
		a.Notifier = engine.NewNotifier(nil, settings.NotifyDays, settings.LineWidth)
		a.Notifier.Messages = a.Messages
		return a, nil
	}

	doc, err := data.Load(raw, settings.DataFile)
	if err != nil {
		if group, ok := err.(*data.CorruptFileGroup); ok {
			a.Messages = append(a.Messages, group.Messages()...)
		} else {
			a.Messages = append(a.Messages, err.Error())
		}
		a.Notifier = engine.NewNotifier(nil, settings.NotifyDays, settings.LineWidth)
		a.Notifier.Messages = a.Messages
		return a, nil
	}

	// Birthday findings first, then time tag findings, matching the field
	// order in the data file.
	a.Notifier = engine.NewNotifier(doc, settings.NotifyDays, settings.LineWidth)
	a.Messages = append(a.Messages, a.Notifier.Messages...)

	tags, err := doc.ConstructTimeTags()
	a.TimeTags = tags
	if batch, ok := data.AsBatch(err); ok {
		a.Messages = append(a.Messages, batch.Messages()...)
	}

	slog.Info(config.MsgDataLoaded,
		config.LogKeyComponent, config.CompData,
		config.LogKeyPath, settings.DataFile,
		config.LogKeyTags, len(tags),
		config.LogKeyBirthdays, len(a.Notifier.Birthdays),
		config.LogKeyMessages, len(a.Messages),
	)
	return a, nil
}

// primaryPrompt assembles the configured primary prompt renderer.
func (a *app) primaryPrompt() engine.PrimaryPrompt {
	return engine.PrimaryPrompt{
		Tags:    a.TimeTags,
		Default: a.Settings.DefaultPrompt,
		TagEnd:  a.Settings.TagEndPrompt,
	}
}
