package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds the user-tunable behavior of the prompt. Values come from
// the YAML settings file, overridden by TAGPROMPT_* environment variables.
type Settings struct {
	// DefaultPrompt is shown when no time tag is active.
	DefaultPrompt string

	// TagEndPrompt is appended after an active time tag's text.
	TagEndPrompt string

	// SecondaryPrompt is the continuation prompt text, right-aligned to the
	// width of the primary prompt.
	SecondaryPrompt string

	// LineWidth is the wrap width for reminders and diagnostics.
	LineWidth int

	// NotifyDays is how many days ahead a birthday is announced.
	NotifyDays int

	// DataFile is the path of the JSON data file.
	DataFile string

	// FeedPort is the port used by `export --serve`.
	FeedPort string
}

// LoadSettings reads the settings file (if any) and applies defaults and
// environment overrides. A missing settings file is not an error; an invalid
// one is.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()
	v.SetDefault(SettingDefaultPrompt, DefaultPrompt)
	v.SetDefault(SettingTagEndPrompt, DefaultTagEndPrompt)
	v.SetDefault(SettingSecondaryPrompt, DefaultSecondaryPrompt)
	v.SetDefault(SettingLineWidth, DefaultLineWidth)
	v.SetDefault(SettingNotifyDays, DefaultNotifyDays)
	v.SetDefault(SettingDataFile, "")
	v.SetDefault(SettingPort, DefaultPort)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(SettingsFileName)
		v.SetConfigType(SettingsFileType)
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, BinaryName))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// No file in the search path means defaults apply. An explicitly
		// named file must exist and parse.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
		}
	}

	s := Settings{
		DefaultPrompt:   v.GetString(SettingDefaultPrompt),
		TagEndPrompt:    v.GetString(SettingTagEndPrompt),
		SecondaryPrompt: v.GetString(SettingSecondaryPrompt),
		LineWidth:       v.GetInt(SettingLineWidth),
		NotifyDays:      v.GetInt(SettingNotifyDays),
		DataFile:        v.GetString(SettingDataFile),
		FeedPort:        v.GetString(SettingPort),
	}
	if s.DataFile == "" {
		s.DataFile = DefaultDataFile()
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects values the rendering pipeline cannot work with.
func (s Settings) Validate() error {
	if s.LineWidth < MinLineWidth {
		return fmt.Errorf(ErrLineWidthTooSmall, s.LineWidth)
	}
	if s.NotifyDays < 0 {
		return fmt.Errorf(ErrNotifyDaysNeg, s.NotifyDays)
	}
	return nil
}

// DefaultDataFile returns the standard location of the JSON data file,
// falling back to the working directory when the config dir is unknown.
func DefaultDataFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DataFileName
	}
	return filepath.Join(dir, BinaryName, DataFileName)
}
