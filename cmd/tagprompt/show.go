package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/engine"
)

// Listing styles. Rendering through lipgloss degrades to plain text on dumb
// terminals and pipes, so these are safe to apply unconditionally; --no-color
// swaps in blank styles.
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	noticeStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func styled(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

func newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the defined time tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			printDiagnostics(cmd, a)

			lines := engine.ListTags(a.TimeTags, a.Settings.TagEndPrompt)
			if len(lines) == 0 {
				fmt.Fprintln(out, styled(noticeStyle, config.MsgNoTimeTags))
				return nil
			}
			fmt.Fprintln(out, styled(headingStyle, "Time tags"))
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newBirthdaysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "birthdays",
		Short: "List the known birthdays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			printDiagnostics(cmd, a)

			if len(a.Notifier.Birthdays) == 0 {
				fmt.Fprintln(out, styled(noticeStyle, config.MsgNoBirthdays))
				return nil
			}
			fmt.Fprintln(out, styled(headingStyle, "Birthdays"))
			for _, line := range engine.ListBirthdays(a.Notifier.Birthdays) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

// printDiagnostics writes any data file findings to stderr so listings stay
// pipeable.
func printDiagnostics(cmd *cobra.Command, a *app) {
	if len(a.Messages) == 0 {
		return
	}
	formatted := engine.FormatMessages(a.Messages, a.Settings.LineWidth)
	fmt.Fprintln(cmd.ErrOrStderr(), styled(errorStyle, formatted))
}
