package engine

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/data"
)

// ResolveActiveTag returns the text of the time tag containing now, if any.
// Windows are half-open: the start minute is in, the stop minute is out. A
// stop of exactly 00:00 wraps to the following midnight, so a tag with
// start == stop == 00:00 covers the whole day.
//
// When several windows contain now, the last matching tag in declaration
// order wins; later tags deliberately override earlier ones on overlap.
func ResolveActiveTag(tags []data.TimeTag, now time.Time) (string, bool) {
	text := ""
	found := false
	for _, tag := range tags {
		start := time.Date(now.Year(), now.Month(), now.Day(),
			tag.Start.Hour, tag.Start.Minute, 0, 0, now.Location())

		stopDay := now.Day()
		if tag.Stop.IsMidnight() {
			stopDay++
		}
		stop := time.Date(now.Year(), now.Month(), stopDay,
			tag.Stop.Hour, tag.Stop.Minute, 0, 0, now.Location())

		if !now.Before(start) && now.Before(stop) {
			text = tag.Text
			found = true
		}
	}
	return text, found
}

// PrimaryPrompt renders the main shell prompt for an instant.
type PrimaryPrompt struct {
	Tags []data.TimeTag

	// Default is shown when no tag is active.
	Default string

	// TagEnd is appended after an active tag's text.
	TagEnd string
}

// Render returns the prompt string for now.
func (p PrimaryPrompt) Render(now time.Time) string {
	if text, ok := ResolveActiveTag(p.Tags, now); ok {
		return text + p.TagEnd
	}
	return p.Default
}

// SecondaryPrompt renders the continuation prompt, right-aligned so its last
// character lines up with the primary prompt's.
type SecondaryPrompt struct {
	Primary PrimaryPrompt

	// Text is the continuation prompt content.
	Text string
}

// Render returns the continuation prompt for now, padded to the width the
// primary prompt has at the same instant.
func (s SecondaryPrompt) Render(now time.Time) string {
	// fmt pads %*s in runes, so the width must be counted in runes too or
	// multibyte tag text drifts out of column.
	width := utf8.RuneCountInString(s.Primary.Render(now))
	return fmt.Sprintf("%*s", width, s.Text)
}

// ListTags renders the tag listing lines: raw start and stop, then the text
// as it would appear in the prompt.
func ListTags(tags []data.TimeTag, tagEnd string) []string {
	lines := make([]string, 0, len(tags))
	for _, tag := range tags {
		lines = append(lines, fmt.Sprintf(config.MsgTagListLine,
			tag.RawStart, tag.RawStop, tag.Text, tagEnd))
	}
	return lines
}
