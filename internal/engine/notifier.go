package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/data"
)

// Notifier renders the once-per-day birthday reminder block. It holds the
// validated birthdays plus any validation messages their construction
// produced; rendering itself is pure, and any "show once" suppression is the
// caller's business.
type Notifier struct {
	// Birthdays is the validated list; entries that failed validation are
	// absent and described in Messages instead.
	Birthdays []data.Birthday

	// Disabled mirrors a null birthdays array in the data file. A disabled
	// notifier renders nothing.
	Disabled bool

	// Messages holds the rendered validation findings from construction.
	Messages []string

	// NotifyDays is how many days ahead a birthday is announced.
	NotifyDays int

	// LineWidth is the wrap width for the block and its diagnostics.
	LineWidth int
}

// NewNotifier builds a notifier from a loaded document. A construction batch
// does not fail the notifier: the valid birthdays are kept and the findings
// become Messages.
func NewNotifier(doc *data.Document, notifyDays, lineWidth int) *Notifier {
	n := &Notifier{
		NotifyDays: notifyDays,
		LineWidth:  lineWidth,
	}
	if doc == nil {
		return n
	}
	n.Disabled = doc.BirthdaysDisabled

	bdays, err := doc.ConstructBirthdays()
	n.Birthdays = bdays
	if batch, ok := data.AsBatch(err); ok {
		n.Messages = batch.Messages()
	}
	return n
}

// Render produces the full reminder block for a reference date: a rule, the
// weekday line, the birthday sentence when there is one, and a closing rule.
// A disabled notifier renders an empty string.
func (n *Notifier) Render(today time.Time) string {
	if n.Disabled {
		return ""
	}
	rule := strings.Repeat(config.RuleRune, n.LineWidth)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(rule)
	sb.WriteString("\n")
	sb.WriteString(wordwrap.String(
		fmt.Sprintf(config.TodayPrefix, dateOf(today).Format(config.DateFormatDisplay)),
		n.LineWidth))
	sb.WriteString("\n")
	if len(n.Birthdays) > 0 {
		if sentence := n.Sentence(today); sentence != "" {
			sb.WriteString(wordwrap.String(sentence, n.LineWidth))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(rule)
	return sb.String()
}

// Sentence builds the unwrapped birthday sentence for a reference date, or
// an empty string when nothing falls within the notify window.
func (n *Notifier) Sentence(today time.Time) string {
	prox := ProximityList(today, n.Birthdays, n.NotifyDays)
	return formatProximityList(prox)
}

// formatProximityList renders sorted proximity entries into one sentence.
// Entries sharing a days-until value form a cluster: members are joined with
// commas, the final pair with "and", and the day descriptor is emitted once,
// after the cluster's last member.
func formatProximityList(prox []Proximity) string {
	if len(prox) == 0 {
		return ""
	}

	var sb strings.Builder
	lastIdx := len(prox) - 1
	for i, p := range prox {
		closesCluster := i == lastIdx || prox[i+1].DaysUntil != p.DaysUntil
		if i > 0 {
			if closesCluster && prox[i-1].DaysUntil == p.DaysUntil {
				sb.WriteString(config.JoinAnd)
			} else {
				sb.WriteString(config.JoinComma)
			}
		}

		if strings.TrimSpace(p.Name) == "" {
			sb.WriteString(config.EmptyPlaceholder)
		} else {
			sb.WriteString(p.Name)
		}
		if p.Age != 0 {
			fmt.Fprintf(&sb, " (%d)", p.Age)
		}

		if closesCluster {
			if p.WeekdayDesc != "" {
				sb.WriteString(p.WeekdayDesc)
			} else {
				sb.WriteString(formatDaysUntil(p.DaysUntil))
			}
		}
	}
	return config.SentencePrefix + sb.String()
}

// formatDaysUntil is the numeric fallback descriptor.
func formatDaysUntil(daysUntil int) string {
	switch daysUntil {
	case 0:
		return config.DescDayToday
	case 1:
		return config.DescDayTomorrow
	default:
		return fmt.Sprintf(config.DescDayInDays, daysUntil)
	}
}

// ListBirthdays renders the birthday listing lines: display date, two
// spaces, then the name.
func ListBirthdays(bdays []data.Birthday) []string {
	lines := make([]string, 0, len(bdays))
	for _, b := range bdays {
		lines = append(lines, fmt.Sprintf(config.MsgBdayListLine, b.DisplayDate(), b.Name))
	}
	return lines
}

// FormatMessages renders validation messages for display: each message is
// wrapped to the notifier's width, with continuation lines indented four
// spaces and re-wrapped to the narrowed width.
func (n *Notifier) FormatMessages(messages []string) string {
	return FormatMessages(messages, n.LineWidth)
}

// FormatMessages is the standalone form used for structural diagnostics.
func FormatMessages(messages []string, width int) string {
	indent := strings.Repeat(" ", config.MessageIndent)

	out := make([]string, 0, len(messages))
	for _, msg := range messages {
		wrapped := wordwrap.String(msg, width)
		first, rest, _ := strings.Cut(wrapped, "\n")
		if rest != "" {
			// Re-wrap the remainder as one paragraph at the narrowed width.
			rest = wordwrap.String(strings.ReplaceAll(rest, "\n", " "), width-config.MessageIndent)
			rest = "\n" + indent + strings.ReplaceAll(rest, "\n", "\n"+indent)
		}
		out = append(out, first+rest)
	}
	return strings.Join(out, "\n")
}
