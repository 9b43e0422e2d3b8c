package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/data"
)

// Exporter turns the configured birthdays into an iCalendar feed that
// calendar clients can subscribe to.
type Exporter struct {
	Clock Clock // Interface for time mocking.

	// FormatSummary overrides the event summary text. The default renders
	// "Birthday: Name (Age)" with a "(birth)" form for age zero.
	FormatSummary func(name string, age int, yearKnown bool) string
}

// Calendar generates the ICS bytes for the given birthdays, plus the number
// of birthdays falling on the current day. reminderTrigger, when non-empty,
// is attached to every event as a DISPLAY alarm (ISO 8601, e.g. "-P1D").
func (e *Exporter) Calendar(bdays []data.Birthday, reminderTrigger string) ([]byte, int, error) {
	start := time.Now()
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: suggest a refresh interval to subscribed clients.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Local time drives the "today" logic; only the ICS stamp is UTC.
	// A birthday is defined by the local calendar date, not an absolute
	// UTC timestamp.
	now := e.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	today := 0
	for _, b := range bdays {
		events, isToday := e.createEvents(b, reminderTrigger, now)
		if isToday {
			today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, b.Name,
				config.LogKeyDOB, b.RawDate)
		}
		for _, ev := range events {
			ev.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, ev.Component)
		}
	}

	if len(cal.Children) == 0 {
		// A valid, empty VCALENDAR keeps clients from flagging the feed.
		e.logSuccess(len(bdays), today)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	e.logSuccess(len(bdays), today)
	slog.Debug(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return buf.Bytes(), today, nil
}

func (e *Exporter) logSuccess(total, today int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyFound, total),
			slog.Int(config.LogKeyToday, today),
		),
	)
}

// createEvents generates events for the previous, current, and next year, so
// clients scrolling their calendar see neighbors without an immediate
// re-sync. No event is generated for years before the person was born.
func (e *Exporter) createEvents(b data.Birthday, reminderTrigger string, now time.Time) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	// Deterministic UID base keeps event identity stable across refreshes.
	input := fmt.Sprintf(config.FormatHashInput,
		b.Name, b.Date.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	var events []*ical.Event
	isToday := false
	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		if b.YearKnown() && y < b.Date.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID,
			fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := 0
		if b.YearKnown() {
			age = y - b.Date.Year()
		}
		event.Props.SetText(config.PropSummary, e.summary(b, age))

		eventDate := time.Date(y, b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, loc)
		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, e.summary(b, age))
		}

		events = append(events, event)
	}
	return events, isToday
}

// summary renders an event title, falling back to the built-in wording when
// no formatter is injected.
func (e *Exporter) summary(b data.Birthday, age int) string {
	name := b.Name
	if name == "" {
		name = config.FallbackName
	}
	if e.FormatSummary != nil {
		return e.FormatSummary(name, age, b.YearKnown())
	}
	if !b.YearKnown() {
		return fmt.Sprintf(config.FallbackSummary, name)
	}
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid a "VALUE=TEXT" param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
