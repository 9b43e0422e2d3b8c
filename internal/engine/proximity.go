// Package engine computes everything the prompt shows: which time tag is
// active at an instant, how far away each birthday is, and the rendered
// reminder text. All functions are pure over their inputs; the only clock is
// the injected one.
package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/tagprompt/internal/config"
	"github.com/tartampluch/tagprompt/internal/data"
)

// Proximity is the computed distance to one birthday's next occurrence,
// relative to a reference date. It is rebuilt on every render.
type Proximity struct {
	// DaysUntil is the whole-day distance to the next occurrence; zero
	// means the birthday is today.
	DaysUntil int

	// Name is the birthday's label.
	Name string

	// Age is the age turned at the next occurrence, or zero when the birth
	// year is unknown.
	Age int

	// WeekdayDesc is the " on Tuesday"/" on Saturday next week" phrase, or
	// empty when the occurrence is too close or too far for weekday
	// phrasing.
	WeekdayDesc string
}

// ProximityList computes the sorted, truncated proximity entries for a
// reference date. Entries are ordered by (days until, name); entries farther
// out than notifyDays are cut off.
func ProximityList(today time.Time, bdays []data.Birthday, notifyDays int) []Proximity {
	today = dateOf(today)

	list := make([]Proximity, 0, len(bdays))
	for _, b := range bdays {
		list = append(list, proximity(today, b))
	}

	slices.SortFunc(list, func(a, b Proximity) int {
		if a.DaysUntil != b.DaysUntil {
			return a.DaysUntil - b.DaysUntil
		}
		return strings.Compare(a.Name, b.Name)
	})

	// The list is sorted, so the first entry past the threshold marks a
	// clean cutoff.
	for i, p := range list {
		if p.DaysUntil > notifyDays {
			return list[:i]
		}
	}
	return list
}

// proximity computes one entry. The next occurrence is this year's
// month/day if it has not yet passed (today counts as not passed),
// otherwise next year's. Feb 29 in a non-leap target year normalizes to
// Mar 1 via time.Date, so leaplings always resolve to a real date.
func proximity(today time.Time, b data.Birthday) Proximity {
	month, day := b.Date.Month(), b.Date.Day()

	year := today.Year()
	if month < today.Month() || (month == today.Month() && day < today.Day()) {
		year++
	}
	next := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	daysUntil := int(next.Sub(today).Hours() / config.HoursPerDay)

	age := 0
	if b.YearKnown() {
		age = next.Year() - b.Date.Year()
	}

	return Proximity{
		DaysUntil:   daysUntil,
		Name:        b.Name,
		Age:         age,
		WeekdayDesc: weekdayDesc(today, next, daysUntil),
	}
}

// weekdayDesc produces the weekday phrasing for occurrences within roughly a
// week. Week numbering is ISO (Monday-based); an occurrence one week number
// ahead and at least seven days out gets the " next week" suffix.
func weekdayDesc(today, next time.Time, daysUntil int) string {
	if daysUntil <= 1 {
		return ""
	}
	// Comparing week numbers alone breaks across year boundaries (week 52
	// to week 1, or a rollover landing on the same week number a year
	// later), so the delta is taken between the weeks' Monday midnights.
	weeksAhead := int(weekStart(next).Sub(weekStart(today)).Hours()) /
		(config.HoursPerDay * config.DaysPerWeek)
	if weeksAhead > 1 {
		return ""
	}
	desc := fmt.Sprintf(config.DescOnWeekday, next.Weekday())
	if weeksAhead == 1 && daysUntil >= 7 {
		desc += config.DescNextWeek
	}
	return desc
}

// weekStart returns the Monday midnight opening t's ISO week. t must already
// be a UTC midnight.
func weekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -(int(t.Weekday())+6)%7)
}

// dateOf strips the time of day, renormalizing onto a UTC midnight so that
// date subtraction always yields whole days.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
